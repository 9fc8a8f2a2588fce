// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/domain/entity"
	"github.com/event-budget/backend/internal/integration/persistence/model"
)

// forecastRevisionRepository implements adapter.ForecastRevisionRepository.
// The table is insert-only; revisions are never overwritten.
type forecastRevisionRepository struct {
	db *gorm.DB
}

// NewForecastRevisionRepository creates a new forecast revision repository instance.
func NewForecastRevisionRepository(db *gorm.DB) adapter.ForecastRevisionRepository {
	return &forecastRevisionRepository{
		db: db,
	}
}

// Append inserts a forecast revision.
func (r *forecastRevisionRepository) Append(ctx context.Context, revision *entity.ForecastRevision) error {
	result := r.db.WithContext(ctx).Create(model.ForecastRevisionFromEntity(revision))
	return result.Error
}

// FindByBudgetID retrieves all revisions for a budget, oldest first.
func (r *forecastRevisionRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]*entity.ForecastRevision, error) {
	var revisionModels []model.ForecastRevisionModel
	result := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("created_at ASC").
		Find(&revisionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	revisions := make([]*entity.ForecastRevision, len(revisionModels))
	for i, rm := range revisionModels {
		revisions[i] = rm.ToEntity()
	}
	return revisions, nil
}

// FindLatestByBudgetID retrieves the most recent revision, or nil when no
// revision exists yet.
func (r *forecastRevisionRepository) FindLatestByBudgetID(ctx context.Context, budgetID uuid.UUID) (*entity.ForecastRevision, error) {
	var revisionModel model.ForecastRevisionModel
	result := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("created_at DESC").
		First(&revisionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return revisionModel.ToEntity(), nil
}
