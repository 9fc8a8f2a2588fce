// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/domain/entity"
	"github.com/event-budget/backend/internal/integration/persistence/model"
)

// auditTrailRepository implements the adapter.AuditTrailRepository interface.
// The table is insert-only; no update or delete methods exist.
type auditTrailRepository struct {
	db *gorm.DB
}

// NewAuditTrailRepository creates a new audit trail repository instance.
func NewAuditTrailRepository(db *gorm.DB) adapter.AuditTrailRepository {
	return &auditTrailRepository{
		db: db,
	}
}

// Append inserts an immutable audit entry.
func (r *auditTrailRepository) Append(ctx context.Context, entry *entity.AuditEntry) error {
	result := r.db.WithContext(ctx).Create(model.AuditEntryFromEntity(entry))
	return result.Error
}

// FindByBudgetID retrieves all audit entries for a budget, oldest first.
func (r *auditTrailRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]*entity.AuditEntry, error) {
	var entryModels []model.AuditEntryModel
	result := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("request_timestamp ASC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.AuditEntry, len(entryModels))
	for i, em := range entryModels {
		entries[i] = em.ToEntity()
	}
	return entries, nil
}
