// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/integration/persistence/model"
)

// reallocationRepository implements the adapter.ReallocationRepository interface.
type reallocationRepository struct {
	db *gorm.DB
}

// NewReallocationRepository creates a new reallocation repository instance.
func NewReallocationRepository(db *gorm.DB) adapter.ReallocationRepository {
	return &reallocationRepository{
		db: db,
	}
}

// Create persists a new reallocation request.
func (r *reallocationRepository) Create(ctx context.Context, request *entity.ReallocationRequest) error {
	result := r.db.WithContext(ctx).Create(model.ReallocationRequestFromEntity(request))
	return result.Error
}

// FindByID retrieves a reallocation request by its ID.
func (r *reallocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ReallocationRequest, error) {
	var requestModel model.ReallocationRequestModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&requestModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewReallocationError(
				domainerror.ErrCodeReallocationNotFound,
				"reallocation request not found",
				domainerror.ErrReallocationNotFound,
			)
		}
		return nil, result.Error
	}
	return requestModel.ToEntity(), nil
}

// FindByBudgetID retrieves all requests for a budget, newest first.
func (r *reallocationRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]*entity.ReallocationRequest, error) {
	var requestModels []model.ReallocationRequestModel
	result := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("created_at DESC").
		Find(&requestModels)
	if result.Error != nil {
		return nil, result.Error
	}

	requests := make([]*entity.ReallocationRequest, len(requestModels))
	for i, rm := range requestModels {
		requests[i] = rm.ToEntity()
	}
	return requests, nil
}

// Update persists changes to a request's workflow state.
func (r *reallocationRepository) Update(ctx context.Context, request *entity.ReallocationRequest) error {
	result := r.db.WithContext(ctx).Save(model.ReallocationRequestFromEntity(request))
	return result.Error
}
