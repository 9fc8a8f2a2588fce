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

// approverRepository implements the adapter.ApproverRepository interface.
type approverRepository struct {
	db *gorm.DB
}

// NewApproverRepository creates a new approver repository instance.
func NewApproverRepository(db *gorm.DB) adapter.ApproverRepository {
	return &approverRepository{
		db: db,
	}
}

// Create persists a new approver account.
func (r *approverRepository) Create(ctx context.Context, approver *entity.Approver) error {
	result := r.db.WithContext(ctx).Create(model.ApproverFromEntity(approver))
	return result.Error
}

// FindByID retrieves an approver by ID.
func (r *approverRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Approver, error) {
	var approverModel model.ApproverModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&approverModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeApproverNotFound,
				"approver not found",
				domainerror.ErrApproverNotFound,
			)
		}
		return nil, result.Error
	}
	return approverModel.ToEntity(), nil
}

// FindByEmail retrieves an approver by email.
func (r *approverRepository) FindByEmail(ctx context.Context, email string) (*entity.Approver, error) {
	var approverModel model.ApproverModel
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&approverModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeApproverNotFound,
				"approver not found",
				domainerror.ErrApproverNotFound,
			)
		}
		return nil, result.Error
	}
	return approverModel.ToEntity(), nil
}

// ExistsByEmail checks whether an approver with the email already exists.
func (r *approverRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.ApproverModel{}).
		Where("email = ?", email).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
