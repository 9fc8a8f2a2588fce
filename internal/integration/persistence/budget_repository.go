// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create persists the budget aggregate in a single transaction.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget, categories []*entity.Category, items []*entity.LineItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.BudgetFromEntity(budget)).Error; err != nil {
			return err
		}
		for _, category := range categories {
			if err := tx.Create(model.CategoryFromEntity(category)).Error; err != nil {
				return err
			}
		}
		for _, item := range items {
			if err := tx.Create(model.LineItemFromEntity(item)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID retrieves a budget by its ID.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindCategories retrieves the categories of a budget ordered by position.
func (r *budgetRepository) FindCategories(ctx context.Context, budgetID uuid.UUID) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("position ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}
	return categories, nil
}

// FindCategoryByCode retrieves a single category of a budget by its code.
func (r *budgetRepository) FindCategoryByCode(ctx context.Context, budgetID uuid.UUID, code string) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("budget_id = ? AND code = ?", budgetID, code).
		First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindLineItems retrieves the line items of a category ordered by code.
func (r *budgetRepository) FindLineItems(ctx context.Context, categoryID uuid.UUID) ([]*entity.LineItem, error) {
	var itemModels []model.LineItemModel
	result := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("code ASC").
		Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*entity.LineItem, len(itemModels))
	for i, im := range itemModels {
		items[i] = im.ToEntity()
	}
	return items, nil
}

// Update persists changes to the budget root.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	result := r.db.WithContext(ctx).Save(model.BudgetFromEntity(budget))
	return result.Error
}

// CommitReallocation atomically moves amount between two categories under an
// optimistic version check. The version bump and both allocation updates
// succeed or fail together; a stale version aborts the transaction.
func (r *budgetRepository) CommitReallocation(ctx context.Context, budgetID uuid.UUID, expectedVersion int64, fromCode, toCode string, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.BudgetModel{}).
			Where("id = ? AND version = ?", budgetID, expectedVersion).
			Update("version", gorm.Expr("version + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.NewReallocationError(
				domainerror.ErrCodeBudgetVersionConflict,
				"budget version changed since feasibility check",
				domainerror.ErrBudgetVersionConflict,
			)
		}

		if err := r.moveAllocation(tx, budgetID, fromCode, amount.Neg()); err != nil {
			return err
		}
		return r.moveAllocation(tx, budgetID, toCode, amount)
	})
}

// moveAllocation adds delta to one category's allocation inside a transaction.
func (r *budgetRepository) moveAllocation(tx *gorm.DB, budgetID uuid.UUID, code string, delta decimal.Decimal) error {
	result := tx.Model(&model.CategoryModel{}).
		Where("budget_id = ? AND code = ?", budgetID, code).
		Update("allocated_amount", gorm.Expr("allocated_amount + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	return nil
}
