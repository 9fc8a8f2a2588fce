package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
)

// memBudgetRepo is an in-memory BudgetRepository for lifecycle tests.
type memBudgetRepo struct {
	budgets    map[uuid.UUID]*entity.Budget
	categories map[uuid.UUID][]*entity.Category
	items      map[uuid.UUID][]*entity.LineItem
}

func newMemBudgetRepo() *memBudgetRepo {
	return &memBudgetRepo{
		budgets:    make(map[uuid.UUID]*entity.Budget),
		categories: make(map[uuid.UUID][]*entity.Category),
		items:      make(map[uuid.UUID][]*entity.LineItem),
	}
}

func (r *memBudgetRepo) Create(_ context.Context, budget *entity.Budget, categories []*entity.Category, items []*entity.LineItem) error {
	copied := *budget
	r.budgets[budget.ID] = &copied
	r.categories[budget.ID] = categories
	for _, item := range items {
		r.items[item.CategoryID] = append(r.items[item.CategoryID], item)
	}
	return nil
}

func (r *memBudgetRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	budget, ok := r.budgets[id]
	if !ok {
		return nil, domainerror.NewBudgetError(domainerror.ErrCodeBudgetNotFound, "budget not found", domainerror.ErrBudgetNotFound)
	}
	copied := *budget
	return &copied, nil
}

func (r *memBudgetRepo) FindCategories(_ context.Context, budgetID uuid.UUID) ([]*entity.Category, error) {
	return r.categories[budgetID], nil
}

func (r *memBudgetRepo) FindCategoryByCode(_ context.Context, budgetID uuid.UUID, code string) (*entity.Category, error) {
	for _, category := range r.categories[budgetID] {
		if category.Code == code {
			return category, nil
		}
	}
	return nil, domainerror.NewBudgetError(domainerror.ErrCodeCategoryNotFound, "category not found", domainerror.ErrCategoryNotFound)
}

func (r *memBudgetRepo) FindLineItems(_ context.Context, categoryID uuid.UUID) ([]*entity.LineItem, error) {
	return r.items[categoryID], nil
}

func (r *memBudgetRepo) Update(_ context.Context, budget *entity.Budget) error {
	copied := *budget
	r.budgets[budget.ID] = &copied
	return nil
}

func (r *memBudgetRepo) CommitReallocation(_ context.Context, _ uuid.UUID, _ int64, _, _ string, _ decimal.Decimal) error {
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type randomIDs struct{}

func (randomIDs) NewID() uuid.UUID { return uuid.New() }
