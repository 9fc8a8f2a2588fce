// Package budget contains budget lifecycle use cases.
package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/domain/entity"
)

// GetBudgetInput identifies the budget to fetch.
type GetBudgetInput struct {
	BudgetID uuid.UUID
}

// GetBudgetOutput carries the budget aggregate as a frozen snapshot.
// Collaborating generators read this shape and never mutate it.
type GetBudgetOutput struct {
	Budget     *entity.Budget
	Categories []*entity.Category
	LineItems  map[string][]*entity.LineItem // keyed by category code
}

// GetBudgetUseCase fetches a budget with its categories and line items.
type GetBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(budgetRepo adapter.BudgetRepository) *GetBudgetUseCase {
	return &GetBudgetUseCase{budgetRepo: budgetRepo}
}

// Execute fetches the budget aggregate.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, input GetBudgetInput) (*GetBudgetOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}
	categories, err := uc.budgetRepo.FindCategories(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}

	items := make(map[string][]*entity.LineItem, len(categories))
	for _, category := range categories {
		categoryItems, err := uc.budgetRepo.FindLineItems(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		items[category.Code] = categoryItems
	}

	return &GetBudgetOutput{
		Budget:     budget,
		Categories: categories,
		LineItems:  items,
	}, nil
}
