// Package budget contains budget lifecycle use cases.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/application/usecase/itemization"
	"github.com/event-budget/backend/internal/application/validation"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// moneyPlaces is the rounding scale for allocated amounts. Residual rounding
// is pushed into the last category so allocations plus contingency always
// equal the budget total exactly.
const moneyPlaces = 2

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	EventID     uuid.UUID       `validate:"required"`
	Name        string          `validate:"required,max=120"`
	Currency    string          `validate:"required,len=3,uppercase"`
	TotalBudget decimal.Decimal `validate:"-"`
	// ContingencyPct overrides the default contingency percentage.
	ContingencyPct *decimal.Decimal
	// TypicalPctOverrides optionally replaces catalog guideline percentages,
	// e.g. from a historical breakdown.
	TypicalPctOverrides map[string]decimal.Decimal
}

// CreateBudgetOutput represents the created draft budget.
type CreateBudgetOutput struct {
	Budget     *entity.Budget
	Categories []*entity.Category
	LineItems  []*entity.LineItem
	Warnings   []string
}

// CreateBudgetUseCase composes the structure catalog, placeholder
// itemization and contingency into a persisted draft budget. Category
// allocations plus contingency always equal the budget total.
type CreateBudgetUseCase struct {
	budgetRepo  adapter.BudgetRepository
	clock       adapter.Clock
	idGenerator adapter.IDGenerator
	catalog     []valueobject.CategorySpec
	itemization valueobject.ItemizationPolicy
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	clock adapter.Clock,
	idGenerator adapter.IDGenerator,
	catalog []valueobject.CategorySpec,
	itemizationPolicy valueobject.ItemizationPolicy,
) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:  budgetRepo,
		clock:       clock,
		idGenerator: idGenerator,
		catalog:     catalog,
		itemization: itemizationPolicy,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			err.Error(),
			domainerror.ErrInvalidBudgetInput,
		)
	}
	if !input.TotalBudget.IsPositive() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			"total budget must be positive",
			domainerror.ErrInvalidBudgetInput,
		)
	}

	var warnings []string
	contingencyPct := uc.itemization.DefaultContingencyPct
	if input.ContingencyPct != nil {
		contingencyPct = *input.ContingencyPct
		if contingencyPct.IsNegative() {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidBudgetInput,
				"contingency percentage must not be negative",
				domainerror.ErrInvalidBudgetInput,
			)
		}
		if contingencyPct.LessThan(uc.itemization.MinRecommendedPct) || contingencyPct.GreaterThan(uc.itemization.MaxRecommendedPct) {
			warnings = append(warnings, fmt.Sprintf(
				"contingency %s%% is outside the recommended %s-%s%% range",
				contingencyPct.String(), uc.itemization.MinRecommendedPct.String(), uc.itemization.MaxRecommendedPct.String(),
			))
		}
	}

	hundred := decimal.NewFromInt(100)
	contingency := input.TotalBudget.Mul(contingencyPct).Div(hundred).Round(moneyPlaces)
	allocatable := input.TotalBudget.Sub(contingency)

	// The contingency catalog entry is represented by the budget's own
	// contingency amount, not an allocatable category.
	specs := make([]valueobject.CategorySpec, 0, len(uc.catalog))
	weightSum := decimal.Zero
	for _, spec := range uc.catalog {
		if spec.Code == "contingency" {
			continue
		}
		if pct, ok := input.TypicalPctOverrides[spec.Code]; ok {
			spec.TypicalPct = pct
		}
		specs = append(specs, spec)
		weightSum = weightSum.Add(spec.TypicalPct)
	}
	if weightSum.IsZero() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			"category guideline percentages sum to zero",
			domainerror.ErrInvalidBudgetInput,
		)
	}

	now := uc.clock.Now()
	budget := entity.NewBudget(
		uc.idGenerator.NewID(),
		input.EventID,
		input.Name,
		input.Currency,
		input.TotalBudget,
		contingencyPct,
		contingency,
		now,
	)

	categories := make([]*entity.Category, 0, len(specs))
	var items []*entity.LineItem
	allocated := decimal.Zero
	for i, spec := range specs {
		amount := allocatable.Mul(spec.TypicalPct).Div(weightSum).Round(moneyPlaces)
		if i == len(specs)-1 {
			// Last category absorbs the rounding residue.
			amount = allocatable.Sub(allocated)
		}
		allocated = allocated.Add(amount)

		category := entity.NewCategory(uc.idGenerator.NewID(), budget.ID, spec.Code, spec.Name, amount, spec.TypicalPct, i, now)
		categories = append(categories, category)
		items = append(items, uc.placeholderItems(category, now)...)
	}

	if err := uc.budgetRepo.Create(ctx, budget, categories, items); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	slog.Info("Budget created",
		"budgetID", budget.ID,
		"eventID", input.EventID,
		"total", input.TotalBudget.String(),
		"categories", len(categories),
	)

	return &CreateBudgetOutput{
		Budget:     budget,
		Categories: categories,
		LineItems:  items,
		Warnings:   warnings,
	}, nil
}

// placeholderItems synthesizes the base-cost/add-on split so every category
// starts with line items before vendor quotes arrive.
func (uc *CreateBudgetUseCase) placeholderItems(category *entity.Category, now time.Time) []*entity.LineItem {
	one := decimal.NewFromInt(1)
	base := category.AllocatedAmount.Mul(uc.itemization.PlaceholderBaseShare).Round(moneyPlaces)
	addOn := category.AllocatedAmount.Sub(base)
	return []*entity.LineItem{
		entity.NewLineItem(uc.idGenerator.NewID(), category.ID, itemization.LineCode(category.Code, 1), "base cost", one, base, nil, nil, true, now),
		entity.NewLineItem(uc.idGenerator.NewID(), category.ID, itemization.LineCode(category.Code, 2), "optional add-on", one, addOn, nil, nil, true, now),
	}
}
