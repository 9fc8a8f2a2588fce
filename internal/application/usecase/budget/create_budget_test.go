package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

func newCreateUseCase(repo *memBudgetRepo) *CreateBudgetUseCase {
	clock := fixedClock{now: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}
	return NewCreateBudgetUseCase(repo, clock, randomIDs{}, valueobject.DefaultCategoryCatalog(), valueobject.DefaultItemizationPolicy())
}

func validInput() CreateBudgetInput {
	return CreateBudgetInput{
		EventID:     uuid.New(),
		Name:        "Summer Festival 2026",
		Currency:    "USD",
		TotalBudget: decimal.NewFromInt(100000),
	}
}

func TestCreateBudgetUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft budget with catalog categories", func(t *testing.T) {
		repo := newMemBudgetRepo()
		output, err := newCreateUseCase(repo).Execute(ctx, validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Budget.Status != entity.BudgetStatusDraft {
			t.Errorf("expected draft, got %s", output.Budget.Status)
		}
		if output.Budget.Version != 1 {
			t.Errorf("expected version 1, got %d", output.Budget.Version)
		}
		// The contingency catalog entry becomes the budget's reserve, not an
		// allocatable category.
		if len(output.Categories) != 6 {
			t.Errorf("expected 6 allocatable categories, got %d", len(output.Categories))
		}
		if !output.Budget.ContingencyPct.Equal(decimal.NewFromInt(8)) {
			t.Errorf("expected default contingency 8%%, got %s", output.Budget.ContingencyPct)
		}
		if !output.Budget.ContingencyAmount.Equal(decimal.NewFromInt(8000)) {
			t.Errorf("expected contingency 8000, got %s", output.Budget.ContingencyAmount)
		}
	})

	t.Run("allocations plus contingency equal the total exactly", func(t *testing.T) {
		repo := newMemBudgetRepo()
		// An awkward total that forces rounding residue.
		input := validInput()
		input.TotalBudget = decimal.NewFromFloat(99999.97)
		output, err := newCreateUseCase(repo).Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sum := entity.AllocationTotal(output.Categories).Add(output.Budget.ContingencyAmount)
		if !sum.Equal(input.TotalBudget) {
			t.Errorf("allocations+contingency %s != total %s", sum, input.TotalBudget)
		}
	})

	t.Run("every category starts with a placeholder split summing to its allocation", func(t *testing.T) {
		repo := newMemBudgetRepo()
		output, err := newCreateUseCase(repo).Execute(ctx, validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		itemsByCategory := make(map[uuid.UUID][]*entity.LineItem)
		for _, item := range output.LineItems {
			itemsByCategory[item.CategoryID] = append(itemsByCategory[item.CategoryID], item)
		}
		for _, category := range output.Categories {
			items := itemsByCategory[category.ID]
			if len(items) != 2 {
				t.Fatalf("category %s: expected 2 placeholder items, got %d", category.Code, len(items))
			}
			if !entity.LineItemTotal(items).Equal(category.AllocatedAmount) {
				t.Errorf("category %s: line sum %s != allocation %s", category.Code, entity.LineItemTotal(items), category.AllocatedAmount)
			}
			for _, item := range items {
				if !item.Placeholder {
					t.Errorf("category %s: expected placeholder item", category.Code)
				}
			}
		}
	})

	t.Run("typical percentage overrides reweight allocations", func(t *testing.T) {
		repo := newMemBudgetRepo()
		input := validInput()
		input.TypicalPctOverrides = map[string]decimal.Decimal{
			"venue": decimal.NewFromInt(50),
		}
		output, err := newCreateUseCase(repo).Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		venue := output.Categories[0]
		if venue.Code != "venue" {
			t.Fatalf("expected venue first, got %s", venue.Code)
		}
		// 92,000 allocatable × 50/117 weight.
		expected := decimal.NewFromInt(92000).Mul(decimal.NewFromInt(50)).Div(decimal.NewFromInt(117)).Round(2)
		if !venue.AllocatedAmount.Equal(expected) {
			t.Errorf("expected venue allocation %s, got %s", expected, venue.AllocatedAmount)
		}
	})

	t.Run("contingency outside the recommended range warns", func(t *testing.T) {
		repo := newMemBudgetRepo()
		input := validInput()
		pct := decimal.NewFromInt(20)
		input.ContingencyPct = &pct
		output, err := newCreateUseCase(repo).Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Warnings) != 1 {
			t.Errorf("expected 1 warning, got %d", len(output.Warnings))
		}
	})

	t.Run("negative contingency is rejected", func(t *testing.T) {
		repo := newMemBudgetRepo()
		input := validInput()
		pct := decimal.NewFromInt(-1)
		input.ContingencyPct = &pct
		_, err := newCreateUseCase(repo).Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrInvalidBudgetInput) {
			t.Errorf("expected ErrInvalidBudgetInput, got %v", err)
		}
	})

	t.Run("non-positive total is rejected", func(t *testing.T) {
		repo := newMemBudgetRepo()
		input := validInput()
		input.TotalBudget = decimal.Zero
		_, err := newCreateUseCase(repo).Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrInvalidBudgetInput) {
			t.Errorf("expected ErrInvalidBudgetInput, got %v", err)
		}
	})

	t.Run("lowercase currency is rejected", func(t *testing.T) {
		repo := newMemBudgetRepo()
		input := validInput()
		input.Currency = "usd"
		_, err := newCreateUseCase(repo).Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrInvalidBudgetInput) {
			t.Errorf("expected ErrInvalidBudgetInput, got %v", err)
		}
	})
}
