package itemization

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

func newUseCase() *ItemizeBudgetUseCase {
	return NewItemizeBudgetUseCase(valueobject.DefaultItemizationPolicy())
}

func TestItemizeBudgetUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("vendor quotes become priced lines", func(t *testing.T) {
		vendor := "acoustics-co"
		output, err := newUseCase().Execute(ctx, ItemizeBudgetInput{
			Categories: []CategoryAllocation{
				{Code: "av_production", Name: "AV & Production", Allocated: decimal.NewFromInt(10000)},
			},
			VendorQuotes: map[string][]QuoteLine{
				"av_production": {
					{Description: "stage sound system", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(3000), VendorRef: &vendor},
					{Description: "lighting rig", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(2500)},
				},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		category := output.Categories[0]
		if len(category.Lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(category.Lines))
		}
		if category.Lines[0].Code != "av_production-001" {
			t.Errorf("expected line code av_production-001, got %s", category.Lines[0].Code)
		}
		if !category.Lines[0].Total.Equal(decimal.NewFromInt(6000)) {
			t.Errorf("expected line total 6000, got %s", category.Lines[0].Total)
		}
		if !category.Total.Equal(decimal.NewFromInt(8500)) {
			t.Errorf("expected category total 8500, got %s", category.Total)
		}
		if category.Lines[0].Placeholder {
			t.Error("expected quoted line not to be a placeholder")
		}
		if category.Lines[0].VendorRef == nil || *category.Lines[0].VendorRef != vendor {
			t.Error("expected vendor reference to be carried through")
		}
	})

	t.Run("categories without quotes get the placeholder split", func(t *testing.T) {
		output, err := newUseCase().Execute(ctx, ItemizeBudgetInput{
			Categories: []CategoryAllocation{
				{Code: "venue", Name: "Venue & Facilities", Allocated: decimal.NewFromInt(10000)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		category := output.Categories[0]
		if len(category.Lines) != 2 {
			t.Fatalf("expected 2 placeholder lines, got %d", len(category.Lines))
		}
		if !category.Lines[0].Total.Equal(decimal.NewFromInt(7000)) {
			t.Errorf("expected base cost 7000, got %s", category.Lines[0].Total)
		}
		if !category.Lines[1].Total.Equal(decimal.NewFromInt(3000)) {
			t.Errorf("expected add-on 3000, got %s", category.Lines[1].Total)
		}
		if !category.Lines[0].Placeholder || !category.Lines[1].Placeholder {
			t.Error("expected both lines to be placeholders")
		}
		// The split must always sum back to the allocation exactly.
		if !category.Total.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("expected category total 10000, got %s", category.Total)
		}
	})

	t.Run("line totals sum to the category total", func(t *testing.T) {
		output, err := newUseCase().Execute(ctx, ItemizeBudgetInput{
			Categories: []CategoryAllocation{
				{Code: "venue", Name: "Venue", Allocated: decimal.NewFromFloat(3333.33)},
				{Code: "marketing", Name: "Marketing", Allocated: decimal.NewFromFloat(1234.56)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, category := range output.Categories {
			sum := decimal.Zero
			for _, line := range category.Lines {
				sum = sum.Add(line.Total)
			}
			if !sum.Equal(category.Total) {
				t.Errorf("category %s: line sum %s != total %s", category.Code, sum, category.Total)
			}
		}
	})

	t.Run("grand total is subtotal plus contingency", func(t *testing.T) {
		output, err := newUseCase().Execute(ctx, ItemizeBudgetInput{
			Categories: []CategoryAllocation{
				{Code: "venue", Name: "Venue", Allocated: decimal.NewFromInt(10000)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.ContingencyPct.Equal(decimal.NewFromInt(8)) {
			t.Errorf("expected default contingency 8%%, got %s", output.ContingencyPct)
		}
		if !output.Contingency.Equal(decimal.NewFromInt(800)) {
			t.Errorf("expected contingency 800, got %s", output.Contingency)
		}
		if !output.GrandTotal.Equal(decimal.NewFromInt(10800)) {
			t.Errorf("expected grand total 10800, got %s", output.GrandTotal)
		}
	})

	t.Run("contingency outside recommended range warns but succeeds", func(t *testing.T) {
		pct := decimal.NewFromInt(20)
		output, err := newUseCase().Execute(ctx, ItemizeBudgetInput{
			Categories: []CategoryAllocation{
				{Code: "venue", Name: "Venue", Allocated: decimal.NewFromInt(1000)},
			},
			ContingencyPct: &pct,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Warnings) != 1 {
			t.Fatalf("expected 1 warning, got %d", len(output.Warnings))
		}
		if !output.Contingency.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected contingency 200, got %s", output.Contingency)
		}
	})

	t.Run("pct of subtotal is nil when subtotal is zero", func(t *testing.T) {
		output, err := newUseCase().Execute(ctx, ItemizeBudgetInput{
			Categories: []CategoryAllocation{
				{Code: "venue", Name: "Venue", Allocated: decimal.Zero},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Categories[0].PctOfSubtotal != nil {
			t.Error("expected nil percentage for zero subtotal")
		}
	})

	t.Run("negative allocation is rejected", func(t *testing.T) {
		_, err := newUseCase().Execute(ctx, ItemizeBudgetInput{
			Categories: []CategoryAllocation{
				{Code: "venue", Name: "Venue", Allocated: decimal.NewFromInt(-1)},
			},
		})
		if !errors.Is(err, domainerror.ErrInvalidBudgetInput) {
			t.Errorf("expected ErrInvalidBudgetInput, got %v", err)
		}
	})

	t.Run("empty category list is rejected", func(t *testing.T) {
		_, err := newUseCase().Execute(ctx, ItemizeBudgetInput{})
		if !errors.Is(err, domainerror.ErrInvalidBudgetInput) {
			t.Errorf("expected ErrInvalidBudgetInput, got %v", err)
		}
	})
}

func TestLineCode(t *testing.T) {
	if code := LineCode("venue", 1); code != "venue-001" {
		t.Errorf("expected venue-001, got %s", code)
	}
	if code := LineCode("food_beverage", 12); code != "food_beverage-012" {
		t.Errorf("expected food_beverage-012, got %s", code)
	}
}
