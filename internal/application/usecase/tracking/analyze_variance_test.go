package tracking

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

func newUseCase() *AnalyzeVarianceUseCase {
	return NewAnalyzeVarianceUseCase(valueobject.DefaultVarianceThresholds())
}

func TestAnalyzeVarianceUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("mid-event snapshot bands categories and assesses spend rate", func(t *testing.T) {
		// 100,000 total across three categories at 50% progress. Venue and
		// F&B both deviate more than 20% from expected-to-date, but the
		// blended actual rate of 46% sits inside the 42.5%-57.5% corridor.
		output, err := newUseCase().Execute(ctx, AnalyzeVarianceInput{
			Progress: decimal.NewFromInt(50),
			Records: []SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.NewFromInt(25000), Actual: decimal.NewFromInt(27000)},
				{CategoryCode: "food_beverage", Budgeted: decimal.NewFromInt(20000), Actual: decimal.NewFromInt(19000)},
				{CategoryCode: "operations", Budgeted: decimal.NewFromInt(55000), Actual: decimal.NewFromInt(23000)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		snapshot := output.Snapshot

		venue := snapshot.Categories[0]
		if !venue.Variance.Equal(decimal.NewFromInt(14500)) {
			t.Errorf("expected venue variance 14500, got %s", venue.Variance)
		}
		if venue.VariancePct == nil || !venue.VariancePct.Equal(decimal.NewFromFloat(1.16)) {
			t.Errorf("expected venue variance pct 1.16, got %v", venue.VariancePct)
		}
		if venue.Status != valueobject.VarianceStatusRed {
			t.Errorf("expected venue red, got %s", venue.Status)
		}

		fb := snapshot.Categories[1]
		if !fb.Variance.Equal(decimal.NewFromInt(9000)) {
			t.Errorf("expected f&b variance 9000, got %s", fb.Variance)
		}
		if fb.Status != valueobject.VarianceStatusRed {
			t.Errorf("expected f&b red, got %s", fb.Status)
		}

		// 69,000 actual of 100,000 budgeted: rate 0.69, corridor at 50%
		// progress is 0.425 to 0.575, so the blend is over.
		if snapshot.ActualSpendRate == nil || !snapshot.ActualSpendRate.Equal(decimal.NewFromFloat(0.69)) {
			t.Errorf("expected actual spend rate 0.69, got %v", snapshot.ActualSpendRate)
		}
		if snapshot.SpendRate != valueobject.SpendRateOver {
			t.Errorf("expected spend rate over, got %s", snapshot.SpendRate)
		}
	})

	t.Run("blended rate inside the corridor is on_track", func(t *testing.T) {
		// Same deviating categories, rest of the budget barely spent: the
		// blended rate is 46% against an expected 50%, inside 42.5%-57.5%.
		output, err := newUseCase().Execute(ctx, AnalyzeVarianceInput{
			Progress: decimal.NewFromInt(50),
			Records: []SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.NewFromInt(25000), Actual: decimal.NewFromInt(27000)},
				{CategoryCode: "food_beverage", Budgeted: decimal.NewFromInt(20000), Actual: decimal.NewFromInt(19000)},
				{CategoryCode: "operations", Budgeted: decimal.NewFromInt(55000), Actual: decimal.Zero},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		snapshot := output.Snapshot
		if snapshot.ActualSpendRate == nil || !snapshot.ActualSpendRate.Equal(decimal.NewFromFloat(0.46)) {
			t.Errorf("expected actual spend rate 0.46, got %v", snapshot.ActualSpendRate)
		}
		if snapshot.SpendRate != valueobject.SpendRateOnTrack {
			t.Errorf("expected spend rate on_track, got %s", snapshot.SpendRate)
		}
	})

	t.Run("spend rate under when actual lags the corridor", func(t *testing.T) {
		output, err := newUseCase().Execute(ctx, AnalyzeVarianceInput{
			Progress: decimal.NewFromInt(80),
			Records: []SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.NewFromInt(10000), Actual: decimal.NewFromInt(3000)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Snapshot.SpendRate != valueobject.SpendRateUnder {
			t.Errorf("expected spend rate under, got %s", output.Snapshot.SpendRate)
		}
	})

	t.Run("progress zero leaves ratios undefined", func(t *testing.T) {
		output, err := newUseCase().Execute(ctx, AnalyzeVarianceInput{
			Progress: decimal.Zero,
			Records: []SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.NewFromInt(10000), Actual: decimal.NewFromInt(500)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		snapshot := output.Snapshot
		if snapshot.Categories[0].VariancePct != nil {
			t.Error("expected nil category variance pct at progress 0")
		}
		if snapshot.TotalVariancePct != nil {
			t.Error("expected nil total variance pct at progress 0")
		}
		if snapshot.ProjectedTotal != nil {
			t.Error("expected nil projected total at progress 0")
		}
		// Spend without a baseline is flagged yellow, not an error.
		if snapshot.Categories[0].Status != valueobject.VarianceStatusYellow {
			t.Errorf("expected yellow, got %s", snapshot.Categories[0].Status)
		}
	})

	t.Run("zero budgeted category does not divide", func(t *testing.T) {
		output, err := newUseCase().Execute(ctx, AnalyzeVarianceInput{
			Progress: decimal.NewFromInt(50),
			Records: []SpendInput{
				{CategoryCode: "extras", Budgeted: decimal.Zero, Actual: decimal.Zero},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		snapshot := output.Snapshot
		if snapshot.Categories[0].VariancePct != nil {
			t.Error("expected nil variance pct for zero budget")
		}
		if snapshot.Categories[0].Status != valueobject.VarianceStatusGreen {
			t.Errorf("expected green for no movement, got %s", snapshot.Categories[0].Status)
		}
		if snapshot.ActualSpendRate != nil {
			t.Error("expected nil spend rate for zero total budget")
		}
		if snapshot.SpendRate != valueobject.SpendRateOnTrack {
			t.Errorf("expected on_track default, got %s", snapshot.SpendRate)
		}
	})

	t.Run("overcommitment floors available and sets the flag", func(t *testing.T) {
		output, err := newUseCase().Execute(ctx, AnalyzeVarianceInput{
			Progress: decimal.NewFromInt(50),
			Records: []SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.NewFromInt(1000), Actual: decimal.NewFromInt(800), Committed: decimal.NewFromInt(400)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		category := output.Snapshot.Categories[0]
		if !category.Available.IsZero() {
			t.Errorf("expected floored available 0, got %s", category.Available)
		}
		if !category.RawAvailable.Equal(decimal.NewFromInt(-200)) {
			t.Errorf("expected raw available -200, got %s", category.RawAvailable)
		}
		if !category.Overcommitted {
			t.Error("expected overcommitted flag")
		}
	})

	t.Run("analysis is idempotent", func(t *testing.T) {
		input := AnalyzeVarianceInput{
			Progress: decimal.NewFromInt(75),
			Records: []SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.NewFromInt(25000), Actual: decimal.NewFromInt(20000), Committed: decimal.NewFromInt(2000)},
				{CategoryCode: "marketing", Budgeted: decimal.NewFromInt(10000), Actual: decimal.NewFromInt(9000)},
			},
		}
		first, err := newUseCase().Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := newUseCase().Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("expected identical snapshots for identical input")
		}
	})

	t.Run("progress above 100 is rejected", func(t *testing.T) {
		_, err := newUseCase().Execute(ctx, AnalyzeVarianceInput{
			Progress: decimal.NewFromInt(101),
			Records: []SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.NewFromInt(1000)},
			},
		})
		if !errors.Is(err, domainerror.ErrInvalidBudgetInput) {
			t.Errorf("expected ErrInvalidBudgetInput, got %v", err)
		}
	})

	t.Run("empty record list is rejected", func(t *testing.T) {
		_, err := newUseCase().Execute(ctx, AnalyzeVarianceInput{Progress: decimal.NewFromInt(50)})
		if !errors.Is(err, domainerror.ErrInvalidBudgetInput) {
			t.Errorf("expected ErrInvalidBudgetInput, got %v", err)
		}
	})
}

func TestAnalyzeVarianceUseCase_StatusBanding(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	tests := []struct {
		name     string
		budgeted int64
		actual   int64
		expected valueobject.VarianceStatus
	}{
		{"within 10 percent is green", 10000, 5400, valueobject.VarianceStatusGreen},
		{"beyond 10 percent is yellow", 10000, 5800, valueobject.VarianceStatusYellow},
		{"beyond 20 percent is red", 10000, 6500, valueobject.VarianceStatusRed},
		{"underspend bands on absolute value", 10000, 3500, valueobject.VarianceStatusRed},
	}

	// All cases run at 50% progress, expected-to-date 5,000.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := uc.Execute(ctx, AnalyzeVarianceInput{
				Progress: decimal.NewFromInt(50),
				Records: []SpendInput{
					{CategoryCode: "venue", Budgeted: decimal.NewFromInt(tt.budgeted), Actual: decimal.NewFromInt(tt.actual)},
				},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := output.Snapshot.Categories[0].Status; got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
