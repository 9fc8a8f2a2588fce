package contingency

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

func newUseCase() *SizeContingencyUseCase {
	return NewSizeContingencyUseCase(valueobject.DefaultContingencyPolicy())
}

func TestSizeContingencyUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("additive percentage from risk attributes", func(t *testing.T) {
		// base 5 + first-time 3 + high complexity 3 + outdoor 2 + intl 2 = 15
		output, err := newUseCase().Execute(ctx, SizeContingencyInput{
			TotalBudget:           decimal.NewFromInt(100000),
			IsFirstTime:           true,
			Complexity:            valueobject.ComplexityHigh,
			OutdoorElements:       true,
			InternationalElements: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.RecommendedPct.Equal(decimal.NewFromInt(15)) {
			t.Errorf("expected 15%%, got %s", output.RecommendedPct)
		}
		if output.Capped {
			t.Error("expected not capped below the ceiling")
		}
		if !output.ContingencyAmount.Equal(decimal.NewFromInt(15000)) {
			t.Errorf("expected amount 15000, got %s", output.ContingencyAmount)
		}
	})

	t.Run("low risk profile stays at the base percentage", func(t *testing.T) {
		output, err := newUseCase().Execute(ctx, SizeContingencyInput{
			TotalBudget: decimal.NewFromInt(50000),
			Complexity:  valueobject.ComplexityLow,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.RecommendedPct.Equal(decimal.NewFromInt(5)) {
			t.Errorf("expected base 5%%, got %s", output.RecommendedPct)
		}
	})

	t.Run("percentage is capped at the ceiling", func(t *testing.T) {
		policy := valueobject.DefaultContingencyPolicy()
		policy.BasePct = decimal.NewFromInt(30)
		output, err := NewSizeContingencyUseCase(policy).Execute(ctx, SizeContingencyInput{
			TotalBudget: decimal.NewFromInt(10000),
			Complexity:  valueobject.ComplexityLow,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.RecommendedPct.Equal(decimal.NewFromInt(25)) {
			t.Errorf("expected capped 25%%, got %s", output.RecommendedPct)
		}
		if !output.Capped {
			t.Error("expected capped flag")
		}
	})

	t.Run("buckets split the amount by policy ratios", func(t *testing.T) {
		output, err := newUseCase().Execute(ctx, SizeContingencyInput{
			TotalBudget: decimal.NewFromInt(100000),
			Complexity:  valueobject.ComplexityLow,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 5% of 100,000 = 5,000 split 40/25/20/15.
		if !output.Buckets.Operational.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("expected operational 2000, got %s", output.Buckets.Operational)
		}
		if !output.Buckets.Technical.Equal(decimal.NewFromInt(1250)) {
			t.Errorf("expected technical 1250, got %s", output.Buckets.Technical)
		}
		if !output.Buckets.External.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected external 1000, got %s", output.Buckets.External)
		}
		if !output.Buckets.General.Equal(decimal.NewFromInt(750)) {
			t.Errorf("expected general 750, got %s", output.Buckets.General)
		}

		sum := output.Buckets.Operational.
			Add(output.Buckets.Technical).
			Add(output.Buckets.External).
			Add(output.Buckets.General)
		if !sum.Equal(output.ContingencyAmount) {
			t.Errorf("bucket sum %s != contingency %s", sum, output.ContingencyAmount)
		}
	})

	t.Run("named risks get weighted provisions", func(t *testing.T) {
		output, err := newUseCase().Execute(ctx, SizeContingencyInput{
			TotalBudget: decimal.NewFromInt(100000),
			Complexity:  valueobject.ComplexityLow,
			NamedRisks: []NamedRisk{
				{Name: "weather", Probability: valueobject.RiskHigh, Impact: valueobject.RiskHigh},
				{Name: "headliner cancellation", Probability: valueobject.RiskLow, Impact: valueobject.RiskMedium},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.RiskProvisions) != 2 {
			t.Fatalf("expected 2 provisions, got %d", len(output.RiskProvisions))
		}
		// 5,000 × 0.15 × 2 = 1,500
		if !output.RiskProvisions[0].Provision.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("expected weather provision 1500, got %s", output.RiskProvisions[0].Provision)
		}
		// 5,000 × 0.05 × 1.5 = 375
		if !output.RiskProvisions[1].Provision.Equal(decimal.NewFromInt(375)) {
			t.Errorf("expected cancellation provision 375, got %s", output.RiskProvisions[1].Provision)
		}
	})

	t.Run("unknown complexity is rejected", func(t *testing.T) {
		_, err := newUseCase().Execute(ctx, SizeContingencyInput{
			TotalBudget: decimal.NewFromInt(1000),
			Complexity:  "extreme",
		})
		if !errors.Is(err, domainerror.ErrInvalidBudgetInput) {
			t.Errorf("expected ErrInvalidBudgetInput, got %v", err)
		}
	})

	t.Run("negative budget is rejected", func(t *testing.T) {
		_, err := newUseCase().Execute(ctx, SizeContingencyInput{
			TotalBudget: decimal.NewFromInt(-1),
			Complexity:  valueobject.ComplexityLow,
		})
		if !errors.Is(err, domainerror.ErrInvalidBudgetInput) {
			t.Errorf("expected ErrInvalidBudgetInput, got %v", err)
		}
	})
}
