// Package contingency contains the contingency sizer use case.
package contingency

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/validation"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// NamedRisk is an explicitly identified risk with graded probability and impact.
type NamedRisk struct {
	Name        string                `validate:"required"`
	Probability valueobject.RiskLevel `validate:"required,oneof=low medium high"`
	Impact      valueobject.RiskLevel `validate:"required,oneof=low medium high"`
}

// SizeContingencyInput represents the event risk attributes driving sizing.
type SizeContingencyInput struct {
	TotalBudget           decimal.Decimal             `validate:"-"`
	IsFirstTime           bool
	Complexity            valueobject.ComplexityLevel `validate:"required,oneof=low medium high"`
	OutdoorElements       bool
	InternationalElements bool
	NamedRisks            []NamedRisk `validate:"omitempty,dive"`
}

// RiskProvision is the amount set aside for one named risk.
type RiskProvision struct {
	Name      string
	Provision decimal.Decimal
}

// BucketAllocation splits the contingency amount across purpose buckets.
type BucketAllocation struct {
	Operational decimal.Decimal
	Technical   decimal.Decimal
	External    decimal.Decimal
	General     decimal.Decimal
}

// SizeContingencyOutput represents the sized contingency.
type SizeContingencyOutput struct {
	RecommendedPct    decimal.Decimal
	Capped            bool
	ContingencyAmount decimal.Decimal
	Buckets           BucketAllocation
	RiskProvisions    []RiskProvision
}

// SizeContingencyUseCase computes a recommended contingency percentage from
// event risk attributes and allocates the amount across purpose buckets.
// Pure: the only inputs are the request and the injected policy.
type SizeContingencyUseCase struct {
	policy valueobject.ContingencyPolicy
}

// NewSizeContingencyUseCase creates a new SizeContingencyUseCase instance.
func NewSizeContingencyUseCase(policy valueobject.ContingencyPolicy) *SizeContingencyUseCase {
	return &SizeContingencyUseCase{policy: policy}
}

// Execute performs the contingency sizing.
func (uc *SizeContingencyUseCase) Execute(_ context.Context, input SizeContingencyInput) (*SizeContingencyOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			err.Error(),
			domainerror.ErrInvalidBudgetInput,
		)
	}
	if input.TotalBudget.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			"total budget must not be negative",
			domainerror.ErrInvalidBudgetInput,
		)
	}

	pct := uc.policy.BasePct
	if input.IsFirstTime {
		pct = pct.Add(uc.policy.FirstTimePct)
	}
	pct = pct.Add(uc.policy.ComplexityPct[input.Complexity])
	if input.OutdoorElements {
		pct = pct.Add(uc.policy.OutdoorPct)
	}
	if input.InternationalElements {
		pct = pct.Add(uc.policy.InternationalPct)
	}

	capped := false
	if pct.GreaterThan(uc.policy.CeilingPct) {
		pct = uc.policy.CeilingPct
		capped = true
	}

	hundred := decimal.NewFromInt(100)
	amount := input.TotalBudget.Mul(pct).Div(hundred)

	provisions := make([]RiskProvision, 0, len(input.NamedRisks))
	for _, risk := range input.NamedRisks {
		provision := amount.
			Mul(uc.policy.ProbabilityWeights[risk.Probability]).
			Mul(uc.policy.ImpactMultipliers[risk.Impact])
		provisions = append(provisions, RiskProvision{Name: risk.Name, Provision: provision})
	}

	ratios := uc.policy.BucketRatios
	return &SizeContingencyOutput{
		RecommendedPct:    pct,
		Capped:            capped,
		ContingencyAmount: amount,
		Buckets: BucketAllocation{
			Operational: amount.Mul(ratios.Operational),
			Technical:   amount.Mul(ratios.Technical),
			External:    amount.Mul(ratios.External),
			General:     amount.Mul(ratios.General),
		},
		RiskProvisions: provisions,
	}, nil
}
