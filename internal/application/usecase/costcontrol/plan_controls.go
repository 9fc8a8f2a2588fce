// Package costcontrol contains the cost-control planner use case.
package costcontrol

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/validation"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// Severity grades how far the forecast runs over budget.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeveritySevere   Severity = "severe"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"
)

// Urgency grades how little timeline is left to act.
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencyHigh      Urgency = "high"
	UrgencyMedium    Urgency = "medium"
	UrgencyLow       Urgency = "low"
)

// PlanControlsInput represents the overrun situation to mitigate.
type PlanControlsInput struct {
	OriginalBudget  decimal.Decimal `validate:"-"`
	CurrentForecast decimal.Decimal `validate:"-"`
	RemainingDays   int             `validate:"min=0"`
}

// ControlAction is one ranked mitigation action. Estimated savings are
// proportional shares of the reduction target, not independently derived.
type ControlAction struct {
	Name             string
	Description      string
	EstimatedSavings decimal.Decimal
	Effort           int
	QualityImpact    int
}

// PlanControlsOutput represents the ranked mitigation plan.
type PlanControlsOutput struct {
	// Required is false when the forecast does not exceed the budget;
	// severity is minor and no actions are produced.
	Required            bool
	ForecastVariancePct *decimal.Decimal
	Severity            Severity
	Urgency             Urgency
	CostReductionTarget decimal.Decimal
	Actions             []ControlAction
	TotalSavings        decimal.Decimal
	TargetAchievable    bool
}

// PlanControlsUseCase ranks mitigation actions when the forecast exceeds
// the budget. Pure: the only inputs are the request and the injected policy.
type PlanControlsUseCase struct {
	policy valueobject.CostControlPolicy
}

// NewPlanControlsUseCase creates a new PlanControlsUseCase instance.
func NewPlanControlsUseCase(policy valueobject.CostControlPolicy) *PlanControlsUseCase {
	return &PlanControlsUseCase{policy: policy}
}

// Execute performs the planning.
func (uc *PlanControlsUseCase) Execute(_ context.Context, input PlanControlsInput) (*PlanControlsOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			err.Error(),
			domainerror.ErrInvalidBudgetInput,
		)
	}
	if !input.OriginalBudget.IsPositive() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			"original budget must be positive",
			domainerror.ErrInvalidBudgetInput,
		)
	}
	if input.CurrentForecast.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			"current forecast must not be negative",
			domainerror.ErrInvalidBudgetInput,
		)
	}

	variancePct := input.CurrentForecast.Sub(input.OriginalBudget).Div(input.OriginalBudget)
	target := input.CurrentForecast.Sub(input.OriginalBudget)

	output := &PlanControlsOutput{
		ForecastVariancePct: &variancePct,
		Severity:            uc.severity(variancePct),
		Urgency:             uc.urgency(input.RemainingDays),
	}

	if !target.IsPositive() {
		// Forecast at or under budget: nothing to mitigate.
		output.Severity = SeverityMinor
		output.CostReductionTarget = decimal.Zero
		output.TargetAchievable = true
		return output, nil
	}

	output.Required = true
	output.CostReductionTarget = target

	actions := make([]ControlAction, 0, len(uc.policy.Actions))
	total := decimal.Zero
	for _, spec := range uc.policy.Actions {
		savings := target.Mul(spec.TargetShare)
		actions = append(actions, ControlAction{
			Name:             spec.Name,
			Description:      spec.Description,
			EstimatedSavings: savings,
			Effort:           spec.Effort,
			QualityImpact:    spec.QualityImpact,
		})
		total = total.Add(savings)
	}

	// Prefer low-effort actions first, quality impact breaking ties.
	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].Effort != actions[j].Effort {
			return actions[i].Effort < actions[j].Effort
		}
		return actions[i].QualityImpact < actions[j].QualityImpact
	})

	output.Actions = actions
	output.TotalSavings = total
	output.TargetAchievable = total.GreaterThanOrEqual(target)
	return output, nil
}

// severity bands the forecast variance percentage.
func (uc *PlanControlsUseCase) severity(variancePct decimal.Decimal) Severity {
	switch {
	case variancePct.GreaterThan(uc.policy.CriticalPct):
		return SeverityCritical
	case variancePct.GreaterThan(uc.policy.SeverePct):
		return SeveritySevere
	case variancePct.GreaterThan(uc.policy.ModeratePct):
		return SeverityModerate
	default:
		return SeverityMinor
	}
}

// urgency bands the remaining timeline days.
func (uc *PlanControlsUseCase) urgency(remainingDays int) Urgency {
	switch {
	case remainingDays < uc.policy.ImmediateDays:
		return UrgencyImmediate
	case remainingDays < uc.policy.HighDays:
		return UrgencyHigh
	case remainingDays < uc.policy.MediumDays:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}
