// Package tracking contains the tracking and variance analyzer use case.
package tracking

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/validation"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// SpendInput is one category spend observation.
type SpendInput struct {
	CategoryCode string          `validate:"required"`
	Budgeted     decimal.Decimal `validate:"-"`
	Actual       decimal.Decimal `validate:"-"`
	Committed    decimal.Decimal `validate:"-"`
}

// AnalyzeVarianceInput represents the input for variance analysis.
type AnalyzeVarianceInput struct {
	Records []SpendInput `validate:"required,min=1,dive"`
	// Progress is the event progress in percent, 0 to 100.
	Progress decimal.Decimal `validate:"-"`
}

// AnalyzeVarianceOutput represents the computed variance snapshot.
type AnalyzeVarianceOutput struct {
	Snapshot valueobject.VarianceSnapshot
}

// AnalyzeVarianceUseCase compares budgeted versus actual and committed spend
// at a point in time. The computation is pure and idempotent: the same
// records and progress always yield the same snapshot.
type AnalyzeVarianceUseCase struct {
	thresholds valueobject.VarianceThresholds
}

// NewAnalyzeVarianceUseCase creates a new AnalyzeVarianceUseCase instance.
func NewAnalyzeVarianceUseCase(thresholds valueobject.VarianceThresholds) *AnalyzeVarianceUseCase {
	return &AnalyzeVarianceUseCase{thresholds: thresholds}
}

// Execute performs the variance analysis.
func (uc *AnalyzeVarianceUseCase) Execute(_ context.Context, input AnalyzeVarianceInput) (*AnalyzeVarianceOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			err.Error(),
			domainerror.ErrInvalidBudgetInput,
		)
	}
	hundred := decimal.NewFromInt(100)
	if input.Progress.IsNegative() || input.Progress.GreaterThan(hundred) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			"progress must be between 0 and 100",
			domainerror.ErrInvalidBudgetInput,
		)
	}

	progressRatio := input.Progress.Div(hundred)

	snapshot := valueobject.VarianceSnapshot{
		Progress:          input.Progress,
		Categories:        make([]valueobject.CategoryVariance, 0, len(input.Records)),
		ExpectedSpendRate: progressRatio,
	}

	for _, record := range input.Records {
		spend := entity.SpendRecord{
			CategoryCode: record.CategoryCode,
			Budgeted:     record.Budgeted,
			Actual:       record.Actual,
			Committed:    record.Committed,
		}
		snapshot.Categories = append(snapshot.Categories, uc.categoryVariance(spend, progressRatio))
		snapshot.TotalBudgeted = snapshot.TotalBudgeted.Add(record.Budgeted)
		snapshot.TotalActual = snapshot.TotalActual.Add(record.Actual)
		snapshot.TotalCommitted = snapshot.TotalCommitted.Add(record.Committed)
	}

	expectedTotal := snapshot.TotalBudgeted.Mul(progressRatio)
	snapshot.TotalVariance = snapshot.TotalActual.Sub(expectedTotal)
	if !expectedTotal.IsZero() {
		pct := snapshot.TotalVariance.Div(expectedTotal)
		snapshot.TotalVariancePct = &pct
	}
	snapshot.AggregateStatus = uc.status(snapshot.TotalVariance, snapshot.TotalVariancePct)

	snapshot.SpendRate = valueobject.SpendRateOnTrack
	if !snapshot.TotalBudgeted.IsZero() {
		rate := snapshot.TotalActual.Div(snapshot.TotalBudgeted)
		snapshot.ActualSpendRate = &rate
		switch {
		case rate.GreaterThan(progressRatio.Mul(uc.thresholds.OverRatio)):
			snapshot.SpendRate = valueobject.SpendRateOver
		case rate.LessThan(progressRatio.Mul(uc.thresholds.UnderRatio)):
			snapshot.SpendRate = valueobject.SpendRateUnder
		}
	}

	// Naive linear projection; undefined before the event starts.
	if !progressRatio.IsZero() {
		projected := snapshot.TotalActual.Div(progressRatio)
		snapshot.ProjectedTotal = &projected
	}

	return &AnalyzeVarianceOutput{Snapshot: snapshot}, nil
}

// categoryVariance computes the variance slice for one category.
func (uc *AnalyzeVarianceUseCase) categoryVariance(spend entity.SpendRecord, progressRatio decimal.Decimal) valueobject.CategoryVariance {
	expected := spend.Budgeted.Mul(progressRatio)
	variance := spend.Actual.Sub(expected)

	// Division guard: progress 0 or budgeted 0 leaves the percentage
	// undefined. That is a legitimate state, never an error.
	var variancePct *decimal.Decimal
	if !expected.IsZero() {
		pct := variance.Div(expected)
		variancePct = &pct
	}

	return valueobject.CategoryVariance{
		CategoryCode:  spend.CategoryCode,
		Budgeted:      spend.Budgeted,
		Actual:        spend.Actual,
		Committed:     spend.Committed,
		Available:     spend.Available(),
		RawAvailable:  spend.RawAvailable(),
		Overcommitted: spend.Overcommitted(),
		Variance:      variance,
		VariancePct:   variancePct,
		Status:        uc.status(variance, variancePct),
	}
}

// status bands a variance percentage into green/yellow/red. When the
// percentage is undefined, a zero variance is green and any deviation is
// yellow: there is spend movement but no expected-to-date baseline to grade
// it against.
func (uc *AnalyzeVarianceUseCase) status(variance decimal.Decimal, variancePct *decimal.Decimal) valueobject.VarianceStatus {
	if variancePct == nil {
		if variance.IsZero() {
			return valueobject.VarianceStatusGreen
		}
		return valueobject.VarianceStatusYellow
	}
	abs := variancePct.Abs()
	switch {
	case abs.GreaterThan(uc.thresholds.RedPct):
		return valueobject.VarianceStatusRed
	case abs.GreaterThan(uc.thresholds.YellowPct):
		return valueobject.VarianceStatusYellow
	default:
		return valueobject.VarianceStatusGreen
	}
}
