// Package valueobject contains domain value objects for the event budget engine.
package valueobject

import (
	"github.com/shopspring/decimal"
)

// VarianceStatus classifies how far a category is from its time-adjusted plan.
type VarianceStatus string

const (
	VarianceStatusGreen  VarianceStatus = "green"
	VarianceStatusYellow VarianceStatus = "yellow"
	VarianceStatusRed    VarianceStatus = "red"
)

// SpendRateAssessment compares the actual spend rate against event progress.
type SpendRateAssessment string

const (
	SpendRateOver    SpendRateAssessment = "over"
	SpendRateUnder   SpendRateAssessment = "under"
	SpendRateOnTrack SpendRateAssessment = "on_track"
)

// CategoryVariance is the per-category slice of a variance snapshot.
// VariancePct is nil when progress or budgeted is zero; that is a legitimate
// state (budget not yet started), not an error.
type CategoryVariance struct {
	CategoryCode string
	Budgeted     decimal.Decimal
	Actual       decimal.Decimal
	Committed    decimal.Decimal
	// Available is floored at zero for display; RawAvailable keeps the
	// unfloored value so overcommitment stays detectable.
	Available     decimal.Decimal
	RawAvailable  decimal.Decimal
	Overcommitted bool
	Variance      decimal.Decimal
	VariancePct   *decimal.Decimal
	Status        VarianceStatus
}

// VarianceSnapshot is the derived point-in-time comparison of budgeted
// versus actual spend. It is recomputed, never stored as source of truth.
type VarianceSnapshot struct {
	Progress       decimal.Decimal
	Categories     []CategoryVariance
	TotalBudgeted  decimal.Decimal
	TotalActual    decimal.Decimal
	TotalCommitted decimal.Decimal
	TotalVariance  decimal.Decimal
	// TotalVariancePct is nil when progress or total budgeted is zero.
	TotalVariancePct *decimal.Decimal
	AggregateStatus  VarianceStatus
	// ActualSpendRate is nil when total budgeted is zero.
	ActualSpendRate   *decimal.Decimal
	ExpectedSpendRate decimal.Decimal
	SpendRate         SpendRateAssessment
	// ProjectedTotal is the naive linear projection, nil at zero progress.
	ProjectedTotal *decimal.Decimal
}
