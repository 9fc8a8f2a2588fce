// Package valueobject contains domain value objects for the event budget engine.
package valueobject

import (
	"github.com/shopspring/decimal"

	domainerror "github.com/event-budget/backend/internal/domain/error"
)

// CategorySpec describes one entry of the budget category catalog. The
// typical percentage is guidance for itemization, not an enforced total.
type CategorySpec struct {
	Code       string
	Name       string
	TypicalPct decimal.Decimal
}

// DefaultCategoryCatalog returns the standard event cost category catalog.
func DefaultCategoryCatalog() []CategorySpec {
	return []CategorySpec{
		{Code: "venue", Name: "Venue & Facilities", TypicalPct: decimal.NewFromInt(25)},
		{Code: "food_beverage", Name: "Food & Beverage", TypicalPct: decimal.NewFromInt(20)},
		{Code: "av_production", Name: "AV & Production", TypicalPct: decimal.NewFromInt(15)},
		{Code: "marketing", Name: "Marketing & Promotion", TypicalPct: decimal.NewFromInt(10)},
		{Code: "talent", Name: "Talent & Speakers", TypicalPct: decimal.NewFromInt(12)},
		{Code: "operations", Name: "Operations & Logistics", TypicalPct: decimal.NewFromInt(10)},
		{Code: "contingency", Name: "Contingency Reserve", TypicalPct: decimal.NewFromInt(8)},
	}
}

// ApprovalRule maps an amount band to the role that must approve it.
// A nil AmountThreshold means the rule has no upper bound.
type ApprovalRule struct {
	Level           int
	AmountThreshold *decimal.Decimal
	ApproverRole    string
}

// ApprovalThresholdTable is an ordered list of approval rules, ascending by
// threshold, with the last rule unbounded.
type ApprovalThresholdTable []ApprovalRule

// DefaultApprovalThresholdTable returns the standard routing table:
// up to 2,000 team lead, up to 5,000 director, up to 10,000 VP, above CFO.
func DefaultApprovalThresholdTable() ApprovalThresholdTable {
	teamLead := decimal.NewFromInt(2000)
	director := decimal.NewFromInt(5000)
	vp := decimal.NewFromInt(10000)
	return ApprovalThresholdTable{
		{Level: 1, AmountThreshold: &teamLead, ApproverRole: "team_lead"},
		{Level: 2, AmountThreshold: &director, ApproverRole: "director"},
		{Level: 3, AmountThreshold: &vp, ApproverRole: "vp"},
		{Level: 4, AmountThreshold: nil, ApproverRole: "cfo"},
	}
}

// Validate checks that the table is non-empty, strictly ascending in both
// level and threshold, and unbounded only at the top.
func (t ApprovalThresholdTable) Validate() error {
	if len(t) == 0 {
		return domainerror.ErrEmptyThresholdTable
	}
	for i, rule := range t {
		if rule.Level != i+1 {
			return domainerror.ErrThresholdTableNotMonotonic
		}
		if rule.AmountThreshold == nil {
			if i != len(t)-1 {
				return domainerror.ErrThresholdTableNotMonotonic
			}
			continue
		}
		if i > 0 && t[i-1].AmountThreshold != nil && !rule.AmountThreshold.GreaterThan(*t[i-1].AmountThreshold) {
			return domainerror.ErrThresholdTableNotMonotonic
		}
	}
	return nil
}

// RouteFor returns the first rule whose threshold covers the amount. Amounts
// above every bounded threshold route to the last (unbounded) rule.
func (t ApprovalThresholdTable) RouteFor(amount decimal.Decimal) ApprovalRule {
	for _, rule := range t {
		if rule.AmountThreshold == nil || amount.LessThanOrEqual(*rule.AmountThreshold) {
			return rule
		}
	}
	return t[len(t)-1]
}

// ComplexityLevel grades overall event complexity.
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "low"
	ComplexityMedium ComplexityLevel = "medium"
	ComplexityHigh   ComplexityLevel = "high"
)

// RiskLevel grades probability or impact of a named risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ContingencyBucketRatios split the contingency amount across purpose
// buckets. The ratios are a policy decision, not computed.
type ContingencyBucketRatios struct {
	Operational decimal.Decimal
	Technical   decimal.Decimal
	External    decimal.Decimal
	General     decimal.Decimal
}

// ContingencyPolicy holds every tunable of the contingency sizer.
type ContingencyPolicy struct {
	BasePct          decimal.Decimal
	FirstTimePct     decimal.Decimal
	ComplexityPct    map[ComplexityLevel]decimal.Decimal
	OutdoorPct       decimal.Decimal
	InternationalPct decimal.Decimal
	// CeilingPct caps the additive percentage to avoid runaway contingency.
	CeilingPct         decimal.Decimal
	ProbabilityWeights map[RiskLevel]decimal.Decimal
	ImpactMultipliers  map[RiskLevel]decimal.Decimal
	BucketRatios       ContingencyBucketRatios
}

// DefaultContingencyPolicy returns the standard contingency sizing policy.
func DefaultContingencyPolicy() ContingencyPolicy {
	return ContingencyPolicy{
		BasePct:      decimal.NewFromInt(5),
		FirstTimePct: decimal.NewFromInt(3),
		ComplexityPct: map[ComplexityLevel]decimal.Decimal{
			ComplexityLow:    decimal.Zero,
			ComplexityMedium: decimal.NewFromInt(1),
			ComplexityHigh:   decimal.NewFromInt(3),
		},
		OutdoorPct:       decimal.NewFromInt(2),
		InternationalPct: decimal.NewFromInt(2),
		CeilingPct:       decimal.NewFromInt(25),
		ProbabilityWeights: map[RiskLevel]decimal.Decimal{
			RiskLow:    decimal.NewFromFloat(0.05),
			RiskMedium: decimal.NewFromFloat(0.10),
			RiskHigh:   decimal.NewFromFloat(0.15),
		},
		ImpactMultipliers: map[RiskLevel]decimal.Decimal{
			RiskLow:    decimal.NewFromInt(1),
			RiskMedium: decimal.NewFromFloat(1.5),
			RiskHigh:   decimal.NewFromInt(2),
		},
		BucketRatios: ContingencyBucketRatios{
			Operational: decimal.NewFromFloat(0.40),
			Technical:   decimal.NewFromFloat(0.25),
			External:    decimal.NewFromFloat(0.20),
			General:     decimal.NewFromFloat(0.15),
		},
	}
}

// ItemizationPolicy holds the tunables of the line-item itemizer.
type ItemizationPolicy struct {
	DefaultContingencyPct decimal.Decimal
	// Recommended validation range for the contingency percentage,
	// inclusive on both ends. Outside it the itemizer warns, never fails.
	MinRecommendedPct decimal.Decimal
	MaxRecommendedPct decimal.Decimal
	// Placeholder split synthesized when a category has no vendor quotes.
	// The 70/30 base-cost/add-on split is part of the output contract.
	PlaceholderBaseShare  decimal.Decimal
	PlaceholderAddOnShare decimal.Decimal
}

// DefaultItemizationPolicy returns the standard itemization policy.
func DefaultItemizationPolicy() ItemizationPolicy {
	return ItemizationPolicy{
		DefaultContingencyPct: decimal.NewFromInt(8),
		MinRecommendedPct:     decimal.NewFromInt(5),
		MaxRecommendedPct:     decimal.NewFromInt(15),
		PlaceholderBaseShare:  decimal.NewFromFloat(0.70),
		PlaceholderAddOnShare: decimal.NewFromFloat(0.30),
	}
}

// VarianceThresholds holds the status banding of the variance analyzer.
// Variance within the yellow threshold is green, within the red threshold
// yellow, beyond it red.
type VarianceThresholds struct {
	YellowPct decimal.Decimal
	RedPct    decimal.Decimal
	// Spend-rate bands: actual above expected times OverRatio is "over",
	// below expected times UnderRatio is "under", otherwise "on_track".
	OverRatio  decimal.Decimal
	UnderRatio decimal.Decimal
}

// DefaultVarianceThresholds returns the standard ±10/±20 banding with
// 1.15/0.85 spend-rate ratios.
func DefaultVarianceThresholds() VarianceThresholds {
	return VarianceThresholds{
		YellowPct:  decimal.NewFromFloat(0.10),
		RedPct:     decimal.NewFromFloat(0.20),
		OverRatio:  decimal.NewFromFloat(1.15),
		UnderRatio: decimal.NewFromFloat(0.85),
	}
}

// ForecastPolicy holds the tunables of the forecast updater.
type ForecastPolicy struct {
	// RemainingSpendAssumption is the share of remaining budget assumed to
	// still be spent, modeling typical underspend. Default 0.9, overridable
	// per run.
	RemainingSpendAssumption decimal.Decimal
}

// DefaultForecastPolicy returns the standard forecast policy.
func DefaultForecastPolicy() ForecastPolicy {
	return ForecastPolicy{
		RemainingSpendAssumption: decimal.NewFromFloat(0.90),
	}
}

// ControlActionSpec describes one mitigation action of the cost-control
// catalog. TargetShare is the proportion of the reduction target the action
// is expected to recover; effort and quality impact are 1 (low) to 3 (high).
type ControlActionSpec struct {
	Name          string
	Description   string
	TargetShare   decimal.Decimal
	Effort        int
	QualityImpact int
}

// CostControlPolicy holds severity/urgency banding and the action catalog
// of the cost-control planner.
type CostControlPolicy struct {
	// Severity bands on forecast variance percent, descending.
	CriticalPct decimal.Decimal
	SeverePct   decimal.Decimal
	ModeratePct decimal.Decimal
	// Urgency bands on remaining timeline days, ascending.
	ImmediateDays int
	HighDays      int
	MediumDays    int
	Actions       []ControlActionSpec
}

// DefaultCostControlPolicy returns the standard cost-control policy.
func DefaultCostControlPolicy() CostControlPolicy {
	return CostControlPolicy{
		CriticalPct:   decimal.NewFromFloat(0.20),
		SeverePct:     decimal.NewFromFloat(0.15),
		ModeratePct:   decimal.NewFromFloat(0.10),
		ImmediateDays: 14,
		HighDays:      30,
		MediumDays:    60,
		Actions: []ControlActionSpec{
			{Name: "renegotiate_vendor_contracts", Description: "Renegotiate open vendor contracts and payment terms", TargetShare: decimal.NewFromFloat(0.30), Effort: 2, QualityImpact: 1},
			{Name: "reduce_optional_addons", Description: "Cut optional add-on line items across categories", TargetShare: decimal.NewFromFloat(0.25), Effort: 1, QualityImpact: 2},
			{Name: "scale_down_catering", Description: "Scale catering tiers down to the confirmed headcount", TargetShare: decimal.NewFromFloat(0.20), Effort: 1, QualityImpact: 2},
			{Name: "swap_av_packages", Description: "Swap premium AV packages for standard ones", TargetShare: decimal.NewFromFloat(0.15), Effort: 2, QualityImpact: 3},
			{Name: "shift_marketing_to_organic", Description: "Shift paid promotion to organic and partner channels", TargetShare: decimal.NewFromFloat(0.10), Effort: 3, QualityImpact: 1},
		},
	}
}
