// Package structure contains the budget structure builder use case.
package structure

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/validation"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// EventProfile describes the event the budget structure is built for.
type EventProfile struct {
	Scale        string `validate:"required,oneof=small medium large"`
	DurationDays int    `validate:"required,gt=0"`
}

// OrgRequirements describes organizational constraints for the structure.
type OrgRequirements struct {
	CostCenterTracking bool
	// ApprovalLevels trims the routing table to the given number of levels;
	// zero keeps the full default chain.
	ApprovalLevels int `validate:"omitempty,min=1,max=4"`
}

// BuildStructureInput represents the input for budget structure building.
type BuildStructureInput struct {
	Profile      EventProfile `validate:"required"`
	Requirements OrgRequirements
	// HistoricalBreakdown optionally overrides the typical percentage
	// guideline per category code, e.g. from a previous edition of the event.
	HistoricalBreakdown map[string]decimal.Decimal
}

// BuildStructureOutput represents the built budget structure.
type BuildStructureOutput struct {
	Categories      []valueobject.CategorySpec
	ApprovalTable   valueobject.ApprovalThresholdTable
	ChartOfAccounts map[string]string
}

// BuildStructureUseCase builds the category catalog, approval threshold
// table and chart-of-accounts mapping for an event. It is a pure function
// of its input and the injected policy tables.
type BuildStructureUseCase struct {
	catalog       []valueobject.CategorySpec
	approvalTable valueobject.ApprovalThresholdTable
}

// NewBuildStructureUseCase creates a new BuildStructureUseCase instance.
func NewBuildStructureUseCase(catalog []valueobject.CategorySpec, approvalTable valueobject.ApprovalThresholdTable) *BuildStructureUseCase {
	return &BuildStructureUseCase{
		catalog:       catalog,
		approvalTable: approvalTable,
	}
}

// Execute performs the structure building.
func (uc *BuildStructureUseCase) Execute(_ context.Context, input BuildStructureInput) (*BuildStructureOutput, error) {
	// The two profile fields get dedicated codes so callers can surface the
	// offending field; everything else goes through tag validation.
	if input.Profile.Scale == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingEventScale,
			"event profile scale is required",
			domainerror.ErrMissingEventScale,
		)
	}
	if input.Profile.DurationDays <= 0 {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingEventDuration,
			"event profile duration is required",
			domainerror.ErrMissingEventDuration,
		)
	}
	if err := validation.Struct(input); err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			err.Error(),
			domainerror.ErrInvalidBudgetInput,
		)
	}

	// Copy the catalog, overriding typical percentages from the historical
	// breakdown where provided. Percentages are guidance, not enforced totals.
	categories := make([]valueobject.CategorySpec, len(uc.catalog))
	copy(categories, uc.catalog)
	for i, spec := range categories {
		if pct, ok := input.HistoricalBreakdown[spec.Code]; ok {
			categories[i].TypicalPct = pct
		}
	}

	table := uc.approvalTable
	if input.Requirements.ApprovalLevels > 0 && input.Requirements.ApprovalLevels < len(table) {
		// Trim to the requested chain length; the top level loses its upper
		// bound so every amount still routes somewhere.
		trimmed := make(valueobject.ApprovalThresholdTable, input.Requirements.ApprovalLevels)
		copy(trimmed, table[:input.Requirements.ApprovalLevels])
		trimmed[len(trimmed)-1].AmountThreshold = nil
		table = trimmed
	}
	if err := table.Validate(); err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeThresholdTable,
			"approval threshold table is invalid",
			err,
		)
	}

	return &BuildStructureOutput{
		Categories:      categories,
		ApprovalTable:   table,
		ChartOfAccounts: chartOfAccounts(categories, input.Requirements.CostCenterTracking),
	}, nil
}

// chartOfAccounts maps each category code to an expense account code.
// With cost-center tracking the account carries a cost-center suffix.
func chartOfAccounts(categories []valueobject.CategorySpec, costCenter bool) map[string]string {
	accounts := make(map[string]string, len(categories))
	for i, spec := range categories {
		account := fmt.Sprintf("5%d00", i+1)
		if costCenter {
			account += "-EVT"
		}
		accounts[spec.Code] = account
	}
	return accounts
}
