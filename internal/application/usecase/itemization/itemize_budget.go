// Package itemization contains the line-item itemizer use case.
package itemization

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/validation"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// CategoryAllocation is the allocated amount of one category to itemize.
type CategoryAllocation struct {
	Code      string          `validate:"required"`
	Name      string          `validate:"required"`
	Allocated decimal.Decimal `validate:"-"`
}

// QuoteLine is one vendor quote line for a category.
type QuoteLine struct {
	Description string          `validate:"required"`
	Quantity    decimal.Decimal `validate:"-"`
	UnitPrice   decimal.Decimal `validate:"-"`
	VendorRef   *string
	Note        *string
}

// ItemizeBudgetInput represents the input for budget itemization.
type ItemizeBudgetInput struct {
	Categories []CategoryAllocation `validate:"required,min=1,dive"`
	// VendorQuotes maps a category code to its quote lines. Categories
	// without quotes get a synthesized placeholder split.
	VendorQuotes map[string][]QuoteLine `validate:"omitempty,dive,dive"`
	// ContingencyPct overrides the default contingency percentage.
	ContingencyPct *decimal.Decimal
}

// ItemizedLine is one priced line of an itemized category.
type ItemizedLine struct {
	Code        string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	VendorRef   *string
	Note        *string
	Placeholder bool
}

// ItemizedCategory is one category with its priced lines and totals.
type ItemizedCategory struct {
	Code  string
	Name  string
	Lines []ItemizedLine
	Total decimal.Decimal
	// PctOfSubtotal is nil when the subtotal is zero.
	PctOfSubtotal *decimal.Decimal
}

// ItemizeBudgetOutput represents the itemized budget.
type ItemizeBudgetOutput struct {
	Categories     []ItemizedCategory
	Subtotal       decimal.Decimal
	ContingencyPct decimal.Decimal
	Contingency    decimal.Decimal
	GrandTotal     decimal.Decimal
	Warnings       []string
}

// ItemizeBudgetUseCase expands category allocations into priced line items.
// Pure: the only inputs are the request and the injected policy.
type ItemizeBudgetUseCase struct {
	policy valueobject.ItemizationPolicy
}

// NewItemizeBudgetUseCase creates a new ItemizeBudgetUseCase instance.
func NewItemizeBudgetUseCase(policy valueobject.ItemizationPolicy) *ItemizeBudgetUseCase {
	return &ItemizeBudgetUseCase{policy: policy}
}

// Execute performs the itemization.
func (uc *ItemizeBudgetUseCase) Execute(_ context.Context, input ItemizeBudgetInput) (*ItemizeBudgetOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			err.Error(),
			domainerror.ErrInvalidBudgetInput,
		)
	}
	for _, category := range input.Categories {
		if category.Allocated.IsNegative() {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidBudgetInput,
				fmt.Sprintf("category %s has a negative allocation", category.Code),
				domainerror.ErrInvalidBudgetInput,
			)
		}
	}

	var warnings []string

	contingencyPct := uc.policy.DefaultContingencyPct
	if input.ContingencyPct != nil {
		contingencyPct = *input.ContingencyPct
		if contingencyPct.LessThan(uc.policy.MinRecommendedPct) || contingencyPct.GreaterThan(uc.policy.MaxRecommendedPct) {
			warnings = append(warnings, fmt.Sprintf(
				"contingency %s%% is outside the recommended %s-%s%% range",
				contingencyPct.String(), uc.policy.MinRecommendedPct.String(), uc.policy.MaxRecommendedPct.String(),
			))
		}
	}

	categories := make([]ItemizedCategory, 0, len(input.Categories))
	subtotal := decimal.Zero
	for _, allocation := range input.Categories {
		itemized := uc.itemizeCategory(allocation, input.VendorQuotes[allocation.Code])
		subtotal = subtotal.Add(itemized.Total)
		categories = append(categories, itemized)
	}

	// Percentage of budget is relative to the subtotal, before contingency.
	for i := range categories {
		if subtotal.IsZero() {
			continue
		}
		pct := categories[i].Total.Div(subtotal)
		categories[i].PctOfSubtotal = &pct
	}

	hundred := decimal.NewFromInt(100)
	contingency := subtotal.Mul(contingencyPct).Div(hundred)

	return &ItemizeBudgetOutput{
		Categories:     categories,
		Subtotal:       subtotal,
		ContingencyPct: contingencyPct,
		Contingency:    contingency,
		GrandTotal:     subtotal.Add(contingency),
		Warnings:       warnings,
	}, nil
}

// itemizeCategory prices one category: vendor quote lines when present,
// otherwise the fixed placeholder split so every category has at least one
// line item. The split shares are part of the output contract.
func (uc *ItemizeBudgetUseCase) itemizeCategory(allocation CategoryAllocation, quotes []QuoteLine) ItemizedCategory {
	if len(quotes) > 0 {
		lines := make([]ItemizedLine, 0, len(quotes))
		total := decimal.Zero
		for i, quote := range quotes {
			lineTotal := quote.Quantity.Mul(quote.UnitPrice)
			lines = append(lines, ItemizedLine{
				Code:        LineCode(allocation.Code, i+1),
				Description: quote.Description,
				Quantity:    quote.Quantity,
				UnitPrice:   quote.UnitPrice,
				Total:       lineTotal,
				VendorRef:   quote.VendorRef,
				Note:        quote.Note,
			})
			total = total.Add(lineTotal)
		}
		return ItemizedCategory{Code: allocation.Code, Name: allocation.Name, Lines: lines, Total: total}
	}

	one := decimal.NewFromInt(1)
	base := allocation.Allocated.Mul(uc.policy.PlaceholderBaseShare)
	addOn := allocation.Allocated.Sub(base)
	lines := []ItemizedLine{
		{
			Code:        LineCode(allocation.Code, 1),
			Description: "base cost",
			Quantity:    one,
			UnitPrice:   base,
			Total:       base,
			Placeholder: true,
		},
		{
			Code:        LineCode(allocation.Code, 2),
			Description: "optional add-on",
			Quantity:    one,
			UnitPrice:   addOn,
			Total:       addOn,
			Placeholder: true,
		},
	}
	return ItemizedCategory{Code: allocation.Code, Name: allocation.Name, Lines: lines, Total: allocation.Allocated}
}

// LineCode builds the deterministic line code for a category and sequence,
// e.g. "venue-001".
func LineCode(categoryCode string, sequence int) string {
	return fmt.Sprintf("%s-%03d", categoryCode, sequence)
}
