// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category represents a named cost bucket inside a budget. A category belongs
// to exactly one budget; ordering is kept for display but carries no meaning.
type Category struct {
	ID              uuid.UUID
	BudgetID        uuid.UUID
	Code            string
	Name            string
	AllocatedAmount decimal.Decimal
	TypicalPct      decimal.Decimal // guideline share of total, not enforced
	Position        int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(id uuid.UUID, budgetID uuid.UUID, code, name string, allocated, typicalPct decimal.Decimal, position int, now time.Time) *Category {
	return &Category{
		ID:              id,
		BudgetID:        budgetID,
		Code:            code,
		Name:            name,
		AllocatedAmount: allocated,
		TypicalPct:      typicalPct,
		Position:        position,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// AllocationTotal sums category allocations.
func AllocationTotal(categories []*Category) decimal.Decimal {
	total := decimal.Zero
	for _, category := range categories {
		total = total.Add(category.AllocatedAmount)
	}
	return total
}

// LineItem represents a priced line inside a category. The total is always
// quantity times unit price; a category's total is the sum of its line items.
type LineItem struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Code        string // deterministic, e.g. "venue-001"
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	VendorRef   *string
	Note        *string
	Placeholder bool // synthesized split, not a vendor quote
	CreatedAt   time.Time
}

// NewLineItem creates a new LineItem entity, computing the total from
// quantity and unit price.
func NewLineItem(id uuid.UUID, categoryID uuid.UUID, code, description string, quantity, unitPrice decimal.Decimal, vendorRef, note *string, placeholder bool, now time.Time) *LineItem {
	return &LineItem{
		ID:          id,
		CategoryID:  categoryID,
		Code:        code,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       quantity.Mul(unitPrice),
		VendorRef:   vendorRef,
		Note:        note,
		Placeholder: placeholder,
		CreatedAt:   now,
	}
}

// LineItemTotal sums line item totals.
func LineItemTotal(items []*LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total)
	}
	return total
}
