// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"
)

// SpendRecord is a point-in-time spend observation for a single category.
// Committed means ordered or contracted but not yet paid.
type SpendRecord struct {
	CategoryCode string
	Budgeted     decimal.Decimal
	Actual       decimal.Decimal
	Committed    decimal.Decimal
}

// RawAvailable returns budgeted minus actual minus committed without any
// flooring. A negative value means the category is overcommitted; callers
// that display availability must floor it but never drop the raw value.
func (s SpendRecord) RawAvailable() decimal.Decimal {
	return s.Budgeted.Sub(s.Actual).Sub(s.Committed)
}

// Available returns the display availability, floored at zero.
func (s SpendRecord) Available() decimal.Decimal {
	raw := s.RawAvailable()
	if raw.IsNegative() {
		return decimal.Zero
	}
	return raw
}

// Overcommitted reports whether actual plus committed exceeds budgeted.
func (s SpendRecord) Overcommitted() bool {
	return s.RawAvailable().IsNegative()
}
