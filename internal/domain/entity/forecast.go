// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ForecastRevision is a dated snapshot of the full-event forecast. Revisions
// form an append-only log so the forecast trend stays reconstructable; they
// are never overwritten.
type ForecastRevision struct {
	ID              uuid.UUID
	BudgetID        uuid.UUID
	OriginalBudget  decimal.Decimal
	CurrentForecast decimal.Decimal
	// ChangePct is nil when the original budget is zero.
	ChangePct *decimal.Decimal
	Drivers   []string
	CreatedAt time.Time
}

// NewForecastRevision creates a forecast revision snapshot.
func NewForecastRevision(id uuid.UUID, budgetID uuid.UUID, originalBudget, currentForecast decimal.Decimal, changePct *decimal.Decimal, drivers []string, now time.Time) *ForecastRevision {
	return &ForecastRevision{
		ID:              id,
		BudgetID:        budgetID,
		OriginalBudget:  originalBudget,
		CurrentForecast: currentForecast,
		ChangePct:       changePct,
		Drivers:         drivers,
		CreatedAt:       now,
	}
}

// KnownChange is a pending scope or price change feeding the forecast.
// Only confirmed changes are applied numerically; unconfirmed ones are
// reported as qualitative drivers.
type KnownChange struct {
	Description string
	Impact      decimal.Decimal
	Confirmed   bool
}
