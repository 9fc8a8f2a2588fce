// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetStatus represents the lifecycle status of a budget.
type BudgetStatus string

const (
	BudgetStatusDraft           BudgetStatus = "draft"
	BudgetStatusPendingApproval BudgetStatus = "pending_approval"
	BudgetStatusApproved        BudgetStatus = "approved"
	BudgetStatusInExecution     BudgetStatus = "in_execution"
	BudgetStatusReconciled      BudgetStatus = "reconciled"
)

// allowedTransitions maps each lifecycle status to the statuses it may move to.
// Reconciled is terminal: a reconciled budget is archived, never deleted.
var allowedTransitions = map[BudgetStatus][]BudgetStatus{
	BudgetStatusDraft:           {BudgetStatusPendingApproval},
	BudgetStatusPendingApproval: {BudgetStatusApproved, BudgetStatusDraft},
	BudgetStatusApproved:        {BudgetStatusInExecution},
	BudgetStatusInExecution:     {BudgetStatusReconciled},
	BudgetStatusReconciled:      {},
}

// Budget is the root aggregate for an event budget. It owns its categories
// exclusively; reallocation requests and forecast revisions reference it by id.
type Budget struct {
	ID                uuid.UUID
	EventID           uuid.UUID
	Name              string
	Currency          string
	Status            BudgetStatus
	TotalBudget       decimal.Decimal
	ContingencyPct    decimal.Decimal
	ContingencyAmount decimal.Decimal
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ArchivedAt        *time.Time
}

// NewBudget creates a new Budget entity in draft status.
// The id and creation time are supplied by the caller so that id generation
// and clock access stay injectable for deterministic tests.
func NewBudget(id uuid.UUID, eventID uuid.UUID, name, currency string, total, contingencyPct, contingencyAmount decimal.Decimal, now time.Time) *Budget {
	return &Budget{
		ID:                id,
		EventID:           eventID,
		Name:              name,
		Currency:          currency,
		Status:            BudgetStatusDraft,
		TotalBudget:       total,
		ContingencyPct:    contingencyPct,
		ContingencyAmount: contingencyAmount,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// CanTransitionTo reports whether the budget may move to the target status.
func (b *Budget) CanTransitionTo(target BudgetStatus) bool {
	for _, allowed := range allowedTransitions[b.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the budget to the target status and stamps the update time.
// Callers must check CanTransitionTo first; TransitionTo does not re-validate.
func (b *Budget) TransitionTo(target BudgetStatus, now time.Time) {
	b.Status = target
	b.UpdatedAt = now
	if target == BudgetStatusReconciled {
		archived := now
		b.ArchivedAt = &archived
	}
}

// IsValidBudgetStatus reports whether the given status is a known lifecycle status.
func IsValidBudgetStatus(status BudgetStatus) bool {
	_, ok := allowedTransitions[status]
	return ok
}
