// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReallocationStatus represents the workflow state of a reallocation request.
type ReallocationStatus string

const (
	ReallocationStatusSubmitted ReallocationStatus = "submitted"
	ReallocationStatusFeasible  ReallocationStatus = "feasibility_checked"
	ReallocationStatusApproved  ReallocationStatus = "approved"
	ReallocationStatusRejected  ReallocationStatus = "rejected"
	ReallocationStatusEscalated ReallocationStatus = "escalated"
)

// ReallocationUrgency represents the declared urgency of a transfer.
type ReallocationUrgency string

const (
	UrgencyLow    ReallocationUrgency = "low"
	UrgencyMedium ReallocationUrgency = "medium"
	UrgencyHigh   ReallocationUrgency = "high"
)

// ReallocationRecommendation is the decision-support verdict for a request.
type ReallocationRecommendation string

const (
	RecommendationApprove               ReallocationRecommendation = "approve"
	RecommendationApproveWithConditions ReallocationRecommendation = "approve_with_conditions"
	RecommendationReject                ReallocationRecommendation = "reject"
	RecommendationEscalate              ReallocationRecommendation = "escalate"
)

// ReallocationRequest is a request to move allocation between two categories
// of the same budget without changing its total. It references budget and
// categories by id only and is immutable once approved.
type ReallocationRequest struct {
	ID               uuid.UUID
	BudgetID         uuid.UUID
	FromCategoryCode string
	ToCategoryCode   string
	Amount           decimal.Decimal
	Reason           string
	Urgency          ReallocationUrgency
	RequesterID      uuid.UUID
	RequesterLevel   int
	Status           ReallocationStatus
	IsFeasible       bool
	RequiredLevel    int
	RequiredRole     string
	Recommendation   ReallocationRecommendation
	Conditions       []string
	// BudgetVersion is the budget version observed at feasibility check time.
	// Commits re-validate against it to detect stale-state conflicts.
	BudgetVersion int64
	CreatedAt     time.Time
	DecidedAt     *time.Time
	DecidedBy     *uuid.UUID
}

// NewReallocationRequest creates a submitted reallocation request.
func NewReallocationRequest(id uuid.UUID, budgetID uuid.UUID, fromCode, toCode string, amount decimal.Decimal, reason string, urgency ReallocationUrgency, requesterID uuid.UUID, requesterLevel int, now time.Time) *ReallocationRequest {
	return &ReallocationRequest{
		ID:               id,
		BudgetID:         budgetID,
		FromCategoryCode: fromCode,
		ToCategoryCode:   toCode,
		Amount:           amount,
		Reason:           reason,
		Urgency:          urgency,
		RequesterID:      requesterID,
		RequesterLevel:   requesterLevel,
		Status:           ReallocationStatusSubmitted,
		CreatedAt:        now,
	}
}

// IsTerminal reports whether the request has reached a terminal state.
// Escalated is not terminal: it loops back to a feasibility check at a
// higher authorization level.
func (r *ReallocationRequest) IsTerminal() bool {
	return r.Status == ReallocationStatusApproved || r.Status == ReallocationStatusRejected
}

// AuditEntry is an immutable record of a reallocation decision, capturing
// before/after allocations for both categories. Entries are write-once and
// kept even if a category is later removed.
type AuditEntry struct {
	ID               uuid.UUID
	BudgetID         uuid.UUID
	RequestID        uuid.UUID
	Action           string
	Actor            uuid.UUID
	FromCategoryCode string
	ToCategoryCode   string
	Amount           decimal.Decimal
	FromBefore       decimal.Decimal
	FromAfter        decimal.Decimal
	ToBefore         decimal.Decimal
	ToAfter          decimal.Decimal
	RequestTimestamp time.Time
}

// NewAuditEntry creates an audit entry for a reallocation decision.
func NewAuditEntry(id uuid.UUID, budgetID, requestID uuid.UUID, action string, actor uuid.UUID, fromCode, toCode string, amount, fromBefore, fromAfter, toBefore, toAfter decimal.Decimal, requestTimestamp time.Time) *AuditEntry {
	return &AuditEntry{
		ID:               id,
		BudgetID:         budgetID,
		RequestID:        requestID,
		Action:           action,
		Actor:            actor,
		FromCategoryCode: fromCode,
		ToCategoryCode:   toCode,
		Amount:           amount,
		FromBefore:       fromBefore,
		FromAfter:        fromAfter,
		ToBefore:         toBefore,
		ToAfter:          toAfter,
		RequestTimestamp: requestTimestamp,
	}
}
