// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/event-budget/backend/internal/application/usecase/reallocation"
	"github.com/event-budget/backend/internal/domain/entity"
)

// CategorySpendRequest carries the latest spend observation for the source
// category of a reallocation.
type CategorySpendRequest struct {
	Actual    float64 `json:"actual" binding:"gte=0"`
	Committed float64 `json:"committed" binding:"gte=0"`
}

// SubmitReallocationRequest represents the request body for a reallocation
// submission.
type SubmitReallocationRequest struct {
	FromCategoryCode string               `json:"from_category_code" binding:"required"`
	ToCategoryCode   string               `json:"to_category_code" binding:"required"`
	Amount           float64              `json:"amount" binding:"required,gt=0"`
	Reason           string               `json:"reason" binding:"required,min=1,max=500"`
	Urgency          string               `json:"urgency" binding:"required,oneof=low medium high"`
	FromSpend        CategorySpendRequest `json:"from_spend"`
}

// DecideReallocationRequest represents the request body for an approval or
// rejection of a submitted reallocation.
type DecideReallocationRequest struct {
	Decision  string               `json:"decision" binding:"required,oneof=approve reject"`
	FromSpend CategorySpendRequest `json:"from_spend"`
}

// ReallocationRequestResponse represents a reallocation request.
type ReallocationRequestResponse struct {
	ID               string     `json:"id"`
	BudgetID         string     `json:"budget_id"`
	FromCategoryCode string     `json:"from_category_code"`
	ToCategoryCode   string     `json:"to_category_code"`
	Amount           string     `json:"amount"`
	Reason           string     `json:"reason"`
	Urgency          string     `json:"urgency"`
	RequesterID      string     `json:"requester_id"`
	Status           string     `json:"status"`
	IsFeasible       bool       `json:"is_feasible"`
	RequiredLevel    int        `json:"required_level"`
	RequiredRole     string     `json:"required_role"`
	Recommendation   string     `json:"recommendation"`
	Conditions       []string   `json:"conditions,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
	DecidedBy        *string    `json:"decided_by,omitempty"`
}

// SubmitReallocationResponse represents the feasibility and routing verdict.
type SubmitReallocationResponse struct {
	Request              ReallocationRequestResponse `json:"request"`
	IsFeasible           bool                        `json:"is_feasible"`
	FromRemaining        string                      `json:"from_remaining"`
	RequiredLevel        int                         `json:"required_level"`
	RequiredRole         string                      `json:"required_role"`
	ApprovalThresholdMet bool                        `json:"approval_threshold_met"`
	Recommendation       string                      `json:"recommendation"`
	Conditions           []string                    `json:"conditions,omitempty"`
}

// DecideReallocationResponse represents the applied decision.
type DecideReallocationResponse struct {
	Request    ReallocationRequestResponse `json:"request"`
	FromBefore string                      `json:"from_before"`
	FromAfter  string                      `json:"from_after"`
	ToBefore   string                      `json:"to_before"`
	ToAfter    string                      `json:"to_after"`
}

// AuditEntryResponse represents one immutable audit trail entry.
type AuditEntryResponse struct {
	ID               string    `json:"id"`
	BudgetID         string    `json:"budget_id"`
	RequestID        string    `json:"request_id"`
	Action           string    `json:"action"`
	Actor            string    `json:"actor"`
	FromCategoryCode string    `json:"from_category_code"`
	ToCategoryCode   string    `json:"to_category_code"`
	Amount           string    `json:"amount"`
	FromBefore       string    `json:"from_before"`
	FromAfter        string    `json:"from_after"`
	ToBefore         string    `json:"to_before"`
	ToAfter          string    `json:"to_after"`
	RequestTimestamp time.Time `json:"request_timestamp"`
}

// AuditTrailResponse represents a budget's audit trail, oldest first.
type AuditTrailResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
}

// ToReallocationRequestResponse converts a ReallocationRequest entity to its DTO.
func ToReallocationRequestResponse(request *entity.ReallocationRequest) ReallocationRequestResponse {
	response := ReallocationRequestResponse{
		ID:               request.ID.String(),
		BudgetID:         request.BudgetID.String(),
		FromCategoryCode: request.FromCategoryCode,
		ToCategoryCode:   request.ToCategoryCode,
		Amount:           request.Amount.String(),
		Reason:           request.Reason,
		Urgency:          string(request.Urgency),
		RequesterID:      request.RequesterID.String(),
		Status:           string(request.Status),
		IsFeasible:       request.IsFeasible,
		RequiredLevel:    request.RequiredLevel,
		RequiredRole:     request.RequiredRole,
		Recommendation:   string(request.Recommendation),
		Conditions:       request.Conditions,
		CreatedAt:        request.CreatedAt,
		DecidedAt:        request.DecidedAt,
	}
	if request.DecidedBy != nil {
		decidedBy := request.DecidedBy.String()
		response.DecidedBy = &decidedBy
	}
	return response
}

// ToSubmitReallocationResponse converts a SubmitReallocationOutput to its DTO.
func ToSubmitReallocationResponse(output *reallocation.SubmitReallocationOutput) SubmitReallocationResponse {
	return SubmitReallocationResponse{
		Request:              ToReallocationRequestResponse(output.Request),
		IsFeasible:           output.IsFeasible,
		FromRemaining:        output.FromRemaining.String(),
		RequiredLevel:        output.RequiredLevel,
		RequiredRole:         output.RequiredRole,
		ApprovalThresholdMet: output.ApprovalThresholdMet,
		Recommendation:       string(output.Recommendation),
		Conditions:           output.Conditions,
	}
}

// ToDecideReallocationResponse converts a DecideReallocationOutput to its DTO.
func ToDecideReallocationResponse(output *reallocation.DecideReallocationOutput) DecideReallocationResponse {
	return DecideReallocationResponse{
		Request:    ToReallocationRequestResponse(output.Request),
		FromBefore: output.FromBefore.String(),
		FromAfter:  output.FromAfter.String(),
		ToBefore:   output.ToBefore.String(),
		ToAfter:    output.ToAfter.String(),
	}
}

// ToAuditTrailResponse converts a ListAuditTrailOutput to its DTO.
func ToAuditTrailResponse(output *reallocation.ListAuditTrailOutput) AuditTrailResponse {
	entries := make([]AuditEntryResponse, len(output.Entries))
	for i, entry := range output.Entries {
		entries[i] = AuditEntryResponse{
			ID:               entry.ID.String(),
			BudgetID:         entry.BudgetID.String(),
			RequestID:        entry.RequestID.String(),
			Action:           entry.Action,
			Actor:            entry.Actor.String(),
			FromCategoryCode: entry.FromCategoryCode,
			ToCategoryCode:   entry.ToCategoryCode,
			Amount:           entry.Amount.String(),
			FromBefore:       entry.FromBefore.String(),
			FromAfter:        entry.FromAfter.String(),
			ToBefore:         entry.ToBefore.String(),
			ToAfter:          entry.ToAfter.String(),
			RequestTimestamp: entry.RequestTimestamp,
		}
	}
	return AuditTrailResponse{Entries: entries}
}
