// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/usecase/forecast"
	"github.com/event-budget/backend/internal/domain/entity"
)

// KnownChangeRequest represents one pending scope or price change.
type KnownChangeRequest struct {
	Description string  `json:"description" binding:"required"`
	Impact      float64 `json:"impact" binding:"required"`
	Confirmed   bool    `json:"confirmed"`
}

// UpdateForecastRequest represents the request body for a forecast revision.
type UpdateForecastRequest struct {
	OriginalBudget           float64              `json:"original_budget" binding:"required,gt=0"`
	Records                  []SpendRecordRequest `json:"records" binding:"required,min=1,dive"`
	KnownChanges             []KnownChangeRequest `json:"known_changes,omitempty" binding:"omitempty,dive"`
	RemainingSpendAssumption *float64             `json:"remaining_spend_assumption,omitempty" binding:"omitempty,gte=0,lte=1"`
}

// ForecastRevisionResponse represents one forecast revision.
type ForecastRevisionResponse struct {
	ID              string    `json:"id"`
	BudgetID        string    `json:"budget_id"`
	OriginalBudget  string    `json:"original_budget"`
	CurrentForecast string    `json:"current_forecast"`
	ChangePct       *string   `json:"change_pct,omitempty"`
	Drivers         []string  `json:"drivers"`
	CreatedAt       time.Time `json:"created_at"`
}

// UpdateForecastResponse represents the recomputed forecast.
type UpdateForecastResponse struct {
	Revision        ForecastRevisionResponse `json:"revision"`
	SpendToDate     string                   `json:"spend_to_date"`
	RemainingBudget string                   `json:"remaining_budget"`
	ConfirmedImpact string                   `json:"confirmed_impact"`
	CurrentForecast string                   `json:"current_forecast"`
	ChangePct       *string                  `json:"change_pct,omitempty"`
}

// ForecastHistoryResponse represents the revision log, oldest first.
type ForecastHistoryResponse struct {
	Revisions []ForecastRevisionResponse `json:"revisions"`
}

// ToForecastRevisionResponse converts a ForecastRevision entity to its DTO.
func ToForecastRevisionResponse(revision *entity.ForecastRevision) ForecastRevisionResponse {
	return ForecastRevisionResponse{
		ID:              revision.ID.String(),
		BudgetID:        revision.BudgetID.String(),
		OriginalBudget:  revision.OriginalBudget.String(),
		CurrentForecast: revision.CurrentForecast.String(),
		ChangePct:       decimalPtrToString(revision.ChangePct),
		Drivers:         revision.Drivers,
		CreatedAt:       revision.CreatedAt,
	}
}

// ToUpdateForecastResponse converts an UpdateForecastOutput to its DTO.
func ToUpdateForecastResponse(output *forecast.UpdateForecastOutput) UpdateForecastResponse {
	return UpdateForecastResponse{
		Revision:        ToForecastRevisionResponse(output.Revision),
		SpendToDate:     output.SpendToDate.String(),
		RemainingBudget: output.RemainingBudget.String(),
		ConfirmedImpact: output.ConfirmedImpact.String(),
		CurrentForecast: output.CurrentForecast.String(),
		ChangePct:       decimalPtrToString(output.ChangePct),
	}
}

// ToForecastHistoryResponse converts a ForecastHistoryOutput to its DTO.
func ToForecastHistoryResponse(output *forecast.ForecastHistoryOutput) ForecastHistoryResponse {
	revisions := make([]ForecastRevisionResponse, len(output.Revisions))
	for i, revision := range output.Revisions {
		revisions[i] = ToForecastRevisionResponse(revision)
	}
	return ForecastHistoryResponse{Revisions: revisions}
}

// decimalPtrToString formats an optional decimal, keeping nil as nil.
func decimalPtrToString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
