// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/event-budget/backend/internal/application/usecase/reconciliation"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// CategoryActualsRequest is the final spend and invoice state of one category.
type CategoryActualsRequest struct {
	CategoryCode     string  `json:"category_code" binding:"required"`
	Actual           float64 `json:"actual" binding:"gte=0"`
	InvoicesReceived int     `json:"invoices_received" binding:"gte=0"`
	InvoicesPaid     int     `json:"invoices_paid" binding:"gte=0"`
	InDispute        bool    `json:"in_dispute"`
}

// OutstandingItemRequest is an open payable or receivable at closing time.
type OutstandingItemRequest struct {
	Kind         string     `json:"kind" binding:"required,oneof=payable receivable"`
	Counterparty string     `json:"counterparty" binding:"required"`
	Description  string     `json:"description" binding:"required"`
	Amount       float64    `json:"amount" binding:"required,gt=0"`
	DueDate      *time.Time `json:"due_date,omitempty"`
}

// ReconcileBudgetRequest represents the post-event closing figures.
type ReconcileBudgetRequest struct {
	Categories       []CategoryActualsRequest `json:"categories" binding:"required,min=1,dive"`
	ProjectedRevenue float64                  `json:"projected_revenue" binding:"gte=0"`
	ActualRevenue    float64                  `json:"actual_revenue" binding:"gte=0"`
	Outstanding      []OutstandingItemRequest `json:"outstanding,omitempty" binding:"omitempty,dive"`
}

// CategorySettlementResponse represents one category's final settlement.
type CategorySettlementResponse struct {
	CategoryCode     string  `json:"category_code"`
	Budgeted         string  `json:"budgeted"`
	Actual           string  `json:"actual"`
	Variance         string  `json:"variance"`
	VariancePct      *string `json:"variance_pct,omitempty"`
	InvoicesReceived int     `json:"invoices_received"`
	InvoicesPaid     int     `json:"invoices_paid"`
	Status           string  `json:"status"`
}

// FinancialSummaryResponse represents the closed-budget financial result.
type FinancialSummaryResponse struct {
	TotalBudgeted      string  `json:"total_budgeted"`
	TotalActualExpense string  `json:"total_actual_expense"`
	ExpenseVariance    string  `json:"expense_variance"`
	ProjectedRevenue   string  `json:"projected_revenue"`
	TotalRevenue       string  `json:"total_revenue"`
	RevenueVariance    string  `json:"revenue_variance"`
	NetResult          string  `json:"net_result"`
	ROI                *string `json:"roi,omitempty"`
}

// OutstandingItemResponse represents one open payable or receivable.
type OutstandingItemResponse struct {
	Kind         string     `json:"kind"`
	Counterparty string     `json:"counterparty"`
	Description  string     `json:"description"`
	Amount       string     `json:"amount"`
	DueDate      *time.Time `json:"due_date,omitempty"`
}

// ReconcileBudgetResponse represents the closed budget.
type ReconcileBudgetResponse struct {
	Budget                 BudgetResponse               `json:"budget"`
	Settlements            []CategorySettlementResponse `json:"settlements"`
	Summary                FinancialSummaryResponse     `json:"summary"`
	OutstandingPayables    []OutstandingItemResponse    `json:"outstanding_payables,omitempty"`
	OutstandingReceivables []OutstandingItemResponse    `json:"outstanding_receivables,omitempty"`
}

// ToReconcileBudgetResponse converts a ReconcileBudgetOutput to its DTO.
func ToReconcileBudgetResponse(output *reconciliation.ReconcileBudgetOutput) ReconcileBudgetResponse {
	settlements := make([]CategorySettlementResponse, len(output.Settlements))
	for i, settlement := range output.Settlements {
		settlements[i] = CategorySettlementResponse{
			CategoryCode:     settlement.CategoryCode,
			Budgeted:         settlement.Budgeted.String(),
			Actual:           settlement.Actual.String(),
			Variance:         settlement.Variance.String(),
			VariancePct:      decimalPtrToString(settlement.VariancePct),
			InvoicesReceived: settlement.InvoicesReceived,
			InvoicesPaid:     settlement.InvoicesPaid,
			Status:           string(settlement.Status),
		}
	}

	summary := FinancialSummaryResponse{
		TotalBudgeted:      output.Summary.TotalBudgeted.String(),
		TotalActualExpense: output.Summary.TotalActualExpense.String(),
		ExpenseVariance:    output.Summary.ExpenseVariance.String(),
		ProjectedRevenue:   output.Summary.ProjectedRevenue.String(),
		TotalRevenue:       output.Summary.TotalRevenue.String(),
		RevenueVariance:    output.Summary.RevenueVariance.String(),
		NetResult:          output.Summary.NetResult.String(),
		ROI:                decimalPtrToString(output.Summary.ROI),
	}

	return ReconcileBudgetResponse{
		Budget:                 ToBudgetResponse(output.Budget),
		Settlements:            settlements,
		Summary:                summary,
		OutstandingPayables:    toOutstandingResponses(output.OutstandingPayables),
		OutstandingReceivables: toOutstandingResponses(output.OutstandingReceivables),
	}
}

func toOutstandingResponses(items []valueobject.OutstandingItem) []OutstandingItemResponse {
	responses := make([]OutstandingItemResponse, len(items))
	for i, item := range items {
		responses[i] = OutstandingItemResponse{
			Kind:         string(item.Kind),
			Counterparty: item.Counterparty,
			Description:  item.Description,
			Amount:       item.Amount.String(),
			DueDate:      item.DueDate,
		}
	}
	return responses
}
