// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/usecase/reconciliation"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
	"github.com/event-budget/backend/internal/integration/entrypoint/dto"
)

// ReconciliationController handles post-event reconciliation endpoints.
type ReconciliationController struct {
	reconcileUseCase *reconciliation.ReconcileBudgetUseCase
}

// NewReconciliationController creates a new reconciliation controller instance.
func NewReconciliationController(reconcileUseCase *reconciliation.ReconcileBudgetUseCase) *ReconciliationController {
	return &ReconciliationController{
		reconcileUseCase: reconcileUseCase,
	}
}

// Reconcile handles POST /budgets/:id/reconciliation requests.
func (c *ReconciliationController) Reconcile(ctx *gin.Context) {
	budgetID, ok := parseBudgetID(ctx)
	if !ok {
		return
	}

	var req dto.ReconcileBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidBudgetInput),
		})
		return
	}

	categories := make([]reconciliation.CategoryActualsInput, len(req.Categories))
	for i, category := range req.Categories {
		categories[i] = reconciliation.CategoryActualsInput{
			CategoryCode:     category.CategoryCode,
			Actual:           decimal.NewFromFloat(category.Actual),
			InvoicesReceived: category.InvoicesReceived,
			InvoicesPaid:     category.InvoicesPaid,
			InDispute:        category.InDispute,
		}
	}

	outstanding := make([]reconciliation.OutstandingInput, len(req.Outstanding))
	for i, item := range req.Outstanding {
		outstanding[i] = reconciliation.OutstandingInput{
			Kind:         valueobject.OutstandingKind(item.Kind),
			Counterparty: item.Counterparty,
			Description:  item.Description,
			Amount:       decimal.NewFromFloat(item.Amount),
			DueDate:      item.DueDate,
		}
	}

	input := reconciliation.ReconcileBudgetInput{
		BudgetID:         budgetID,
		Categories:       categories,
		ProjectedRevenue: decimal.NewFromFloat(req.ProjectedRevenue),
		ActualRevenue:    decimal.NewFromFloat(req.ActualRevenue),
		Outstanding:      outstanding,
	}

	output, err := c.reconcileUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReconcileBudgetResponse(output))
}
