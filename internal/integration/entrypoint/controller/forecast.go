// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/usecase/forecast"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/integration/entrypoint/dto"
)

// ForecastController handles forecast revision endpoints.
type ForecastController struct {
	updateUseCase  *forecast.UpdateForecastUseCase
	historyUseCase *forecast.ForecastHistoryUseCase
}

// NewForecastController creates a new forecast controller instance.
func NewForecastController(
	updateUseCase *forecast.UpdateForecastUseCase,
	historyUseCase *forecast.ForecastHistoryUseCase,
) *ForecastController {
	return &ForecastController{
		updateUseCase:  updateUseCase,
		historyUseCase: historyUseCase,
	}
}

// Update handles POST /budgets/:id/forecasts requests.
func (c *ForecastController) Update(ctx *gin.Context) {
	budgetID, ok := parseBudgetID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateForecastRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidBudgetInput),
		})
		return
	}

	changes := make([]forecast.KnownChangeInput, len(req.KnownChanges))
	for i, change := range req.KnownChanges {
		changes[i] = forecast.KnownChangeInput{
			Description: change.Description,
			Impact:      decimal.NewFromFloat(change.Impact),
			Confirmed:   change.Confirmed,
		}
	}

	input := forecast.UpdateForecastInput{
		BudgetID:       budgetID,
		OriginalBudget: decimal.NewFromFloat(req.OriginalBudget),
		Records:        toSpendInputs(req.Records),
		KnownChanges:   changes,
	}
	if req.RemainingSpendAssumption != nil {
		assumption := decimal.NewFromFloat(*req.RemainingSpendAssumption)
		input.RemainingSpendAssumption = &assumption
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUpdateForecastResponse(output))
}

// History handles GET /budgets/:id/forecasts requests.
func (c *ForecastController) History(ctx *gin.Context) {
	budgetID, ok := parseBudgetID(ctx)
	if !ok {
		return
	}

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), forecast.ForecastHistoryInput{BudgetID: budgetID})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToForecastHistoryResponse(output))
}
