// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/usecase/costcontrol"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/integration/entrypoint/dto"
)

// CostControlController handles cost control planning endpoints.
type CostControlController struct {
	planUseCase *costcontrol.PlanControlsUseCase
}

// NewCostControlController creates a new cost control controller instance.
func NewCostControlController(planUseCase *costcontrol.PlanControlsUseCase) *CostControlController {
	return &CostControlController{
		planUseCase: planUseCase,
	}
}

// Plan handles POST /cost-control-plans requests.
func (c *CostControlController) Plan(ctx *gin.Context) {
	var req dto.PlanControlsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidBudgetInput),
		})
		return
	}

	input := costcontrol.PlanControlsInput{
		OriginalBudget:  decimal.NewFromFloat(req.OriginalBudget),
		CurrentForecast: decimal.NewFromFloat(req.CurrentForecast),
		RemainingDays:   req.RemainingDays,
	}

	output, err := c.planUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlanControlsResponse(output))
}
