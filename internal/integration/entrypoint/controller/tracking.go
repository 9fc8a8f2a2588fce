// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/usecase/tracking"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/integration/entrypoint/dto"
)

// TrackingController handles variance tracking endpoints.
type TrackingController struct {
	analyzeUseCase *tracking.AnalyzeVarianceUseCase
}

// NewTrackingController creates a new tracking controller instance.
func NewTrackingController(analyzeUseCase *tracking.AnalyzeVarianceUseCase) *TrackingController {
	return &TrackingController{
		analyzeUseCase: analyzeUseCase,
	}
}

// Analyze handles POST /variance-analyses requests.
func (c *TrackingController) Analyze(ctx *gin.Context) {
	var req dto.AnalyzeVarianceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidBudgetInput),
		})
		return
	}

	input := tracking.AnalyzeVarianceInput{
		Records:  toSpendInputs(req.Records),
		Progress: decimal.NewFromFloat(req.Progress),
	}

	output, err := c.analyzeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToVarianceSnapshotResponse(output))
}

// toSpendInputs converts spend record DTOs to usecase inputs.
func toSpendInputs(records []dto.SpendRecordRequest) []tracking.SpendInput {
	inputs := make([]tracking.SpendInput, len(records))
	for i, record := range records {
		inputs[i] = tracking.SpendInput{
			CategoryCode: record.CategoryCode,
			Budgeted:     decimal.NewFromFloat(record.Budgeted),
			Actual:       decimal.NewFromFloat(record.Actual),
			Committed:    decimal.NewFromFloat(record.Committed),
		}
	}
	return inputs
}
