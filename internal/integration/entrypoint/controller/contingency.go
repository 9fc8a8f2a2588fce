// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/usecase/contingency"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
	"github.com/event-budget/backend/internal/integration/entrypoint/dto"
)

// ContingencyController handles contingency sizing endpoints.
type ContingencyController struct {
	sizeUseCase *contingency.SizeContingencyUseCase
}

// NewContingencyController creates a new contingency controller instance.
func NewContingencyController(sizeUseCase *contingency.SizeContingencyUseCase) *ContingencyController {
	return &ContingencyController{
		sizeUseCase: sizeUseCase,
	}
}

// Size handles POST /contingencies requests.
func (c *ContingencyController) Size(ctx *gin.Context) {
	var req dto.SizeContingencyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidBudgetInput),
		})
		return
	}

	risks := make([]contingency.NamedRisk, len(req.NamedRisks))
	for i, risk := range req.NamedRisks {
		risks[i] = contingency.NamedRisk{
			Name:        risk.Name,
			Probability: valueobject.RiskLevel(risk.Probability),
			Impact:      valueobject.RiskLevel(risk.Impact),
		}
	}

	input := contingency.SizeContingencyInput{
		TotalBudget:           decimal.NewFromFloat(req.TotalBudget),
		IsFirstTime:           req.IsFirstTime,
		Complexity:            valueobject.ComplexityLevel(req.Complexity),
		OutdoorElements:       req.OutdoorElements,
		InternationalElements: req.InternationalElements,
		NamedRisks:            risks,
	}

	output, err := c.sizeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSizeContingencyResponse(output))
}
