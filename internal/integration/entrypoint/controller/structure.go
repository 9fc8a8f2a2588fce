// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/usecase/structure"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/integration/entrypoint/dto"
)

// StructureController handles budget structure endpoints.
type StructureController struct {
	buildUseCase *structure.BuildStructureUseCase
}

// NewStructureController creates a new structure controller instance.
func NewStructureController(buildUseCase *structure.BuildStructureUseCase) *StructureController {
	return &StructureController{
		buildUseCase: buildUseCase,
	}
}

// Build handles POST /structures requests.
func (c *StructureController) Build(ctx *gin.Context) {
	var req dto.BuildStructureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidBudgetInput),
		})
		return
	}

	input := structure.BuildStructureInput{
		Profile: structure.EventProfile{
			Scale:        req.Profile.Scale,
			DurationDays: req.Profile.DurationDays,
		},
		Requirements: structure.OrgRequirements{
			CostCenterTracking: req.Requirements.CostCenterTracking,
			ApprovalLevels:     req.Requirements.ApprovalLevels,
		},
	}
	if len(req.HistoricalBreakdown) > 0 {
		input.HistoricalBreakdown = make(map[string]decimal.Decimal, len(req.HistoricalBreakdown))
		for code, pct := range req.HistoricalBreakdown {
			input.HistoricalBreakdown[code] = decimal.NewFromFloat(pct)
		}
	}

	output, err := c.buildUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBuildStructureResponse(output))
}
