// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/usecase/reallocation"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/integration/entrypoint/dto"
	"github.com/event-budget/backend/internal/integration/entrypoint/middleware"
)

// ReallocationController handles reallocation workflow endpoints.
type ReallocationController struct {
	submitUseCase *reallocation.SubmitReallocationUseCase
	decideUseCase *reallocation.DecideReallocationUseCase
	auditUseCase  *reallocation.ListAuditTrailUseCase
}

// NewReallocationController creates a new reallocation controller instance.
func NewReallocationController(
	submitUseCase *reallocation.SubmitReallocationUseCase,
	decideUseCase *reallocation.DecideReallocationUseCase,
	auditUseCase *reallocation.ListAuditTrailUseCase,
) *ReallocationController {
	return &ReallocationController{
		submitUseCase: submitUseCase,
		decideUseCase: decideUseCase,
		auditUseCase:  auditUseCase,
	}
}

// Submit handles POST /budgets/:id/reallocations requests.
func (c *ReallocationController) Submit(ctx *gin.Context) {
	requesterID, requesterLevel, ok := approverFromContext(ctx)
	if !ok {
		return
	}

	budgetID, ok := parseBudgetID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitReallocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidReallocationInput),
		})
		return
	}

	input := reallocation.SubmitReallocationInput{
		BudgetID:         budgetID,
		FromCategoryCode: req.FromCategoryCode,
		ToCategoryCode:   req.ToCategoryCode,
		Amount:           decimal.NewFromFloat(req.Amount),
		Reason:           req.Reason,
		Urgency:          entity.ReallocationUrgency(req.Urgency),
		RequesterID:      requesterID,
		RequesterLevel:   requesterLevel,
		FromSpend: reallocation.CategorySpendInput{
			Actual:    decimal.NewFromFloat(req.FromSpend.Actual),
			Committed: decimal.NewFromFloat(req.FromSpend.Committed),
		},
	}

	output, err := c.submitUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleReallocationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSubmitReallocationResponse(output))
}

// Decide handles POST /reallocations/:id/decision requests.
func (c *ReallocationController) Decide(ctx *gin.Context) {
	actorID, actorLevel, ok := approverFromContext(ctx)
	if !ok {
		return
	}

	requestID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid reallocation request ID format",
		})
		return
	}

	var req dto.DecideReallocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidReallocationInput),
		})
		return
	}

	input := reallocation.DecideReallocationInput{
		RequestID:  requestID,
		Decision:   reallocation.Decision(req.Decision),
		ActorID:    actorID,
		ActorLevel: actorLevel,
		FromSpend: reallocation.CategorySpendInput{
			Actual:    decimal.NewFromFloat(req.FromSpend.Actual),
			Committed: decimal.NewFromFloat(req.FromSpend.Committed),
		},
	}

	output, err := c.decideUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleReallocationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDecideReallocationResponse(output))
}

// AuditTrail handles GET /budgets/:id/audit-trail requests.
func (c *ReallocationController) AuditTrail(ctx *gin.Context) {
	budgetID, ok := parseBudgetID(ctx)
	if !ok {
		return
	}

	output, err := c.auditUseCase.Execute(ctx.Request.Context(), reallocation.ListAuditTrailInput{BudgetID: budgetID})
	if err != nil {
		handleReallocationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAuditTrailResponse(output))
}

// approverFromContext reads the authenticated approver's identity and level.
func approverFromContext(ctx *gin.Context) (uuid.UUID, int, bool) {
	approverID, ok := middleware.GetApproverIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Approver not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, 0, false
	}
	level, _ := middleware.GetApproverLevelFromContext(ctx)
	return approverID, level, true
}
