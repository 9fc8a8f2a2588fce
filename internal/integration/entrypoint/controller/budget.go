// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/usecase/budget"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/integration/entrypoint/dto"
	"github.com/event-budget/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget lifecycle endpoints.
type BudgetController struct {
	createUseCase         *budget.CreateBudgetUseCase
	getUseCase            *budget.GetBudgetUseCase
	submitUseCase         *budget.SubmitForApprovalUseCase
	approveUseCase        *budget.ApproveBudgetUseCase
	startExecutionUseCase *budget.StartExecutionUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	createUseCase *budget.CreateBudgetUseCase,
	getUseCase *budget.GetBudgetUseCase,
	submitUseCase *budget.SubmitForApprovalUseCase,
	approveUseCase *budget.ApproveBudgetUseCase,
	startExecutionUseCase *budget.StartExecutionUseCase,
) *BudgetController {
	return &BudgetController{
		createUseCase:         createUseCase,
		getUseCase:            getUseCase,
		submitUseCase:         submitUseCase,
		approveUseCase:        approveUseCase,
		startExecutionUseCase: startExecutionUseCase,
	}
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	var req dto.CreateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidBudgetInput),
		})
		return
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid event ID format",
			Code:  string(domainerror.ErrCodeInvalidBudgetInput),
		})
		return
	}

	input := budget.CreateBudgetInput{
		EventID:     eventID,
		Name:        req.Name,
		Currency:    req.Currency,
		TotalBudget: decimal.NewFromFloat(req.TotalBudget),
	}
	if req.ContingencyPct != nil {
		pct := decimal.NewFromFloat(*req.ContingencyPct)
		input.ContingencyPct = &pct
	}
	if len(req.TypicalPctOverrides) > 0 {
		input.TypicalPctOverrides = make(map[string]decimal.Decimal, len(req.TypicalPctOverrides))
		for code, pct := range req.TypicalPctOverrides {
			input.TypicalPctOverrides[code] = decimal.NewFromFloat(pct)
		}
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCreateBudgetResponse(output))
}

// Get handles GET /budgets/:id requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	budgetID, ok := parseBudgetID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), budget.GetBudgetInput{BudgetID: budgetID})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetDetailResponse(output))
}

// SubmitForApproval handles POST /budgets/:id/submit requests.
func (c *BudgetController) SubmitForApproval(ctx *gin.Context) {
	c.transition(ctx, func(input budget.TransitionBudgetInput) (*budget.TransitionBudgetOutput, error) {
		return c.submitUseCase.Execute(ctx.Request.Context(), input)
	})
}

// Approve handles POST /budgets/:id/approve requests.
func (c *BudgetController) Approve(ctx *gin.Context) {
	c.transition(ctx, func(input budget.TransitionBudgetInput) (*budget.TransitionBudgetOutput, error) {
		return c.approveUseCase.Execute(ctx.Request.Context(), input)
	})
}

// StartExecution handles POST /budgets/:id/start-execution requests.
func (c *BudgetController) StartExecution(ctx *gin.Context) {
	c.transition(ctx, func(input budget.TransitionBudgetInput) (*budget.TransitionBudgetOutput, error) {
		return c.startExecutionUseCase.Execute(ctx.Request.Context(), input)
	})
}

// transition runs one lifecycle transition with the authenticated actor.
func (c *BudgetController) transition(ctx *gin.Context, execute func(budget.TransitionBudgetInput) (*budget.TransitionBudgetOutput, error)) {
	actorID, ok := middleware.GetApproverIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Approver not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}
	actorLevel, _ := middleware.GetApproverLevelFromContext(ctx)

	budgetID, ok := parseBudgetID(ctx)
	if !ok {
		return
	}

	output, err := execute(budget.TransitionBudgetInput{
		BudgetID:   budgetID,
		ActorID:    actorID,
		ActorLevel: actorLevel,
	})
	if err != nil {
		handleReallocationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TransitionBudgetResponse{
		Budget:       dto.ToBudgetResponse(output.Budget),
		RequiredRole: output.RequiredRole,
	})
}

// parseBudgetID reads the :id path parameter, responding with 400 on failure.
func parseBudgetID(ctx *gin.Context) (uuid.UUID, bool) {
	budgetID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget ID format",
		})
		return uuid.Nil, false
	}
	return budgetID, true
}
