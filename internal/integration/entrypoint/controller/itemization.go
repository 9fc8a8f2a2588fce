// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/usecase/itemization"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/integration/entrypoint/dto"
)

// ItemizationController handles budget itemization endpoints.
type ItemizationController struct {
	itemizeUseCase *itemization.ItemizeBudgetUseCase
}

// NewItemizationController creates a new itemization controller instance.
func NewItemizationController(itemizeUseCase *itemization.ItemizeBudgetUseCase) *ItemizationController {
	return &ItemizationController{
		itemizeUseCase: itemizeUseCase,
	}
}

// Itemize handles POST /itemizations requests.
func (c *ItemizationController) Itemize(ctx *gin.Context) {
	var req dto.ItemizeBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidBudgetInput),
		})
		return
	}

	categories := make([]itemization.CategoryAllocation, len(req.Categories))
	for i, category := range req.Categories {
		categories[i] = itemization.CategoryAllocation{
			Code:      category.Code,
			Name:      category.Name,
			Allocated: decimal.NewFromFloat(category.Allocated),
		}
	}

	input := itemization.ItemizeBudgetInput{
		Categories: categories,
	}
	if len(req.VendorQuotes) > 0 {
		input.VendorQuotes = make(map[string][]itemization.QuoteLine, len(req.VendorQuotes))
		for code, quotes := range req.VendorQuotes {
			lines := make([]itemization.QuoteLine, len(quotes))
			for i, quote := range quotes {
				lines[i] = itemization.QuoteLine{
					Description: quote.Description,
					Quantity:    decimal.NewFromFloat(quote.Quantity),
					UnitPrice:   decimal.NewFromFloat(quote.UnitPrice),
					VendorRef:   quote.VendorRef,
					Note:        quote.Note,
				}
			}
			input.VendorQuotes[code] = lines
		}
	}
	if req.ContingencyPct != nil {
		pct := decimal.NewFromFloat(*req.ContingencyPct)
		input.ContingencyPct = &pct
	}

	output, err := c.itemizeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToItemizeBudgetResponse(output))
}
