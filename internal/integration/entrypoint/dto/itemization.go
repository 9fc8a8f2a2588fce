// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/event-budget/backend/internal/application/usecase/itemization"
)

// QuoteLineRequest represents one vendor quote line in an itemization request.
type QuoteLineRequest struct {
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"required,gte=0"`
	VendorRef   *string `json:"vendor_ref,omitempty"`
	Note        *string `json:"note,omitempty" binding:"omitempty,max=1000"`
}

// CategoryAllocationRequest represents one category allocation to itemize.
type CategoryAllocationRequest struct {
	Code      string  `json:"code" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Allocated float64 `json:"allocated" binding:"gte=0"`
}

// ItemizeBudgetRequest represents the request body for budget itemization.
type ItemizeBudgetRequest struct {
	Categories     []CategoryAllocationRequest   `json:"categories" binding:"required,min=1,dive"`
	VendorQuotes   map[string][]QuoteLineRequest `json:"vendor_quotes,omitempty" binding:"omitempty,dive,dive"`
	ContingencyPct *float64                      `json:"contingency_pct,omitempty" binding:"omitempty,gte=0"`
}

// ItemizedLineResponse represents one priced line in API responses.
type ItemizedLineResponse struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Quantity    string  `json:"quantity"`
	UnitPrice   string  `json:"unit_price"`
	Total       string  `json:"total"`
	VendorRef   *string `json:"vendor_ref,omitempty"`
	Note        *string `json:"note,omitempty"`
	Placeholder bool    `json:"placeholder"`
}

// ItemizedCategoryResponse represents one itemized category in API responses.
type ItemizedCategoryResponse struct {
	Code          string                 `json:"code"`
	Name          string                 `json:"name"`
	Lines         []ItemizedLineResponse `json:"lines"`
	Total         string                 `json:"total"`
	PctOfSubtotal *string                `json:"pct_of_subtotal,omitempty"`
}

// ItemizeBudgetResponse represents the itemized budget.
type ItemizeBudgetResponse struct {
	Categories     []ItemizedCategoryResponse `json:"categories"`
	Subtotal       string                     `json:"subtotal"`
	ContingencyPct string                     `json:"contingency_pct"`
	Contingency    string                     `json:"contingency"`
	GrandTotal     string                     `json:"grand_total"`
	Warnings       []string                   `json:"warnings,omitempty"`
}

// ToItemizeBudgetResponse converts an ItemizeBudgetOutput to its DTO.
func ToItemizeBudgetResponse(output *itemization.ItemizeBudgetOutput) ItemizeBudgetResponse {
	categories := make([]ItemizedCategoryResponse, len(output.Categories))
	for i, category := range output.Categories {
		lines := make([]ItemizedLineResponse, len(category.Lines))
		for j, line := range category.Lines {
			lines[j] = ItemizedLineResponse{
				Code:        line.Code,
				Description: line.Description,
				Quantity:    line.Quantity.String(),
				UnitPrice:   line.UnitPrice.String(),
				Total:       line.Total.String(),
				VendorRef:   line.VendorRef,
				Note:        line.Note,
				Placeholder: line.Placeholder,
			}
		}
		categories[i] = ItemizedCategoryResponse{
			Code:  category.Code,
			Name:  category.Name,
			Lines: lines,
			Total: category.Total.String(),
		}
		if category.PctOfSubtotal != nil {
			pct := category.PctOfSubtotal.String()
			categories[i].PctOfSubtotal = &pct
		}
	}

	return ItemizeBudgetResponse{
		Categories:     categories,
		Subtotal:       output.Subtotal.String(),
		ContingencyPct: output.ContingencyPct.String(),
		Contingency:    output.Contingency.String(),
		GrandTotal:     output.GrandTotal.String(),
		Warnings:       output.Warnings,
	}
}
