// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/event-budget/backend/internal/application/usecase/budget"
	"github.com/event-budget/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	EventID        string   `json:"event_id" binding:"required,uuid"`
	Name           string   `json:"name" binding:"required,min=1,max=120"`
	Currency       string   `json:"currency" binding:"required,len=3"`
	TotalBudget    float64  `json:"total_budget" binding:"required,gt=0"`
	ContingencyPct *float64 `json:"contingency_pct,omitempty" binding:"omitempty,gte=0"`
	// TypicalPctOverrides maps a category code to its share of the
	// allocatable total, e.g. from a previous edition of the event.
	TypicalPctOverrides map[string]float64 `json:"typical_pct_overrides,omitempty"`
}

// BudgetResponse represents a budget root in API responses.
type BudgetResponse struct {
	ID                string     `json:"id"`
	EventID           string     `json:"event_id"`
	Name              string     `json:"name"`
	Currency          string     `json:"currency"`
	Status            string     `json:"status"`
	TotalBudget       string     `json:"total_budget"`
	ContingencyPct    string     `json:"contingency_pct"`
	ContingencyAmount string     `json:"contingency_amount"`
	Version           int64      `json:"version"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	ArchivedAt        *time.Time `json:"archived_at,omitempty"`
}

// CategoryResponse represents a budget category in API responses.
type CategoryResponse struct {
	ID              string `json:"id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	AllocatedAmount string `json:"allocated_amount"`
	TypicalPct      string `json:"typical_pct"`
	Position        int    `json:"position"`
}

// LineItemResponse represents a line item in API responses.
type LineItemResponse struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Quantity    string  `json:"quantity"`
	UnitPrice   string  `json:"unit_price"`
	Total       string  `json:"total"`
	VendorRef   *string `json:"vendor_ref,omitempty"`
	Note        *string `json:"note,omitempty"`
	Placeholder bool    `json:"placeholder"`
}

// CategoryDetailResponse is a category with its line items.
type CategoryDetailResponse struct {
	CategoryResponse
	LineItems []LineItemResponse `json:"line_items"`
}

// BudgetDetailResponse represents the full budget aggregate.
type BudgetDetailResponse struct {
	Budget     BudgetResponse           `json:"budget"`
	Categories []CategoryDetailResponse `json:"categories"`
}

// CreateBudgetResponse represents the response for budget creation.
type CreateBudgetResponse struct {
	Budget     BudgetResponse           `json:"budget"`
	Categories []CategoryDetailResponse `json:"categories"`
	Warnings   []string                 `json:"warnings,omitempty"`
}

// TransitionBudgetResponse represents the response for a lifecycle transition.
type TransitionBudgetResponse struct {
	Budget       BudgetResponse `json:"budget"`
	RequiredRole string         `json:"required_role,omitempty"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:                b.ID.String(),
		EventID:           b.EventID.String(),
		Name:              b.Name,
		Currency:          b.Currency,
		Status:            string(b.Status),
		TotalBudget:       b.TotalBudget.String(),
		ContingencyPct:    b.ContingencyPct.String(),
		ContingencyAmount: b.ContingencyAmount.String(),
		Version:           b.Version,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
		ArchivedAt:        b.ArchivedAt,
	}
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:              c.ID.String(),
		Code:            c.Code,
		Name:            c.Name,
		AllocatedAmount: c.AllocatedAmount.String(),
		TypicalPct:      c.TypicalPct.String(),
		Position:        c.Position,
	}
}

// ToLineItemResponse converts a domain LineItem entity to a LineItemResponse DTO.
func ToLineItemResponse(item *entity.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:          item.ID.String(),
		Code:        item.Code,
		Description: item.Description,
		Quantity:    item.Quantity.String(),
		UnitPrice:   item.UnitPrice.String(),
		Total:       item.Total.String(),
		VendorRef:   item.VendorRef,
		Note:        item.Note,
		Placeholder: item.Placeholder,
	}
}

// ToBudgetDetailResponse converts a GetBudgetOutput to a BudgetDetailResponse DTO.
func ToBudgetDetailResponse(output *budget.GetBudgetOutput) BudgetDetailResponse {
	return BudgetDetailResponse{
		Budget:     ToBudgetResponse(output.Budget),
		Categories: toCategoryDetails(output.Categories, output.LineItems),
	}
}

// ToCreateBudgetResponse converts a CreateBudgetOutput to a CreateBudgetResponse DTO.
func ToCreateBudgetResponse(output *budget.CreateBudgetOutput) CreateBudgetResponse {
	itemsByCategory := make(map[string][]*entity.LineItem)
	categoryCodeByID := make(map[string]string, len(output.Categories))
	for _, category := range output.Categories {
		categoryCodeByID[category.ID.String()] = category.Code
	}
	for _, item := range output.LineItems {
		code := categoryCodeByID[item.CategoryID.String()]
		itemsByCategory[code] = append(itemsByCategory[code], item)
	}

	return CreateBudgetResponse{
		Budget:     ToBudgetResponse(output.Budget),
		Categories: toCategoryDetails(output.Categories, itemsByCategory),
		Warnings:   output.Warnings,
	}
}

func toCategoryDetails(categories []*entity.Category, itemsByCode map[string][]*entity.LineItem) []CategoryDetailResponse {
	details := make([]CategoryDetailResponse, len(categories))
	for i, category := range categories {
		items := itemsByCode[category.Code]
		itemResponses := make([]LineItemResponse, len(items))
		for j, item := range items {
			itemResponses[j] = ToLineItemResponse(item)
		}
		details[i] = CategoryDetailResponse{
			CategoryResponse: ToCategoryResponse(category),
			LineItems:        itemResponses,
		}
	}
	return details
}
