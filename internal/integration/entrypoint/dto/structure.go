// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/event-budget/backend/internal/application/usecase/structure"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// BuildStructureRequest represents the request body for structure building.
type BuildStructureRequest struct {
	Profile struct {
		Scale        string `json:"scale" binding:"required,oneof=small medium large"`
		DurationDays int    `json:"duration_days" binding:"required,gt=0"`
	} `json:"profile" binding:"required"`
	Requirements struct {
		CostCenterTracking bool `json:"cost_center_tracking"`
		ApprovalLevels     int  `json:"approval_levels" binding:"omitempty,min=1,max=4"`
	} `json:"requirements"`
	HistoricalBreakdown map[string]float64 `json:"historical_breakdown,omitempty"`
}

// CategorySpecResponse represents a category template in API responses.
type CategorySpecResponse struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	TypicalPct string `json:"typical_pct"`
}

// ApprovalRuleResponse represents one routing rule in API responses.
// AmountThreshold is omitted for the unbounded top level.
type ApprovalRuleResponse struct {
	Level           int     `json:"level"`
	AmountThreshold *string `json:"amount_threshold,omitempty"`
	ApproverRole    string  `json:"approver_role"`
}

// BuildStructureResponse represents the built budget structure.
type BuildStructureResponse struct {
	Categories      []CategorySpecResponse `json:"categories"`
	ApprovalTable   []ApprovalRuleResponse `json:"approval_table"`
	ChartOfAccounts map[string]string      `json:"chart_of_accounts"`
}

// ToBuildStructureResponse converts a BuildStructureOutput to its DTO.
func ToBuildStructureResponse(output *structure.BuildStructureOutput) BuildStructureResponse {
	categories := make([]CategorySpecResponse, len(output.Categories))
	for i, spec := range output.Categories {
		categories[i] = CategorySpecResponse{
			Code:       spec.Code,
			Name:       spec.Name,
			TypicalPct: spec.TypicalPct.String(),
		}
	}

	rules := make([]ApprovalRuleResponse, len(output.ApprovalTable))
	for i, rule := range output.ApprovalTable {
		rules[i] = toApprovalRuleResponse(rule)
	}

	return BuildStructureResponse{
		Categories:      categories,
		ApprovalTable:   rules,
		ChartOfAccounts: output.ChartOfAccounts,
	}
}

func toApprovalRuleResponse(rule valueobject.ApprovalRule) ApprovalRuleResponse {
	response := ApprovalRuleResponse{
		Level:        rule.Level,
		ApproverRole: rule.ApproverRole,
	}
	if rule.AmountThreshold != nil {
		threshold := rule.AmountThreshold.String()
		response.AmountThreshold = &threshold
	}
	return response
}
