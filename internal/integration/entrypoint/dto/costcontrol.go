// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/event-budget/backend/internal/application/usecase/costcontrol"
)

// PlanControlsRequest represents the request body for cost control planning.
type PlanControlsRequest struct {
	OriginalBudget  float64 `json:"original_budget" binding:"required,gt=0"`
	CurrentForecast float64 `json:"current_forecast" binding:"required,gt=0"`
	RemainingDays   int     `json:"remaining_days" binding:"gte=0"`
}

// ControlActionResponse represents one ranked mitigation action.
type ControlActionResponse struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	EstimatedSavings string `json:"estimated_savings"`
	Effort           int    `json:"effort"`
	QualityImpact    int    `json:"quality_impact"`
}

// PlanControlsResponse represents the ranked mitigation plan.
type PlanControlsResponse struct {
	Required            bool                    `json:"required"`
	ForecastVariancePct *string                 `json:"forecast_variance_pct,omitempty"`
	Severity            string                  `json:"severity"`
	Urgency             string                  `json:"urgency"`
	CostReductionTarget string                  `json:"cost_reduction_target"`
	Actions             []ControlActionResponse `json:"actions"`
	TotalSavings        string                  `json:"total_savings"`
	TargetAchievable    bool                    `json:"target_achievable"`
}

// ToPlanControlsResponse converts a PlanControlsOutput to its DTO.
func ToPlanControlsResponse(output *costcontrol.PlanControlsOutput) PlanControlsResponse {
	actions := make([]ControlActionResponse, len(output.Actions))
	for i, action := range output.Actions {
		actions[i] = ControlActionResponse{
			Name:             action.Name,
			Description:      action.Description,
			EstimatedSavings: action.EstimatedSavings.String(),
			Effort:           action.Effort,
			QualityImpact:    action.QualityImpact,
		}
	}

	return PlanControlsResponse{
		Required:            output.Required,
		ForecastVariancePct: decimalPtrToString(output.ForecastVariancePct),
		Severity:            string(output.Severity),
		Urgency:             string(output.Urgency),
		CostReductionTarget: output.CostReductionTarget.String(),
		Actions:             actions,
		TotalSavings:        output.TotalSavings.String(),
		TargetAchievable:    output.TargetAchievable,
	}
}
