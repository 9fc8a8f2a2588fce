// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/event-budget/backend/internal/application/usecase/contingency"
)

// NamedRiskRequest represents one named risk in a contingency sizing request.
type NamedRiskRequest struct {
	Name        string `json:"name" binding:"required"`
	Probability string `json:"probability" binding:"required,oneof=low medium high"`
	Impact      string `json:"impact" binding:"required,oneof=low medium high"`
}

// SizeContingencyRequest represents the request body for contingency sizing.
type SizeContingencyRequest struct {
	TotalBudget           float64            `json:"total_budget" binding:"required,gt=0"`
	IsFirstTime           bool               `json:"is_first_time"`
	Complexity            string             `json:"complexity" binding:"required,oneof=low medium high"`
	OutdoorElements       bool               `json:"outdoor_elements"`
	InternationalElements bool               `json:"international_elements"`
	NamedRisks            []NamedRiskRequest `json:"named_risks,omitempty" binding:"omitempty,dive"`
}

// RiskProvisionResponse represents one named-risk provision.
type RiskProvisionResponse struct {
	Name      string `json:"name"`
	Provision string `json:"provision"`
}

// BucketAllocationResponse represents the contingency purpose buckets.
type BucketAllocationResponse struct {
	Operational string `json:"operational"`
	Technical   string `json:"technical"`
	External    string `json:"external"`
	General     string `json:"general"`
}

// SizeContingencyResponse represents the sized contingency.
type SizeContingencyResponse struct {
	RecommendedPct    string                   `json:"recommended_pct"`
	Capped            bool                     `json:"capped"`
	ContingencyAmount string                   `json:"contingency_amount"`
	Buckets           BucketAllocationResponse `json:"buckets"`
	RiskProvisions    []RiskProvisionResponse  `json:"risk_provisions,omitempty"`
}

// ToSizeContingencyResponse converts a SizeContingencyOutput to its DTO.
func ToSizeContingencyResponse(output *contingency.SizeContingencyOutput) SizeContingencyResponse {
	provisions := make([]RiskProvisionResponse, len(output.RiskProvisions))
	for i, provision := range output.RiskProvisions {
		provisions[i] = RiskProvisionResponse{
			Name:      provision.Name,
			Provision: provision.Provision.String(),
		}
	}

	return SizeContingencyResponse{
		RecommendedPct:    output.RecommendedPct.String(),
		Capped:            output.Capped,
		ContingencyAmount: output.ContingencyAmount.String(),
		Buckets: BucketAllocationResponse{
			Operational: output.Buckets.Operational.String(),
			Technical:   output.Buckets.Technical.String(),
			External:    output.Buckets.External.String(),
			General:     output.Buckets.General.String(),
		},
		RiskProvisions: provisions,
	}
}
