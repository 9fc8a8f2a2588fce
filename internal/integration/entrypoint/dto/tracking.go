// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/event-budget/backend/internal/application/usecase/tracking"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// SpendRecordRequest represents one category spend observation.
type SpendRecordRequest struct {
	CategoryCode string  `json:"category_code" binding:"required"`
	Budgeted     float64 `json:"budgeted" binding:"gte=0"`
	Actual       float64 `json:"actual" binding:"gte=0"`
	Committed    float64 `json:"committed" binding:"gte=0"`
}

// AnalyzeVarianceRequest represents the request body for variance analysis.
type AnalyzeVarianceRequest struct {
	Records  []SpendRecordRequest `json:"records" binding:"required,min=1,dive"`
	Progress float64              `json:"progress" binding:"gte=0,lte=100"`
}

// CategoryVarianceResponse represents one category's variance figures.
type CategoryVarianceResponse struct {
	CategoryCode  string  `json:"category_code"`
	Budgeted      string  `json:"budgeted"`
	Actual        string  `json:"actual"`
	Committed     string  `json:"committed"`
	Available     string  `json:"available"`
	RawAvailable  string  `json:"raw_available"`
	Overcommitted bool    `json:"overcommitted"`
	Variance      string  `json:"variance"`
	VariancePct   *string `json:"variance_pct,omitempty"`
	Status        string  `json:"status"`
}

// VarianceSnapshotResponse represents the computed variance snapshot.
type VarianceSnapshotResponse struct {
	Progress          string                     `json:"progress"`
	Categories        []CategoryVarianceResponse `json:"categories"`
	TotalBudgeted     string                     `json:"total_budgeted"`
	TotalActual       string                     `json:"total_actual"`
	TotalCommitted    string                     `json:"total_committed"`
	TotalVariance     string                     `json:"total_variance"`
	TotalVariancePct  *string                    `json:"total_variance_pct,omitempty"`
	AggregateStatus   string                     `json:"aggregate_status"`
	ActualSpendRate   *string                    `json:"actual_spend_rate,omitempty"`
	ExpectedSpendRate string                     `json:"expected_spend_rate"`
	SpendRate         string                     `json:"spend_rate"`
	ProjectedTotal    *string                    `json:"projected_total,omitempty"`
}

// ToVarianceSnapshotResponse converts an AnalyzeVarianceOutput to its DTO.
func ToVarianceSnapshotResponse(output *tracking.AnalyzeVarianceOutput) VarianceSnapshotResponse {
	snapshot := output.Snapshot
	categories := make([]CategoryVarianceResponse, len(snapshot.Categories))
	for i, category := range snapshot.Categories {
		categories[i] = toCategoryVarianceResponse(category)
	}

	return VarianceSnapshotResponse{
		Progress:          snapshot.Progress.String(),
		Categories:        categories,
		TotalBudgeted:     snapshot.TotalBudgeted.String(),
		TotalActual:       snapshot.TotalActual.String(),
		TotalCommitted:    snapshot.TotalCommitted.String(),
		TotalVariance:     snapshot.TotalVariance.String(),
		TotalVariancePct:  decimalPtrToString(snapshot.TotalVariancePct),
		AggregateStatus:   string(snapshot.AggregateStatus),
		ActualSpendRate:   decimalPtrToString(snapshot.ActualSpendRate),
		ExpectedSpendRate: snapshot.ExpectedSpendRate.String(),
		SpendRate:         string(snapshot.SpendRate),
		ProjectedTotal:    decimalPtrToString(snapshot.ProjectedTotal),
	}
}

func toCategoryVarianceResponse(category valueobject.CategoryVariance) CategoryVarianceResponse {
	return CategoryVarianceResponse{
		CategoryCode:  category.CategoryCode,
		Budgeted:      category.Budgeted.String(),
		Actual:        category.Actual.String(),
		Committed:     category.Committed.String(),
		Available:     category.Available.String(),
		RawAvailable:  category.RawAvailable.String(),
		Overcommitted: category.Overcommitted,
		Variance:      category.Variance.String(),
		VariancePct:   decimalPtrToString(category.VariancePct),
		Status:        string(category.Status),
	}
}
