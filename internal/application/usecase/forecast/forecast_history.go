// Package forecast contains the forecast updater use case.
package forecast

import (
	"context"

	"github.com/google/uuid"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/domain/entity"
)

// ForecastHistoryInput identifies the budget whose revision log to read.
type ForecastHistoryInput struct {
	BudgetID uuid.UUID
}

// ForecastHistoryOutput carries the revision log, oldest first, so the
// forecast trend is reconstructable.
type ForecastHistoryOutput struct {
	Revisions []*entity.ForecastRevision
}

// ForecastHistoryUseCase reads a budget's append-only forecast revision log.
type ForecastHistoryUseCase struct {
	revisionRepo adapter.ForecastRevisionRepository
}

// NewForecastHistoryUseCase creates a new ForecastHistoryUseCase instance.
func NewForecastHistoryUseCase(revisionRepo adapter.ForecastRevisionRepository) *ForecastHistoryUseCase {
	return &ForecastHistoryUseCase{revisionRepo: revisionRepo}
}

// Execute reads the revision log.
func (uc *ForecastHistoryUseCase) Execute(ctx context.Context, input ForecastHistoryInput) (*ForecastHistoryOutput, error) {
	revisions, err := uc.revisionRepo.FindByBudgetID(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}
	return &ForecastHistoryOutput{Revisions: revisions}, nil
}
