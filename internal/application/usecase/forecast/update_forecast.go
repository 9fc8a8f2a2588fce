// Package forecast contains the forecast updater use case.
package forecast

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/application/usecase/tracking"
	"github.com/event-budget/backend/internal/application/validation"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// KnownChangeInput is a pending scope or price change.
type KnownChangeInput struct {
	Description string          `validate:"required"`
	Impact      decimal.Decimal `validate:"-"`
	Confirmed   bool
}

// UpdateForecastInput represents the input for a forecast revision.
type UpdateForecastInput struct {
	BudgetID       uuid.UUID             `validate:"required"`
	OriginalBudget decimal.Decimal       `validate:"-"`
	Records        []tracking.SpendInput `validate:"required,min=1,dive"`
	KnownChanges   []KnownChangeInput    `validate:"omitempty,dive"`
	// RemainingSpendAssumption overrides the policy default share of
	// remaining budget assumed to still be spent.
	RemainingSpendAssumption *decimal.Decimal
}

// UpdateForecastOutput represents the recomputed forecast.
type UpdateForecastOutput struct {
	Revision        *entity.ForecastRevision
	SpendToDate     decimal.Decimal
	RemainingBudget decimal.Decimal
	ConfirmedImpact decimal.Decimal
	CurrentForecast decimal.Decimal
	// ChangePct is nil when the original budget is zero.
	ChangePct *decimal.Decimal
}

// UpdateForecastUseCase recomputes the full-event cost forecast from spend to
// date and known changes, and appends a revision to the append-only log.
type UpdateForecastUseCase struct {
	revisionRepo adapter.ForecastRevisionRepository
	clock        adapter.Clock
	idGenerator  adapter.IDGenerator
	policy       valueobject.ForecastPolicy
}

// NewUpdateForecastUseCase creates a new UpdateForecastUseCase instance.
func NewUpdateForecastUseCase(
	revisionRepo adapter.ForecastRevisionRepository,
	clock adapter.Clock,
	idGenerator adapter.IDGenerator,
	policy valueobject.ForecastPolicy,
) *UpdateForecastUseCase {
	return &UpdateForecastUseCase{
		revisionRepo: revisionRepo,
		clock:        clock,
		idGenerator:  idGenerator,
		policy:       policy,
	}
}

// Execute performs the forecast update.
func (uc *UpdateForecastUseCase) Execute(ctx context.Context, input UpdateForecastInput) (*UpdateForecastOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			err.Error(),
			domainerror.ErrInvalidBudgetInput,
		)
	}
	if input.OriginalBudget.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			"original budget must not be negative",
			domainerror.ErrInvalidBudgetInput,
		)
	}

	spendToDate := decimal.Zero
	remaining := decimal.Zero
	for _, record := range input.Records {
		spend := entity.SpendRecord{
			CategoryCode: record.CategoryCode,
			Budgeted:     record.Budgeted,
			Actual:       record.Actual,
			Committed:    record.Committed,
		}
		spendToDate = spendToDate.Add(record.Actual).Add(record.Committed)
		// Overcommitted categories contribute nothing to remaining spend.
		remaining = remaining.Add(spend.Available())
	}

	assumption := uc.policy.RemainingSpendAssumption
	if input.RemainingSpendAssumption != nil {
		assumption = *input.RemainingSpendAssumption
	}

	// Confirmed changes apply numerically; unconfirmed ones are qualitative
	// drivers only.
	confirmedImpact := decimal.Zero
	drivers := make([]string, 0, len(input.KnownChanges))
	for _, change := range input.KnownChanges {
		if change.Confirmed {
			confirmedImpact = confirmedImpact.Add(change.Impact)
			drivers = append(drivers, change.Description)
			continue
		}
		drivers = append(drivers, fmt.Sprintf("unconfirmed: %s", change.Description))
	}

	currentForecast := spendToDate.Add(remaining.Mul(assumption)).Add(confirmedImpact)

	var changePct *decimal.Decimal
	if !input.OriginalBudget.IsZero() {
		pct := currentForecast.Sub(input.OriginalBudget).Div(input.OriginalBudget)
		changePct = &pct
	}

	revision := entity.NewForecastRevision(
		uc.idGenerator.NewID(),
		input.BudgetID,
		input.OriginalBudget,
		currentForecast,
		changePct,
		drivers,
		uc.clock.Now(),
	)
	if err := uc.revisionRepo.Append(ctx, revision); err != nil {
		return nil, fmt.Errorf("failed to append forecast revision: %w", err)
	}

	slog.Debug("Forecast revision appended",
		"budgetID", input.BudgetID,
		"forecast", currentForecast.String(),
		"drivers", len(drivers),
	)

	return &UpdateForecastOutput{
		Revision:        revision,
		SpendToDate:     spendToDate,
		RemainingBudget: remaining,
		ConfirmedImpact: confirmedImpact,
		CurrentForecast: currentForecast,
		ChangePct:       changePct,
	}, nil
}
