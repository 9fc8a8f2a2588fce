// Package reconciliation contains the post-event reconciliation use case.
package reconciliation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/application/validation"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// CategoryActualsInput is the final spend and invoice state of one category.
type CategoryActualsInput struct {
	CategoryCode     string          `validate:"required"`
	Actual           decimal.Decimal `validate:"-"`
	InvoicesReceived int             `validate:"min=0"`
	InvoicesPaid     int             `validate:"min=0"`
	InDispute        bool
}

// OutstandingInput is an open payable or receivable at closing time.
type OutstandingInput struct {
	Kind         valueobject.OutstandingKind `validate:"required,oneof=payable receivable"`
	Counterparty string                      `validate:"required"`
	Description  string                      `validate:"required"`
	Amount       decimal.Decimal             `validate:"-"`
	DueDate      *time.Time
}

// ReconcileBudgetInput represents the post-event closing figures.
type ReconcileBudgetInput struct {
	BudgetID         uuid.UUID              `validate:"required"`
	Categories       []CategoryActualsInput `validate:"required,min=1,dive"`
	ProjectedRevenue decimal.Decimal        `validate:"-"`
	ActualRevenue    decimal.Decimal        `validate:"-"`
	Outstanding      []OutstandingInput     `validate:"omitempty,dive"`
}

// ReconcileBudgetOutput represents the closed budget.
type ReconcileBudgetOutput struct {
	Budget      *entity.Budget
	Settlements []valueobject.CategorySettlement
	Summary     valueobject.FinancialSummary
	// Outstanding items are reported for follow-up; the summary totals
	// deliberately ignore them.
	OutstandingPayables    []valueobject.OutstandingItem
	OutstandingReceivables []valueobject.OutstandingItem
}

// ReconcileBudgetUseCase finalizes actual versus budget after the event
// closed and archives the budget. The transition to reconciled is terminal.
type ReconcileBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	clock      adapter.Clock
}

// NewReconcileBudgetUseCase creates a new ReconcileBudgetUseCase instance.
func NewReconcileBudgetUseCase(budgetRepo adapter.BudgetRepository, clock adapter.Clock) *ReconcileBudgetUseCase {
	return &ReconcileBudgetUseCase{
		budgetRepo: budgetRepo,
		clock:      clock,
	}
}

// Execute performs the reconciliation.
func (uc *ReconcileBudgetUseCase) Execute(ctx context.Context, input ReconcileBudgetInput) (*ReconcileBudgetOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetInput,
			err.Error(),
			domainerror.ErrInvalidBudgetInput,
		)
	}

	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status == entity.BudgetStatusReconciled {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetAlreadyReconciled,
			"budget is already reconciled",
			domainerror.ErrBudgetAlreadyReconciled,
		)
	}
	if !budget.CanTransitionTo(entity.BudgetStatusReconciled) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidStatusTransition,
			fmt.Sprintf("cannot reconcile a budget in status %s", budget.Status),
			domainerror.ErrInvalidStatusTransition,
		)
	}

	categories, err := uc.budgetRepo.FindCategories(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}
	budgetedByCode := make(map[string]decimal.Decimal, len(categories))
	for _, category := range categories {
		budgetedByCode[category.Code] = category.AllocatedAmount
	}

	settlements := make([]valueobject.CategorySettlement, 0, len(input.Categories))
	totalBudgeted := decimal.Zero
	totalActual := decimal.Zero
	for _, actuals := range input.Categories {
		budgeted, ok := budgetedByCode[actuals.CategoryCode]
		if !ok {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeCategoryNotFound,
				fmt.Sprintf("category %s is not part of the budget", actuals.CategoryCode),
				domainerror.ErrCategoryNotFound,
			)
		}
		settlements = append(settlements, settle(actuals, budgeted))
		totalBudgeted = totalBudgeted.Add(budgeted)
		totalActual = totalActual.Add(actuals.Actual)
	}

	netResult := input.ActualRevenue.Sub(totalActual)
	var roi *decimal.Decimal
	if !totalActual.IsZero() {
		ratio := netResult.Div(totalActual)
		roi = &ratio
	}

	summary := valueobject.FinancialSummary{
		TotalBudgeted:      totalBudgeted,
		TotalActualExpense: totalActual,
		ExpenseVariance:    totalActual.Sub(totalBudgeted),
		ProjectedRevenue:   input.ProjectedRevenue,
		TotalRevenue:       input.ActualRevenue,
		RevenueVariance:    input.ActualRevenue.Sub(input.ProjectedRevenue),
		NetResult:          netResult,
		ROI:                roi,
	}

	// Open items are listed explicitly, never silently netted into the
	// summary.
	var payables, receivables []valueobject.OutstandingItem
	for _, open := range input.Outstanding {
		item := valueobject.OutstandingItem{
			Kind:         open.Kind,
			Counterparty: open.Counterparty,
			Description:  open.Description,
			Amount:       open.Amount,
			DueDate:      open.DueDate,
		}
		if open.Kind == valueobject.OutstandingPayable {
			payables = append(payables, item)
		} else {
			receivables = append(receivables, item)
		}
	}

	budget.TransitionTo(entity.BudgetStatusReconciled, uc.clock.Now())
	budget.Version++
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to archive budget: %w", err)
	}

	slog.Info("Budget reconciled",
		"budgetID", budget.ID,
		"netResult", netResult.String(),
		"openPayables", len(payables),
		"openReceivables", len(receivables),
	)

	return &ReconcileBudgetOutput{
		Budget:                 budget,
		Settlements:            settlements,
		Summary:                summary,
		OutstandingPayables:    payables,
		OutstandingReceivables: receivables,
	}, nil
}

// settle derives the settlement status of one category from its invoice
// counts: equal means reconciled, more received than paid means an invoice
// is pending, anything else (or an explicit dispute flag) is in dispute.
func settle(actuals CategoryActualsInput, budgeted decimal.Decimal) valueobject.CategorySettlement {
	variance := actuals.Actual.Sub(budgeted)
	var variancePct *decimal.Decimal
	if !budgeted.IsZero() {
		pct := variance.Div(budgeted)
		variancePct = &pct
	}

	status := valueobject.SettlementReconciled
	switch {
	case actuals.InDispute:
		status = valueobject.SettlementInDispute
	case actuals.InvoicesReceived > actuals.InvoicesPaid:
		status = valueobject.SettlementPendingInvoice
	case actuals.InvoicesReceived < actuals.InvoicesPaid:
		status = valueobject.SettlementInDispute
	}

	return valueobject.CategorySettlement{
		CategoryCode:     actuals.CategoryCode,
		Budgeted:         budgeted,
		Actual:           actuals.Actual,
		Variance:         variance,
		VariancePct:      variancePct,
		InvoicesReceived: actuals.InvoicesReceived,
		InvoicesPaid:     actuals.InvoicesPaid,
		Status:           status,
	}
}
