// Package reallocation contains the reallocation workflow use cases.
package reallocation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/application/validation"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// monitoringConditions are attached to approvals of non-urgent transfers.
var monitoringConditions = []string{
	"add the transfer to the weekly variance review",
	"re-check source category availability before payment runs",
}

// CategorySpendInput carries the point-in-time spend observation for the
// source category. Spend records are recomputed, not persisted, so the
// caller provides the latest figures.
type CategorySpendInput struct {
	Actual    decimal.Decimal `validate:"-"`
	Committed decimal.Decimal `validate:"-"`
}

// SubmitReallocationInput represents a reallocation request submission.
type SubmitReallocationInput struct {
	BudgetID         uuid.UUID                  `validate:"required"`
	FromCategoryCode string                     `validate:"required"`
	ToCategoryCode   string                     `validate:"required"`
	Amount           decimal.Decimal            `validate:"-"`
	Reason           string                     `validate:"required"`
	Urgency          entity.ReallocationUrgency `validate:"required,oneof=low medium high"`
	RequesterID      uuid.UUID                  `validate:"required"`
	RequesterLevel   int                        `validate:"min=0"`
	FromSpend        CategorySpendInput
}

// SubmitReallocationOutput represents the feasibility and routing verdict.
type SubmitReallocationOutput struct {
	Request              *entity.ReallocationRequest
	IsFeasible           bool
	FromRemaining        decimal.Decimal
	RequiredLevel        int
	RequiredRole         string
	ApprovalThresholdMet bool
	Recommendation       entity.ReallocationRecommendation
	Conditions           []string
}

// SubmitReallocationUseCase validates a reallocation request, checks its
// feasibility against the source category's remaining balance and routes it
// through the approval threshold table. Every outcome appends an immutable
// audit entry.
type SubmitReallocationUseCase struct {
	budgetRepo       adapter.BudgetRepository
	reallocationRepo adapter.ReallocationRepository
	auditRepo        adapter.AuditTrailRepository
	notifier         adapter.NotificationService
	clock            adapter.Clock
	idGenerator      adapter.IDGenerator
	approvalTable    valueobject.ApprovalThresholdTable
}

// NewSubmitReallocationUseCase creates a new SubmitReallocationUseCase instance.
func NewSubmitReallocationUseCase(
	budgetRepo adapter.BudgetRepository,
	reallocationRepo adapter.ReallocationRepository,
	auditRepo adapter.AuditTrailRepository,
	notifier adapter.NotificationService,
	clock adapter.Clock,
	idGenerator adapter.IDGenerator,
	approvalTable valueobject.ApprovalThresholdTable,
) *SubmitReallocationUseCase {
	return &SubmitReallocationUseCase{
		budgetRepo:       budgetRepo,
		reallocationRepo: reallocationRepo,
		auditRepo:        auditRepo,
		notifier:         notifier,
		clock:            clock,
		idGenerator:      idGenerator,
		approvalTable:    approvalTable,
	}
}

// Execute performs the submission.
func (uc *SubmitReallocationUseCase) Execute(ctx context.Context, input SubmitReallocationInput) (*SubmitReallocationOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domainerror.NewReallocationError(
			domainerror.ErrCodeInvalidReallocationInput,
			err.Error(),
			domainerror.ErrInvalidReallocationInput,
		)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewReallocationError(
			domainerror.ErrCodeNonPositiveAmount,
			fmt.Sprintf("amount %s must be positive", input.Amount.String()),
			domainerror.ErrNonPositiveAmount,
		)
	}
	if input.FromCategoryCode == input.ToCategoryCode {
		return nil, domainerror.NewReallocationError(
			domainerror.ErrCodeSameCategoryTransfer,
			"source and target category must differ",
			domainerror.ErrSameCategoryTransfer,
		)
	}

	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status != entity.BudgetStatusInExecution {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidStatusTransition,
			fmt.Sprintf("budget must be in execution to reallocate, got %s", budget.Status),
			domainerror.ErrInvalidStatusTransition,
		)
	}

	fromCategory, err := uc.budgetRepo.FindCategoryByCode(ctx, input.BudgetID, input.FromCategoryCode)
	if err != nil {
		return nil, err
	}
	if _, err := uc.budgetRepo.FindCategoryByCode(ctx, input.BudgetID, input.ToCategoryCode); err != nil {
		return nil, err
	}

	// Remaining is the current allocation minus the reported spend.
	// A transfer may never drive it negative.
	spend := entity.SpendRecord{
		CategoryCode: input.FromCategoryCode,
		Budgeted:     fromCategory.AllocatedAmount,
		Actual:       input.FromSpend.Actual,
		Committed:    input.FromSpend.Committed,
	}
	fromRemaining := spend.Available()
	isFeasible := input.Amount.LessThanOrEqual(fromRemaining)

	now := uc.clock.Now()
	request := entity.NewReallocationRequest(
		uc.idGenerator.NewID(),
		input.BudgetID,
		input.FromCategoryCode,
		input.ToCategoryCode,
		input.Amount,
		input.Reason,
		input.Urgency,
		input.RequesterID,
		input.RequesterLevel,
		now,
	)
	request.BudgetVersion = budget.Version
	request.IsFeasible = isFeasible

	rule := uc.approvalTable.RouteFor(input.Amount)
	request.RequiredLevel = rule.Level
	request.RequiredRole = rule.ApproverRole
	thresholdMet := input.RequesterLevel >= rule.Level

	var conditions []string
	switch {
	case !isFeasible:
		request.Status = entity.ReallocationStatusRejected
		request.Recommendation = entity.RecommendationReject
		decided := now
		request.DecidedAt = &decided
	case !thresholdMet:
		request.Status = entity.ReallocationStatusEscalated
		request.Recommendation = entity.RecommendationEscalate
	case input.Urgency != entity.UrgencyHigh:
		// Feasible and authorized, but not urgent: approve with monitoring
		// conditions rather than outright.
		request.Status = entity.ReallocationStatusFeasible
		request.Recommendation = entity.RecommendationApproveWithConditions
		conditions = monitoringConditions
		request.Conditions = conditions
	default:
		request.Status = entity.ReallocationStatusFeasible
		request.Recommendation = entity.RecommendationApprove
	}

	if err := uc.reallocationRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create reallocation request: %w", err)
	}

	// An outright rejection is a decision and must leave an audit entry;
	// allocations are unchanged so before and after match.
	if request.Status == entity.ReallocationStatusRejected {
		entry := entity.NewAuditEntry(
			uc.idGenerator.NewID(),
			budget.ID,
			request.ID,
			"rejected_infeasible",
			input.RequesterID,
			input.FromCategoryCode,
			input.ToCategoryCode,
			input.Amount,
			fromCategory.AllocatedAmount,
			fromCategory.AllocatedAmount,
			decimal.Zero,
			decimal.Zero,
			now,
		)
		if err := uc.auditRepo.Append(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to append audit entry: %w", err)
		}
	}

	if request.Status == entity.ReallocationStatusEscalated {
		uc.notifyEscalation(ctx, budget, request)
	}

	slog.Info("Reallocation request submitted",
		"requestID", request.ID,
		"budgetID", budget.ID,
		"amount", input.Amount.String(),
		"feasible", isFeasible,
		"recommendation", request.Recommendation,
	)

	return &SubmitReallocationOutput{
		Request:              request,
		IsFeasible:           isFeasible,
		FromRemaining:        fromRemaining,
		RequiredLevel:        rule.Level,
		RequiredRole:         rule.ApproverRole,
		ApprovalThresholdMet: thresholdMet,
		Recommendation:       request.Recommendation,
		Conditions:           conditions,
	}, nil
}

// notifyEscalation notifies the required approver. Notification is a host
// side effect after the pure decision; a failure is logged, never returned.
func (uc *SubmitReallocationUseCase) notifyEscalation(ctx context.Context, budget *entity.Budget, request *entity.ReallocationRequest) {
	err := uc.notifier.NotifyEscalation(ctx, adapter.ReallocationNotification{
		BudgetName:   budget.Name,
		FromCategory: request.FromCategoryCode,
		ToCategory:   request.ToCategoryCode,
		Amount:       request.Amount,
		Currency:     budget.Currency,
		Outcome:      string(entity.ReallocationStatusEscalated),
		RequiredRole: request.RequiredRole,
	})
	if err != nil {
		slog.Warn("Failed to send escalation notification",
			"requestID", request.ID,
			"error", err,
		)
	}
}
