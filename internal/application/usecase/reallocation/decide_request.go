// Package reallocation contains the reallocation workflow use cases.
package reallocation

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
)

// budgetLockTTL bounds how long a crashed decider can hold a budget lock.
const budgetLockTTL = 10 * time.Second

// Decision is the verdict an approver hands down on a request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// DecideReallocationInput represents an approval or rejection of a request.
type DecideReallocationInput struct {
	RequestID  uuid.UUID `validate:"required"`
	Decision   Decision  `validate:"required,oneof=approve reject"`
	ActorID    uuid.UUID `validate:"required"`
	ActorLevel int       `validate:"min=1"`
	// FromSpend is the latest spend observation for the source category,
	// used to re-validate feasibility immediately before committing.
	FromSpend CategorySpendInput
}

// DecideReallocationOutput represents the applied decision.
type DecideReallocationOutput struct {
	Request    *entity.ReallocationRequest
	FromBefore decimal.Decimal
	FromAfter  decimal.Decimal
	ToBefore   decimal.Decimal
	ToAfter    decimal.Decimal
}

// DecideReallocationUseCase applies an approver's verdict. Approvals hold
// the per-budget write lock, re-validate feasibility against the current
// category state and commit the zero-sum allocation deltas under an
// optimistic version check; a stale budget version is a conflict, never a
// silent overwrite. Every decision appends an immutable audit entry.
type DecideReallocationUseCase struct {
	budgetRepo       adapter.BudgetRepository
	reallocationRepo adapter.ReallocationRepository
	auditRepo        adapter.AuditTrailRepository
	budgetLock       adapter.BudgetLock
	notifier         adapter.NotificationService
	clock            adapter.Clock
	idGenerator      adapter.IDGenerator
}

// NewDecideReallocationUseCase creates a new DecideReallocationUseCase instance.
func NewDecideReallocationUseCase(
	budgetRepo adapter.BudgetRepository,
	reallocationRepo adapter.ReallocationRepository,
	auditRepo adapter.AuditTrailRepository,
	budgetLock adapter.BudgetLock,
	notifier adapter.NotificationService,
	clock adapter.Clock,
	idGenerator adapter.IDGenerator,
) *DecideReallocationUseCase {
	return &DecideReallocationUseCase{
		budgetRepo:       budgetRepo,
		reallocationRepo: reallocationRepo,
		auditRepo:        auditRepo,
		budgetLock:       budgetLock,
		notifier:         notifier,
		clock:            clock,
		idGenerator:      idGenerator,
	}
}

// Execute performs the decision.
func (uc *DecideReallocationUseCase) Execute(ctx context.Context, input DecideReallocationInput) (*DecideReallocationOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, domainerror.NewReallocationError(
			domainerror.ErrCodeInvalidReallocationInput,
			err.Error(),
			domainerror.ErrInvalidReallocationInput,
		)
	}

	request, err := uc.reallocationRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if request.IsTerminal() {
		return nil, domainerror.NewReallocationError(
			domainerror.ErrCodeRequestAlreadyDecided,
			fmt.Sprintf("request is already %s", request.Status),
			domainerror.ErrRequestAlreadyDecided,
		)
	}
	if input.ActorLevel < request.RequiredLevel {
		return nil, domainerror.NewReallocationError(
			domainerror.ErrCodeInsufficientAuthorization,
			fmt.Sprintf("level %d required, actor has level %d", request.RequiredLevel, input.ActorLevel),
			domainerror.ErrInsufficientAuthorization,
		)
	}

	if input.Decision == DecisionReject {
		return uc.reject(ctx, request, input.ActorID)
	}
	return uc.approve(ctx, request, input)
}

// reject marks the request rejected and records the decision. Allocations
// are unchanged, so the audit entry carries identical before/after values.
func (uc *DecideReallocationUseCase) reject(ctx context.Context, request *entity.ReallocationRequest, actorID uuid.UUID) (*DecideReallocationOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, request.BudgetID)
	if err != nil {
		return nil, err
	}
	fromCategory, err := uc.budgetRepo.FindCategoryByCode(ctx, request.BudgetID, request.FromCategoryCode)
	if err != nil {
		return nil, err
	}
	toCategory, err := uc.budgetRepo.FindCategoryByCode(ctx, request.BudgetID, request.ToCategoryCode)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	request.Status = entity.ReallocationStatusRejected
	request.DecidedAt = &now
	request.DecidedBy = &actorID
	if err := uc.reallocationRepo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to update reallocation request: %w", err)
	}

	entry := entity.NewAuditEntry(
		uc.idGenerator.NewID(),
		request.BudgetID,
		request.ID,
		"rejected",
		actorID,
		request.FromCategoryCode,
		request.ToCategoryCode,
		request.Amount,
		fromCategory.AllocatedAmount,
		fromCategory.AllocatedAmount,
		toCategory.AllocatedAmount,
		toCategory.AllocatedAmount,
		now,
	)
	if err := uc.auditRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}

	uc.notifyOutcome(ctx, budget, request)

	return &DecideReallocationOutput{
		Request:    request,
		FromBefore: fromCategory.AllocatedAmount,
		FromAfter:  fromCategory.AllocatedAmount,
		ToBefore:   toCategory.AllocatedAmount,
		ToAfter:    toCategory.AllocatedAmount,
	}, nil
}

// approve commits the transfer under the budget write lock.
func (uc *DecideReallocationUseCase) approve(ctx context.Context, request *entity.ReallocationRequest, input DecideReallocationInput) (*DecideReallocationOutput, error) {
	if err := uc.budgetLock.Acquire(ctx, request.BudgetID, budgetLockTTL); err != nil {
		return nil, domainerror.NewReallocationError(
			domainerror.ErrCodeBudgetVersionConflict,
			"another reallocation is committing against this budget",
			domainerror.ErrBudgetVersionConflict,
		)
	}
	defer func() {
		if err := uc.budgetLock.Release(ctx, request.BudgetID); err != nil {
			slog.Warn("Failed to release budget lock", "budgetID", request.BudgetID, "error", err)
		}
	}()

	budget, err := uc.budgetRepo.FindByID(ctx, request.BudgetID)
	if err != nil {
		return nil, err
	}

	// The feasibility verdict was computed against a budget version; if the
	// allocations moved since, the verdict is stale and the caller must
	// retry with fresh state.
	if budget.Version != request.BudgetVersion {
		return nil, domainerror.NewReallocationError(
			domainerror.ErrCodeBudgetVersionConflict,
			fmt.Sprintf("budget version is %d, feasibility was checked at %d", budget.Version, request.BudgetVersion),
			domainerror.ErrBudgetVersionConflict,
		)
	}

	fromCategory, err := uc.budgetRepo.FindCategoryByCode(ctx, request.BudgetID, request.FromCategoryCode)
	if err != nil {
		return nil, err
	}
	toCategory, err := uc.budgetRepo.FindCategoryByCode(ctx, request.BudgetID, request.ToCategoryCode)
	if err != nil {
		return nil, err
	}

	// Re-validate feasibility against the current category state.
	spend := entity.SpendRecord{
		CategoryCode: request.FromCategoryCode,
		Budgeted:     fromCategory.AllocatedAmount,
		Actual:       input.FromSpend.Actual,
		Committed:    input.FromSpend.Committed,
	}
	if request.Amount.GreaterThan(spend.Available()) {
		return nil, domainerror.NewReallocationError(
			domainerror.ErrCodeReallocationInfeasible,
			fmt.Sprintf("amount %s exceeds remaining %s", request.Amount.String(), spend.Available().String()),
			domainerror.ErrReallocationInfeasible,
		)
	}

	if err := uc.budgetRepo.CommitReallocation(ctx, request.BudgetID, budget.Version, request.FromCategoryCode, request.ToCategoryCode, request.Amount); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	request.Status = entity.ReallocationStatusApproved
	request.DecidedAt = &now
	request.DecidedBy = &input.ActorID
	if err := uc.reallocationRepo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to update reallocation request: %w", err)
	}

	fromAfter := fromCategory.AllocatedAmount.Sub(request.Amount)
	toAfter := toCategory.AllocatedAmount.Add(request.Amount)
	entry := entity.NewAuditEntry(
		uc.idGenerator.NewID(),
		request.BudgetID,
		request.ID,
		"approved",
		input.ActorID,
		request.FromCategoryCode,
		request.ToCategoryCode,
		request.Amount,
		fromCategory.AllocatedAmount,
		fromAfter,
		toCategory.AllocatedAmount,
		toAfter,
		now,
	)
	if err := uc.auditRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}

	uc.notifyOutcome(ctx, budget, request)

	slog.Info("Reallocation approved",
		"requestID", request.ID,
		"budgetID", request.BudgetID,
		"amount", request.Amount.String(),
		"from", request.FromCategoryCode,
		"to", request.ToCategoryCode,
	)

	return &DecideReallocationOutput{
		Request:    request,
		FromBefore: fromCategory.AllocatedAmount,
		FromAfter:  fromAfter,
		ToBefore:   toCategory.AllocatedAmount,
		ToAfter:    toAfter,
	}, nil
}

// notifyOutcome reports the decision to the requester's side. Failures are
// logged, never returned: the decision itself already committed.
func (uc *DecideReallocationUseCase) notifyOutcome(ctx context.Context, budget *entity.Budget, request *entity.ReallocationRequest) {
	err := uc.notifier.NotifyReallocationOutcome(ctx, adapter.ReallocationNotification{
		BudgetName:   budget.Name,
		FromCategory: request.FromCategoryCode,
		ToCategory:   request.ToCategoryCode,
		Amount:       request.Amount,
		Currency:     budget.Currency,
		Outcome:      string(request.Status),
		RequiredRole: request.RequiredRole,
	})
	if err != nil {
		slog.Warn("Failed to send reallocation outcome notification",
			"requestID", request.ID,
			"error", err,
		)
	}
}
