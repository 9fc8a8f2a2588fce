// Package budget contains budget lifecycle use cases.
package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

// TransitionBudgetInput identifies the budget and the actor moving it.
type TransitionBudgetInput struct {
	BudgetID   uuid.UUID
	ActorID    uuid.UUID
	ActorLevel int
}

// TransitionBudgetOutput carries the budget after the transition.
type TransitionBudgetOutput struct {
	Budget *entity.Budget
	// RequiredRole is set for approvals: the role the threshold table
	// requires for the budget's total amount.
	RequiredRole string
}

// SubmitForApprovalUseCase moves a draft budget to pending approval.
type SubmitForApprovalUseCase struct {
	budgetRepo adapter.BudgetRepository
	clock      adapter.Clock
}

// NewSubmitForApprovalUseCase creates a new SubmitForApprovalUseCase instance.
func NewSubmitForApprovalUseCase(budgetRepo adapter.BudgetRepository, clock adapter.Clock) *SubmitForApprovalUseCase {
	return &SubmitForApprovalUseCase{budgetRepo: budgetRepo, clock: clock}
}

// Execute performs the transition.
func (uc *SubmitForApprovalUseCase) Execute(ctx context.Context, input TransitionBudgetInput) (*TransitionBudgetOutput, error) {
	budget, err := transition(ctx, uc.budgetRepo, input.BudgetID, entity.BudgetStatusPendingApproval, uc.clock)
	if err != nil {
		return nil, err
	}
	return &TransitionBudgetOutput{Budget: budget}, nil
}

// ApproveBudgetUseCase moves a pending budget to approved. The approver must
// hold the authorization level the threshold table requires for the budget's
// total amount.
type ApproveBudgetUseCase struct {
	budgetRepo    adapter.BudgetRepository
	clock         adapter.Clock
	approvalTable valueobject.ApprovalThresholdTable
}

// NewApproveBudgetUseCase creates a new ApproveBudgetUseCase instance.
func NewApproveBudgetUseCase(budgetRepo adapter.BudgetRepository, clock adapter.Clock, approvalTable valueobject.ApprovalThresholdTable) *ApproveBudgetUseCase {
	return &ApproveBudgetUseCase{budgetRepo: budgetRepo, clock: clock, approvalTable: approvalTable}
}

// Execute performs the approval.
func (uc *ApproveBudgetUseCase) Execute(ctx context.Context, input TransitionBudgetInput) (*TransitionBudgetOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}

	rule := uc.approvalTable.RouteFor(budget.TotalBudget)
	if input.ActorLevel < rule.Level {
		return nil, domainerror.NewReallocationError(
			domainerror.ErrCodeInsufficientAuthorization,
			fmt.Sprintf("budget approval requires %s (level %d)", rule.ApproverRole, rule.Level),
			domainerror.ErrInsufficientAuthorization,
		)
	}

	budget, err = transition(ctx, uc.budgetRepo, input.BudgetID, entity.BudgetStatusApproved, uc.clock)
	if err != nil {
		return nil, err
	}
	return &TransitionBudgetOutput{Budget: budget, RequiredRole: rule.ApproverRole}, nil
}

// StartExecutionUseCase moves an approved budget into execution.
type StartExecutionUseCase struct {
	budgetRepo adapter.BudgetRepository
	clock      adapter.Clock
}

// NewStartExecutionUseCase creates a new StartExecutionUseCase instance.
func NewStartExecutionUseCase(budgetRepo adapter.BudgetRepository, clock adapter.Clock) *StartExecutionUseCase {
	return &StartExecutionUseCase{budgetRepo: budgetRepo, clock: clock}
}

// Execute performs the transition.
func (uc *StartExecutionUseCase) Execute(ctx context.Context, input TransitionBudgetInput) (*TransitionBudgetOutput, error) {
	budget, err := transition(ctx, uc.budgetRepo, input.BudgetID, entity.BudgetStatusInExecution, uc.clock)
	if err != nil {
		return nil, err
	}
	return &TransitionBudgetOutput{Budget: budget}, nil
}

// transition loads, validates and applies a lifecycle transition.
func transition(ctx context.Context, repo adapter.BudgetRepository, budgetID uuid.UUID, target entity.BudgetStatus, clock adapter.Clock) (*entity.Budget, error) {
	budget, err := repo.FindByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if !budget.CanTransitionTo(target) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidStatusTransition,
			fmt.Sprintf("cannot move budget from %s to %s", budget.Status, target),
			domainerror.ErrInvalidStatusTransition,
		)
	}

	budget.TransitionTo(target, clock.Now())
	budget.Version++
	if err := repo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget status: %w", err)
	}

	slog.Info("Budget status changed", "budgetID", budget.ID, "status", target)
	return budget, nil
}
