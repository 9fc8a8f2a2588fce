package reallocation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
)

type decideFixture struct {
	uc       *DecideReallocationUseCase
	budgets  *memBudgetRepo
	requests *memReallocationRepo
	audit    *memAuditRepo
	lock     *memLock
	notifier *recordingNotifier
	budget   *entity.Budget
	request  *entity.ReallocationRequest
}

func newDecideFixture(t *testing.T) *decideFixture {
	t.Helper()
	now := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	budgets := newMemBudgetRepo()
	requests := newMemReallocationRepo()
	audit := &memAuditRepo{}
	lock := newMemLock()
	notifier := &recordingNotifier{}

	budget := entity.NewBudget(uuid.New(), uuid.New(), "Summer Festival", "USD", decimal.NewFromInt(100000), decimal.NewFromInt(8), decimal.NewFromInt(8000), now)
	budget.Status = entity.BudgetStatusInExecution
	categories := []*entity.Category{
		entity.NewCategory(uuid.New(), budget.ID, "venue", "Venue & Facilities", decimal.NewFromInt(25000), decimal.NewFromInt(25), 0, now),
		entity.NewCategory(uuid.New(), budget.ID, "marketing", "Marketing & Promotion", decimal.NewFromInt(10000), decimal.NewFromInt(10), 1, now),
	}
	if err := budgets.Create(context.Background(), budget, categories, nil); err != nil {
		t.Fatalf("seeding budget: %v", err)
	}

	request := entity.NewReallocationRequest(uuid.New(), budget.ID, "venue", "marketing", decimal.NewFromInt(1500), "extra promotion push", entity.UrgencyMedium, uuid.New(), 2, now)
	request.Status = entity.ReallocationStatusFeasible
	request.IsFeasible = true
	request.RequiredLevel = 1
	request.RequiredRole = "team_lead"
	request.Recommendation = entity.RecommendationApproveWithConditions
	request.BudgetVersion = budget.Version
	if err := requests.Create(context.Background(), request); err != nil {
		t.Fatalf("seeding request: %v", err)
	}

	uc := NewDecideReallocationUseCase(budgets, requests, audit, lock, notifier, fixedClock{now: now}, randomIDs{})
	return &decideFixture{uc: uc, budgets: budgets, requests: requests, audit: audit, lock: lock, notifier: notifier, budget: budget, request: request}
}

func (f *decideFixture) input(decision Decision) DecideReallocationInput {
	return DecideReallocationInput{
		RequestID:  f.request.ID,
		Decision:   decision,
		ActorID:    uuid.New(),
		ActorLevel: 2,
		FromSpend: CategorySpendInput{
			Actual:    decimal.NewFromInt(10000),
			Committed: decimal.NewFromInt(5000),
		},
	}
}

func TestDecideReallocationUseCase_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("approval moves allocation and conserves the total", func(t *testing.T) {
		f := newDecideFixture(t)
		totalBefore, _ := f.budgets.FindCategories(ctx, f.budget.ID)
		sumBefore := entity.AllocationTotal(totalBefore)

		output, err := f.uc.Execute(ctx, f.input(DecisionApprove))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Request.Status != entity.ReallocationStatusApproved {
			t.Errorf("expected approved, got %s", output.Request.Status)
		}
		if output.Request.DecidedAt == nil || output.Request.DecidedBy == nil {
			t.Error("expected decision metadata")
		}
		if !output.FromAfter.Equal(decimal.NewFromInt(23500)) {
			t.Errorf("expected from after 23500, got %s", output.FromAfter)
		}
		if !output.ToAfter.Equal(decimal.NewFromInt(11500)) {
			t.Errorf("expected to after 11500, got %s", output.ToAfter)
		}

		// Conservation: the transfer is zero-sum across the two categories.
		categories, _ := f.budgets.FindCategories(ctx, f.budget.ID)
		if !entity.AllocationTotal(categories).Equal(sumBefore) {
			t.Error("expected category allocation sum to be conserved")
		}

		// The commit bumps the budget version.
		budget, _ := f.budgets.FindByID(ctx, f.budget.ID)
		if budget.Version != f.request.BudgetVersion+1 {
			t.Errorf("expected version bump to %d, got %d", f.request.BudgetVersion+1, budget.Version)
		}

		if len(f.audit.entries) != 1 {
			t.Fatalf("expected 1 audit entry, got %d", len(f.audit.entries))
		}
		entry := f.audit.entries[0]
		if entry.Action != "approved" {
			t.Errorf("expected approved action, got %s", entry.Action)
		}
		if !entry.FromBefore.Sub(entry.FromAfter).Equal(entry.ToAfter.Sub(entry.ToBefore)) {
			t.Error("expected symmetric before/after deltas")
		}

		if len(f.notifier.outcomes) != 1 {
			t.Errorf("expected 1 outcome notification, got %d", len(f.notifier.outcomes))
		}
		if len(f.lock.held) != 0 {
			t.Error("expected lock released")
		}
	})

	t.Run("stale budget version is a conflict", func(t *testing.T) {
		f := newDecideFixture(t)
		// Another writer bumped the budget after the feasibility check.
		f.budget.Version++
		if err := f.budgets.Update(ctx, f.budget); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := f.uc.Execute(ctx, f.input(DecisionApprove))
		if !errors.Is(err, domainerror.ErrBudgetVersionConflict) {
			t.Errorf("expected ErrBudgetVersionConflict, got %v", err)
		}

		// Nothing moved and no audit entry was written.
		category, _ := f.budgets.FindCategoryByCode(ctx, f.budget.ID, "venue")
		if !category.AllocatedAmount.Equal(decimal.NewFromInt(25000)) {
			t.Errorf("expected allocation unchanged, got %s", category.AllocatedAmount)
		}
		if len(f.audit.entries) != 0 {
			t.Errorf("expected no audit entries, got %d", len(f.audit.entries))
		}
		if len(f.lock.held) != 0 {
			t.Error("expected lock released after conflict")
		}
	})

	t.Run("feasibility is re-validated against fresh spend", func(t *testing.T) {
		f := newDecideFixture(t)
		input := f.input(DecisionApprove)
		// Spend moved since submission: remaining is now 1,000 < 1,500.
		input.FromSpend = CategorySpendInput{
			Actual:    decimal.NewFromInt(20000),
			Committed: decimal.NewFromInt(4000),
		}
		_, err := f.uc.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrReallocationInfeasible) {
			t.Errorf("expected ErrReallocationInfeasible, got %v", err)
		}
		category, _ := f.budgets.FindCategoryByCode(ctx, f.budget.ID, "venue")
		if !category.AllocatedAmount.Equal(decimal.NewFromInt(25000)) {
			t.Errorf("expected allocation unchanged, got %s", category.AllocatedAmount)
		}
	})

	t.Run("held lock is a conflict, not a wait", func(t *testing.T) {
		f := newDecideFixture(t)
		f.lock.failAcquire = true
		_, err := f.uc.Execute(ctx, f.input(DecisionApprove))
		if !errors.Is(err, domainerror.ErrBudgetVersionConflict) {
			t.Errorf("expected conflict error, got %v", err)
		}
	})

	t.Run("notification failure does not undo the approval", func(t *testing.T) {
		f := newDecideFixture(t)
		f.notifier.err = errors.New("smtp down")
		output, err := f.uc.Execute(ctx, f.input(DecisionApprove))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Request.Status != entity.ReallocationStatusApproved {
			t.Errorf("expected approved, got %s", output.Request.Status)
		}
	})
}

func TestDecideReallocationUseCase_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("rejection records the decision without moving allocation", func(t *testing.T) {
		f := newDecideFixture(t)
		output, err := f.uc.Execute(ctx, f.input(DecisionReject))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Request.Status != entity.ReallocationStatusRejected {
			t.Errorf("expected rejected, got %s", output.Request.Status)
		}
		if !output.FromBefore.Equal(output.FromAfter) || !output.ToBefore.Equal(output.ToAfter) {
			t.Error("expected unchanged allocations on rejection")
		}
		if len(f.audit.entries) != 1 || f.audit.entries[0].Action != "rejected" {
			t.Error("expected a rejected audit entry")
		}
		// The budget version is untouched: rejection writes nothing to the
		// category allocations.
		budget, _ := f.budgets.FindByID(ctx, f.budget.ID)
		if budget.Version != f.request.BudgetVersion {
			t.Errorf("expected version unchanged, got %d", budget.Version)
		}
	})
}

func TestDecideReallocationUseCase_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("already decided request cannot be decided again", func(t *testing.T) {
		f := newDecideFixture(t)
		if _, err := f.uc.Execute(ctx, f.input(DecisionApprove)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := f.uc.Execute(ctx, f.input(DecisionApprove))
		if !errors.Is(err, domainerror.ErrRequestAlreadyDecided) {
			t.Errorf("expected ErrRequestAlreadyDecided, got %v", err)
		}
	})

	t.Run("approval is idempotent at the allocation level", func(t *testing.T) {
		f := newDecideFixture(t)
		if _, err := f.uc.Execute(ctx, f.input(DecisionApprove)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// The replay fails, so the allocation moved exactly once.
		if _, err := f.uc.Execute(ctx, f.input(DecisionApprove)); err == nil {
			t.Fatal("expected replay to fail")
		}
		category, _ := f.budgets.FindCategoryByCode(ctx, f.budget.ID, "venue")
		if !category.AllocatedAmount.Equal(decimal.NewFromInt(23500)) {
			t.Errorf("expected single transfer to 23500, got %s", category.AllocatedAmount)
		}
	})

	t.Run("actor below the required level is refused", func(t *testing.T) {
		f := newDecideFixture(t)
		f.request.RequiredLevel = 3
		if err := f.requests.Update(ctx, f.request); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		input := f.input(DecisionApprove)
		input.ActorLevel = 2
		_, err := f.uc.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrInsufficientAuthorization) {
			t.Errorf("expected ErrInsufficientAuthorization, got %v", err)
		}
	})

	t.Run("unknown decision verb is rejected", func(t *testing.T) {
		f := newDecideFixture(t)
		input := f.input("defer")
		_, err := f.uc.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrInvalidReallocationInput) {
			t.Errorf("expected ErrInvalidReallocationInput, got %v", err)
		}
	})
}
