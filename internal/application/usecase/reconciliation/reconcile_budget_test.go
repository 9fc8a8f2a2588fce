package reconciliation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

type memBudgetRepo struct {
	budgets    map[uuid.UUID]*entity.Budget
	categories map[uuid.UUID][]*entity.Category
}

func newMemBudgetRepo() *memBudgetRepo {
	return &memBudgetRepo{
		budgets:    make(map[uuid.UUID]*entity.Budget),
		categories: make(map[uuid.UUID][]*entity.Category),
	}
}

func (r *memBudgetRepo) Create(_ context.Context, budget *entity.Budget, categories []*entity.Category, _ []*entity.LineItem) error {
	copied := *budget
	r.budgets[budget.ID] = &copied
	r.categories[budget.ID] = categories
	return nil
}

func (r *memBudgetRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	budget, ok := r.budgets[id]
	if !ok {
		return nil, domainerror.NewBudgetError(domainerror.ErrCodeBudgetNotFound, "budget not found", domainerror.ErrBudgetNotFound)
	}
	copied := *budget
	return &copied, nil
}

func (r *memBudgetRepo) FindCategories(_ context.Context, budgetID uuid.UUID) ([]*entity.Category, error) {
	return r.categories[budgetID], nil
}

func (r *memBudgetRepo) FindCategoryByCode(_ context.Context, budgetID uuid.UUID, code string) (*entity.Category, error) {
	for _, category := range r.categories[budgetID] {
		if category.Code == code {
			return category, nil
		}
	}
	return nil, domainerror.NewBudgetError(domainerror.ErrCodeCategoryNotFound, "category not found", domainerror.ErrCategoryNotFound)
}

func (r *memBudgetRepo) FindLineItems(_ context.Context, _ uuid.UUID) ([]*entity.LineItem, error) {
	return nil, nil
}

func (r *memBudgetRepo) Update(_ context.Context, budget *entity.Budget) error {
	copied := *budget
	r.budgets[budget.ID] = &copied
	return nil
}

func (r *memBudgetRepo) CommitReallocation(_ context.Context, _ uuid.UUID, _ int64, _, _ string, _ decimal.Decimal) error {
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc     *ReconcileBudgetUseCase
	repo   *memBudgetRepo
	budget *entity.Budget
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC)
	repo := newMemBudgetRepo()
	budget := entity.NewBudget(uuid.New(), uuid.New(), "Summer Festival", "USD", decimal.NewFromInt(50000), decimal.NewFromInt(8), decimal.NewFromInt(4000), now)
	budget.Status = entity.BudgetStatusInExecution
	categories := []*entity.Category{
		entity.NewCategory(uuid.New(), budget.ID, "venue", "Venue & Facilities", decimal.NewFromInt(30000), decimal.NewFromInt(25), 0, now),
		entity.NewCategory(uuid.New(), budget.ID, "marketing", "Marketing & Promotion", decimal.NewFromInt(16000), decimal.NewFromInt(10), 1, now),
	}
	if err := repo.Create(context.Background(), budget, categories, nil); err != nil {
		t.Fatalf("seeding budget: %v", err)
	}
	uc := NewReconcileBudgetUseCase(repo, fixedClock{now: now.Add(24 * time.Hour)})
	return &fixture{uc: uc, repo: repo, budget: budget}
}

func (f *fixture) input() ReconcileBudgetInput {
	return ReconcileBudgetInput{
		BudgetID: f.budget.ID,
		Categories: []CategoryActualsInput{
			{CategoryCode: "venue", Actual: decimal.NewFromInt(31000), InvoicesReceived: 3, InvoicesPaid: 3},
			{CategoryCode: "marketing", Actual: decimal.NewFromInt(14000), InvoicesReceived: 2, InvoicesPaid: 1},
		},
		ProjectedRevenue: decimal.NewFromInt(60000),
		ActualRevenue:    decimal.NewFromInt(58000),
	}
}

func TestReconcileBudgetUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("settles categories and archives the budget", func(t *testing.T) {
		f := newFixture(t)
		output, err := f.uc.Execute(ctx, f.input())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Budget.Status != entity.BudgetStatusReconciled {
			t.Errorf("expected reconciled, got %s", output.Budget.Status)
		}
		if output.Budget.ArchivedAt == nil {
			t.Error("expected archived timestamp")
		}

		venue := output.Settlements[0]
		if !venue.Variance.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected venue variance 1000, got %s", venue.Variance)
		}
		if venue.Status != valueobject.SettlementReconciled {
			t.Errorf("expected venue reconciled, got %s", venue.Status)
		}

		marketing := output.Settlements[1]
		if marketing.Status != valueobject.SettlementPendingInvoice {
			t.Errorf("expected marketing pending_invoice, got %s", marketing.Status)
		}

		summary := output.Summary
		if !summary.TotalActualExpense.Equal(decimal.NewFromInt(45000)) {
			t.Errorf("expected total actual 45000, got %s", summary.TotalActualExpense)
		}
		if !summary.ExpenseVariance.Equal(decimal.NewFromInt(-1000)) {
			t.Errorf("expected expense variance -1000, got %s", summary.ExpenseVariance)
		}
		if !summary.RevenueVariance.Equal(decimal.NewFromInt(-2000)) {
			t.Errorf("expected revenue variance -2000, got %s", summary.RevenueVariance)
		}
		if !summary.NetResult.Equal(decimal.NewFromInt(13000)) {
			t.Errorf("expected net result 13000, got %s", summary.NetResult)
		}
		if summary.ROI == nil {
			t.Fatal("expected ROI")
		}

		// The archive is persisted with a version bump.
		stored, _ := f.repo.FindByID(ctx, f.budget.ID)
		if stored.Status != entity.BudgetStatusReconciled {
			t.Errorf("expected stored reconciled, got %s", stored.Status)
		}
		if stored.Version != f.budget.Version+1 {
			t.Errorf("expected version bump, got %d", stored.Version)
		}
	})

	t.Run("more paid than received invoices is a dispute", func(t *testing.T) {
		f := newFixture(t)
		input := f.input()
		input.Categories[1].InvoicesReceived = 1
		input.Categories[1].InvoicesPaid = 2
		output, err := f.uc.Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Settlements[1].Status != valueobject.SettlementInDispute {
			t.Errorf("expected in_dispute, got %s", output.Settlements[1].Status)
		}
	})

	t.Run("explicit dispute flag wins", func(t *testing.T) {
		f := newFixture(t)
		input := f.input()
		input.Categories[0].InDispute = true
		output, err := f.uc.Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Settlements[0].Status != valueobject.SettlementInDispute {
			t.Errorf("expected in_dispute, got %s", output.Settlements[0].Status)
		}
	})

	t.Run("outstanding items are listed but never netted into the summary", func(t *testing.T) {
		f := newFixture(t)
		due := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		input := f.input()
		input.Outstanding = []OutstandingInput{
			{Kind: valueobject.OutstandingPayable, Counterparty: "caterer", Description: "final invoice", Amount: decimal.NewFromInt(1200), DueDate: &due},
			{Kind: valueobject.OutstandingReceivable, Counterparty: "sponsor", Description: "sponsorship balance", Amount: decimal.NewFromInt(5000)},
		}
		output, err := f.uc.Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.OutstandingPayables) != 1 || len(output.OutstandingReceivables) != 1 {
			t.Fatalf("expected 1 payable and 1 receivable, got %d/%d", len(output.OutstandingPayables), len(output.OutstandingReceivables))
		}
		// Summary figures must match the no-outstanding run exactly.
		fb := newFixture(t)
		baseline, err := fb.uc.Execute(ctx, fb.input())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Summary.NetResult.Equal(baseline.Summary.NetResult) {
			t.Error("expected outstanding items not to move the net result")
		}
	})

	t.Run("zero actual expense leaves ROI nil", func(t *testing.T) {
		f := newFixture(t)
		input := f.input()
		input.Categories = []CategoryActualsInput{
			{CategoryCode: "venue", Actual: decimal.Zero},
		}
		output, err := f.uc.Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Summary.ROI != nil {
			t.Error("expected nil ROI for zero expense")
		}
	})

	t.Run("reconciling twice is refused", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.uc.Execute(ctx, f.input()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := f.uc.Execute(ctx, f.input())
		if !errors.Is(err, domainerror.ErrBudgetAlreadyReconciled) {
			t.Errorf("expected ErrBudgetAlreadyReconciled, got %v", err)
		}
	})

	t.Run("draft budget cannot be reconciled", func(t *testing.T) {
		f := newFixture(t)
		f.budget.Status = entity.BudgetStatusDraft
		if err := f.repo.Update(ctx, f.budget); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := f.uc.Execute(ctx, f.input())
		if !errors.Is(err, domainerror.ErrInvalidStatusTransition) {
			t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
		}
	})

	t.Run("unknown category code is refused", func(t *testing.T) {
		f := newFixture(t)
		input := f.input()
		input.Categories[0].CategoryCode = "fireworks"
		_, err := f.uc.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})
}
