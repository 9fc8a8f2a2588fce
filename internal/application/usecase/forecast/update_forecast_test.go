package forecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/usecase/tracking"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/domain/valueobject"
)

type fakeRevisionRepo struct {
	revisions []*entity.ForecastRevision
	appendErr error
}

func (r *fakeRevisionRepo) Append(_ context.Context, revision *entity.ForecastRevision) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.revisions = append(r.revisions, revision)
	return nil
}

func (r *fakeRevisionRepo) FindByBudgetID(_ context.Context, budgetID uuid.UUID) ([]*entity.ForecastRevision, error) {
	var result []*entity.ForecastRevision
	for _, revision := range r.revisions {
		if revision.BudgetID == budgetID {
			result = append(result, revision)
		}
	}
	return result, nil
}

func (r *fakeRevisionRepo) FindLatestByBudgetID(_ context.Context, budgetID uuid.UUID) (*entity.ForecastRevision, error) {
	revisions, _ := r.FindByBudgetID(context.Background(), budgetID)
	if len(revisions) == 0 {
		return nil, nil
	}
	return revisions[len(revisions)-1], nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type sequentialIDs struct{ ids []uuid.UUID }

func (g *sequentialIDs) NewID() uuid.UUID {
	id := uuid.New()
	g.ids = append(g.ids, id)
	return id
}

func newUseCase(repo *fakeRevisionRepo) *UpdateForecastUseCase {
	clock := fixedClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	return NewUpdateForecastUseCase(repo, clock, &sequentialIDs{}, valueobject.DefaultForecastPolicy())
}

func TestUpdateForecastUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	budgetID := uuid.New()

	t.Run("forecast from spend to date and remaining assumption", func(t *testing.T) {
		repo := &fakeRevisionRepo{}
		output, err := newUseCase(repo).Execute(ctx, UpdateForecastInput{
			BudgetID:       budgetID,
			OriginalBudget: decimal.NewFromInt(100000),
			Records: []tracking.SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.NewFromInt(60000), Actual: decimal.NewFromInt(30000), Committed: decimal.NewFromInt(10000)},
				{CategoryCode: "marketing", Budgeted: decimal.NewFromInt(40000), Actual: decimal.NewFromInt(20000)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Spend to date 60,000; remaining 20,000 + 20,000 = 40,000 at the
		// default 0.9 assumption gives 36,000.
		if !output.SpendToDate.Equal(decimal.NewFromInt(60000)) {
			t.Errorf("expected spend to date 60000, got %s", output.SpendToDate)
		}
		if !output.RemainingBudget.Equal(decimal.NewFromInt(40000)) {
			t.Errorf("expected remaining 40000, got %s", output.RemainingBudget)
		}
		if !output.CurrentForecast.Equal(decimal.NewFromInt(96000)) {
			t.Errorf("expected forecast 96000, got %s", output.CurrentForecast)
		}
		if output.ChangePct == nil || !output.ChangePct.Equal(decimal.NewFromFloat(-0.04)) {
			t.Errorf("expected change pct -0.04, got %v", output.ChangePct)
		}
		if len(repo.revisions) != 1 {
			t.Fatalf("expected 1 appended revision, got %d", len(repo.revisions))
		}
	})

	t.Run("confirmed changes apply numerically, unconfirmed are drivers only", func(t *testing.T) {
		repo := &fakeRevisionRepo{}
		output, err := newUseCase(repo).Execute(ctx, UpdateForecastInput{
			BudgetID:       budgetID,
			OriginalBudget: decimal.NewFromInt(100000),
			Records: []tracking.SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.NewFromInt(100000), Actual: decimal.NewFromInt(50000)},
			},
			KnownChanges: []KnownChangeInput{
				{Description: "extra security detail", Impact: decimal.NewFromInt(5000), Confirmed: true},
				{Description: "possible second stage", Impact: decimal.NewFromInt(20000)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !output.ConfirmedImpact.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("expected confirmed impact 5000, got %s", output.ConfirmedImpact)
		}
		// 50,000 + 50,000×0.9 + 5,000 = 100,000; the unconfirmed 20,000 must
		// not move the number.
		if !output.CurrentForecast.Equal(decimal.NewFromInt(100000)) {
			t.Errorf("expected forecast 100000, got %s", output.CurrentForecast)
		}

		drivers := output.Revision.Drivers
		if len(drivers) != 2 {
			t.Fatalf("expected 2 drivers, got %d", len(drivers))
		}
		if drivers[0] != "extra security detail" {
			t.Errorf("unexpected driver %q", drivers[0])
		}
		if drivers[1] != "unconfirmed: possible second stage" {
			t.Errorf("expected unconfirmed prefix, got %q", drivers[1])
		}
	})

	t.Run("assumption override replaces the policy default", func(t *testing.T) {
		repo := &fakeRevisionRepo{}
		assumption := decimal.NewFromInt(1)
		output, err := newUseCase(repo).Execute(ctx, UpdateForecastInput{
			BudgetID:       budgetID,
			OriginalBudget: decimal.NewFromInt(10000),
			Records: []tracking.SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.NewFromInt(10000), Actual: decimal.NewFromInt(4000)},
			},
			RemainingSpendAssumption: &assumption,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.CurrentForecast.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("expected forecast 10000, got %s", output.CurrentForecast)
		}
	})

	t.Run("overcommitted categories contribute no remaining spend", func(t *testing.T) {
		repo := &fakeRevisionRepo{}
		output, err := newUseCase(repo).Execute(ctx, UpdateForecastInput{
			BudgetID:       budgetID,
			OriginalBudget: decimal.NewFromInt(10000),
			Records: []tracking.SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.NewFromInt(10000), Actual: decimal.NewFromInt(9000), Committed: decimal.NewFromInt(3000)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.RemainingBudget.IsZero() {
			t.Errorf("expected remaining 0, got %s", output.RemainingBudget)
		}
		if !output.CurrentForecast.Equal(decimal.NewFromInt(12000)) {
			t.Errorf("expected forecast 12000, got %s", output.CurrentForecast)
		}
	})

	t.Run("zero original budget leaves change pct nil", func(t *testing.T) {
		repo := &fakeRevisionRepo{}
		output, err := newUseCase(repo).Execute(ctx, UpdateForecastInput{
			BudgetID:       budgetID,
			OriginalBudget: decimal.Zero,
			Records: []tracking.SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.Zero, Actual: decimal.NewFromInt(100)},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.ChangePct != nil {
			t.Error("expected nil change pct for zero original budget")
		}
		if output.Revision.ChangePct != nil {
			t.Error("expected nil change pct on the revision")
		}
	})

	t.Run("revision log is append-only and ordered", func(t *testing.T) {
		repo := &fakeRevisionRepo{}
		uc := newUseCase(repo)
		for _, actual := range []int64{1000, 2000, 3000} {
			_, err := uc.Execute(ctx, UpdateForecastInput{
				BudgetID:       budgetID,
				OriginalBudget: decimal.NewFromInt(10000),
				Records: []tracking.SpendInput{
					{CategoryCode: "venue", Budgeted: decimal.NewFromInt(10000), Actual: decimal.NewFromInt(actual)},
				},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		history, err := NewForecastHistoryUseCase(repo).Execute(ctx, ForecastHistoryInput{BudgetID: budgetID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(history.Revisions) != 3 {
			t.Fatalf("expected 3 revisions, got %d", len(history.Revisions))
		}
		// actual + (budget − actual)×0.9 per run, in append order.
		expected := []int64{9100, 9200, 9300}
		for i, revision := range history.Revisions {
			if !revision.CurrentForecast.Equal(decimal.NewFromInt(expected[i])) {
				t.Errorf("revision %d: expected forecast %d, got %s", i, expected[i], revision.CurrentForecast)
			}
		}
	})

	t.Run("append failure is surfaced", func(t *testing.T) {
		repo := &fakeRevisionRepo{appendErr: errors.New("db down")}
		_, err := newUseCase(repo).Execute(ctx, UpdateForecastInput{
			BudgetID:       budgetID,
			OriginalBudget: decimal.NewFromInt(10000),
			Records: []tracking.SpendInput{
				{CategoryCode: "venue", Budgeted: decimal.NewFromInt(10000), Actual: decimal.NewFromInt(1000)},
			},
		})
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("empty record list is rejected", func(t *testing.T) {
		_, err := newUseCase(&fakeRevisionRepo{}).Execute(ctx, UpdateForecastInput{
			BudgetID:       budgetID,
			OriginalBudget: decimal.NewFromInt(10000),
		})
		if !errors.Is(err, domainerror.ErrInvalidBudgetInput) {
			t.Errorf("expected ErrInvalidBudgetInput, got %v", err)
		}
	})
}
