package reallocation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
)

// memBudgetRepo is an in-memory BudgetRepository for workflow tests.
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
	r.budgets[budget.ID] = budget
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
			copied := *category
			return &copied, nil
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

func (r *memBudgetRepo) CommitReallocation(_ context.Context, budgetID uuid.UUID, expectedVersion int64, fromCode, toCode string, amount decimal.Decimal) error {
	budget, ok := r.budgets[budgetID]
	if !ok {
		return domainerror.NewBudgetError(domainerror.ErrCodeBudgetNotFound, "budget not found", domainerror.ErrBudgetNotFound)
	}
	if budget.Version != expectedVersion {
		return domainerror.NewReallocationError(domainerror.ErrCodeBudgetVersionConflict, "stale budget version", domainerror.ErrBudgetVersionConflict)
	}
	var from, to *entity.Category
	for _, category := range r.categories[budgetID] {
		switch category.Code {
		case fromCode:
			from = category
		case toCode:
			to = category
		}
	}
	if from == nil || to == nil {
		return domainerror.NewBudgetError(domainerror.ErrCodeCategoryNotFound, "category not found", domainerror.ErrCategoryNotFound)
	}
	from.AllocatedAmount = from.AllocatedAmount.Sub(amount)
	to.AllocatedAmount = to.AllocatedAmount.Add(amount)
	budget.Version++
	return nil
}

// memReallocationRepo is an in-memory ReallocationRepository.
type memReallocationRepo struct {
	requests map[uuid.UUID]*entity.ReallocationRequest
}

func newMemReallocationRepo() *memReallocationRepo {
	return &memReallocationRepo{requests: make(map[uuid.UUID]*entity.ReallocationRequest)}
}

func (r *memReallocationRepo) Create(_ context.Context, request *entity.ReallocationRequest) error {
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *memReallocationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ReallocationRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, domainerror.NewReallocationError(domainerror.ErrCodeReallocationNotFound, "request not found", domainerror.ErrReallocationNotFound)
	}
	copied := *request
	return &copied, nil
}

func (r *memReallocationRepo) FindByBudgetID(_ context.Context, budgetID uuid.UUID) ([]*entity.ReallocationRequest, error) {
	var result []*entity.ReallocationRequest
	for _, request := range r.requests {
		if request.BudgetID == budgetID {
			copied := *request
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memReallocationRepo) Update(_ context.Context, request *entity.ReallocationRequest) error {
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

// memAuditRepo is an in-memory append-only AuditTrailRepository.
type memAuditRepo struct {
	entries []*entity.AuditEntry
}

func (r *memAuditRepo) Append(_ context.Context, entry *entity.AuditEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memAuditRepo) FindByBudgetID(_ context.Context, budgetID uuid.UUID) ([]*entity.AuditEntry, error) {
	var result []*entity.AuditEntry
	for _, entry := range r.entries {
		if entry.BudgetID == budgetID {
			result = append(result, entry)
		}
	}
	return result, nil
}

// memLock is an in-memory BudgetLock.
type memLock struct {
	mu   sync.Mutex
	held map[uuid.UUID]bool
	// failAcquire forces Acquire to fail, simulating a concurrent holder.
	failAcquire bool
}

func newMemLock() *memLock {
	return &memLock{held: make(map[uuid.UUID]bool)}
}

func (l *memLock) Acquire(_ context.Context, budgetID uuid.UUID, _ time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failAcquire || l.held[budgetID] {
		return errors.New("lock held")
	}
	l.held[budgetID] = true
	return nil
}

func (l *memLock) Release(_ context.Context, budgetID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, budgetID)
	return nil
}

// recordingNotifier captures notifications instead of sending them.
type recordingNotifier struct {
	outcomes    []adapter.ReallocationNotification
	escalations []adapter.ReallocationNotification
	err         error
}

func (n *recordingNotifier) NotifyReallocationOutcome(_ context.Context, notification adapter.ReallocationNotification) error {
	n.outcomes = append(n.outcomes, notification)
	return n.err
}

func (n *recordingNotifier) NotifyEscalation(_ context.Context, notification adapter.ReallocationNotification) error {
	n.escalations = append(n.escalations, notification)
	return n.err
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type randomIDs struct{}

func (randomIDs) NewID() uuid.UUID { return uuid.New() }
