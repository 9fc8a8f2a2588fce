// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget aggregate persistence.
type BudgetRepository interface {
	// Create persists a new budget with its categories and line items.
	Create(ctx context.Context, budget *entity.Budget, categories []*entity.Category, items []*entity.LineItem) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindCategories retrieves the categories of a budget ordered by position.
	FindCategories(ctx context.Context, budgetID uuid.UUID) ([]*entity.Category, error)

	// FindCategoryByCode retrieves a single category of a budget by its code.
	FindCategoryByCode(ctx context.Context, budgetID uuid.UUID, code string) (*entity.Category, error)

	// FindLineItems retrieves the line items of a category ordered by code.
	FindLineItems(ctx context.Context, categoryID uuid.UUID) ([]*entity.LineItem, error)

	// Update persists changes to the budget root (status, totals, version).
	Update(ctx context.Context, budget *entity.Budget) error

	// CommitReallocation atomically moves amount between two categories of the
	// budget and bumps the budget version, guarded by an optimistic check on
	// expectedVersion. It returns domainerror.ErrBudgetVersionConflict when the
	// stored version no longer matches.
	CommitReallocation(ctx context.Context, budgetID uuid.UUID, expectedVersion int64, fromCode, toCode string, amount decimal.Decimal) error
}

// ReallocationRepository defines the interface for reallocation request persistence.
type ReallocationRepository interface {
	// Create persists a new reallocation request.
	Create(ctx context.Context, request *entity.ReallocationRequest) error

	// FindByID retrieves a reallocation request by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ReallocationRequest, error)

	// FindByBudgetID retrieves all requests for a budget, newest first.
	FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]*entity.ReallocationRequest, error)

	// Update persists changes to a request's workflow state.
	Update(ctx context.Context, request *entity.ReallocationRequest) error
}

// AuditTrailRepository defines the interface for the write-once audit trail.
// Entries are append-only and may be appended concurrently without conflict.
type AuditTrailRepository interface {
	// Append inserts an immutable audit entry.
	Append(ctx context.Context, entry *entity.AuditEntry) error

	// FindByBudgetID retrieves all audit entries for a budget, oldest first.
	FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]*entity.AuditEntry, error)
}

// ForecastRevisionRepository defines the interface for the append-only
// forecast revision log. Revisions are never overwritten.
type ForecastRevisionRepository interface {
	// Append inserts a forecast revision.
	Append(ctx context.Context, revision *entity.ForecastRevision) error

	// FindByBudgetID retrieves all revisions for a budget, oldest first.
	FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]*entity.ForecastRevision, error)

	// FindLatestByBudgetID retrieves the most recent revision, or nil when
	// no revision exists yet.
	FindLatestByBudgetID(ctx context.Context, budgetID uuid.UUID) (*entity.ForecastRevision, error)
}
