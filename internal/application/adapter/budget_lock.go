// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BudgetLock serializes writers of a single budget's category allocations.
// Reallocation commits hold the lock for the duration of the re-validation
// and write so two concurrent requests cannot both approve against the same
// stale remaining balance.
type BudgetLock interface {
	// Acquire takes the lock for the budget, or returns an error when another
	// writer holds it. The lock expires after ttl as a crash guard.
	Acquire(ctx context.Context, budgetID uuid.UUID, ttl time.Duration) error

	// Release frees the lock for the budget.
	Release(ctx context.Context, budgetID uuid.UUID) error
}
