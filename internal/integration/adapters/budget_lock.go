// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/event-budget/backend/internal/application/adapter"
	domainerror "github.com/event-budget/backend/internal/domain/error"
)

// redisBudgetLock implements adapter.BudgetLock on a Redis SET NX key with a
// TTL. The TTL guards against a crashed holder leaving the budget locked
// forever; a normal commit releases explicitly.
type redisBudgetLock struct {
	client *redis.Client
}

// NewRedisBudgetLock creates a new budget lock backed by Redis.
func NewRedisBudgetLock(client *redis.Client) adapter.BudgetLock {
	return &redisBudgetLock{
		client: client,
	}
}

// Acquire takes the lock for the budget, failing when another writer holds it.
func (l *redisBudgetLock) Acquire(ctx context.Context, budgetID uuid.UUID, ttl time.Duration) error {
	acquired, err := l.client.SetNX(ctx, lockKey(budgetID), "1", ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire budget lock: %w", err)
	}
	if !acquired {
		return domainerror.NewReallocationError(
			domainerror.ErrCodeBudgetVersionConflict,
			"another reallocation is being committed for this budget",
			domainerror.ErrBudgetVersionConflict,
		)
	}
	return nil
}

// Release frees the lock for the budget.
func (l *redisBudgetLock) Release(ctx context.Context, budgetID uuid.UUID) error {
	if err := l.client.Del(ctx, lockKey(budgetID)).Err(); err != nil {
		return fmt.Errorf("failed to release budget lock: %w", err)
	}
	return nil
}

func lockKey(budgetID uuid.UUID) string {
	return "budget-lock:" + budgetID.String()
}
