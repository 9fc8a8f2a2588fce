// Package reallocation contains the reallocation workflow use cases.
package reallocation

import (
	"context"

	"github.com/google/uuid"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/domain/entity"
)

// ListAuditTrailInput identifies the budget whose audit trail to read.
type ListAuditTrailInput struct {
	BudgetID uuid.UUID
}

// ListAuditTrailOutput carries the audit entries, oldest first.
type ListAuditTrailOutput struct {
	Entries []*entity.AuditEntry
}

// ListAuditTrailUseCase reads a budget's immutable reallocation audit trail.
type ListAuditTrailUseCase struct {
	auditRepo adapter.AuditTrailRepository
}

// NewListAuditTrailUseCase creates a new ListAuditTrailUseCase instance.
func NewListAuditTrailUseCase(auditRepo adapter.AuditTrailRepository) *ListAuditTrailUseCase {
	return &ListAuditTrailUseCase{auditRepo: auditRepo}
}

// Execute reads the audit trail.
func (uc *ListAuditTrailUseCase) Execute(ctx context.Context, input ListAuditTrailInput) (*ListAuditTrailOutput, error) {
	entries, err := uc.auditRepo.FindByBudgetID(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}
	return &ListAuditTrailOutput{Entries: entries}, nil
}
