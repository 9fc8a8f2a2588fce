// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReallocationNotification carries the fields of a reallocation outcome
// notification sent to the relevant approver.
type ReallocationNotification struct {
	RecipientEmail string
	RecipientName  string
	BudgetName     string
	FromCategory   string
	ToCategory     string
	Amount         decimal.Decimal
	Currency       string
	Outcome        string
	RequiredRole   string
}

// NotificationService defines the interface for host-side notifications.
// Notifications are an external side effect invoked after a pure decision
// has been computed; a notification failure never fails the decision.
type NotificationService interface {
	// NotifyReallocationOutcome notifies about an approved or rejected request.
	NotifyReallocationOutcome(ctx context.Context, notification ReallocationNotification) error

	// NotifyEscalation notifies the required approver about an escalated request.
	NotifyEscalation(ctx context.Context, notification ReallocationNotification) error
}
