// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/event-budget/backend/internal/application/adapter"
)

// resendNotifier implements adapter.NotificationService via Resend. A failed
// send is returned to the caller, which logs it without failing the decision
// that triggered the notification.
type resendNotifier struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendNotifier creates a new Resend-backed notification service.
func NewResendNotifier(apiKey, fromName, fromEmail string) adapter.NotificationService {
	return &resendNotifier{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// NotifyReallocationOutcome notifies about an approved or rejected request.
func (n *resendNotifier) NotifyReallocationOutcome(ctx context.Context, notification adapter.ReallocationNotification) error {
	subject := fmt.Sprintf("Reallocation %s: %s", notification.Outcome, notification.BudgetName)
	text := fmt.Sprintf(
		"Hi %s,\n\nThe reallocation of %s %s from %s to %s on budget %q was %s.\n",
		notification.RecipientName,
		notification.Amount.StringFixed(2),
		notification.Currency,
		notification.FromCategory,
		notification.ToCategory,
		notification.BudgetName,
		notification.Outcome,
	)
	return n.send(ctx, notification.RecipientEmail, subject, text)
}

// NotifyEscalation notifies the required approver about an escalated request.
func (n *resendNotifier) NotifyEscalation(ctx context.Context, notification adapter.ReallocationNotification) error {
	subject := fmt.Sprintf("Approval needed: reallocation on %s", notification.BudgetName)
	text := fmt.Sprintf(
		"Hi %s,\n\nA reallocation of %s %s from %s to %s on budget %q requires sign-off at the %s level.\n",
		notification.RecipientName,
		notification.Amount.StringFixed(2),
		notification.Currency,
		notification.FromCategory,
		notification.ToCategory,
		notification.BudgetName,
		notification.RequiredRole,
	)
	return n.send(ctx, notification.RecipientEmail, subject, text)
}

// logNotifier implements adapter.NotificationService by logging only. Used
// when outbound notifications are disabled or no API key is configured.
type logNotifier struct{}

// NewLogNotifier creates a notification service that only logs.
func NewLogNotifier() adapter.NotificationService {
	return &logNotifier{}
}

// NotifyReallocationOutcome logs the outcome notification.
func (n *logNotifier) NotifyReallocationOutcome(ctx context.Context, notification adapter.ReallocationNotification) error {
	slog.Info("Reallocation outcome notification suppressed",
		"recipient", notification.RecipientEmail,
		"budget", notification.BudgetName,
		"outcome", notification.Outcome,
	)
	return nil
}

// NotifyEscalation logs the escalation notification.
func (n *logNotifier) NotifyEscalation(ctx context.Context, notification adapter.ReallocationNotification) error {
	slog.Info("Reallocation escalation notification suppressed",
		"recipient", notification.RecipientEmail,
		"budget", notification.BudgetName,
		"required_role", notification.RequiredRole,
	)
	return nil
}

func (n *resendNotifier) send(ctx context.Context, to, subject, text string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail),
		To:      []string{to},
		Subject: subject,
		Text:    text,
	}

	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
