// Package valueobject contains domain value objects for the event budget engine.
package valueobject

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementStatus is the post-event reconciliation status of a category.
type SettlementStatus string

const (
	SettlementReconciled     SettlementStatus = "reconciled"
	SettlementPendingInvoice SettlementStatus = "pending_invoice"
	SettlementInDispute      SettlementStatus = "in_dispute"
)

// CategorySettlement is the final budget-versus-actual figure for one
// category after the event closed.
type CategorySettlement struct {
	CategoryCode     string
	Budgeted         decimal.Decimal
	Actual           decimal.Decimal
	Variance         decimal.Decimal
	VariancePct      *decimal.Decimal
	InvoicesReceived int
	InvoicesPaid     int
	Status           SettlementStatus
}

// OutstandingKind distinguishes open payables from open receivables.
type OutstandingKind string

const (
	OutstandingPayable    OutstandingKind = "payable"
	OutstandingReceivable OutstandingKind = "receivable"
)

// OutstandingItem is an open payable or receivable at reconciliation time.
// Outstanding items are always listed explicitly and never netted against
// the financial summary totals.
type OutstandingItem struct {
	Kind         OutstandingKind
	Counterparty string
	Description  string
	Amount       decimal.Decimal
	DueDate      *time.Time
}

// FinancialSummary is the closed-budget financial result. Its totals ignore
// outstanding items, which are reported separately for follow-up.
type FinancialSummary struct {
	TotalBudgeted      decimal.Decimal
	TotalActualExpense decimal.Decimal
	ExpenseVariance    decimal.Decimal
	ProjectedRevenue   decimal.Decimal
	TotalRevenue       decimal.Decimal
	RevenueVariance    decimal.Decimal
	NetResult          decimal.Decimal
	// ROI is net result over actual expense, nil when expense is zero.
	ROI *decimal.Decimal
}
