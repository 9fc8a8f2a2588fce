// Package error defines domain-specific errors for the event budget engine.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrCategoryNotFound is returned when a category is not found in the budget.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrMissingEventScale is returned when the event profile lacks the scale field.
	ErrMissingEventScale = errors.New("event profile scale is required")

	// ErrMissingEventDuration is returned when the event profile lacks the duration field.
	ErrMissingEventDuration = errors.New("event profile duration is required")

	// ErrInvalidStatusTransition is returned when a lifecycle transition is not allowed.
	ErrInvalidStatusTransition = errors.New("invalid budget status transition")

	// ErrBudgetAlreadyReconciled is returned when mutating an archived budget.
	ErrBudgetAlreadyReconciled = errors.New("budget is reconciled and archived")

	// ErrEmptyThresholdTable is returned when the approval threshold table is empty.
	ErrEmptyThresholdTable = errors.New("approval threshold table is empty")

	// ErrThresholdTableNotMonotonic is returned when thresholds are not strictly ascending.
	ErrThresholdTableNotMonotonic = errors.New("approval threshold table is not monotonically increasing")

	// ErrAllocationMismatch is returned when category allocations plus contingency
	// do not add up to the budget total.
	ErrAllocationMismatch = errors.New("category allocations plus contingency do not equal budget total")

	// ErrInvalidBudgetInput is returned when a budget input fails schema validation.
	ErrInvalidBudgetInput = errors.New("invalid budget input")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingEventScale    BudgetErrorCode = "BUD-010001"
	ErrCodeMissingEventDuration BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidBudgetInput   BudgetErrorCode = "BUD-010003"
	ErrCodeThresholdTable       BudgetErrorCode = "BUD-010004"
	ErrCodeAllocationMismatch   BudgetErrorCode = "BUD-010005"

	// Lifecycle errors (02XXXX)
	ErrCodeBudgetNotFound          BudgetErrorCode = "BUD-020001"
	ErrCodeCategoryNotFound        BudgetErrorCode = "BUD-020002"
	ErrCodeInvalidStatusTransition BudgetErrorCode = "BUD-020003"
	ErrCodeBudgetAlreadyReconciled BudgetErrorCode = "BUD-020004"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
