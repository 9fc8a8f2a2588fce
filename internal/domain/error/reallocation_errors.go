// Package error defines domain-specific errors for the event budget engine.
package error

import "errors"

// Reallocation workflow errors.
var (
	// ErrReallocationNotFound is returned when a reallocation request is not found.
	ErrReallocationNotFound = errors.New("reallocation request not found")

	// ErrReallocationInfeasible is returned when the requested amount exceeds the
	// source category's remaining balance.
	ErrReallocationInfeasible = errors.New("reallocation amount exceeds source category remaining")

	// ErrBudgetVersionConflict is returned when the budget state changed between
	// feasibility check and commit. The caller should retry with fresh state;
	// the workflow never auto-retries.
	ErrBudgetVersionConflict = errors.New("budget state changed since feasibility check")

	// ErrRequestAlreadyDecided is returned when deciding a request that is
	// already approved or rejected. Approved requests are immutable.
	ErrRequestAlreadyDecided = errors.New("reallocation request already decided")

	// ErrSameCategoryTransfer is returned when source and target categories match.
	ErrSameCategoryTransfer = errors.New("source and target category must differ")

	// ErrNonPositiveAmount is returned when the transfer amount is zero or negative.
	ErrNonPositiveAmount = errors.New("reallocation amount must be positive")

	// ErrInsufficientAuthorization is returned when the deciding approver's level
	// is below the level required for the amount.
	ErrInsufficientAuthorization = errors.New("approver authorization level below required level")

	// ErrInvalidReallocationInput is returned when a request fails schema validation.
	ErrInvalidReallocationInput = errors.New("invalid reallocation input")
)

// ReallocationErrorCode defines error codes for reallocation errors.
// Format: RAL-XXYYYY where XX is category and YYYY is specific error.
type ReallocationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidReallocationInput ReallocationErrorCode = "RAL-010001"
	ErrCodeSameCategoryTransfer     ReallocationErrorCode = "RAL-010002"
	ErrCodeNonPositiveAmount        ReallocationErrorCode = "RAL-010003"

	// Workflow errors (02XXXX)
	ErrCodeReallocationNotFound      ReallocationErrorCode = "RAL-020001"
	ErrCodeReallocationInfeasible    ReallocationErrorCode = "RAL-020002"
	ErrCodeBudgetVersionConflict     ReallocationErrorCode = "RAL-020003"
	ErrCodeRequestAlreadyDecided     ReallocationErrorCode = "RAL-020004"
	ErrCodeInsufficientAuthorization ReallocationErrorCode = "RAL-020005"
)

// ReallocationError represents a reallocation error with code and message.
type ReallocationError struct {
	Code    ReallocationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReallocationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReallocationError) Unwrap() error {
	return e.Err
}

// NewReallocationError creates a new ReallocationError with the given code and message.
func NewReallocationError(code ReallocationErrorCode, message string, err error) *ReallocationError {
	return &ReallocationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
