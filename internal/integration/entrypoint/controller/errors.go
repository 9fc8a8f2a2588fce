// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/integration/entrypoint/dto"
)

// handleBudgetError maps budget domain errors to HTTP responses.
func handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(statusCodeForBudgetError(budgetErr.Code), dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func statusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound, domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidStatusTransition, domainerror.ErrCodeBudgetAlreadyReconciled:
		return http.StatusConflict
	case domainerror.ErrCodeMissingEventScale,
		domainerror.ErrCodeMissingEventDuration,
		domainerror.ErrCodeInvalidBudgetInput,
		domainerror.ErrCodeThresholdTable,
		domainerror.ErrCodeAllocationMismatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleReallocationError maps reallocation domain errors to HTTP responses.
// Budget errors surface too because the workflow reads the budget aggregate.
func handleReallocationError(ctx *gin.Context, err error) {
	var reallocErr *domainerror.ReallocationError
	if errors.As(err, &reallocErr) {
		ctx.JSON(statusCodeForReallocationError(reallocErr.Code), dto.ErrorResponse{
			Error: reallocErr.Message,
			Code:  string(reallocErr.Code),
		})
		return
	}

	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func statusCodeForReallocationError(code domainerror.ReallocationErrorCode) int {
	switch code {
	case domainerror.ErrCodeReallocationNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBudgetVersionConflict, domainerror.ErrCodeRequestAlreadyDecided:
		return http.StatusConflict
	case domainerror.ErrCodeInsufficientAuthorization:
		return http.StatusForbidden
	case domainerror.ErrCodeReallocationInfeasible:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeInvalidReallocationInput,
		domainerror.ErrCodeSameCategoryTransfer,
		domainerror.ErrCodeNonPositiveAmount:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleAuthError maps auth domain errors to HTTP responses.
func handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(statusCodeForAuthError(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func statusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case domainerror.ErrCodeApproverNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeInvalidToken, domainerror.ErrCodeExpiredToken, domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidRole:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
