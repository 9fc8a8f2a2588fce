// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/event-budget/backend/internal/application/adapter"
	domainerror "github.com/event-budget/backend/internal/domain/error"
	"github.com/event-budget/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// ApproverIDKey is the context key for the authenticated approver's ID.
	ApproverIDKey ContextKey = "approver_id"
	// ApproverEmailKey is the context key for the authenticated approver's email.
	ApproverEmailKey ContextKey = "approver_email"
	// ApproverLevelKey is the context key for the approver's authorization level.
	ApproverLevelKey ContextKey = "approver_level"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Token is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		c.Set(string(ApproverIDKey), claims.ApproverID)
		c.Set(string(ApproverEmailKey), claims.Email)
		c.Set(string(ApproverLevelKey), claims.AuthorizationLevel)

		c.Next()
	}
}

// GetApproverIDFromContext extracts the approver ID from the Gin context.
func GetApproverIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	approverID, exists := c.Get(string(ApproverIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := approverID.(uuid.UUID)
	return id, ok
}

// GetApproverEmailFromContext extracts the approver email from the Gin context.
func GetApproverEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(ApproverEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}

// GetApproverLevelFromContext extracts the authorization level from the Gin
// context.
func GetApproverLevelFromContext(c *gin.Context) (int, bool) {
	level, exists := c.Get(string(ApproverLevelKey))
	if !exists {
		return 0, false
	}
	levelInt, ok := level.(int)
	return levelInt, ok
}
