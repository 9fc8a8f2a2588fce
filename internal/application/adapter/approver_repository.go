// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/event-budget/backend/internal/domain/entity"
)

// ApproverRepository defines the interface for approver account persistence.
type ApproverRepository interface {
	// Create persists a new approver account.
	Create(ctx context.Context, approver *entity.Approver) error

	// FindByID retrieves an approver by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Approver, error)

	// FindByEmail retrieves an approver by email.
	FindByEmail(ctx context.Context, email string) (*entity.Approver, error)

	// ExistsByEmail checks whether an approver with the email already exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PasswordService defines the interface for password hashing operations.
type PasswordService interface {
	// HashPassword hashes a plain text password.
	HashPassword(password string) (string, error)

	// VerifyPassword compares a plain text password with a hashed password.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength validates minimum password requirements.
	ValidatePasswordStrength(password string) error
}

// TokenClaims carries the identity and authorization level of an approver
// as encoded in an access token. The level feeds reallocation routing.
type TokenClaims struct {
	ApproverID         uuid.UUID
	Email              string
	Role               entity.ApproverRole
	AuthorizationLevel int
}

// TokenService defines the interface for access token operations.
type TokenService interface {
	// GenerateAccessToken generates a signed access token for an approver.
	GenerateAccessToken(ctx context.Context, approver *entity.Approver) (string, error)

	// ValidateAccessToken validates a token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
