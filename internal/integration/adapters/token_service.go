// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/event-budget/backend/internal/application/adapter"
	"github.com/event-budget/backend/internal/domain/entity"
	domainerror "github.com/event-budget/backend/internal/domain/error"
)

const (
	defaultAccessTokenDuration = 12 * time.Hour

	tokenIssuer = "event-budget"
)

// CustomClaims represents the custom claims for JWT access tokens. The
// authorization level travels in the token so the approval middleware does
// not need a database round trip.
type CustomClaims struct {
	ApproverID         string `json:"approver_id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	AuthorizationLevel int    `json:"authorization_level"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret        []byte
	tokenDuration time.Duration
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string, tokenDuration time.Duration) adapter.TokenService {
	if tokenDuration <= 0 {
		tokenDuration = defaultAccessTokenDuration
	}
	return &tokenService{
		secret:        []byte(secret),
		tokenDuration: tokenDuration,
	}
}

// GenerateAccessToken generates a signed access token for an approver.
func (s *tokenService) GenerateAccessToken(ctx context.Context, approver *entity.Approver) (string, error) {
	now := time.Now().UTC()
	claims := CustomClaims{
		ApproverID:         approver.ID.String(),
		Email:              approver.Email,
		Role:               string(approver.Role),
		AuthorizationLevel: approver.AuthorizationLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   approver.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateAccessToken validates a token and returns its claims.
func (s *tokenService) ValidateAccessToken(ctx context.Context, tokenString string) (*adapter.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"failed to parse token",
			err,
		)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid token claims",
			domainerror.ErrInvalidToken,
		)
	}

	approverID, err := uuid.Parse(claims.ApproverID)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid approver ID in token",
			err,
		)
	}

	return &adapter.TokenClaims{
		ApproverID:         approverID,
		Email:              claims.Email,
		Role:               entity.ApproverRole(claims.Role),
		AuthorizationLevel: claims.AuthorizationLevel,
	}, nil
}
