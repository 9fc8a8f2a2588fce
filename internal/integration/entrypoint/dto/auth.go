// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/event-budget/backend/internal/domain/entity"
)

// RegisterApproverRequest represents the request body for approver registration.
type RegisterApproverRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=120"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=team_lead director vp cfo"`
}

// LoginRequest represents the request body for approver login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ApproverResponse represents an approver account in API responses.
type ApproverResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               string    `json:"role"`
	AuthorizationLevel int       `json:"authorization_level"`
	CreatedAt          time.Time `json:"created_at"`
}

// AuthResponse represents the response for registration and login.
type AuthResponse struct {
	AccessToken string           `json:"access_token"`
	Approver    ApproverResponse `json:"approver"`
}

// ToApproverResponse converts a domain Approver entity to an ApproverResponse DTO.
func ToApproverResponse(approver *entity.Approver) ApproverResponse {
	return ApproverResponse{
		ID:                 approver.ID.String(),
		Email:              approver.Email,
		Name:               approver.Name,
		Role:               string(approver.Role),
		AuthorizationLevel: approver.AuthorizationLevel,
		CreatedAt:          approver.CreatedAt,
	}
}
