// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ApproverRole represents the role of an approver in the authorization chain.
type ApproverRole string

const (
	RoleTeamLead ApproverRole = "team_lead"
	RoleDirector ApproverRole = "director"
	RoleVP       ApproverRole = "vp"
	RoleCFO      ApproverRole = "cfo"
)

// roleLevels maps roles to their authorization level, ascending.
var roleLevels = map[ApproverRole]int{
	RoleTeamLead: 1,
	RoleDirector: 2,
	RoleVP:       3,
	RoleCFO:      4,
}

// Approver represents an account that can submit and decide reallocation
// requests. The authorization level is derived from the role.
type Approver struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	PasswordHash       string
	Role               ApproverRole
	AuthorizationLevel int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewApprover creates a new Approver entity.
func NewApprover(id uuid.UUID, name, email, passwordHash string, role ApproverRole, now time.Time) *Approver {
	return &Approver{
		ID:                 id,
		Name:               name,
		Email:              email,
		PasswordHash:       passwordHash,
		Role:               role,
		AuthorizationLevel: roleLevels[role],
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// LevelForRole returns the authorization level for a role, or 0 for an
// unknown role.
func LevelForRole(role ApproverRole) int {
	return roleLevels[role]
}

// IsValidApproverRole reports whether the given role is known.
func IsValidApproverRole(role ApproverRole) bool {
	_, ok := roleLevels[role]
	return ok
}
