// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/event-budget/backend/internal/domain/entity"
)

// ApproverModel represents the approvers table in the database.
type ApproverModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"type:varchar(100);not null"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash       string    `gorm:"type:varchar(255);not null"`
	Role               string    `gorm:"type:varchar(20);not null"`
	AuthorizationLevel int       `gorm:"not null"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for the ApproverModel.
func (ApproverModel) TableName() string {
	return "approvers"
}

// ToEntity converts an ApproverModel to a domain Approver entity.
func (m *ApproverModel) ToEntity() *entity.Approver {
	return &entity.Approver{
		ID:                 m.ID,
		Name:               m.Name,
		Email:              m.Email,
		PasswordHash:       m.PasswordHash,
		Role:               entity.ApproverRole(m.Role),
		AuthorizationLevel: m.AuthorizationLevel,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ApproverFromEntity creates an ApproverModel from a domain Approver entity.
func ApproverFromEntity(approver *entity.Approver) *ApproverModel {
	return &ApproverModel{
		ID:                 approver.ID,
		Name:               approver.Name,
		Email:              approver.Email,
		PasswordHash:       approver.PasswordHash,
		Role:               string(approver.Role),
		AuthorizationLevel: approver.AuthorizationLevel,
		CreatedAt:          approver.CreatedAt,
		UpdatedAt:          approver.UpdatedAt,
	}
}
