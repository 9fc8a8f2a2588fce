// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/domain/entity"
)

// ReallocationRequestModel represents the reallocation_requests table.
type ReallocationRequestModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BudgetID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	FromCategoryCode string          `gorm:"type:varchar(50);not null"`
	ToCategoryCode   string          `gorm:"type:varchar(50);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Reason           string          `gorm:"type:text;not null"`
	Urgency          string          `gorm:"type:varchar(10);not null"`
	RequesterID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	RequesterLevel   int             `gorm:"not null"`
	Status           string          `gorm:"type:varchar(25);not null;index"`
	IsFeasible       bool            `gorm:"default:false"`
	RequiredLevel    int             `gorm:"not null"`
	RequiredRole     string          `gorm:"type:varchar(20);not null"`
	Recommendation   string          `gorm:"type:varchar(30)"`
	Conditions       pq.StringArray  `gorm:"type:text[]"`
	BudgetVersion    int64           `gorm:"not null"`
	CreatedAt        time.Time       `gorm:"not null;index"`
	DecidedAt        *time.Time      `gorm:"type:timestamptz"`
	DecidedBy        *uuid.UUID      `gorm:"type:uuid"`

	Budget *BudgetModel `gorm:"foreignKey:BudgetID;references:ID"`
}

// TableName returns the table name for the ReallocationRequestModel.
func (ReallocationRequestModel) TableName() string {
	return "reallocation_requests"
}

// ToEntity converts a ReallocationRequestModel to a domain entity.
func (m *ReallocationRequestModel) ToEntity() *entity.ReallocationRequest {
	return &entity.ReallocationRequest{
		ID:               m.ID,
		BudgetID:         m.BudgetID,
		FromCategoryCode: m.FromCategoryCode,
		ToCategoryCode:   m.ToCategoryCode,
		Amount:           m.Amount,
		Reason:           m.Reason,
		Urgency:          entity.ReallocationUrgency(m.Urgency),
		RequesterID:      m.RequesterID,
		RequesterLevel:   m.RequesterLevel,
		Status:           entity.ReallocationStatus(m.Status),
		IsFeasible:       m.IsFeasible,
		RequiredLevel:    m.RequiredLevel,
		RequiredRole:     m.RequiredRole,
		Recommendation:   entity.ReallocationRecommendation(m.Recommendation),
		Conditions:       []string(m.Conditions),
		BudgetVersion:    m.BudgetVersion,
		CreatedAt:        m.CreatedAt,
		DecidedAt:        m.DecidedAt,
		DecidedBy:        m.DecidedBy,
	}
}

// ReallocationRequestFromEntity creates a model from a domain entity.
func ReallocationRequestFromEntity(request *entity.ReallocationRequest) *ReallocationRequestModel {
	return &ReallocationRequestModel{
		ID:               request.ID,
		BudgetID:         request.BudgetID,
		FromCategoryCode: request.FromCategoryCode,
		ToCategoryCode:   request.ToCategoryCode,
		Amount:           request.Amount,
		Reason:           request.Reason,
		Urgency:          string(request.Urgency),
		RequesterID:      request.RequesterID,
		RequesterLevel:   request.RequesterLevel,
		Status:           string(request.Status),
		IsFeasible:       request.IsFeasible,
		RequiredLevel:    request.RequiredLevel,
		RequiredRole:     request.RequiredRole,
		Recommendation:   string(request.Recommendation),
		Conditions:       pq.StringArray(request.Conditions),
		BudgetVersion:    request.BudgetVersion,
		CreatedAt:        request.CreatedAt,
		DecidedAt:        request.DecidedAt,
		DecidedBy:        request.DecidedBy,
	}
}

// AuditEntryModel represents the write-once reallocation_audit_trail table.
// Rows are inserted and read, never updated or deleted.
type AuditEntryModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BudgetID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	RequestID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Action           string          `gorm:"type:varchar(30);not null"`
	Actor            uuid.UUID       `gorm:"type:uuid;not null"`
	FromCategoryCode string          `gorm:"type:varchar(50);not null"`
	ToCategoryCode   string          `gorm:"type:varchar(50);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	FromBefore       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	FromAfter        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ToBefore         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ToAfter          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RequestTimestamp time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the AuditEntryModel.
func (AuditEntryModel) TableName() string {
	return "reallocation_audit_trail"
}

// ToEntity converts an AuditEntryModel to a domain entity.
func (m *AuditEntryModel) ToEntity() *entity.AuditEntry {
	return &entity.AuditEntry{
		ID:               m.ID,
		BudgetID:         m.BudgetID,
		RequestID:        m.RequestID,
		Action:           m.Action,
		Actor:            m.Actor,
		FromCategoryCode: m.FromCategoryCode,
		ToCategoryCode:   m.ToCategoryCode,
		Amount:           m.Amount,
		FromBefore:       m.FromBefore,
		FromAfter:        m.FromAfter,
		ToBefore:         m.ToBefore,
		ToAfter:          m.ToAfter,
		RequestTimestamp: m.RequestTimestamp,
	}
}

// AuditEntryFromEntity creates a model from a domain entity.
func AuditEntryFromEntity(entry *entity.AuditEntry) *AuditEntryModel {
	return &AuditEntryModel{
		ID:               entry.ID,
		BudgetID:         entry.BudgetID,
		RequestID:        entry.RequestID,
		Action:           entry.Action,
		Actor:            entry.Actor,
		FromCategoryCode: entry.FromCategoryCode,
		ToCategoryCode:   entry.ToCategoryCode,
		Amount:           entry.Amount,
		FromBefore:       entry.FromBefore,
		FromAfter:        entry.FromAfter,
		ToBefore:         entry.ToBefore,
		ToAfter:          entry.ToAfter,
		RequestTimestamp: entry.RequestTimestamp,
	}
}
