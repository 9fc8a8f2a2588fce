// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/domain/entity"
)

// ForecastRevisionModel represents the append-only forecast_revisions table.
type ForecastRevisionModel struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	BudgetID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	OriginalBudget  decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	CurrentForecast decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	ChangePct       *decimal.Decimal `gorm:"type:decimal(10,6)"`
	Drivers         pq.StringArray   `gorm:"type:text[]"`
	CreatedAt       time.Time        `gorm:"not null;index"`
}

// TableName returns the table name for the ForecastRevisionModel.
func (ForecastRevisionModel) TableName() string {
	return "forecast_revisions"
}

// ToEntity converts a ForecastRevisionModel to a domain entity.
func (m *ForecastRevisionModel) ToEntity() *entity.ForecastRevision {
	return &entity.ForecastRevision{
		ID:              m.ID,
		BudgetID:        m.BudgetID,
		OriginalBudget:  m.OriginalBudget,
		CurrentForecast: m.CurrentForecast,
		ChangePct:       m.ChangePct,
		Drivers:         []string(m.Drivers),
		CreatedAt:       m.CreatedAt,
	}
}

// ForecastRevisionFromEntity creates a model from a domain entity.
func ForecastRevisionFromEntity(revision *entity.ForecastRevision) *ForecastRevisionModel {
	return &ForecastRevisionModel{
		ID:              revision.ID,
		BudgetID:        revision.BudgetID,
		OriginalBudget:  revision.OriginalBudget,
		CurrentForecast: revision.CurrentForecast,
		ChangePct:       revision.ChangePct,
		Drivers:         pq.StringArray(revision.Drivers),
		CreatedAt:       revision.CreatedAt,
	}
}
