// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/event-budget/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EventID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"type:varchar(120);not null"`
	Currency          string          `gorm:"type:char(3);not null"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	TotalBudget       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ContingencyPct    decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	ContingencyAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Version           int64           `gorm:"not null;default:1"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
	ArchivedAt        *time.Time      `gorm:"type:timestamptz"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:                m.ID,
		EventID:           m.EventID,
		Name:              m.Name,
		Currency:          m.Currency,
		Status:            entity.BudgetStatus(m.Status),
		TotalBudget:       m.TotalBudget,
		ContingencyPct:    m.ContingencyPct,
		ContingencyAmount: m.ContingencyAmount,
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		ArchivedAt:        m.ArchivedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:                budget.ID,
		EventID:           budget.EventID,
		Name:              budget.Name,
		Currency:          budget.Currency,
		Status:            string(budget.Status),
		TotalBudget:       budget.TotalBudget,
		ContingencyPct:    budget.ContingencyPct,
		ContingencyAmount: budget.ContingencyAmount,
		Version:           budget.Version,
		CreatedAt:         budget.CreatedAt,
		UpdatedAt:         budget.UpdatedAt,
		ArchivedAt:        budget.ArchivedAt,
	}
}

// CategoryModel represents the budget_categories table in the database.
type CategoryModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BudgetID        uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_budget_category_code"`
	Code            string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_budget_category_code"`
	Name            string          `gorm:"type:varchar(100);not null"`
	AllocatedAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TypicalPct      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Position        int             `gorm:"not null"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`

	Budget *BudgetModel `gorm:"foreignKey:BudgetID;references:ID"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "budget_categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:              m.ID,
		BudgetID:        m.BudgetID,
		Code:            m.Code,
		Name:            m.Name,
		AllocatedAmount: m.AllocatedAmount,
		TypicalPct:      m.TypicalPct,
		Position:        m.Position,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:              category.ID,
		BudgetID:        category.BudgetID,
		Code:            category.Code,
		Name:            category.Name,
		AllocatedAmount: category.AllocatedAmount,
		TypicalPct:      category.TypicalPct,
		Position:        category.Position,
		CreatedAt:       category.CreatedAt,
		UpdatedAt:       category.UpdatedAt,
	}
}

// LineItemModel represents the line_items table in the database.
type LineItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Code        string          `gorm:"type:varchar(60);not null"`
	Description string          `gorm:"type:varchar(255);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	VendorRef   *string         `gorm:"type:varchar(100)"`
	Note        *string         `gorm:"type:text"`
	Placeholder bool            `gorm:"default:false"`
	CreatedAt   time.Time       `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the LineItemModel.
func (LineItemModel) TableName() string {
	return "line_items"
}

// ToEntity converts a LineItemModel to a domain LineItem entity.
func (m *LineItemModel) ToEntity() *entity.LineItem {
	return &entity.LineItem{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Code:        m.Code,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Total:       m.Total,
		VendorRef:   m.VendorRef,
		Note:        m.Note,
		Placeholder: m.Placeholder,
		CreatedAt:   m.CreatedAt,
	}
}

// LineItemFromEntity creates a LineItemModel from a domain LineItem entity.
func LineItemFromEntity(item *entity.LineItem) *LineItemModel {
	return &LineItemModel{
		ID:          item.ID,
		CategoryID:  item.CategoryID,
		Code:        item.Code,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Total:       item.Total,
		VendorRef:   item.VendorRef,
		Note:        item.Note,
		Placeholder: item.Placeholder,
		CreatedAt:   item.CreatedAt,
	}
}
