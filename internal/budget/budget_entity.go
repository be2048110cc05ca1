package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetAllocation struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProjectID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_budget_allocation_project_category"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_budget_allocation_project_category"`
	PlannedAmount decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	UpdatedBy     uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// The models below belong to the construction module and are read only here.

type ConstructionProject struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"type:varchar(150)"`
	Budget     decimal.Decimal `gorm:"type:numeric(18,2)"`
	ActualCost decimal.Decimal `gorm:"type:numeric(18,2)"`
	Status     string          `gorm:"type:varchar(30)"`
}

type ProjectWorkItem struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID        `gorm:"type:uuid;not null"`
	ProjectID  uuid.UUID        `gorm:"type:uuid;not null"`
	CategoryID uuid.UUID        `gorm:"type:uuid;not null"`
	Name       string           `gorm:"type:varchar(150)"`
	ActualCost *decimal.Decimal `gorm:"type:numeric(18,2)"`
}

type PaymentRequest struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null"`
	ProjectID  uuid.UUID       `gorm:"type:uuid;not null"`
	CategoryID *uuid.UUID      `gorm:"type:uuid"`
	Amount     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status     string          `gorm:"type:varchar(20);not null"`
}

func (ConstructionProject) TableName() string {
	return "construction_projects"
}

func (ProjectWorkItem) TableName() string {
	return "project_work_items"
}

func (PaymentRequest) TableName() string {
	return "payment_requests"
}
