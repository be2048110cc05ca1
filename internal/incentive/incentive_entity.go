package incentive

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	WarningRewardRoundedToZero = "reward_rounded_to_zero"
	WarningNoMatchingTier      = "no_matching_tier"

	AwardNumberPrefix = "INC"

	SalesStatusCompleted = "completed"
)

type IncentiveAward struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	AwardNumber        string          `gorm:"type:varchar(30);not null"`
	BranchID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_incentive_award_branch_period"`
	PeriodStart        time.Time       `gorm:"type:date;not null;uniqueIndex:uq_incentive_award_branch_period"`
	PeriodEnd          time.Time       `gorm:"type:date;not null;uniqueIndex:uq_incentive_award_branch_period"`
	TargetAmount       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	AchievedAmount     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	AchievementPercent decimal.Decimal `gorm:"type:numeric(9,4);not null"`
	TierID             *uuid.UUID      `gorm:"type:uuid"`
	TierName           *string         `gorm:"type:varchar(100)"`
	CalculatedReward   decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	FinalReward        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	AdjustmentNote     *string         `gorm:"type:text"`
	Status             string          `gorm:"type:varchar(20);not null;index"`
	Version            int             `gorm:"not null;default:1"`
	CreatedBy          uuid.UUID       `gorm:"type:uuid;not null"`
	ApprovedBy         *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt         *time.Time
	PaidBy             *uuid.UUID `gorm:"type:uuid"`
	PaidAt             *time.Time
	CancelledBy        *uuid.UUID `gorm:"type:uuid"`
	CancelledAt        *time.Time
	CancelReason       *string `gorm:"type:text"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Branch, SalesTarget and SalesTransaction are owned by the sales
// subsystem and only read here.
type Branch struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null"`
	Name        string
	BranchClass string
	IsActive    bool
}

func (Branch) TableName() string {
	return "branches"
}

type SalesTarget struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null"`
	BranchID     uuid.UUID       `gorm:"type:uuid;not null"`
	PeriodStart  time.Time       `gorm:"type:date;not null"`
	TargetAmount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
}

func (SalesTarget) TableName() string {
	return "sales_targets"
}

type SalesTransaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null"`
	BranchID    uuid.UUID       `gorm:"type:uuid;not null"`
	SoldAt      time.Time       `gorm:"not null"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status      string
}

func (SalesTransaction) TableName() string {
	return "sales_transactions"
}

// AwardKey identifies the single award a branch may hold for a period.
type AwardKey struct {
	BranchID    uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time
}
