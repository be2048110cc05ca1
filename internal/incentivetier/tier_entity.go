package incentivetier

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RewardTypeFixed      = "fixed"
	RewardTypePercentage = "percentage"
	RewardTypeBoth       = "both"

	ApplicableToAll = "all"
)

type IncentiveTier struct {
	ID                    uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CompanyID             uuid.UUID        `gorm:"type:uuid;not null;index:idx_tier_company_active"`
	Name                  string           `gorm:"type:varchar(100);not null"`
	MinAchievementPercent decimal.Decimal  `gorm:"type:numeric(9,4);not null"`
	MaxAchievementPercent *decimal.Decimal `gorm:"type:numeric(9,4)"`
	RewardType            string           `gorm:"type:varchar(20);not null"`
	FixedAmount           *decimal.Decimal `gorm:"type:numeric(18,2)"`
	PercentageRate        *decimal.Decimal `gorm:"type:numeric(9,4)"`
	ApplicableTo          string           `gorm:"type:varchar(50);not null;default:'all'"`
	SortOrder             int              `gorm:"not null;default:0"`
	IsActive              bool             `gorm:"not null;default:true;index:idx_tier_company_active"`
	CreatedBy             uuid.UUID        `gorm:"type:uuid;not null"`
	UpdatedBy             *uuid.UUID       `gorm:"type:uuid"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Contains reports whether pct lies in [min, max). A nil max is open ended.
func (t IncentiveTier) Contains(pct decimal.Decimal) bool {
	if pct.LessThan(t.MinAchievementPercent) {
		return false
	}
	return t.MaxAchievementPercent == nil || pct.LessThan(*t.MaxAchievementPercent)
}

// AppliesTo reports whether the tier is offered to branches of class.
func (t IncentiveTier) AppliesTo(branchClass string) bool {
	return t.ApplicableTo == ApplicableToAll || t.ApplicableTo == branchClass
}
