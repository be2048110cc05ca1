package incentivetier

import "github.com/shopspring/decimal"

type CreateTierRequest struct {
	Name                  string           `json:"name" binding:"required,max=100"`
	MinAchievementPercent decimal.Decimal  `json:"min_achievement_percent"`
	MaxAchievementPercent *decimal.Decimal `json:"max_achievement_percent"`
	RewardType            string           `json:"reward_type" binding:"required,oneof=fixed percentage both"`
	FixedAmount           *decimal.Decimal `json:"fixed_amount"`
	PercentageRate        *decimal.Decimal `json:"percentage_rate"`
	ApplicableTo          string           `json:"applicable_to" binding:"omitempty,max=50"`
	SortOrder             int              `json:"sort_order"`
}

type UpdateTierRequest struct {
	Name                  string           `json:"name" binding:"required,max=100"`
	MinAchievementPercent decimal.Decimal  `json:"min_achievement_percent"`
	MaxAchievementPercent *decimal.Decimal `json:"max_achievement_percent"`
	RewardType            string           `json:"reward_type" binding:"required,oneof=fixed percentage both"`
	FixedAmount           *decimal.Decimal `json:"fixed_amount"`
	PercentageRate        *decimal.Decimal `json:"percentage_rate"`
	ApplicableTo          string           `json:"applicable_to" binding:"omitempty,max=50"`
	SortOrder             int              `json:"sort_order"`
	IsActive              *bool            `json:"is_active"`
}

type GetTiersFilterRequest struct {
	ApplicableTo    string `form:"applicable_to"`
	IncludeInactive bool   `form:"include_inactive"`
}

type GetCoverageRequest struct {
	Scope string `form:"scope"`
}

type TierResponse struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	MinAchievementPercent decimal.Decimal  `json:"min_achievement_percent"`
	MaxAchievementPercent *decimal.Decimal `json:"max_achievement_percent"`
	RewardType            string           `json:"reward_type"`
	FixedAmount           *decimal.Decimal `json:"fixed_amount"`
	PercentageRate        *decimal.Decimal `json:"percentage_rate"`
	ApplicableTo          string           `json:"applicable_to"`
	SortOrder             int              `json:"sort_order"`
	IsActive              bool             `json:"is_active"`
	CreatedAt             string           `json:"created_at"`
	UpdatedAt             string           `json:"updated_at"`
}
