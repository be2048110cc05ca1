package incentive

import "github.com/shopspring/decimal"

type CalculateRequest struct {
	Period string `form:"period" binding:"required,datetime=2006-01"`
}

type CalculatedAward struct {
	BranchID           string          `json:"branch_id"`
	BranchName         string          `json:"branch_name"`
	BranchClass        string          `json:"branch_class"`
	PeriodStart        string          `json:"period_start"`
	PeriodEnd          string          `json:"period_end"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	AchievedAmount     decimal.Decimal `json:"achieved_amount"`
	AchievementPercent decimal.Decimal `json:"achievement_percent"`
	TierID             *string         `json:"tier_id"`
	TierName           *string         `json:"tier_name"`
	CalculatedReward   decimal.Decimal `json:"calculated_reward"`
	Status             string          `json:"status"`
	ExistingAwardID    *string         `json:"existing_award_id,omitempty"`
	Warnings           []string        `json:"warnings"`
}

type CommitAwardItem struct {
	BranchID       string          `json:"branch_id" binding:"required,uuid"`
	TargetAmount   decimal.Decimal `json:"target_amount"`
	AchievedAmount decimal.Decimal `json:"achieved_amount"`
	TierID         *string         `json:"tier_id" binding:"omitempty,uuid"`
}

type CommitAwardsRequest struct {
	PeriodStart string            `json:"period_start" binding:"required,datetime=2006-01-02"`
	PeriodEnd   string            `json:"period_end" binding:"required,datetime=2006-01-02"`
	Awards      []CommitAwardItem `json:"awards" binding:"required,min=1,dive"`
}

type CommitAwardsResponse struct {
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	Awards      []AwardResponse `json:"awards"`
}

type CancelAwardRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type AdjustFinalRewardRequest struct {
	FinalReward *decimal.Decimal `json:"final_reward" binding:"required"`
	Note        string           `json:"note" binding:"max=500"`
}

type GetAwardsFilterRequest struct {
	Period   string `form:"period" binding:"omitempty,datetime=2006-01"`
	Status   string `form:"status" binding:"omitempty,oneof=pending approved paid cancelled"`
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type AwardResponse struct {
	ID                 string          `json:"id"`
	AwardNumber        string          `json:"award_number"`
	BranchID           string          `json:"branch_id"`
	PeriodStart        string          `json:"period_start"`
	PeriodEnd          string          `json:"period_end"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	AchievedAmount     decimal.Decimal `json:"achieved_amount"`
	AchievementPercent decimal.Decimal `json:"achievement_percent"`
	TierID             *string         `json:"tier_id"`
	TierName           *string         `json:"tier_name"`
	CalculatedReward   decimal.Decimal `json:"calculated_reward"`
	FinalReward        decimal.Decimal `json:"final_reward"`
	AdjustmentNote     *string         `json:"adjustment_note,omitempty"`
	Status             string          `json:"status"`
	Version            int             `json:"version"`
	CreatedBy          string          `json:"created_by"`
	ApprovedBy         *string         `json:"approved_by,omitempty"`
	ApprovedAt         *string         `json:"approved_at,omitempty"`
	PaidBy             *string         `json:"paid_by,omitempty"`
	PaidAt             *string         `json:"paid_at,omitempty"`
	CancelledBy        *string         `json:"cancelled_by,omitempty"`
	CancelledAt        *string         `json:"cancelled_at,omitempty"`
	CancelReason       *string         `json:"cancel_reason,omitempty"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}
