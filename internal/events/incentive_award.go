package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const IncentiveAwardTopic = "bakery.incentive.award.v1"

const (
	EventTypeAwardCommitted     = "incentive_award.committed"
	EventTypeAwardStatusChanged = "incentive_award.status_changed"
)

// IncentiveAwardCommittedEvent is emitted once per commit batch.
type IncentiveAwardCommittedEvent struct {
	EventType   string    `json:"event_type"`
	CompanyID   string    `json:"company_id"`
	PeriodStart string    `json:"period_start"`
	PeriodEnd   string    `json:"period_end"`
	AwardIDs    []string  `json:"award_ids"`
	CommittedBy string    `json:"committed_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type IncentiveAwardStatusChangedEvent struct {
	EventType   string          `json:"event_type"`
	CompanyID   string          `json:"company_id"`
	AwardID     string          `json:"award_id"`
	AwardNumber string          `json:"award_number"`
	BranchID    string          `json:"branch_id"`
	FromStatus  string          `json:"from_status"`
	ToStatus    string          `json:"to_status"`
	FinalReward decimal.Decimal `json:"final_reward"`
	ChangedBy   string          `json:"changed_by"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
