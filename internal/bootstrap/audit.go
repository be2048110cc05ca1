package bootstrap

import "context"

const (
	AuditActionServerShutdown = "SERVER_SHUTDOWN"
	AuditActionAwardCommitted = "INCENTIVE_AWARD_COMMITTED"
	AuditActionAwardApproved  = "INCENTIVE_AWARD_APPROVED"
	AuditActionAwardPaid      = "INCENTIVE_AWARD_PAID"
	AuditActionAwardCancelled = "INCENTIVE_AWARD_CANCELLED"
	AuditActionRewardAdjusted = "INCENTIVE_AWARD_REWARD_ADJUSTED"
)

type AuditLog struct {
	Action    string
	Message   string
	CompanyID string
	ActorID   string
	EntityID  string
	Meta      map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

// NopAuditLogger drops every entry.
type NopAuditLogger struct{}

func (NopAuditLogger) Log(context.Context, AuditLog) {}
