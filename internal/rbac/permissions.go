package rbac

// Resources and actions stored in the permissions table.
const (
	ResourceIncentiveAward = "incentive_award"
	ResourceIncentiveTier  = "incentive_tier"
	ResourceBudget         = "budget"

	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionPay     = "pay"
	ActionCancel  = "cancel"
)
