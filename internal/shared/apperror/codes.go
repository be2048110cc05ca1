package apperror

// Generic codes describe the class of failure. Domain codes name the rule
// that was broken so clients can react without parsing messages.
const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeRateLimited  = "RATE_LIMITED"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Incentive awards
const (
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeDuplicateAwardPeriod   = "DUPLICATE_AWARD_PERIOD"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeRewardFrozen           = "REWARD_FROZEN"
	CodeTierMismatch           = "TIER_MISMATCH"
	CodeInvalidPeriod          = "INVALID_PERIOD"
	CodeNegativeAmount         = "NEGATIVE_AMOUNT"
)

// Budget
const (
	CodeProjectNotFound     = "PROJECT_NOT_FOUND"
	CodeInvalidCostCategory = "INVALID_COST_CATEGORY"
)
