package incentive

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ResolveAchievement returns achieved/target*100. A target of zero or less
// yields 0 rather than an undefined ratio.
func ResolveAchievement(target, achieved decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	return achieved.Div(target).Mul(hundred)
}
