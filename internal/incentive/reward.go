package incentive

import (
	"go-bakery/internal/incentivetier"

	"github.com/shopspring/decimal"
)

// MoneyPlaces matches the numeric(18,2) columns rewards are stored in.
const MoneyPlaces int32 = 2

type RewardResult struct {
	Amount        decimal.Decimal
	Raw           decimal.Decimal
	RoundedToZero bool
}

// CalculateReward applies tier to a branch result. Percentage rates apply
// to the excess over target only, and a branch without a positive target
// has no excess to reward.
func CalculateReward(tier incentivetier.IncentiveTier, target, achieved decimal.Decimal) RewardResult {
	raw := decimal.Zero

	if tier.RewardType == incentivetier.RewardTypeFixed || tier.RewardType == incentivetier.RewardTypeBoth {
		if tier.FixedAmount != nil {
			raw = raw.Add(*tier.FixedAmount)
		}
	}

	if tier.RewardType == incentivetier.RewardTypePercentage || tier.RewardType == incentivetier.RewardTypeBoth {
		if tier.PercentageRate != nil && target.IsPositive() {
			excess := decimal.Max(achieved.Sub(target), decimal.Zero)
			raw = raw.Add(tier.PercentageRate.Div(hundred).Mul(excess))
		}
	}

	if raw.IsNegative() {
		raw = decimal.Zero
	}

	amount := raw.Round(MoneyPlaces)
	return RewardResult{
		Amount:        amount,
		Raw:           raw,
		RoundedToZero: !raw.IsZero() && amount.IsZero(),
	}
}
