package budget

import "github.com/shopspring/decimal"

const (
	VarianceOnBudget          = "on_budget"
	VarianceAcceptableOverrun = "acceptable_overrun"
	VarianceMajorOverrun      = "major_overrun"
)

// AcceptableOverrunPercent is the largest overrun, as a share of the
// planned amount, still reported as acceptable.
var AcceptableOverrunPercent = decimal.NewFromInt(10)

var hundred = decimal.NewFromInt(100)

type Variance struct {
	Planned            decimal.Decimal `json:"planned"`
	Actual             decimal.Decimal `json:"actual"`
	Variance           decimal.Decimal `json:"variance"`
	VariancePercent    decimal.Decimal `json:"variance_percent"`
	ConsumptionPercent decimal.Decimal `json:"consumption_percent"`
	ProgressPercent    decimal.Decimal `json:"progress_percent"`
	Status             string          `json:"status"`
}

// CalculateVariance compares a planned amount with actual spend. Both
// percentages are zero when nothing was planned; consumption is not capped,
// ProgressPercent is the same figure clamped to [0, 100] for progress bars.
func CalculateVariance(planned, actual decimal.Decimal) Variance {
	v := Variance{
		Planned:            planned,
		Actual:             actual,
		Variance:           planned.Sub(actual),
		VariancePercent:    decimal.Zero,
		ConsumptionPercent: decimal.Zero,
	}

	if planned.IsPositive() {
		v.VariancePercent = v.Variance.Div(planned).Mul(hundred)
		v.ConsumptionPercent = actual.Div(planned).Mul(hundred)
	}

	v.ProgressPercent = decimal.Max(decimal.Zero, decimal.Min(v.ConsumptionPercent, hundred))

	switch {
	case !v.Variance.IsNegative():
		v.Status = VarianceOnBudget
	case v.VariancePercent.Abs().LessThanOrEqual(AcceptableOverrunPercent):
		v.Status = VarianceAcceptableOverrun
	default:
		v.Status = VarianceMajorOverrun
	}

	return v
}

// Rounded returns a copy with percentages rounded for presentation. Status
// is kept from the full precision calculation.
func (v Variance) Rounded() Variance {
	v.VariancePercent = v.VariancePercent.Round(2)
	v.ConsumptionPercent = v.ConsumptionPercent.Round(2)
	v.ProgressPercent = v.ProgressPercent.Round(2)
	return v
}
