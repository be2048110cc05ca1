package budget_test

import (
	"testing"

	"go-bakery/internal/budget"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCalculateVariance(t *testing.T) {
	tests := []struct {
		name        string
		planned     string
		actual      string
		variance    string
		variancePct string
		consumption string
		progress    string
		status      string
	}{
		{"under budget", "1000", "800", "200", "20", "80", "80", budget.VarianceOnBudget},
		{"exactly on budget", "1000", "1000", "0", "0", "100", "100", budget.VarianceOnBudget},
		{"small overrun", "1000", "1050", "-50", "-5", "105", "100", budget.VarianceAcceptableOverrun},
		{"overrun on threshold", "1000", "1100", "-100", "-10", "110", "100", budget.VarianceAcceptableOverrun},
		{"major overrun", "1000", "1200", "-200", "-20", "120", "100", budget.VarianceMajorOverrun},
		{"ten percent boundary", "50000", "55000", "-5000", "-10", "110", "100", budget.VarianceAcceptableOverrun},
		{"nothing planned nothing spent", "0", "0", "0", "0", "0", "0", budget.VarianceOnBudget},
		{"nothing planned but spent", "0", "50", "-50", "0", "0", "0", budget.VarianceAcceptableOverrun},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := budget.CalculateVariance(dec(tt.planned), dec(tt.actual))

			assert.True(t, dec(tt.variance).Equal(got.Variance), "variance %s", got.Variance)
			assert.True(t, dec(tt.variancePct).Equal(got.VariancePercent), "variance pct %s", got.VariancePercent)
			assert.True(t, dec(tt.consumption).Equal(got.ConsumptionPercent), "consumption %s", got.ConsumptionPercent)
			assert.True(t, dec(tt.progress).Equal(got.ProgressPercent), "progress %s", got.ProgressPercent)
			assert.Equal(t, tt.status, got.Status)
		})
	}
}

func TestCalculateVariance_ConsumptionIsUnbounded(t *testing.T) {
	got := budget.CalculateVariance(dec("100"), dec("350"))

	assert.True(t, dec("350").Equal(got.ConsumptionPercent))
	assert.True(t, dec("100").Equal(got.ProgressPercent))
}

func TestVariance_RoundedKeepsStatus(t *testing.T) {
	got := budget.CalculateVariance(dec("300"), dec("331")).Rounded()

	assert.Equal(t, "-10.33", got.VariancePercent.StringFixed(2))
	assert.Equal(t, "110.33", got.ConsumptionPercent.StringFixed(2))
	assert.Equal(t, budget.VarianceMajorOverrun, got.Status)
}
