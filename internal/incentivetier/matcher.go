package incentivetier

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SortCandidates returns tiers in evaluation order: sort_order, then lower
// bound, then id so equal rows still resolve the same way every run.
func SortCandidates(tiers []IncentiveTier) []IncentiveTier {
	sorted := make([]IncentiveTier, len(tiers))
	copy(sorted, tiers)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if c := a.MinAchievementPercent.Cmp(b.MinAchievementPercent); c != 0 {
			return c < 0
		}
		return a.ID.String() < b.ID.String()
	})
	return sorted
}

// Match returns the first candidate, in evaluation order, whose range
// contains pct. Finding no tier is a normal outcome.
func Match(pct decimal.Decimal, candidates []IncentiveTier) (*IncentiveTier, bool) {
	for _, tier := range SortCandidates(candidates) {
		if tier.Contains(pct) {
			matched := tier
			return &matched, true
		}
	}
	return nil, false
}
