package incentivetier

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Registry is an in-memory snapshot of a company's active tiers.
type Registry struct {
	tiers []IncentiveTier
	byID  map[string]IncentiveTier
}

func NewRegistry(tiers []IncentiveTier) *Registry {
	active := make([]IncentiveTier, 0, len(tiers))
	byID := make(map[string]IncentiveTier, len(tiers))
	for _, t := range tiers {
		if !t.IsActive {
			continue
		}
		active = append(active, t)
		byID[t.ID.String()] = t
	}

	return &Registry{tiers: SortCandidates(active), byID: byID}
}

func (r *Registry) Len() int {
	return len(r.tiers)
}

// Candidates lists tiers offered to a branch class in evaluation order.
func (r *Registry) Candidates(branchClass string) []IncentiveTier {
	out := make([]IncentiveTier, 0, len(r.tiers))
	for _, t := range r.tiers {
		if t.AppliesTo(branchClass) {
			out = append(out, t)
		}
	}
	return out
}

func (r *Registry) Match(pct decimal.Decimal, branchClass string) (*IncentiveTier, bool) {
	return Match(pct, r.Candidates(branchClass))
}

// Find returns an active tier by id.
func (r *Registry) Find(id string) (*IncentiveTier, bool) {
	t, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return &t, true
}

type Interval struct {
	From decimal.Decimal  `json:"from"`
	To   *decimal.Decimal `json:"to"`
}

type Overlap struct {
	FirstTierID  string   `json:"first_tier_id"`
	SecondTierID string   `json:"second_tier_id"`
	Range        Interval `json:"range"`
	// WinnerTierID is the tier Match picks inside the overlapping range.
	WinnerTierID string `json:"winner_tier_id"`
}

type Coverage struct {
	Scope    string     `json:"scope"`
	Gaps     []Interval `json:"gaps"`
	Overlaps []Overlap  `json:"overlaps"`
}

// Coverage reports the parts of [0, inf) no tier covers for a branch class
// and every pair of tiers whose ranges intersect.
func (r *Registry) Coverage(branchClass string) Coverage {
	candidates := r.Candidates(branchClass)
	cov := Coverage{Scope: branchClass, Gaps: []Interval{}, Overlaps: []Overlap{}}

	byMin := make([]IncentiveTier, len(candidates))
	copy(byMin, candidates)
	sort.SliceStable(byMin, func(i, j int) bool {
		return byMin[i].MinAchievementPercent.LessThan(byMin[j].MinAchievementPercent)
	})

	cursor := decimal.Zero
	open := false
	for _, t := range byMin {
		if open {
			break
		}
		if t.MinAchievementPercent.GreaterThan(cursor) {
			to := t.MinAchievementPercent
			cov.Gaps = append(cov.Gaps, Interval{From: cursor, To: &to})
		}
		if t.MaxAchievementPercent == nil {
			open = true
			continue
		}
		cursor = decimal.Max(cursor, *t.MaxAchievementPercent)
	}
	if !open {
		cov.Gaps = append(cov.Gaps, Interval{From: cursor})
	}

	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			rng, ok := intersect(a, b)
			if !ok {
				continue
			}
			// candidates are in evaluation order, so a wins
			cov.Overlaps = append(cov.Overlaps, Overlap{
				FirstTierID:  a.ID.String(),
				SecondTierID: b.ID.String(),
				Range:        rng,
				WinnerTierID: a.ID.String(),
			})
		}
	}

	return cov
}

func intersect(a, b IncentiveTier) (Interval, bool) {
	from := decimal.Max(a.MinAchievementPercent, b.MinAchievementPercent)

	var to *decimal.Decimal
	switch {
	case a.MaxAchievementPercent == nil && b.MaxAchievementPercent == nil:
	case a.MaxAchievementPercent == nil:
		v := *b.MaxAchievementPercent
		to = &v
	case b.MaxAchievementPercent == nil:
		v := *a.MaxAchievementPercent
		to = &v
	default:
		v := decimal.Min(*a.MaxAchievementPercent, *b.MaxAchievementPercent)
		to = &v
	}

	if to != nil && !from.LessThan(*to) {
		return Interval{}, false
	}
	return Interval{From: from, To: to}, true
}
