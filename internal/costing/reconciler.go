package costing

import (
	"sort"

	"github.com/shopspring/decimal"
)

type Source string

const (
	SourceWorkItems Source = "work_items"
	SourcePayments  Source = "payments"
	SourceEqual     Source = "equal"
)

// Policy picks the actual cost from the two source figures and reports
// which source it used.
type Policy func(workItems, payments decimal.Decimal) (decimal.Decimal, Source)

// MaxOfSources reports whichever source recorded more spend. Neither
// source is complete on its own, so the larger one is the safer figure
// for overrun detection.
func MaxOfSources(workItems, payments decimal.Decimal) (decimal.Decimal, Source) {
	switch workItems.Cmp(payments) {
	case 1:
		return workItems, SourceWorkItems
	case -1:
		return payments, SourcePayments
	default:
		return workItems, SourceEqual
	}
}

type Figure struct {
	Actual    decimal.Decimal `json:"actual"`
	WorkItems decimal.Decimal `json:"work_items"`
	Payments  decimal.Decimal `json:"payments"`
	Source    Source          `json:"source"`
}

type Reconciler struct {
	policy Policy
}

func NewReconciler(policy Policy) *Reconciler {
	if policy == nil {
		policy = MaxOfSources
	}
	return &Reconciler{policy: policy}
}

func (r *Reconciler) figure(workItems, payments decimal.Decimal) Figure {
	actual, source := r.policy(workItems, payments)
	return Figure{Actual: actual, WorkItems: workItems, Payments: payments, Source: source}
}

// Project reconciles the project level totals. Category-less payments are
// included here, so the project figure is not the sum of category figures.
func (r *Reconciler) Project(workItems, payments Totals, projectID string) Figure {
	return r.figure(workItems.Project(projectID), payments.Project(projectID))
}

func (r *Reconciler) Category(workItems, payments Totals, projectID, categoryID string) Figure {
	return r.figure(
		workItems.Category(projectID, categoryID),
		payments.Category(projectID, categoryID),
	)
}

// Categories reconciles every category that appears in either source.
func (r *Reconciler) Categories(workItems, payments Totals, projectID string) map[string]Figure {
	seen := make(map[string]struct{})
	for _, id := range workItems.CategoryIDs(projectID) {
		seen[id] = struct{}{}
	}
	for _, id := range payments.CategoryIDs(projectID) {
		seen[id] = struct{}{}
	}

	out := make(map[string]Figure, len(seen))
	for id := range seen {
		out[id] = r.Category(workItems, payments, projectID, id)
	}
	return out
}

// SortedCategoryIDs returns map keys in a stable order for reporting.
func SortedCategoryIDs(figures map[string]Figure) []string {
	ids := make([]string, 0, len(figures))
	for id := range figures {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
