// Package costing derives actual project cost from the two sources the
// platform records independently: costs logged on project work items and
// payment requests that have been paid out.
package costing

import "github.com/shopspring/decimal"

const PaymentStatusPaid = "paid"

type WorkItemCost struct {
	ProjectID  string
	CategoryID string
	ActualCost *decimal.Decimal
}

type PaymentCost struct {
	ProjectID  string
	CategoryID *string
	Amount     decimal.Decimal
	Status     string
}

type Key struct {
	ProjectID  string
	CategoryID string
}

type Totals struct {
	ByProject  map[string]decimal.Decimal
	ByCategory map[Key]decimal.Decimal
}

func newTotals() Totals {
	return Totals{
		ByProject:  make(map[string]decimal.Decimal),
		ByCategory: make(map[Key]decimal.Decimal),
	}
}

// Project returns zero for projects with no recorded cost.
func (t Totals) Project(projectID string) decimal.Decimal {
	return t.ByProject[projectID]
}

func (t Totals) Category(projectID, categoryID string) decimal.Decimal {
	return t.ByCategory[Key{ProjectID: projectID, CategoryID: categoryID}]
}

// CategoryIDs lists the categories with a recorded cost for the project.
func (t Totals) CategoryIDs(projectID string) []string {
	ids := make([]string, 0)
	for k := range t.ByCategory {
		if k.ProjectID == projectID {
			ids = append(ids, k.CategoryID)
		}
	}
	return ids
}

func (t Totals) add(projectID, categoryID string, amount decimal.Decimal) {
	t.ByProject[projectID] = t.ByProject[projectID].Add(amount)
	if categoryID == "" {
		return
	}
	k := Key{ProjectID: projectID, CategoryID: categoryID}
	t.ByCategory[k] = t.ByCategory[k].Add(amount)
}

// Aggregate sums work item costs per project and per (project, category).
// A work item without a cost contributes zero.
func Aggregate(items []WorkItemCost) Totals {
	totals := newTotals()
	for _, item := range items {
		cost := decimal.Zero
		if item.ActualCost != nil {
			cost = *item.ActualCost
		}
		totals.add(item.ProjectID, item.CategoryID, cost)
	}
	return totals
}

// PaidTotals sums paid payment requests. Payments without a category count
// toward the project total only.
func PaidTotals(payments []PaymentCost) Totals {
	totals := newTotals()
	for _, p := range payments {
		if p.Status != PaymentStatusPaid {
			continue
		}
		categoryID := ""
		if p.CategoryID != nil {
			categoryID = *p.CategoryID
		}
		totals.add(p.ProjectID, categoryID, p.Amount)
	}
	return totals
}
