package budget

import (
	"go-bakery/internal/costing"

	"github.com/shopspring/decimal"
)

type UpsertAllocationRequest struct {
	CategoryID    string          `json:"category_id" binding:"required,uuid"`
	PlannedAmount decimal.Decimal `json:"planned_amount"`
}

type GetActualCostRequest struct {
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

type AllocationResponse struct {
	ID            string          `json:"id"`
	ProjectID     string          `json:"project_id"`
	CategoryID    string          `json:"category_id"`
	PlannedAmount decimal.Decimal `json:"planned_amount"`
	UpdatedBy     string          `json:"updated_by"`
	UpdatedAt     string          `json:"updated_at"`
}

type ActualCostResponse struct {
	ProjectID  string          `json:"project_id"`
	CategoryID *string         `json:"category_id,omitempty"`
	ActualCost decimal.Decimal `json:"actual_cost"`
	WorkItems  decimal.Decimal `json:"work_items_total"`
	Payments   decimal.Decimal `json:"paid_payments_total"`
	Source     costing.Source  `json:"source"`
}

type VarianceLineResponse struct {
	CategoryID string         `json:"category_id"`
	Source     costing.Source `json:"source"`
	Variance
}

type ProjectSnapshotResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Budget             decimal.Decimal `json:"budget"`
	RecordedActualCost decimal.Decimal `json:"recorded_actual_cost"`
	// ReconciledDrift is reconciled actual minus the stored snapshot.
	ReconciledDrift decimal.Decimal `json:"reconciled_drift"`
}

type VarianceReportResponse struct {
	Project ProjectSnapshotResponse `json:"project"`
	Lines   []VarianceLineResponse  `json:"lines"`
	Total   VarianceLineResponse    `json:"total"`
}
