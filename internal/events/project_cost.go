package events

import "time"

const ProjectCostTopic = "construction.project.cost.v1"

const (
	EventTypeWorkItemCostLogged  = "work_item.cost_logged"
	EventTypePaymentRequestPaid  = "payment_request.paid"
	EventTypeProjectCostRecorded = "project.cost_recorded"
)

// ProjectCostChangedEvent is published by the construction subsystem
// whenever a cost source of a project changes.
type ProjectCostChangedEvent struct {
	EventType  string    `json:"event_type"`
	CompanyID  string    `json:"company_id"`
	ProjectID  string    `json:"project_id"`
	CategoryID *string   `json:"category_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
