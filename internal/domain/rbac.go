package domain

// EnforceRequest asks whether a user may perform action on resource inside
// a company.
type EnforceRequest struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Resource  string `json:"resource"`
	Action    string `json:"action"`
}
