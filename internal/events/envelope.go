package events

// Envelope is the part every event payload shares; consumers decode it first to dispatch.
type Envelope struct {
	EventType string `json:"event_type"`
	CompanyID string `json:"company_id"`
}
