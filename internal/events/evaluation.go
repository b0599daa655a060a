package events

import "time"

const (
	EvaluationLifecycleTopic = "hr.evaluation.lifecycle.v1"
	EvaluationFinalizedType  = "evaluation_finalized"
)

type EvaluationFinalizedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EvaluationID string    `json:"evaluation_id"`
	CompanyID    string    `json:"company_id"`
	EmployeeID   string    `json:"employee_id"`
	PeriodKey    string    `json:"period_key"`
	FinalRating  float64   `json:"final_rating"`
	Adjectival   string    `json:"adjectival"`
	OccurredAt   time.Time `json:"occurred_at"`
}
