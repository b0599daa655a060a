package events

import "time"

const (
	EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"
	EmployeeCreatedType    = "employee_created"
)

type EmployeeCreatedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	CompanyID      string    `json:"company_id"`
	EmployeeNumber string    `json:"employee_number"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	OccurredAt     time.Time `json:"occurred_at"`
}
