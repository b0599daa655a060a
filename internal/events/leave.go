package events

import "time"

const (
	LeaveLifecycleTopic = "hr.leave.lifecycle.v1"
	LeaveSubmittedType  = "leave_submitted"
	LeaveDecidedType    = "leave_decided"
)

type LeaveSubmittedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	LeaveID      string    `json:"leave_id"`
	CompanyID    string    `json:"company_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	DepartmentID string    `json:"department_id,omitempty"`
	Kind         string    `json:"kind"`
	LeaveType    string    `json:"leave_type"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	ReviewNote string    `json:"review_note,omitempty"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}
