package leave

type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	SubmitLeaveRequest
}

// SubmitLeaveRequest is what an employee files from the portal for themself.
type SubmitLeaveRequest struct {
	Kind      string `json:"kind" binding:"required,oneof=LEAVE ABSENCE"`
	LeaveType string `json:"leave_type" binding:"required,oneof=VACATION SICK EMERGENCY MATERNITY PATERNITY BEREAVEMENT UNPAID"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" binding:"omitempty,max=1000"`
}

type DecisionRequest struct {
	Note string `json:"note" binding:"omitempty,max=1000"`
}

type SetBalanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
	LeaveType  string `json:"leave_type" binding:"required,oneof=VACATION SICK"`
	Allotted   int    `json:"allotted" binding:"min=0,max=366"`
}

type LeaveResponse struct {
	ID                   string  `json:"id"`
	CompanyID            string  `json:"company_id"`
	EmployeeID           string  `json:"employee_id"`
	EmployeeName         string  `json:"employee_name,omitempty"`
	Kind                 string  `json:"kind"`
	LeaveType            string  `json:"leave_type"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	TotalDays            int     `json:"total_days"`
	Reason               string  `json:"reason"`
	Status               string  `json:"status"`
	CreatedBy            *string `json:"created_by,omitempty"`
	ReviewedBy           *string `json:"reviewed_by,omitempty"`
	ReviewedAt           *string `json:"reviewed_at,omitempty"`
	ReviewNote           *string `json:"review_note,omitempty"`
	AttachmentDocumentID *string `json:"attachment_document_id,omitempty"`
	CreatedAt            string  `json:"created_at"`
}

type BalanceResponse struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	LeaveType  string `json:"leave_type"`
	Allotted   int    `json:"allotted"`
	Used       int    `json:"used"`
	Remaining  int    `json:"remaining"`
}
