package attendance

type ClockInRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

type RecordAttendanceRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	WorkDate   string  `json:"work_date" binding:"required,datetime=2006-01-02"`
	Status     string  `json:"status" binding:"omitempty,oneof=PRESENT LATE ABSENT"`
	ClockIn    string  `json:"clock_in" binding:"omitempty,datetime=15:04"`
	ClockOut   string  `json:"clock_out" binding:"omitempty,datetime=15:04"`
	Notes      *string `json:"notes" binding:"omitempty,max=500"`
}

type UpdateAttendanceRequest struct {
	Status   string  `json:"status" binding:"omitempty,oneof=PRESENT LATE ABSENT"`
	ClockIn  string  `json:"clock_in" binding:"omitempty,datetime=15:04"`
	ClockOut string  `json:"clock_out" binding:"omitempty,datetime=15:04"`
	Notes    *string `json:"notes" binding:"omitempty,max=500"`
}

type AttendanceResponse struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name,omitempty"`
	WorkDate         string  `json:"work_date"`
	ClockIn          *string `json:"clock_in,omitempty"`
	ClockOut         *string `json:"clock_out,omitempty"`
	Status           string  `json:"status"`
	LateMinutes      int     `json:"late_minutes"`
	UndertimeMinutes int     `json:"undertime_minutes"`
	Source           string  `json:"source"`
	Notes            *string `json:"notes,omitempty"`
}

type SummaryResponse struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	Summary
}
