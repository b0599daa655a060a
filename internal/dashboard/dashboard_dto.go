package dashboard

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DepartmentCount struct {
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
	Count        int64  `json:"count"`
}

type AttendanceToday struct {
	Date        string `json:"date"`
	Present     int64  `json:"present"`
	Late        int64  `json:"late"`
	Absent      int64  `json:"absent"`
	OnLeave     int64  `json:"on_leave"`
	NotRecorded int64  `json:"not_recorded"`
}

type EvaluationProgress struct {
	PeriodKey string `json:"period_key"`
	Done      int64  `json:"done"`
	Total     int64  `json:"total"`
}

type RecentLeave struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Kind         string `json:"kind"`
	LeaveType    string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

type DashboardResponse struct {
	Scope              string             `json:"scope"`
	DepartmentIDs      []string           `json:"department_ids,omitempty"`
	TotalEmployees     int64              `json:"total_employees"`
	EmployeesByStatus  []StatusCount      `json:"employees_by_status"`
	EmployeesByDept    []DepartmentCount  `json:"employees_by_department"`
	AttendanceToday    AttendanceToday    `json:"attendance_today"`
	PendingLeaves      int64              `json:"pending_leaves"`
	EvaluationProgress EvaluationProgress `json:"evaluation_progress"`
	RecentLeaves       []RecentLeave      `json:"recent_leaves"`
	GeneratedAt        string             `json:"generated_at"`
}
