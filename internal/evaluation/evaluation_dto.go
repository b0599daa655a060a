package evaluation

type AttendanceInput struct {
	Late      int `json:"late" binding:"min=0"`
	Absent    int `json:"absent" binding:"min=0"`
	Undertime int `json:"undertime" binding:"min=0"`
}

type WorkFunctionInput struct {
	Name       string  `json:"name" binding:"required,max=255"`
	Quality    float64 `json:"quality" binding:"required,min=1,max=5"`
	Efficiency float64 `json:"efficiency" binding:"required,min=1,max=5"`
}

// RubricInput is the scored part of an evaluation. A nil Attendance is
// filled from attendance records over the evaluation period.
type RubricInput struct {
	Attendance         *AttendanceInput    `json:"attendance"`
	SupervisorAttitude float64             `json:"supervisor_attitude" binding:"required,min=1,max=5"`
	CoworkerAttitude   float64             `json:"coworker_attitude" binding:"required,min=1,max=5"`
	WorkAttitude       map[string]float64  `json:"work_attitude" binding:"required"`
	WorkFunctions      []WorkFunctionInput `json:"work_functions" binding:"required,min=1,max=10,dive"`
}

type CreateEvaluationRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	ReferenceDate string `json:"reference_date" binding:"omitempty,datetime=2006-01-02"`
	PeriodKey     string `json:"period_key" binding:"omitempty,max=10"`
	Comments      string `json:"comments" binding:"omitempty,max=4000"`
	RubricInput
}

type UpdateEvaluationRequest struct {
	Comments string `json:"comments" binding:"omitempty,max=4000"`
	RubricInput
}

type WorkFunctionResponse struct {
	Name       string  `json:"name"`
	Quality    float64 `json:"quality"`
	Efficiency float64 `json:"efficiency"`
	Rating     float64 `json:"rating"`
}

type RatingsResponse struct {
	AttendanceRating   float64 `json:"attendance_rating"`
	AttitudeRating     float64 `json:"attitude_rating"`
	WorkAttitudeRating float64 `json:"work_attitude_rating"`
	WorkFunctionRating float64 `json:"work_function_rating"`
	FinalRating        float64 `json:"final_rating"`
	Adjectival         string  `json:"adjectival"`
}

type PeriodResponse struct {
	Key       string `json:"key"`
	Frequency string `json:"frequency"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

type EvaluationResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name,omitempty"`
	EmployeeNumber string `json:"employee_number,omitempty"`
	EvaluatorID    string `json:"evaluator_id"`

	Period     PeriodResponse  `json:"period"`
	Attendance AttendanceInput `json:"attendance"`

	SupervisorAttitude float64                `json:"supervisor_attitude"`
	CoworkerAttitude   float64                `json:"coworker_attitude"`
	WorkAttitude       map[string]float64     `json:"work_attitude"`
	WorkFunctions      []WorkFunctionResponse `json:"work_functions"`

	RatingsResponse

	Status         string  `json:"status"`
	Comments       string  `json:"comments,omitempty"`
	FinalizedAt    *string `json:"finalized_at,omitempty"`
	AcknowledgedAt *string `json:"acknowledged_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type PreviewResponse struct {
	EmployeeID string          `json:"employee_id"`
	Period     PeriodResponse  `json:"period"`
	Attendance AttendanceInput `json:"attendance"`
	RatingsResponse
}
