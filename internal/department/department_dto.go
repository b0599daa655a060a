package department

type CreateDepartmentRequest struct {
	Name                string `json:"name" binding:"required,max=255"`
	Description         string `json:"description"`
	EvaluationFrequency string `json:"evaluation_frequency" binding:"omitempty,oneof=ANNUAL SEMI_ANNUAL QUARTERLY"`
}

type UpdateDepartmentRequest struct {
	Name                string `json:"name" binding:"required,max=255"`
	Description         string `json:"description"`
	EvaluationFrequency string `json:"evaluation_frequency" binding:"omitempty,oneof=ANNUAL SEMI_ANNUAL QUARTERLY"`
}

type AssignSupervisorRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type DepartmentResponse struct {
	ID                  string `json:"id"`
	CompanyID           string `json:"company_id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	EvaluationFrequency string `json:"evaluation_frequency"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

type SupervisorResponse struct {
	UserID       string `json:"user_id"`
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	AssignedAt   string `json:"assigned_at"`
}
