package position

type CreatePositionRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Description  string `json:"description"`
}

type UpdatePositionRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Description  string `json:"description"`
}

type PositionResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
