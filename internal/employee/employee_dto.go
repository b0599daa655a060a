package employee

type CreateEmployeeRequest struct {
	EmployeeNumber string `json:"employee_number" binding:"omitempty,max=50"`
	FullName       string `json:"full_name" binding:"required,max=255"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"omitempty,max=50"`
	PositionID     string `json:"position_id" binding:"required,uuid"`
	HireDate       string `json:"hire_date" binding:"required,datetime=2006-01-02"`
	WorkStatus     string `json:"work_status" binding:"required,oneof=REGULAR PROBATIONARY CONTRACTUAL PART_TIME RESIGNED TERMINATED"`
	PortalPassword string `json:"portal_password" binding:"omitempty,min=8,max=72"`
}

type UpdateEmployeeRequest struct {
	EmployeeNumber string `json:"employee_number" binding:"omitempty,max=50"`
	FullName       string `json:"full_name" binding:"required,max=255"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"omitempty,max=50"`
	PositionID     string `json:"position_id" binding:"required,uuid"`
	HireDate       string `json:"hire_date" binding:"required,datetime=2006-01-02"`
	WorkStatus     string `json:"work_status" binding:"required,oneof=REGULAR PROBATIONARY CONTRACTUAL PART_TIME RESIGNED TERMINATED"`
}

type SetPortalPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type EmployeeResponse struct {
	ID              string `json:"id"`
	CompanyID       string `json:"company_id"`
	EmployeeNumber  string `json:"employee_number"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	DepartmentID    string `json:"department_id,omitempty"`
	DepartmentName  string `json:"department_name,omitempty"`
	PositionID      string `json:"position_id,omitempty"`
	PositionName    string `json:"position_name,omitempty"`
	HireDate        string `json:"hire_date"`
	WorkStatus      string `json:"work_status"`
	HasPortalAccess bool   `json:"has_portal_access"`
	PhotoDocumentID string `json:"photo_document_id,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type EmployeeOption struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}

// Credentials is what the portal needs to check a login. Never serialised.
type Credentials struct {
	EmployeeID   string
	CompanyID    string
	FullName     string
	PasswordHash string
	WorkStatus   WorkStatus
}
