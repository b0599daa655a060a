package portal

import "time"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Session is the value stored under portal:session:<id>.
type Session struct {
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	CreatedAt  time.Time `json:"created_at"`
}
