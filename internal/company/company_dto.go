package company

import "time"

type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCompanyRequest struct {
	Name  string `json:"name" binding:"required,max=150"`
	Email string `json:"email" binding:"omitempty,email"`
}

type UpdateCompanyRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=150"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Address *string `json:"address"`
}

func toResponse(c *Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		IsActive:  c.IsActive,
		UpdatedAt: c.UpdatedAt,
	}
}
