package domain

// EnforceRequest asks whether a user may perform action on resource inside
// the company domain.
type EnforceRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	CompanyID string `json:"company_id" binding:"required"`
	Resource  string `json:"resource" binding:"required"`
	Action    string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	System      bool     `json:"system"`
	Permissions []string `json:"permissions"`
}

// Permissions are "resource:action" pairs, e.g. "leave:approve".
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required,max=50"`
	Description string   `json:"description" binding:"max=255"`
	Permissions []string `json:"permissions" binding:"dive,required"`
}

type UpdateRoleRequest struct {
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Permissions []string `json:"permissions" binding:"omitempty,dive,required"`
}

type PermissionResponse struct {
	ID       string `json:"id"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Label    string `json:"label"`
	Category string `json:"category"`
}
