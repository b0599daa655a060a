package rbac

// CheckRequest asks whether the current user holds a permission.
type CheckRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type MyPermissionsResponse struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}
