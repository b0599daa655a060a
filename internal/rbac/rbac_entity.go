package rbac

import (
	"time"

	"hris-portal/internal/shared/access"

	"github.com/google/uuid"
)

const (
	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
)

type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_role_company_name"`
	Name        string    `gorm:"size:50;not null;uniqueIndex:uq_role_company_name"`
	Description string    `gorm:"size:255"`
	IsSystem    bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type Permission struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Resource string    `gorm:"size:50;not null;uniqueIndex:uq_permission_resource_action"`
	Action   string    `gorm:"size:20;not null;uniqueIndex:uq_permission_resource_action"`
	Label    string    `gorm:"size:100"`
	Category string    `gorm:"size:50"`
}

func (p Permission) Key() string {
	return p.Resource + ":" + p.Action
}

type RolePermission struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// UserRoleRow links a user to a role name inside the company domain.
type UserRoleRow struct {
	UserID string
	Role   string
}

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

// Catalog is every permission the API checks.
var Catalog = buildCatalog(map[string][]string{
	"employee":     {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
	"department":   {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
	"position":     {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
	"attendance":   {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
	"leave":        {ActionRead, ActionCreate, ActionUpdate, ActionApprove},
	"evaluation":   {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
	"dashboard":    {ActionRead},
	"user":         {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
	"role":         {ActionRead, ActionCreate, ActionUpdate, ActionDelete},
	"document":     {ActionRead, ActionCreate, ActionDelete},
	"notification": {ActionRead},
	"company":      {ActionRead, ActionUpdate},
})

var categories = map[string]string{
	"employee":     "People",
	"department":   "Organization",
	"position":     "Organization",
	"attendance":   "Time",
	"leave":        "Time",
	"evaluation":   "Performance",
	"dashboard":    "General",
	"user":         "Administration",
	"role":         "Administration",
	"document":     "People",
	"notification": "General",
	"company":      "Administration",
}

// DefaultRoles are created for every company and cannot be deleted.
var DefaultRoles = map[string]struct {
	Description string
	Permissions []string
}{
	access.RoleAdmin: {
		Description: "Full access to the company",
		Permissions: keys(Catalog),
	},
	access.RoleHR: {
		Description: "Human resources staff",
		Permissions: without(keys(Catalog), "role:create", "role:update", "role:delete", "user:create", "user:update", "user:delete", "company:update"),
	},
	access.RoleSupervisor: {
		Description: "Department supervisor, limited to assigned departments",
		Permissions: []string{
			"employee:read", "department:read", "position:read",
			"attendance:read", "attendance:create", "attendance:update",
			"leave:read", "leave:approve",
			"evaluation:read", "evaluation:create", "evaluation:update",
			"dashboard:read", "document:read", "document:create", "notification:read",
		},
	},
}
