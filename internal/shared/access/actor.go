package access

import (
	"context"
	"slices"

	"github.com/gin-gonic/gin"
)

const (
	RoleAdmin      = "ADMIN"
	RoleHR         = "HR"
	RoleSupervisor = "SUPERVISOR"
)

// Actor is the authenticated administrative user behind a request.
type Actor struct {
	UserID    string
	CompanyID string
	Role      string
}

func FromGin(c *gin.Context) Actor {
	return Actor{
		UserID:    c.GetString("user_id"),
		CompanyID: c.GetString("company_id"),
		Role:      c.GetString("role"),
	}
}

// Restricted reports whether the actor only sees assigned departments.
func (a Actor) Restricted() bool {
	return a.Role == RoleSupervisor
}

//go:generate mockgen -source=actor.go -destination=mock/actor_mock.go -package=mock
type DepartmentResolver interface {
	SupervisedDepartmentIDs(ctx context.Context, companyID, userID string) ([]string, error)
}

// Visibility is the department filter applied to an actor's queries.
// All=true means no filter; otherwise only DepartmentIDs are visible.
type Visibility struct {
	All           bool
	DepartmentIDs []string
}

func (v Visibility) Allows(departmentID string) bool {
	return v.All || slices.Contains(v.DepartmentIDs, departmentID)
}

func Resolve(ctx context.Context, r DepartmentResolver, a Actor) (Visibility, error) {
	if !a.Restricted() || r == nil {
		return Visibility{All: true}, nil
	}
	ids, err := r.SupervisedDepartmentIDs(ctx, a.CompanyID, a.UserID)
	if err != nil {
		return Visibility{}, err
	}
	return Visibility{DepartmentIDs: ids}, nil
}
