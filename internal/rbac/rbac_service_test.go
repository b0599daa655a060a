package rbac

import (
	"context"
	"testing"

	"hris-portal/internal/domain"
	rbacerrors "hris-portal/internal/rbac/errors"
	"hris-portal/internal/rbac/infra"
	"hris-portal/internal/shared/access"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// =========================================
// Fake repository
// =========================================

type fakeRepo struct {
	Repository

	userRoles   map[string][]UserRoleRow
	rolePerms   map[string][]RolePermissionRow
	roles       map[string]*Role
	perms       []Permission
	rolePermIDs map[string][]uuid.UUID
	usersInRole int64
	policyLoads int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		userRoles:   map[string][]UserRoleRow{},
		rolePerms:   map[string][]RolePermissionRow{},
		roles:       map[string]*Role{},
		rolePermIDs: map[string][]uuid.UUID{},
	}
}

func (f *fakeRepo) GetUserRoles(_ context.Context, companyID string) ([]UserRoleRow, error) {
	f.policyLoads++
	return f.userRoles[companyID], nil
}

func (f *fakeRepo) GetRolePermissions(_ context.Context, companyID string) ([]RolePermissionRow, error) {
	return f.rolePerms[companyID], nil
}

func (f *fakeRepo) GetRoleByName(_ context.Context, companyID, name string) (*Role, error) {
	for _, r := range f.roles {
		if r.CompanyID.String() == companyID && r.Name == name {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetRoleByID(_ context.Context, _ string, id string) (*Role, error) {
	if r, ok := f.roles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateRole(_ context.Context, role *Role) error {
	f.roles[role.ID.String()] = role
	return nil
}

func (f *fakeRepo) DeleteRole(_ context.Context, _ string, id string) error {
	delete(f.roles, id)
	return nil
}

func (f *fakeRepo) CountUsersWithRole(context.Context, string, string) (int64, error) {
	return f.usersInRole, nil
}

func (f *fakeRepo) EnsurePermissions(_ context.Context, perms []Permission) error {
	if len(f.perms) > 0 {
		return nil
	}
	for _, p := range perms {
		p.ID = uuid.New()
		f.perms = append(f.perms, p)
	}
	return nil
}

func (f *fakeRepo) ListPermissions(context.Context) ([]Permission, error) {
	return f.perms, nil
}

func (f *fakeRepo) GetPermissionsByRoleID(_ context.Context, roleID string) ([]Permission, error) {
	var out []Permission
	for _, id := range f.rolePermIDs[roleID] {
		for _, p := range f.perms {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) ReplaceRolePermissions(_ context.Context, roleID string, ids []uuid.UUID) error {
	f.rolePermIDs[roleID] = ids
	return nil
}

func newTestService(t *testing.T, repo Repository) *service {
	t.Helper()
	e, err := infra.NewEnforcer()
	require.NoError(t, err)
	return NewService(repo, e).(*service)
}

// =========================================
// TEST: Load + Enforce
// =========================================

func TestRBACService_Enforce(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.userRoles["company-1"] = []UserRoleRow{{UserID: "user-1", Role: access.RoleHR}}
	repo.rolePerms["company-1"] = []RolePermissionRow{{Role: access.RoleHR, Resource: "employee", Action: "read"}}
	repo.userRoles["company-2"] = []UserRoleRow{{UserID: "user-2", Role: access.RoleHR}}

	svc := newTestService(t, repo)

	allowed, err := svc.Enforce(ctx, domain.EnforceRequest{UserID: "user-1", CompanyID: "company-1", Resource: "employee", Action: "read"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	denied, err := svc.Enforce(ctx, domain.EnforceRequest{UserID: "user-1", CompanyID: "company-1", Resource: "employee", Action: "delete"})
	assert.NoError(t, err)
	assert.False(t, denied)

	// same role name in another company grants nothing there
	other, err := svc.Enforce(ctx, domain.EnforceRequest{UserID: "user-2", CompanyID: "company-2", Resource: "employee", Action: "read"})
	assert.NoError(t, err)
	assert.False(t, other)

	// company-1 must still work after company-2 was loaded
	again, err := svc.Enforce(ctx, domain.EnforceRequest{UserID: "user-1", CompanyID: "company-1", Resource: "employee", Action: "read"})
	assert.NoError(t, err)
	assert.True(t, again)
	assert.Equal(t, 2, repo.policyLoads)

	svc.Invalidate("company-1")
	_, err = svc.Enforce(ctx, domain.EnforceRequest{UserID: "user-1", CompanyID: "company-1", Resource: "employee", Action: "read"})
	assert.NoError(t, err)
	assert.Equal(t, 3, repo.policyLoads)
}

func TestRBACService_PermissionsFor(t *testing.T) {
	repo := newFakeRepo()
	repo.userRoles["c1"] = []UserRoleRow{{UserID: "u1", Role: access.RoleSupervisor}}
	repo.rolePerms["c1"] = []RolePermissionRow{
		{Role: access.RoleSupervisor, Resource: "leave", Action: "approve"},
		{Role: access.RoleSupervisor, Resource: "dashboard", Action: "read"},
	}
	svc := newTestService(t, repo)

	perms, err := svc.PermissionsFor(context.Background(), "c1", "u1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"dashboard:read", "leave:approve"}, perms)
}

func TestRBACService_EnsureDefaultRoles(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	require.NoError(t, svc.EnsureDefaultRoles(ctx, companyID))
	assert.Len(t, repo.roles, 3)
	assert.Len(t, repo.perms, len(Catalog))

	admin, err := repo.GetRoleByName(ctx, companyID, access.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, admin.IsSystem)
	assert.Len(t, repo.rolePermIDs[admin.ID.String()], len(Catalog))

	supervisor, err := repo.GetRoleByName(ctx, companyID, access.RoleSupervisor)
	require.NoError(t, err)
	assert.Len(t, repo.rolePermIDs[supervisor.ID.String()], len(DefaultRoles[access.RoleSupervisor].Permissions))

	// idempotent
	require.NoError(t, svc.EnsureDefaultRoles(ctx, companyID))
	assert.Len(t, repo.roles, 3)
}

func TestDefaultRoles_OnlyUseCatalogPermissions(t *testing.T) {
	known := map[string]bool{}
	for _, p := range Catalog {
		known[p.Key()] = true
	}
	for name, def := range DefaultRoles {
		for _, p := range def.Permissions {
			assert.True(t, known[p], "%s grants unknown permission %s", name, p)
		}
	}
	assert.NotContains(t, DefaultRoles[access.RoleHR].Permissions, "role:delete")
	assert.Contains(t, DefaultRoles[access.RoleHR].Permissions, "leave:approve")
}

func TestRBACService_CreateRole(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(t, repo)
		require.NoError(t, repo.EnsurePermissions(ctx, Catalog))

		role, err := svc.CreateRole(ctx, companyID, domain.CreateRoleRequest{
			Name:        "payroll_clerk",
			Permissions: []string{"employee:read", "Attendance:Read", "employee:read"},
		})
		require.NoError(t, err)
		assert.Equal(t, "PAYROLL_CLERK", role.Name)
		assert.False(t, role.System)
		assert.ElementsMatch(t, []string{"employee:read", "attendance:read"}, role.Permissions)
	})

	t.Run("invalid name", func(t *testing.T) {
		svc := newTestService(t, newFakeRepo())
		_, err := svc.CreateRole(ctx, companyID, domain.CreateRoleRequest{Name: "9 lives"})
		assert.ErrorIs(t, err, rbacerrors.ErrInvalidRoleName)
	})

	t.Run("built-in name", func(t *testing.T) {
		svc := newTestService(t, newFakeRepo())
		_, err := svc.CreateRole(ctx, companyID, domain.CreateRoleRequest{Name: "hr"})
		assert.ErrorIs(t, err, rbacerrors.ErrRoleExists)
	})

	t.Run("unknown permission", func(t *testing.T) {
		repo := newFakeRepo()
		require.NoError(t, repo.EnsurePermissions(ctx, Catalog))
		svc := newTestService(t, repo)

		_, err := svc.CreateRole(ctx, companyID, domain.CreateRoleRequest{Name: "AUDITOR", Permissions: []string{"payroll:read"}})
		assert.ErrorIs(t, err, rbacerrors.ErrUnknownPermission)
	})
}

func TestRBACService_DeleteRole(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.MustParse(uuid.NewString())

	system := &Role{ID: uuid.New(), CompanyID: companyID, Name: access.RoleHR, IsSystem: true}
	custom := &Role{ID: uuid.New(), CompanyID: companyID, Name: "AUDITOR"}

	t.Run("system role", func(t *testing.T) {
		repo := newFakeRepo()
		repo.roles[system.ID.String()] = system
		err := newTestService(t, repo).DeleteRole(ctx, companyID.String(), system.ID.String())
		assert.ErrorIs(t, err, rbacerrors.ErrSystemRole)
	})

	t.Run("in use", func(t *testing.T) {
		repo := newFakeRepo()
		repo.roles[custom.ID.String()] = custom
		repo.usersInRole = 2
		err := newTestService(t, repo).DeleteRole(ctx, companyID.String(), custom.ID.String())
		assert.ErrorIs(t, err, rbacerrors.ErrRoleInUse)
	})

	t.Run("deleted", func(t *testing.T) {
		repo := newFakeRepo()
		repo.roles[custom.ID.String()] = custom
		err := newTestService(t, repo).DeleteRole(ctx, companyID.String(), custom.ID.String())
		assert.NoError(t, err)
		assert.Empty(t, repo.roles)
	})

	t.Run("not found", func(t *testing.T) {
		err := newTestService(t, newFakeRepo()).DeleteRole(ctx, companyID.String(), uuid.NewString())
		assert.ErrorIs(t, err, rbacerrors.ErrRoleNotFound)
	})
}
