package rbac

import (
	"context"

	"hris-portal/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetUserRoles(ctx context.Context, companyID string) ([]UserRoleRow, error)
	GetRolePermissions(ctx context.Context, companyID string) ([]RolePermissionRow, error)

	ListRoles(ctx context.Context, companyID string) ([]Role, error)
	GetRoleByID(ctx context.Context, companyID, id string) (*Role, error)
	GetRoleByName(ctx context.Context, companyID, name string) (*Role, error)
	CreateRole(ctx context.Context, role *Role) error
	UpdateRole(ctx context.Context, role *Role) error
	DeleteRole(ctx context.Context, companyID, id string) error
	CountUsersWithRole(ctx context.Context, companyID, name string) (int64, error)

	EnsurePermissions(ctx context.Context, perms []Permission) error
	ListPermissions(ctx context.Context) ([]Permission, error)
	GetPermissionsByRoleID(ctx context.Context, roleID string) ([]Permission, error)
	ReplaceRolePermissions(ctx context.Context, roleID string, permIDs []uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetUserRoles(ctx context.Context, companyID string) ([]UserRoleRow, error) {
	var result []UserRoleRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id AS user_id, users.role").
		Where("users.company_id = ? AND users.is_active AND users.deleted_at IS NULL", companyID).
		Scan(&result).Error
	return result, err
}

func (r *repository) GetRolePermissions(ctx context.Context, companyID string) ([]RolePermissionRow, error) {
	var result []RolePermissionRow
	err := r.db.WithContext(ctx).
		Table("role_permissions").
		Select("roles.name AS role, permissions.resource, permissions.action").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Where("roles.company_id = ?", companyID).
		Scan(&result).Error
	return result, err
}

func (r *repository) ListRoles(ctx context.Context, companyID string) ([]Role, error) {
	var result []Role
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("is_system DESC, name").
		Find(&result).Error
	return result, err
}

func (r *repository) GetRoleByID(ctx context.Context, companyID, id string) (*Role, error) {
	var result Role
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) GetRoleByName(ctx context.Context, companyID, name string) (*Role, error) {
	var result Role
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("name = ?", name).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) CreateRole(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *repository) UpdateRole(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

func (r *repository) DeleteRole(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&RolePermission{}).Error; err != nil {
			return err
		}
		res := tx.Scopes(tenant.Scope(companyID)).Delete(&Role{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *repository) CountUsersWithRole(ctx context.Context, companyID, name string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("company_id = ? AND role = ? AND deleted_at IS NULL", companyID, name).
		Count(&n).Error
	return n, err
}

func (r *repository) EnsurePermissions(ctx context.Context, perms []Permission) error {
	if len(perms) == 0 {
		return nil
	}
	rows := make([]Permission, len(perms))
	copy(rows, perms)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "resource"}, {Name: "action"}},
			DoUpdates: clause.AssignmentColumns([]string{"label", "category"}),
		}).
		Create(&rows).Error
}

func (r *repository) ListPermissions(ctx context.Context) ([]Permission, error) {
	var result []Permission
	err := r.db.WithContext(ctx).Order("category, resource, action").Find(&result).Error
	return result, err
}

func (r *repository) GetPermissionsByRoleID(ctx context.Context, roleID string) ([]Permission, error) {
	var result []Permission
	err := r.db.WithContext(ctx).
		Table("permissions").
		Select("permissions.*").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Order("permissions.resource, permissions.action").
		Scan(&result).Error
	return result, err
}

func (r *repository) ReplaceRolePermissions(ctx context.Context, roleID string, permIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&RolePermission{}).Error; err != nil {
			return err
		}
		if len(permIDs) == 0 {
			return nil
		}

		rid, err := uuid.Parse(roleID)
		if err != nil {
			return err
		}
		rows := make([]RolePermission, len(permIDs))
		for i, pid := range permIDs {
			rows[i] = RolePermission{RoleID: rid, PermissionID: pid}
		}
		return tx.Create(&rows).Error
	})
}
