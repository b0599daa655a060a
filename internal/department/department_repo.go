package department

import (
	"context"
	"database/sql"

	"hris-portal/internal/shared/connection"
	"hris-portal/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Department, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Department, error)
	ExistsByName(ctx context.Context, companyID, name, excludeID string) (bool, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, companyID string, id string) error
	CountPositions(ctx context.Context, companyID, id string) (int64, error)

	FindUser(ctx context.Context, companyID, userID string) (*SupervisorUser, error)
	ListSupervisors(ctx context.Context, companyID, departmentID string) ([]DepartmentSupervisor, error)
	AddSupervisor(ctx context.Context, link *DepartmentSupervisor) error
	RemoveSupervisor(ctx context.Context, companyID, departmentID, userID string) error
	ListDepartmentIDsBySupervisor(ctx context.Context, companyID, userID string) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.WithTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&dept, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) ExistsByName(ctx context.Context, companyID, name, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&Department{}).
		Scopes(tenant.Scope(companyID)).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Department{}, "id = ?", id).Error
}

func (r *repository) CountPositions(ctx context.Context, companyID, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("positions").
		Where("company_id = ? AND department_id = ? AND deleted_at IS NULL", companyID, id).
		Count(&count).Error
	return count, err
}

func (r *repository) FindUser(ctx context.Context, companyID, userID string) (*SupervisorUser, error) {
	var u SupervisorUser
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		First(&u, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) ListSupervisors(ctx context.Context, companyID, departmentID string) ([]DepartmentSupervisor, error) {
	var links []DepartmentSupervisor
	err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(tenant.Scope(companyID)).
		Where("department_id = ?", departmentID).
		Order("created_at ASC").
		Find(&links).Error
	return links, err
}

// AddSupervisor is idempotent: assigning twice keeps the first row.
func (r *repository) AddSupervisor(ctx context.Context, link *DepartmentSupervisor) error {
	return r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error
}

func (r *repository) RemoveSupervisor(ctx context.Context, companyID, departmentID, userID string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("department_id = ? AND user_id = ?", departmentID, userID).
		Delete(&DepartmentSupervisor{}).Error
}

func (r *repository) ListDepartmentIDsBySupervisor(ctx context.Context, companyID, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&DepartmentSupervisor{}).
		Scopes(tenant.Scope(companyID)).
		Where("user_id = ?", userID).
		Pluck("department_id", &ids).Error
	return ids, err
}
