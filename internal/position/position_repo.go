package position

import (
	"context"
	"database/sql"

	"hris-portal/internal/shared/connection"
	"hris-portal/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, pos *Position) error
	FindAllByCompany(ctx context.Context, companyID string, departmentID string) ([]Position, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Position, error)
	DepartmentExists(ctx context.Context, companyID, departmentID string) (bool, error)
	CountEmployees(ctx context.Context, companyID, id string) (int64, error)
	Update(ctx context.Context, pos *Position) error
	// MoveEmployeesToDepartment keeps employees.department_id in step with their position.
	MoveEmployeesToDepartment(ctx context.Context, companyID, positionID, departmentID string) (int64, error)
	Delete(ctx context.Context, companyID string, id string) error
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

func (r *repository) Create(ctx context.Context, pos *Position) error {
	return r.db.WithContext(ctx).Omit("Department").Create(pos).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, departmentID string) ([]Position, error) {
	var positions []Position
	q := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(tenant.Scope(companyID))
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	err := q.Order("name ASC").Find(&positions).Error
	return positions, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Position, error) {
	var pos Position
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(tenant.Scope(companyID)).
		First(&pos, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *repository) DepartmentExists(ctx context.Context, companyID, departmentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PositionDepartment{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountEmployees(ctx context.Context, companyID, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ? AND position_id = ? AND deleted_at IS NULL", companyID, id).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, pos *Position) error {
	// preloaded Department must not be written back
	return r.db.WithContext(ctx).Omit("Department").Save(pos).Error
}

func (r *repository) MoveEmployeesToDepartment(ctx context.Context, companyID, positionID, departmentID string) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE employees SET department_id = ?, updated_at = NOW()
		WHERE company_id = ? AND position_id = ? AND deleted_at IS NULL`,
		departmentID, companyID, positionID,
	)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Position{}, "id = ?", id).Error
}
