package employee

import (
	"context"
	"database/sql"
	"strings"

	"hris-portal/internal/shared/connection"
	"hris-portal/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Employee, int64, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	GetDepartmentIDByPosition(ctx context.Context, companyID, positionID string) (string, error)
	Update(ctx context.Context, empl *Employee) error
	UpdatePortalPassword(ctx context.Context, companyID, id, hash string) error
	UpdatePhoto(ctx context.Context, companyID, id string, documentID *string) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit("Department", "Position").Create(empl).Error
}

var sortColumns = map[string]string{
	"name":      "full_name",
	"email":     "email",
	"number":    "employee_number",
	"hire_date": "hire_date",
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Employee, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID))

	if filter.VisibleDepartmentIDs != nil {
		if len(filter.VisibleDepartmentIDs) == 0 {
			return []Employee{}, 0, nil
		}
		q = q.Where("department_id IN ?", filter.VisibleDepartmentIDs)
	}
	if filter.DepartmentID != "" {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.PositionID != "" {
		q = q.Where("position_id = ?", filter.PositionID)
	}
	if filter.WorkStatus != "" {
		q = q.Where("work_status = ?", filter.WorkStatus)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(employee_number) LIKE ?)", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[filter.SortBy]
	if !ok {
		col = "full_name"
	}
	dir := "ASC"
	if strings.EqualFold(filter.SortDir, "desc") {
		dir = "DESC"
	}

	var employees []Employee
	q = q.Preload("Department").Preload("Position").Order(col + " " + dir)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	err := q.Find(&employees).Error
	return employees, total, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Select("id", "employee_number", "full_name").
		Scopes(tenant.Scope(companyID)).
		Where("work_status NOT IN ?", []string{string(WorkStatusResigned), string(WorkStatusTerminated)}).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Position").
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

// FindByEmail is not tenant scoped: portal logins arrive without a company.
func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&empl).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("LOWER(email) = LOWER(?)", email)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) GetDepartmentIDByPosition(ctx context.Context, companyID, positionID string) (string, error) {
	var departmentID string
	err := r.db.WithContext(ctx).
		Table("positions").
		Select("department_id").
		Where("id = ?", positionID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Scan(&departmentID).Error
	return departmentID, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit("Department", "Position").Save(empl).Error
}

func (r *repository) UpdatePortalPassword(ctx context.Context, companyID, id, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("portal_password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpdatePhoto(ctx context.Context, companyID, id string, documentID *string) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("photo_document_id", documentID).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
