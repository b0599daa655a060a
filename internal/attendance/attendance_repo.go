package attendance

import (
	"context"
	"database/sql"
	"time"

	"hris-portal/internal/shared/connection"
	"hris-portal/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByID(ctx context.Context, companyID, id string) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Attendance, int64, error)
	Update(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, companyID, id string) error
	Summarize(ctx context.Context, companyID, employeeID string, from, to time.Time) (Summary, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID)).
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date.Format(time.DateOnly)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Attendance, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(tenant.ScopeTable("attendances", companyID))

	if filter.VisibleDepartmentIDs != nil {
		if len(filter.VisibleDepartmentIDs) == 0 {
			return []Attendance{}, 0, nil
		}
		q = q.Joins("JOIN employees e ON e.id = attendances.employee_id").
			Where("e.department_id IN ?", filter.VisibleDepartmentIDs)
	}
	if filter.EmployeeID != "" {
		q = q.Where("attendances.employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("attendances.status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("attendances.work_date >= ?", filter.From.Format(time.DateOnly))
	}
	if filter.To != nil {
		q = q.Where("attendances.work_date <= ?", filter.To.Format(time.DateOnly))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Attendance
	q = q.Preload("Employee").Order("attendances.work_date DESC, attendances.clock_in DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	err := q.Find(&rows).Error
	return rows, total, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(a).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Attendance{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Summarize(ctx context.Context, companyID, employeeID string, from, to time.Time) (Summary, error) {
	var s Summary
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Select(`
			COUNT(*) FILTER (WHERE status = 'PRESENT') AS present,
			COUNT(*) FILTER (WHERE status = 'LATE') AS late,
			COUNT(*) FILTER (WHERE status = 'ABSENT') AS absent,
			COUNT(*) FILTER (WHERE undertime_minutes > 0) AS undertime,
			COALESCE(SUM(late_minutes), 0) AS late_minutes,
			COALESCE(SUM(undertime_minutes), 0) AS undertime_minutes`).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("work_date BETWEEN ? AND ?", from.Format(time.DateOnly), to.Format(time.DateOnly)).
		Scan(&s).Error
	return s, err
}
