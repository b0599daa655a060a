package dashboard

import (
	"context"
	"time"

	"hris-portal/internal/employee"
	"hris-portal/internal/evaluation"
	"hris-portal/internal/leave"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope restricts every query to a company and, when DepartmentIDs is non-nil,
// to employees of those departments.
type Scope struct {
	CompanyID     string
	DepartmentIDs []string
}

func (s Scope) restricted() bool {
	return s.DepartmentIDs != nil
}

type recentLeaveRow struct {
	ID           uuid.UUID
	EmployeeID   uuid.UUID
	EmployeeName string
	Kind         string
	LeaveType    string
	StartDate    time.Time
	EndDate      time.Time
	Status       string
	CreatedAt    time.Time
}

type departmentCountRow struct {
	DepartmentID *uuid.UUID
	Name         *string
	Count        int64
}

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountEmployeesByStatus(ctx context.Context, scope Scope) ([]StatusCount, error)
	CountEmployeesByDepartment(ctx context.Context, scope Scope) ([]DepartmentCount, error)
	CountAttendanceByStatus(ctx context.Context, scope Scope, day time.Time) (map[string]int64, error)
	CountOnLeave(ctx context.Context, scope Scope, day time.Time) (int64, error)
	CountPendingLeaves(ctx context.Context, scope Scope) (int64, error)
	CountEvaluated(ctx context.Context, scope Scope, from, to time.Time) (int64, error)
	RecentLeaves(ctx context.Context, scope Scope, limit int) ([]RecentLeave, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// employees returns a query over the company's current employees, filtered by scope.
func (r *repository) employees(ctx context.Context, scope Scope) *gorm.DB {
	q := r.db.WithContext(ctx).
		Table("employees AS e").
		Where("e.company_id = ? AND e.deleted_at IS NULL", scope.CompanyID)
	if scope.restricted() {
		q = q.Where("e.department_id IN ?", scope.DepartmentIDs)
	}
	return q
}

func (r *repository) CountEmployeesByStatus(ctx context.Context, scope Scope) ([]StatusCount, error) {
	var out []StatusCount
	err := r.employees(ctx, scope).
		Select("e.work_status AS status, COUNT(*) AS count").
		Group("e.work_status").
		Order("e.work_status").
		Scan(&out).Error
	return out, err
}

func (r *repository) CountEmployeesByDepartment(ctx context.Context, scope Scope) ([]DepartmentCount, error) {
	var rows []departmentCountRow
	err := r.employees(ctx, scope).
		Select("e.department_id, d.name, COUNT(*) AS count").
		Joins("LEFT JOIN departments d ON d.id = e.department_id").
		Where("e.work_status NOT IN ?", inactiveStatuses).
		Group("e.department_id, d.name").
		Order("d.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]DepartmentCount, 0, len(rows))
	for _, row := range rows {
		dc := DepartmentCount{Count: row.Count}
		if row.DepartmentID != nil {
			dc.DepartmentID = row.DepartmentID.String()
		}
		if row.Name != nil {
			dc.Name = *row.Name
		}
		out = append(out, dc)
	}
	return out, nil
}

func (r *repository) CountAttendanceByStatus(ctx context.Context, scope Scope, day time.Time) (map[string]int64, error) {
	var rows []StatusCount
	err := r.employees(ctx, scope).
		Select("a.status AS status, COUNT(*) AS count").
		Joins("JOIN attendances a ON a.employee_id = e.id").
		Where("a.work_date = ?", day.Format(time.DateOnly)).
		Group("a.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *repository) CountOnLeave(ctx context.Context, scope Scope, day time.Time) (int64, error) {
	var n int64
	d := day.Format(time.DateOnly)
	err := r.employees(ctx, scope).
		Joins("JOIN leaves l ON l.employee_id = e.id AND l.deleted_at IS NULL").
		Where("l.status = ? AND l.start_date <= ? AND l.end_date >= ?", leave.StatusApproved, d, d).
		Distinct("e.id").
		Count(&n).Error
	return n, err
}

func (r *repository) CountPendingLeaves(ctx context.Context, scope Scope) (int64, error) {
	var n int64
	err := r.employees(ctx, scope).
		Joins("JOIN leaves l ON l.employee_id = e.id AND l.deleted_at IS NULL").
		Where("l.status = ?", leave.StatusPending).
		Count(&n).Error
	return n, err
}

// CountEvaluated counts employees with a non-draft evaluation starting inside [from, to].
func (r *repository) CountEvaluated(ctx context.Context, scope Scope, from, to time.Time) (int64, error) {
	var n int64
	err := r.employees(ctx, scope).
		Joins("JOIN evaluations ev ON ev.employee_id = e.id").
		Where("ev.status <> ? AND ev.period_start BETWEEN ? AND ?", evaluation.StatusDraft, from.Format(time.DateOnly), to.Format(time.DateOnly)).
		Distinct("e.id").
		Count(&n).Error
	return n, err
}

func (r *repository) RecentLeaves(ctx context.Context, scope Scope, limit int) ([]RecentLeave, error) {
	var rows []recentLeaveRow
	err := r.employees(ctx, scope).
		Select(`l.id, l.employee_id, e.full_name AS employee_name, l.kind, l.leave_type,
			l.start_date, l.end_date, l.status, l.created_at`).
		Joins("JOIN leaves l ON l.employee_id = e.id AND l.deleted_at IS NULL").
		Order("l.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]RecentLeave, len(rows))
	for i, row := range rows {
		out[i] = RecentLeave{
			ID:           row.ID.String(),
			EmployeeID:   row.EmployeeID.String(),
			EmployeeName: row.EmployeeName,
			Kind:         row.Kind,
			LeaveType:    row.LeaveType,
			StartDate:    row.StartDate.Format(time.DateOnly),
			EndDate:      row.EndDate.Format(time.DateOnly),
			Status:       row.Status,
			CreatedAt:    row.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}

var inactiveStatuses = []string{
	string(employee.WorkStatusResigned),
	string(employee.WorkStatusTerminated),
}
