package leave

import (
	"context"
	"database/sql"
	"time"

	leaveerrors "hris-portal/internal/leave/errors"
	"hris-portal/internal/shared/connection"
	"hris-portal/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Leave, int64, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error)
	// FindByIDForUpdate locks the request row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, companyID, id string) (*Leave, error)
	// TransitionStatus persists l's status and review fields only while the row is still in from.
	TransitionStatus(ctx context.Context, l *Leave, from string) error
	SetAttachment(ctx context.Context, companyID, id, documentID string) error
	HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error)
	FindBalanceForUpdate(ctx context.Context, companyID, employeeID string, year int, leaveType string) (*LeaveBalance, error)
	UpsertBalance(ctx context.Context, b *LeaveBalance) error
	UpdateBalanceUsed(ctx context.Context, id string, used int) error
	ListBalances(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Leave, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(tenant.ScopeTable("leaves", companyID))

	if filter.VisibleDepartmentIDs != nil {
		if len(filter.VisibleDepartmentIDs) == 0 {
			return []Leave{}, 0, nil
		}
		q = q.Joins("JOIN employees e ON e.id = leaves.employee_id").
			Where("e.department_id IN ?", filter.VisibleDepartmentIDs)
	}
	if filter.EmployeeID != "" {
		q = q.Where("leaves.employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("leaves.status = ?", filter.Status)
	}
	if filter.Kind != "" {
		q = q.Where("leaves.kind = ?", filter.Kind)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaves []Leave
	q = q.Preload("Employee").Order("leaves.start_date DESC, leaves.created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	err := q.Find(&leaves).Error
	return leaves, total, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Employee").
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Take(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) TransitionStatus(ctx context.Context, l *Leave, from string) error {
	l.UpdatedAt = time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(tenant.Scope(l.CompanyID.String())).
		Where("id = ? AND status = ?", l.ID, from).
		Updates(map[string]any{
			"status":      l.Status,
			"reviewed_by": l.ReviewedBy,
			"reviewed_at": l.ReviewedAt,
			"review_note": l.ReviewNote,
			"updated_at":  l.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return leaveerrors.ErrInvalidStatusTransition
	}
	return nil
}

func (r *repository) SetAttachment(ctx context.Context, companyID, id, documentID string) error {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("attachment_document_id", documentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate.Format(time.DateOnly), endDate.Format(time.DateOnly)).
		Count(&count).Error
	return count > 0, err
}

// FindBalanceForUpdate locks the balance row until the surrounding transaction ends.
func (r *repository) FindBalanceForUpdate(ctx context.Context, companyID, employeeID string, year int, leaveType string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND year = ? AND leave_type = ?", employeeID, year, leaveType).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) UpsertBalance(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "year"}, {Name: "leave_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"allotted", "updated_at"}),
		}).
		Create(b).Error
}

func (r *repository) UpdateBalanceUsed(ctx context.Context, id string, used int) error {
	return r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("id = ?", id).
		Update("used", used).Error
}

func (r *repository) ListBalances(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
	var rows []LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND year = ?", employeeID, year).
		Order("leave_type ASC").
		Find(&rows).Error
	return rows, err
}
