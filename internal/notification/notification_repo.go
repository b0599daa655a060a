package notification

import (
	"context"
	"time"

	"hris-portal/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) (bool, error)
	FindAll(ctx context.Context, companyID string, r Recipient, filter ListFilter) ([]Notification, int64, error)
	CountUnread(ctx context.Context, companyID string, r Recipient) (int64, error)
	MarkRead(ctx context.Context, companyID string, r Recipient, id string, at time.Time) error
	MarkAllRead(ctx context.Context, companyID string, r Recipient, at time.Time) (int64, error)

	FindUsersByRole(ctx context.Context, companyID string, roles []string) ([]Contact, error)
	FindDepartmentSupervisors(ctx context.Context, companyID, departmentID string) ([]Contact, error)
	FindEmployee(ctx context.Context, companyID, employeeID string) (Contact, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create reports false when the same delivery already exists.
func (r *repository) Create(ctx context.Context, n *Notification) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(n)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) recipientQuery(ctx context.Context, companyID string, rc Recipient) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Scopes(tenant.Scope(companyID)).
		Where("recipient_type = ? AND recipient_id = ?", rc.Type, rc.ID)
}

func (r *repository) FindAll(ctx context.Context, companyID string, rc Recipient, filter ListFilter) ([]Notification, int64, error) {
	q := r.recipientQuery(ctx, companyID, rc)
	if filter.UnreadOnly {
		q = q.Where("read_at IS NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []Notification
	q = q.Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	err := q.Find(&out).Error
	return out, total, err
}

func (r *repository) CountUnread(ctx context.Context, companyID string, rc Recipient) (int64, error) {
	var n int64
	err := r.recipientQuery(ctx, companyID, rc).Where("read_at IS NULL").Count(&n).Error
	return n, err
}

func (r *repository) MarkRead(ctx context.Context, companyID string, rc Recipient, id string, at time.Time) error {
	res := r.recipientQuery(ctx, companyID, rc).
		Where("id = ?", id).
		Update("read_at", gorm.Expr("COALESCE(read_at, ?)", at))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) MarkAllRead(ctx context.Context, companyID string, rc Recipient, at time.Time) (int64, error) {
	res := r.recipientQuery(ctx, companyID, rc).
		Where("read_at IS NULL").
		Update("read_at", at)
	return res.RowsAffected, res.Error
}

type contactRow struct {
	ID    uuid.UUID
	Name  string
	Email string
}

func toContacts(kind string, rows []contactRow) []Contact {
	out := make([]Contact, len(rows))
	for i, row := range rows {
		out[i] = Contact{Recipient: Recipient{Type: kind, ID: row.ID.String()}, Name: row.Name, Email: row.Email}
	}
	return out
}

func (r *repository) FindUsersByRole(ctx context.Context, companyID string, roles []string) ([]Contact, error) {
	var rows []contactRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("id, name, email").
		Where("company_id = ? AND role IN ? AND is_active AND deleted_at IS NULL", companyID, roles).
		Scan(&rows).Error
	return toContacts(RecipientUser, rows), err
}

func (r *repository) FindDepartmentSupervisors(ctx context.Context, companyID, departmentID string) ([]Contact, error) {
	var rows []contactRow
	err := r.db.WithContext(ctx).
		Table("department_supervisors ds").
		Select("u.id, u.name, u.email").
		Joins("JOIN users u ON u.id = ds.user_id").
		Where("ds.company_id = ? AND ds.department_id = ?", companyID, departmentID).
		Where("u.is_active AND u.deleted_at IS NULL").
		Scan(&rows).Error
	return toContacts(RecipientUser, rows), err
}

func (r *repository) FindEmployee(ctx context.Context, companyID, employeeID string) (Contact, error) {
	var row contactRow
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id, full_name AS name, email").
		Where("company_id = ? AND id = ? AND deleted_at IS NULL", companyID, employeeID).
		Take(&row).Error
	if err != nil {
		return Contact{}, err
	}
	return Contact{Recipient: Recipient{Type: RecipientEmployee, ID: row.ID.String()}, Name: row.Name, Email: row.Email}, nil
}
