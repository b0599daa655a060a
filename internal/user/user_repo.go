package user

import (
	"context"
	"strings"

	"hris-portal/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, companyID string, id string) (*User, error)
	FindAll(ctx context.Context, companyID string, filter ListFilter) ([]User, int64, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	CountActiveByRole(ctx context.Context, companyID, role string) (int64, error)
	Update(ctx context.Context, u *User) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, companyID string, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ListFilter) ([]User, int64, error) {
	q := r.db.WithContext(ctx).Model(&User{}).Scopes(tenant.Scope(companyID))
	if s := strings.TrimSpace(filter.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := q.Order("name ASC").Limit(filter.Limit).Offset(filter.Offset).Find(&users).Error
	return users, total, err
}

// ExistsByEmail is not tenant scoped: login resolves the company from the email.
func (r *repository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&User{}).Where("LOWER(email) = LOWER(?)", email)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *repository) CountActiveByRole(ctx context.Context, companyID, role string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Scopes(tenant.Scope(companyID)).
		Where("role = ? AND is_active = ?", role, true).
		Count(&n).Error
	return n, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}
