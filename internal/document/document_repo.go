package document

import (
	"context"

	"hris-portal/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, d *Document) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Document, error)
	FindByEmployee(ctx context.Context, companyID, employeeID, category string) ([]Document, error)
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Document, error) {
	var d Document
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID, category string) ([]Document, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var out []Document
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Document{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
