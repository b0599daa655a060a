package company

import (
	"context"
	"time"

	companyerrors "hris-portal/internal/company/errors"
	"hris-portal/internal/shared/dberr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var repositoryErrors = dberr.Mapping{NotFound: companyerrors.ErrCompanyNotFound}

//go:generate mockgen -destination=mock/company_repo_mock.go -package=mock . Repository
type Repository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	// UpdateProfile writes the editable contact columns only.
	UpdateProfile(ctx context.Context, company *Company) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Company) error {
	return repositoryErrors.Map(r.db.WithContext(ctx).Create(c).Error)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error; err != nil {
		return nil, repositoryErrors.Map(err)
	}
	return &c, nil
}

func (r *repository) UpdateProfile(ctx context.Context, c *Company) error {
	c.UpdatedAt = time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&Company{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":       c.Name,
			"email":      c.Email,
			"phone":      c.Phone,
			"address":    c.Address,
			"updated_at": c.UpdatedAt,
		})
	if res.Error != nil {
		return repositoryErrors.Map(res.Error)
	}
	if res.RowsAffected == 0 {
		return companyerrors.ErrCompanyNotFound
	}
	return nil
}
