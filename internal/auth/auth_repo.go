package auth

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	var acc Account
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&acc).Error
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	var acc Account
	err := r.db.WithContext(ctx).First(&acc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &acc, nil
}
