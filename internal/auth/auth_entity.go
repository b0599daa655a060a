package auth

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is the login view of a row in users.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid"`
	Name      string
	Email     string
	Password  string
	Role      string
	IsActive  bool
	DeletedAt gorm.DeletedAt
}

func (Account) TableName() string {
	return "users"
}
