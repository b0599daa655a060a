package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an administrative account. Employees sign in through the portal instead.
type User struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	Name      string         `gorm:"column:name;type:varchar(255);not null"`
	Email     string         `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_user_email"`
	Password  string         `gorm:"column:password;type:text;not null"`
	Role      string         `gorm:"column:role;type:varchar(50);not null"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

type ListFilter struct {
	Query  string
	Role   string
	Limit  int
	Offset int
}
