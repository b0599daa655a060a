package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EvaluationFrequency string

const (
	FrequencyAnnual     EvaluationFrequency = "ANNUAL"
	FrequencySemiAnnual EvaluationFrequency = "SEMI_ANNUAL"
	FrequencyQuarterly  EvaluationFrequency = "QUARTERLY"
)

func (f EvaluationFrequency) Valid() bool {
	switch f {
	case FrequencyAnnual, FrequencySemiAnnual, FrequencyQuarterly:
		return true
	}
	return false
}

type Department struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CompanyID           uuid.UUID           `gorm:"type:uuid;not null"`
	Name                string              `gorm:"size:255;not null"`
	Description         string              `gorm:"type:text"`
	EvaluationFrequency EvaluationFrequency `gorm:"size:20;not null;default:ANNUAL"`
	CreatedAt           time.Time           `gorm:"autoCreateTime"`
	UpdatedAt           time.Time           `gorm:"autoUpdateTime"`
	DeletedAt           gorm.DeletedAt      `gorm:"index"`
}

// DepartmentSupervisor grants a supervisor user visibility over one department.
type DepartmentSupervisor struct {
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null"`
	DepartmentID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	User         *SupervisorUser `gorm:"foreignKey:UserID;references:ID"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
}

type SupervisorUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid"`
	Name      string
	Email     string
	Role      string
	IsActive  bool
}

func (SupervisorUser) TableName() string {
	return "users"
}
