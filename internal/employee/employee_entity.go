package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkStatus string

const (
	WorkStatusRegular      WorkStatus = "REGULAR"
	WorkStatusProbationary WorkStatus = "PROBATIONARY"
	WorkStatusContractual  WorkStatus = "CONTRACTUAL"
	WorkStatusPartTime     WorkStatus = "PART_TIME"
	WorkStatusResigned     WorkStatus = "RESIGNED"
	WorkStatusTerminated   WorkStatus = "TERMINATED"
)

// Active is false once the employee has left the company.
func (s WorkStatus) Active() bool {
	return s != WorkStatusResigned && s != WorkStatusTerminated
}

type Employee struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID           `gorm:"type:uuid;index"`
	EmployeeNumber     string              `gorm:"size:50;not null"`
	FullName           string              `gorm:"size:255;not null"`
	Email              string              `gorm:"size:255;not null"`
	Phone              string              `gorm:"size:50"`
	DepartmentID       *uuid.UUID          `gorm:"type:uuid"`
	Department         *EmployeeDepartment `gorm:"foreignKey:DepartmentID;references:ID"`
	PositionID         *uuid.UUID          `gorm:"type:uuid"`
	Position           *EmployeePosition   `gorm:"foreignKey:PositionID;references:ID"`
	HireDate           time.Time           `gorm:"type:date"`
	WorkStatus         WorkStatus          `gorm:"size:20;not null"`
	PortalPasswordHash string              `gorm:"column:portal_password_hash"`
	PhotoDocumentID    *uuid.UUID          `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

type EmployeeDepartment struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (EmployeeDepartment) TableName() string {
	return "departments"
}

type EmployeePosition struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (EmployeePosition) TableName() string {
	return "positions"
}

type ListFilter struct {
	DepartmentID string
	PositionID   string
	WorkStatus   string
	Search       string
	SortBy       string
	SortDir      string
	Limit        int
	Offset       int

	// nil means every department is visible
	VisibleDepartmentIDs []string
}
