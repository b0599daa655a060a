package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"

	SourcePortal = "PORTAL"
	SourceAdmin  = "ADMIN"
)

type Attendance struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID        uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID       uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index"`
	WorkDate         time.Time      `gorm:"column:work_date;type:date;not null;index"`
	ClockIn          *time.Time     `gorm:"column:clock_in;type:timestamptz"`
	ClockOut         *time.Time     `gorm:"column:clock_out;type:timestamptz"`
	Status           string         `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	LateMinutes      int            `gorm:"column:late_minutes;not null;default:0"`
	UndertimeMinutes int            `gorm:"column:undertime_minutes;not null;default:0"`
	Source           string         `gorm:"column:source;type:varchar(20);not null;default:PORTAL"`
	RecordedBy       *uuid.UUID     `gorm:"column:recorded_by;type:uuid"`
	Notes            *string        `gorm:"column:notes;type:text"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Employee         *EmployeeRef   `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName     string     `gorm:"column:full_name"`
	DepartmentID *uuid.UUID `gorm:"column:department_id;type:uuid"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

type ListFilter struct {
	EmployeeID string
	Status     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int

	// nil means every department is visible
	VisibleDepartmentIDs []string
}

// Summary aggregates attendance rows over a date range.
type Summary struct {
	Present          int `json:"present" gorm:"column:present"`
	Late             int `json:"late" gorm:"column:late"`
	Absent           int `json:"absent" gorm:"column:absent"`
	Undertime        int `json:"undertime" gorm:"column:undertime"`
	LateMinutes      int `json:"late_minutes" gorm:"column:late_minutes"`
	UndertimeMinutes int `json:"undertime_minutes" gorm:"column:undertime_minutes"`
}
