package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"

	KindLeave   = "LEAVE"
	KindAbsence = "ABSENCE"

	TypeVacation    = "VACATION"
	TypeSick        = "SICK"
	TypeEmergency   = "EMERGENCY"
	TypeMaternity   = "MATERNITY"
	TypePaternity   = "PATERNITY"
	TypeBereavement = "BEREAVEMENT"
	TypeUnpaid      = "UNPAID"
)

// TrackedBalance reports whether approved leave of this type draws down a yearly allotment.
func TrackedBalance(leaveType string) bool {
	return leaveType == TypeVacation || leaveType == TypeSick
}

type Leave struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID    `gorm:"type:uuid;not null;index:idx_leaves_company_status"`
	EmployeeID uuid.UUID    `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	Kind      string    `gorm:"type:varchar(20);not null;default:'LEAVE'"`
	LeaveType string    `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status               string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_company_status"`
	CreatedBy            *uuid.UUID `gorm:"type:uuid"`
	ReviewedBy           *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt           *time.Time
	ReviewNote           *string    `gorm:"type:text"`
	AttachmentDocumentID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}

type EmployeeRef struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName     string     `gorm:"column:full_name"`
	DepartmentID *uuid.UUID `gorm:"column:department_id;type:uuid"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

type LeaveBalance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null"`
	Year       int       `gorm:"not null"`
	LeaveType  string    `gorm:"type:varchar(30);not null"`
	Allotted   int       `gorm:"not null;default:0"`
	Used       int       `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (b LeaveBalance) Remaining() int {
	return b.Allotted - b.Used
}

type ListFilter struct {
	EmployeeID string
	Status     string
	Kind       string
	Limit      int
	Offset     int

	// nil means every department is visible
	VisibleDepartmentIDs []string
}

// CountWeekdays counts Monday to Friday days between start and end inclusive.
func CountWeekdays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}
