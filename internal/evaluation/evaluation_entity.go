package evaluation

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft        = "DRAFT"
	StatusFinalized    = "FINALIZED"
	StatusAcknowledged = "ACKNOWLEDGED"
)

type Evaluation struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_evaluation_employee_period"`
	EmployeeID  uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_evaluation_employee_period"`
	Employee    *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
	EvaluatorID uuid.UUID    `gorm:"type:uuid;not null"`

	PeriodKey   string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_evaluation_employee_period"`
	Frequency   string    `gorm:"type:varchar(20);not null"`
	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`

	LateCount          int     `gorm:"not null;default:0"`
	AbsentCount        int     `gorm:"not null;default:0"`
	UndertimeCount     int     `gorm:"not null;default:0"`
	SupervisorAttitude float64 `gorm:"type:numeric(3,2);not null"`
	CoworkerAttitude   float64 `gorm:"type:numeric(3,2);not null"`

	AttendanceRating   float64 `gorm:"type:numeric(3,2);not null"`
	AttitudeRating     float64 `gorm:"type:numeric(3,2);not null"`
	WorkAttitudeRating float64 `gorm:"type:numeric(3,2);not null"`
	WorkFunctionRating float64 `gorm:"type:numeric(3,2);not null"`
	FinalRating        float64 `gorm:"type:numeric(3,2);not null"`
	Adjectival         string  `gorm:"type:varchar(30);not null"`

	Status         string `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Comments       string `gorm:"type:text"`
	FinalizedAt    *time.Time
	AcknowledgedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	WorkAttitudes []WorkAttitudeScore `gorm:"foreignKey:EvaluationID;constraint:OnDelete:CASCADE"`
	WorkFunctions []WorkFunction      `gorm:"foreignKey:EvaluationID;constraint:OnDelete:CASCADE"`
}

type WorkAttitudeScore struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EvaluationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Criterion    string    `gorm:"type:varchar(30);not null"`
	Score        float64   `gorm:"type:numeric(3,2);not null"`
}

func (WorkAttitudeScore) TableName() string {
	return "evaluation_work_attitudes"
}

type WorkFunction struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EvaluationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position     int       `gorm:"not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Quality      float64   `gorm:"type:numeric(3,2);not null"`
	Efficiency   float64   `gorm:"type:numeric(3,2);not null"`
}

func (WorkFunction) TableName() string {
	return "evaluation_work_functions"
}

type EmployeeRef struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string     `gorm:"column:employee_number"`
	FullName       string     `gorm:"column:full_name"`
	DepartmentID   *uuid.UUID `gorm:"column:department_id;type:uuid"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

type ListFilter struct {
	EmployeeID string
	PeriodKey  string
	Status     string
	HideDrafts bool
	Limit      int
	Offset     int

	// nil means every department is visible
	VisibleDepartmentIDs []string
}

// Rubric rebuilds the scoring input from the stored rows.
func (e Evaluation) Rubric() Rubric {
	r := Rubric{
		Attendance: AttendanceFigures{
			Late:      e.LateCount,
			Absent:    e.AbsentCount,
			Undertime: e.UndertimeCount,
		},
		SupervisorAttitude: e.SupervisorAttitude,
		CoworkerAttitude:   e.CoworkerAttitude,
		WorkAttitude:       make(map[string]float64, len(e.WorkAttitudes)),
		WorkFunctions:      make([]WorkFunctionScore, 0, len(e.WorkFunctions)),
	}
	for _, wa := range e.WorkAttitudes {
		r.WorkAttitude[wa.Criterion] = wa.Score
	}
	for _, fn := range e.WorkFunctions {
		r.WorkFunctions = append(r.WorkFunctions, WorkFunctionScore{Name: fn.Name, Quality: fn.Quality, Efficiency: fn.Efficiency})
	}
	return r
}

func (e *Evaluation) apply(r Rubric, res Result) {
	e.LateCount = r.Attendance.Late
	e.AbsentCount = r.Attendance.Absent
	e.UndertimeCount = r.Attendance.Undertime
	e.SupervisorAttitude = r.SupervisorAttitude
	e.CoworkerAttitude = r.CoworkerAttitude

	e.AttendanceRating = res.AttendanceRating
	e.AttitudeRating = res.AttitudeRating
	e.WorkAttitudeRating = res.WorkAttitudeRating
	e.WorkFunctionRating = res.WorkFunctionRating
	e.FinalRating = res.FinalRating
	e.Adjectival = res.Adjectival

	e.WorkAttitudes = make([]WorkAttitudeScore, 0, len(Criteria))
	for _, c := range Criteria {
		e.WorkAttitudes = append(e.WorkAttitudes, WorkAttitudeScore{
			ID:           uuid.New(),
			EvaluationID: e.ID,
			Criterion:    c,
			Score:        r.WorkAttitude[c],
		})
	}
	e.WorkFunctions = make([]WorkFunction, 0, len(r.WorkFunctions))
	for i, fn := range r.WorkFunctions {
		e.WorkFunctions = append(e.WorkFunctions, WorkFunction{
			ID:           uuid.New(),
			EvaluationID: e.ID,
			Position:     i + 1,
			Name:         fn.Name,
			Quality:      fn.Quality,
			Efficiency:   fn.Efficiency,
		})
	}
}
