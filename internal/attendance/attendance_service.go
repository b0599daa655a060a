package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "hris-portal/internal/attendance/errors"
	"hris-portal/internal/employee"
	"hris-portal/internal/shared/access"
	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type EmployeeLookup interface {
	Lookup(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
}

type Service interface {
	ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	Today(ctx context.Context, companyID, employeeID string) (*AttendanceResponse, error)
	ListForEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]AttendanceResponse, int64, error)
	GetAll(ctx context.Context, actor access.Actor, filter ListFilter) ([]AttendanceResponse, int64, error)
	GetByID(ctx context.Context, actor access.Actor, id string) (AttendanceResponse, error)
	Record(ctx context.Context, actor access.Actor, req RecordAttendanceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, actor access.Actor, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, actor access.Actor, id string) error
	Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (Summary, error)
	SummaryFor(ctx context.Context, actor access.Actor, employeeID string, from, to time.Time) (Summary, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeLookup
	resolver  access.DepartmentResolver
	schedule  Schedule
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeLookup,
	resolver access.DepartmentResolver,
	schedule Schedule,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		resolver:  resolver,
		schedule:  schedule,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceResponse{}, apperror.ErrInvalidInput
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, apperror.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := s.schedule.WorkDate(now)

	_, err = qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	status, late := s.schedule.Classify(today, now)
	clockIn := now.UTC()
	row := &Attendance{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		WorkDate:    today,
		ClockIn:     &clockIn,
		Status:      status,
		LateMinutes: late,
		Source:      SourcePortal,
		Notes:       req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		err = mapRepositoryError(err)
		if errors.Is(err, attendanceerrors.ErrAlreadyRecorded) {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
		}
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	log.Info("clock in",
		zap.String("employee_id", employeeID),
		zap.String("status", status),
		zap.Int("late_minutes", late),
	)
	return s.mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := s.schedule.WorkDate(now)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
		}
		return AttendanceResponse{}, err
	}
	if row.ClockIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	clockOut := now.UTC()
	row.ClockOut = &clockOut
	row.UndertimeMinutes = s.schedule.Undertime(today, now)
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("clock out",
		zap.String("employee_id", employeeID),
		zap.Int("undertime_minutes", row.UndertimeMinutes),
	)
	return s.mapToResponse(*row), nil
}

// Today returns nil when the employee has no row for the current work date.
func (s *service) Today(ctx context.Context, companyID, employeeID string) (*AttendanceResponse, error) {
	row, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, s.schedule.WorkDate(s.now()))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	resp := s.mapToResponse(*row)
	return &resp, nil
}

func (s *service) ListForEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]AttendanceResponse, int64, error) {
	filter.EmployeeID = employeeID
	filter.VisibleDepartmentIDs = nil
	rows, total, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return s.mapToListResponse(rows), total, nil
}

func (s *service) GetAll(ctx context.Context, actor access.Actor, filter ListFilter) ([]AttendanceResponse, int64, error) {
	vis, err := access.Resolve(ctx, s.resolver, actor)
	if err != nil {
		return nil, 0, err
	}
	if !vis.All {
		filter.VisibleDepartmentIDs = append([]string{}, vis.DepartmentIDs...)
	}

	rows, total, err := s.repo.FindAll(ctx, actor.CompanyID, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list attendance failed", zap.Error(err))
		return nil, 0, err
	}
	return s.mapToListResponse(rows), total, nil
}

func (s *service) GetByID(ctx context.Context, actor access.Actor, id string) (AttendanceResponse, error) {
	row, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return AttendanceResponse{}, err
	}
	return s.mapToResponse(*row), nil
}

func (s *service) Record(ctx context.Context, actor access.Actor, req RecordAttendanceRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.checkEmployeeScope(ctx, actor, req.EmployeeID); err != nil {
		return AttendanceResponse{}, err
	}

	workDate, err := time.Parse(time.DateOnly, req.WorkDate)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("work_date")
	}
	companyUUID, err := uuid.Parse(actor.CompanyID)
	if err != nil {
		return AttendanceResponse{}, apperror.ErrInvalidInput
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("employee_id")
	}

	row := &Attendance{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		WorkDate:   workDate,
		Source:     SourceAdmin,
		RecordedBy: parseUUIDPtr(actor.UserID),
		Notes:      req.Notes,
	}
	if err := s.applyTimes(row, req.Status, req.ClockIn, req.ClockOut); err != nil {
		return AttendanceResponse{}, err
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	log.Info("attendance recorded",
		zap.String("employee_id", req.EmployeeID),
		zap.String("work_date", req.WorkDate),
		zap.String("status", row.Status),
		zap.String("recorded_by", actor.UserID),
	)
	return s.mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, actor access.Actor, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	row, err := s.loadScoped(ctx, actor, id)
	if err != nil {
		return AttendanceResponse{}, err
	}

	clockIn, clockOut := req.ClockIn, req.ClockOut
	if clockIn == "" && row.ClockIn != nil {
		clockIn = row.ClockIn.In(s.schedule.loc()).Format("15:04")
	}
	if clockOut == "" && row.ClockOut != nil {
		clockOut = row.ClockOut.In(s.schedule.loc()).Format("15:04")
	}
	if err := s.applyTimes(row, req.Status, clockIn, clockOut); err != nil {
		return AttendanceResponse{}, err
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}
	row.Source = SourceAdmin
	row.RecordedBy = parseUUIDPtr(actor.UserID)
	row.Employee = nil

	if err := s.repo.Update(ctx, row); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("attendance updated",
		zap.String("attendance_id", id),
		zap.String("status", row.Status),
	)
	return s.mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, actor access.Actor, id string) error {
	if _, err := s.loadScoped(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, actor.CompanyID, id); err != nil {
		return mapRepositoryError(err)
	}
	contextutil.GetLogger(ctx, s.logger).Info("attendance deleted", zap.String("attendance_id", id))
	return nil
}

func (s *service) Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (Summary, error) {
	if to.Before(from) {
		return Summary{}, attendanceerrors.ErrInvalidDateRange
	}
	return s.repo.Summarize(ctx, companyID, employeeID, from, to)
}

func (s *service) SummaryFor(ctx context.Context, actor access.Actor, employeeID string, from, to time.Time) (Summary, error) {
	if err := s.checkEmployeeScope(ctx, actor, employeeID); err != nil {
		return Summary{}, err
	}
	return s.Summary(ctx, actor.CompanyID, employeeID, from, to)
}

// applyTimes sets status and minute counters from HH:MM inputs on row.WorkDate.
// ABSENT clears both times; any other status is derived from the clock-in.
func (s *service) applyTimes(row *Attendance, status, clockIn, clockOut string) error {
	if status == StatusAbsent {
		row.Status = StatusAbsent
		row.ClockIn = nil
		row.ClockOut = nil
		row.LateMinutes = 0
		row.UndertimeMinutes = 0
		return nil
	}
	if clockIn == "" {
		return attendanceerrors.ErrClockInRequired
	}

	in, err := s.schedule.ParseTimeOfDay(row.WorkDate, clockIn)
	if err != nil {
		return apperror.InvalidField("clock_in")
	}
	row.Status, row.LateMinutes = s.schedule.Classify(row.WorkDate, in)
	inUTC := in.UTC()
	row.ClockIn = &inUTC
	row.ClockOut = nil
	row.UndertimeMinutes = 0

	if clockOut != "" {
		out, err := s.schedule.ParseTimeOfDay(row.WorkDate, clockOut)
		if err != nil {
			return apperror.InvalidField("clock_out")
		}
		if !out.After(in) {
			return attendanceerrors.ErrInvalidTimeRange
		}
		outUTC := out.UTC()
		row.ClockOut = &outUTC
		row.UndertimeMinutes = s.schedule.Undertime(row.WorkDate, out)
	}
	return nil
}

func (s *service) loadScoped(ctx context.Context, actor access.Actor, id string) (*Attendance, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, attendanceerrors.ErrInvalidAttendanceID
	}
	row, err := s.repo.FindByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	vis, err := access.Resolve(ctx, s.resolver, actor)
	if err != nil {
		return nil, err
	}
	departmentID := ""
	if row.Employee != nil && row.Employee.DepartmentID != nil {
		departmentID = row.Employee.DepartmentID.String()
	}
	if !vis.Allows(departmentID) {
		return nil, attendanceerrors.ErrOutOfScope
	}
	return row, nil
}

func (s *service) checkEmployeeScope(ctx context.Context, actor access.Actor, employeeID string) error {
	empl, err := s.employees.Lookup(ctx, actor.CompanyID, employeeID)
	if err != nil {
		return err
	}
	vis, err := access.Resolve(ctx, s.resolver, actor)
	if err != nil {
		return err
	}
	if !vis.Allows(empl.DepartmentID) {
		return attendanceerrors.ErrOutOfScope
	}
	return nil
}

func (s *service) mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               a.ID.String(),
		CompanyID:        a.CompanyID.String(),
		EmployeeID:       a.EmployeeID.String(),
		WorkDate:         a.WorkDate.Format(time.DateOnly),
		Status:           a.Status,
		LateMinutes:      a.LateMinutes,
		UndertimeMinutes: a.UndertimeMinutes,
		Source:           a.Source,
		Notes:            a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.ClockIn != nil {
		v := a.ClockIn.In(s.schedule.loc()).Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if a.ClockOut != nil {
		v := a.ClockOut.In(s.schedule.loc()).Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}

func (s *service) mapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = s.mapToResponse(r)
	}
	return res
}

func parseUUIDPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}
