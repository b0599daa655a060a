package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"hris-portal/internal/attendance"
	attendanceerrors "hris-portal/internal/attendance/errors"
	attendanceMock "hris-portal/internal/attendance/mock"
	"hris-portal/internal/employee"
	"hris-portal/internal/shared/access"
	accessMock "hris-portal/internal/shared/access/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   attendance.Service
	repo      *attendanceMock.MockRepository
	employees *attendanceMock.MockEmployeeLookup
	resolver  *accessMock.MockDepartmentResolver
}

func setupServiceTest(t *testing.T, now time.Time) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := attendanceMock.NewMockRepository(ctrl)
	employees := attendanceMock.NewMockEmployeeLookup(ctrl)
	resolver := accessMock.NewMockDepartmentResolver(ctrl)

	schedule := attendance.Schedule{Start: 9 * 60, End: 17 * 60, Grace: 15, Location: time.UTC}
	svc := attendance.NewService(db, repo, employees, resolver, schedule)
	attendance.SetClock(svc, func() time.Time { return now })

	return &serviceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, employees: employees, resolver: resolver}
}

func TestAttendanceService_ClockIn(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("late clock in", func(t *testing.T) {
		deps := setupServiceTest(t, time.Date(2026, 3, 2, 9, 40, 0, 0, time.UTC))

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, companyID, employeeID, today).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, a *attendance.Attendance) error {
			assert.Equal(t, attendance.StatusLate, a.Status)
			assert.Equal(t, 40, a.LateMinutes)
			assert.Equal(t, attendance.SourcePortal, a.Source)
			return nil
		})

		resp, err := deps.service.ClockIn(ctx, companyID, employeeID, attendance.ClockInRequest{})

		require.NoError(t, err)
		assert.Equal(t, "2026-03-02", resp.WorkDate)
		assert.Equal(t, attendance.StatusLate, resp.Status)
		assert.NotNil(t, resp.ClockIn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("second clock in conflicts", func(t *testing.T) {
		deps := setupServiceTest(t, time.Date(2026, 3, 2, 8, 55, 0, 0, time.UTC))

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, companyID, employeeID, today).Return(&attendance.Attendance{ID: uuid.New()}, nil)

		_, err := deps.service.ClockIn(ctx, companyID, employeeID, attendance.ClockInRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_ClockOut(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	clockIn := time.Date(2026, 3, 2, 8, 58, 0, 0, time.UTC)

	t.Run("early leave records undertime", func(t *testing.T) {
		deps := setupServiceTest(t, time.Date(2026, 3, 2, 16, 15, 0, 0, time.UTC))

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, companyID, employeeID, today).
			Return(&attendance.Attendance{ID: uuid.New(), WorkDate: today, ClockIn: &clockIn, Status: attendance.StatusPresent}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.ClockOut(ctx, companyID, employeeID, attendance.ClockOutRequest{})

		require.NoError(t, err)
		assert.Equal(t, 45, resp.UndertimeMinutes)
		assert.NotNil(t, resp.ClockOut)
	})

	t.Run("without clock in", func(t *testing.T) {
		deps := setupServiceTest(t, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC))

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, companyID, employeeID, today).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.ClockOut(ctx, companyID, employeeID, attendance.ClockOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)
	})

	t.Run("twice", func(t *testing.T) {
		deps := setupServiceTest(t, time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC))
		out := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, companyID, employeeID, today).
			Return(&attendance.Attendance{ClockIn: &clockIn, ClockOut: &out}, nil)

		_, err := deps.service.ClockOut(ctx, companyID, employeeID, attendance.ClockOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedOut)
	})
}

func TestAttendanceService_Record(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	departmentID := uuid.New().String()
	admin := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleHR}

	t.Run("mark absent", func(t *testing.T) {
		deps := setupServiceTest(t, time.Now())

		deps.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(employee.EmployeeResponse{ID: employeeID, DepartmentID: departmentID}, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, a *attendance.Attendance) error {
			assert.Equal(t, attendance.StatusAbsent, a.Status)
			assert.Nil(t, a.ClockIn)
			assert.Equal(t, attendance.SourceAdmin, a.Source)
			assert.Equal(t, admin.UserID, a.RecordedBy.String())
			return nil
		})

		resp, err := deps.service.Record(ctx, admin, attendance.RecordAttendanceRequest{
			EmployeeID: employeeID,
			WorkDate:   "2026-03-02",
			Status:     attendance.StatusAbsent,
		})

		require.NoError(t, err)
		assert.Equal(t, attendance.StatusAbsent, resp.Status)
	})

	t.Run("times recompute status", func(t *testing.T) {
		deps := setupServiceTest(t, time.Now())

		deps.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(employee.EmployeeResponse{ID: employeeID, DepartmentID: departmentID}, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Record(ctx, admin, attendance.RecordAttendanceRequest{
			EmployeeID: employeeID,
			WorkDate:   "2026-03-02",
			Status:     attendance.StatusPresent,
			ClockIn:    "09:30",
			ClockOut:   "16:00",
		})

		require.NoError(t, err)
		assert.Equal(t, attendance.StatusLate, resp.Status)
		assert.Equal(t, 30, resp.LateMinutes)
		assert.Equal(t, 60, resp.UndertimeMinutes)
	})

	t.Run("clock out before clock in", func(t *testing.T) {
		deps := setupServiceTest(t, time.Now())

		deps.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(employee.EmployeeResponse{ID: employeeID, DepartmentID: departmentID}, nil)

		_, err := deps.service.Record(ctx, admin, attendance.RecordAttendanceRequest{
			EmployeeID: employeeID,
			WorkDate:   "2026-03-02",
			ClockIn:    "10:00",
			ClockOut:   "09:00",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidTimeRange)
	})

	t.Run("supervisor outside department", func(t *testing.T) {
		deps := setupServiceTest(t, time.Now())
		supervisor := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleSupervisor}

		deps.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(employee.EmployeeResponse{ID: employeeID, DepartmentID: departmentID}, nil)
		deps.resolver.EXPECT().SupervisedDepartmentIDs(ctx, companyID, supervisor.UserID).Return([]string{uuid.New().String()}, nil)

		_, err := deps.service.Record(ctx, supervisor, attendance.RecordAttendanceRequest{
			EmployeeID: employeeID,
			WorkDate:   "2026-03-02",
			Status:     attendance.StatusAbsent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrOutOfScope)
	})
}

func TestAttendanceService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	id := uuid.New()
	admin := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleAdmin}
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	clockIn := time.Date(2026, 3, 2, 9, 45, 0, 0, time.UTC)

	deps := setupServiceTest(t, time.Now())

	deps.repo.EXPECT().FindByID(ctx, companyID, id.String()).
		Return(&attendance.Attendance{ID: id, WorkDate: day, ClockIn: &clockIn, Status: attendance.StatusLate, LateMinutes: 45}, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	resp, err := deps.service.Update(ctx, admin, id.String(), attendance.UpdateAttendanceRequest{ClockIn: "09:05", ClockOut: "17:00"})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Zero(t, resp.LateMinutes)
	assert.Zero(t, resp.UndertimeMinutes)
	assert.Equal(t, attendance.SourceAdmin, resp.Source)
}

func TestAttendanceService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t, time.Now())
		id := uuid.New().String()

		deps.repo.EXPECT().FindByID(ctx, companyID, id).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, access.Actor{CompanyID: companyID, Role: access.RoleAdmin}, id)

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t, time.Now())

		err := deps.service.Delete(ctx, access.Actor{CompanyID: companyID}, "nope")

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidAttendanceID)
	})
}

func TestAttendanceService_Summary(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	deps := setupServiceTest(t, time.Now())

	deps.repo.EXPECT().Summarize(ctx, companyID, employeeID, from, to).
		Return(attendance.Summary{Present: 50, Late: 4, Absent: 1, LateMinutes: 90}, nil)

	s, err := deps.service.Summary(ctx, companyID, employeeID, from, to)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Late)

	_, err = deps.service.Summary(ctx, companyID, employeeID, to, from)
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
}
