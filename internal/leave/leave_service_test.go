package leave_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"hris-portal/internal/employee"
	"hris-portal/internal/events"
	"hris-portal/internal/leave"
	leaveerrors "hris-portal/internal/leave/errors"
	leaveMock "hris-portal/internal/leave/mock"
	"hris-portal/internal/messaging/kafka"
	kafkaMock "hris-portal/internal/messaging/kafka/mock"
	"hris-portal/internal/shared/access"
	accessMock "hris-portal/internal/shared/access/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	leave.Repository
	createFn               func(ctx context.Context, l *leave.Leave) error
	findByIDAndCompanyFn   func(ctx context.Context, companyID, id string) (*leave.Leave, error)
	transitionFn           func(ctx context.Context, l *leave.Leave, from string) error
	lockedReads            int
	hasOverlappingPeriodFn func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error)
	findBalanceFn          func(ctx context.Context, companyID, employeeID string, year int, leaveType string) (*leave.LeaveBalance, error)
	updateBalanceUsedFn    func(ctx context.Context, id string, used int) error
	listBalancesFn         func(ctx context.Context, companyID, employeeID string, year int) ([]leave.LeaveBalance, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.Leave, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*leave.Leave, error) {
	f.lockedReads++
	return f.FindByIDAndCompany(ctx, companyID, id)
}

func (f *fakeLeaveRepository) TransitionStatus(ctx context.Context, l *leave.Leave, from string) error {
	if f.transitionFn != nil {
		return f.transitionFn(ctx, l, from)
	}
	return nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, companyID, employeeID, startDate, endDate)
	}
	return false, nil
}

func (f *fakeLeaveRepository) FindBalanceForUpdate(ctx context.Context, companyID, employeeID string, year int, leaveType string) (*leave.LeaveBalance, error) {
	if f.findBalanceFn != nil {
		return f.findBalanceFn(ctx, companyID, employeeID, year, leaveType)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) UpdateBalanceUsed(ctx context.Context, id string, used int) error {
	if f.updateBalanceUsedFn != nil {
		return f.updateBalanceUsedFn(ctx, id, used)
	}
	return nil
}

func (f *fakeLeaveRepository) ListBalances(ctx context.Context, companyID, employeeID string, year int) ([]leave.LeaveBalance, error) {
	if f.listBalancesFn != nil {
		return f.listBalancesFn(ctx, companyID, employeeID, year)
	}
	return nil, nil
}

type testDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	repo      *fakeLeaveRepository
	employees *leaveMock.MockEmployeeLookup
	resolver  *accessMock.MockDepartmentResolver
	outbox    *kafkaMock.MockOutboxRepository
	service   leave.Service
}

func setup(t *testing.T) *testDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	d := &testDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      &fakeLeaveRepository{},
		employees: leaveMock.NewMockEmployeeLookup(ctrl),
		resolver:  accessMock.NewMockDepartmentResolver(ctrl),
		outbox:    kafkaMock.NewMockOutboxRepository(ctrl),
	}
	d.service = leave.NewService(db, d.repo, d.employees, d.resolver, d.outbox)
	return d
}

func TestCountWeekdays(t *testing.T) {
	mon := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, leave.CountWeekdays(mon, mon))
	assert.Equal(t, 5, leave.CountWeekdays(mon, mon.AddDate(0, 0, 6)))
	assert.Equal(t, 6, leave.CountWeekdays(mon, mon.AddDate(0, 0, 7)))
	assert.Equal(t, 0, leave.CountWeekdays(mon.AddDate(0, 0, 5), mon.AddDate(0, 0, 6)))
	assert.Equal(t, 0, leave.CountWeekdays(mon, mon.AddDate(0, 0, -1)))
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	departmentID := uuid.New().String()
	active := employee.EmployeeResponse{ID: employeeID, FullName: "Ana", DepartmentID: departmentID, WorkStatus: "REGULAR"}

	req := leave.SubmitLeaveRequest{
		Kind:      leave.KindLeave,
		LeaveType: leave.TypeVacation,
		StartDate: "2026-03-06",
		EndDate:   "2026-03-09",
		Reason:    "family trip",
	}

	t.Run("success counts weekdays and emits event", func(t *testing.T) {
		d := setup(t)
		d.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(active, nil)
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()

		var created *leave.Leave
		d.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			created = l
			return nil
		}
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
			assert.Equal(t, events.LeaveLifecycleTopic, ev.Topic)
			var payload events.LeaveSubmittedEvent
			require.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, departmentID, payload.DepartmentID)
			assert.Equal(t, "Ana", payload.EmployeeName)
			return nil
		})

		resp, err := d.service.Submit(ctx, companyID, employeeID, req)

		require.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		// Friday + Monday
		assert.Equal(t, 2, resp.TotalDays)
		assert.Nil(t, created.CreatedBy)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("overlap", func(t *testing.T) {
		d := setup(t)
		d.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(active, nil)
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.hasOverlappingPeriodFn = func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error) {
			return true, nil
		}

		_, err := d.service.Submit(ctx, companyID, employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})

	t.Run("weekend only", func(t *testing.T) {
		d := setup(t)
		d.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(active, nil)

		weekend := req
		weekend.StartDate, weekend.EndDate = "2026-03-07", "2026-03-08"

		_, err := d.service.Submit(ctx, companyID, employeeID, weekend)

		assert.ErrorIs(t, err, leaveerrors.ErrNoWorkingDays)
	})

	t.Run("end before start", func(t *testing.T) {
		d := setup(t)
		d.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(active, nil)

		backwards := req
		backwards.StartDate, backwards.EndDate = "2026-03-10", "2026-03-09"

		_, err := d.service.Submit(ctx, companyID, employeeID, backwards)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("inactive employee", func(t *testing.T) {
		d := setup(t)
		resigned := active
		resigned.WorkStatus = "RESIGNED"
		d.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(resigned, nil)

		_, err := d.service.Submit(ctx, companyID, employeeID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeInactive)
	})
}

func TestLeaveService_Create_SupervisorScope(t *testing.T) {
	ctx := context.Background()
	d := setup(t)
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	supervisor := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleSupervisor}

	d.employees.EXPECT().Lookup(ctx, companyID, employeeID).
		Return(employee.EmployeeResponse{ID: employeeID, DepartmentID: uuid.New().String(), WorkStatus: "REGULAR"}, nil)
	d.resolver.EXPECT().SupervisedDepartmentIDs(ctx, companyID, supervisor.UserID).Return([]string{}, nil)

	_, err := d.service.Create(ctx, supervisor, leave.CreateLeaveRequest{
		EmployeeID: employeeID,
		SubmitLeaveRequest: leave.SubmitLeaveRequest{
			Kind: leave.KindAbsence, LeaveType: leave.TypeSick, StartDate: "2026-03-02", EndDate: "2026-03-02",
		},
	})

	assert.ErrorIs(t, err, leaveerrors.ErrOutOfScope)
}

func pendingLeave(companyID, departmentID string) *leave.Leave {
	dept := uuid.MustParse(departmentID)
	return &leave.Leave{
		ID:         uuid.New(),
		CompanyID:  uuid.MustParse(companyID),
		EmployeeID: uuid.New(),
		Employee:   &leave.EmployeeRef{FullName: "Ana", DepartmentID: &dept},
		Kind:       leave.KindLeave,
		LeaveType:  leave.TypeVacation,
		StartDate:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		TotalDays:  3,
		Status:     leave.StatusPending,
	}
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	departmentID := uuid.New().String()
	hr := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleHR}

	t.Run("deducts balance", func(t *testing.T) {
		d := setup(t)
		l := pendingLeave(companyID, departmentID)
		balanceID := uuid.New()

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()
		d.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) { return l, nil }
		d.repo.findBalanceFn = func(ctx context.Context, cid, eid string, year int, leaveType string) (*leave.LeaveBalance, error) {
			assert.Equal(t, 2026, year)
			return &leave.LeaveBalance{ID: balanceID, Allotted: 15, Used: 5}, nil
		}
		usedSet := -1
		d.repo.updateBalanceUsedFn = func(ctx context.Context, id string, used int) error {
			assert.Equal(t, balanceID.String(), id)
			usedSet = used
			return nil
		}
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := d.service.Approve(ctx, hr, l.ID.String(), leave.DecisionRequest{Note: "enjoy"})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, 8, usedSet)
		assert.Equal(t, 1, d.repo.lockedReads)
		assert.Equal(t, hr.UserID, *resp.ReviewedBy)
		assert.Equal(t, "enjoy", *resp.ReviewNote)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		d := setup(t)
		l := pendingLeave(companyID, departmentID)

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) { return l, nil }
		d.repo.findBalanceFn = func(ctx context.Context, cid, eid string, year int, leaveType string) (*leave.LeaveBalance, error) {
			return &leave.LeaveBalance{Allotted: 10, Used: 9}, nil
		}

		_, err := d.service.Approve(ctx, hr, l.ID.String(), leave.DecisionRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	})

	t.Run("absence skips balance", func(t *testing.T) {
		d := setup(t)
		l := pendingLeave(companyID, departmentID)
		l.Kind = leave.KindAbsence

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()
		d.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) { return l, nil }
		d.repo.findBalanceFn = func(ctx context.Context, cid, eid string, year int, leaveType string) (*leave.LeaveBalance, error) {
			t.Fatal("balance must not be read for absences")
			return nil, nil
		}
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		_, err := d.service.Approve(ctx, hr, l.ID.String(), leave.DecisionRequest{})
		assert.NoError(t, err)
	})

	t.Run("already decided", func(t *testing.T) {
		d := setup(t)
		l := pendingLeave(companyID, departmentID)
		l.Status = leave.StatusRejected

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) { return l, nil }

		_, err := d.service.Approve(ctx, hr, l.ID.String(), leave.DecisionRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})

	t.Run("decided concurrently before persist", func(t *testing.T) {
		d := setup(t)
		l := pendingLeave(companyID, departmentID)
		l.Kind = leave.KindAbsence

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) { return l, nil }
		d.repo.transitionFn = func(ctx context.Context, l *leave.Leave, from string) error {
			assert.Equal(t, leave.StatusPending, from)
			return leaveerrors.ErrInvalidStatusTransition
		}

		_, err := d.service.Approve(ctx, hr, l.ID.String(), leave.DecisionRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("supervisor of another department", func(t *testing.T) {
		d := setup(t)
		l := pendingLeave(companyID, departmentID)
		supervisor := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleSupervisor}

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) { return l, nil }
		d.resolver.EXPECT().SupervisedDepartmentIDs(gomock.Any(), companyID, supervisor.UserID).Return([]string{uuid.New().String()}, nil)

		_, err := d.service.Approve(ctx, supervisor, l.ID.String(), leave.DecisionRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrOutOfScope)
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	hr := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleHR}

	t.Run("note required", func(t *testing.T) {
		d := setup(t)
		_, err := d.service.Reject(ctx, hr, uuid.New().String(), leave.DecisionRequest{Note: "  "})
		assert.ErrorIs(t, err, leaveerrors.ErrRejectionNoteRequired)
	})

	t.Run("success", func(t *testing.T) {
		d := setup(t)
		l := pendingLeave(companyID, uuid.New().String())

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()
		d.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) { return l, nil }
		d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
		d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
			var payload events.LeaveDecidedEvent
			require.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, leave.StatusRejected, payload.Status)
			assert.Equal(t, "peak season", payload.ReviewNote)
			return nil
		})

		resp, err := d.service.Reject(ctx, hr, l.ID.String(), leave.DecisionRequest{Note: "peak season"})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("own pending request", func(t *testing.T) {
		d := setup(t)
		l := pendingLeave(companyID, uuid.New().String())
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()
		d.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) { return l, nil }

		resp, err := d.service.Cancel(ctx, companyID, l.EmployeeID.String(), l.ID.String())

		require.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		assert.Equal(t, 1, d.repo.lockedReads)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("approved while cancelling", func(t *testing.T) {
		d := setup(t)
		l := pendingLeave(companyID, uuid.New().String())
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) { return l, nil }
		d.repo.transitionFn = func(ctx context.Context, l *leave.Leave, from string) error {
			return leaveerrors.ErrInvalidStatusTransition
		}

		_, err := d.service.Cancel(ctx, companyID, l.EmployeeID.String(), l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("someone else's request", func(t *testing.T) {
		d := setup(t)
		l := pendingLeave(companyID, uuid.New().String())
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) { return l, nil }

		_, err := d.service.Cancel(ctx, companyID, uuid.New().String(), l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("approved cannot be cancelled", func(t *testing.T) {
		d := setup(t)
		l := pendingLeave(companyID, uuid.New().String())
		l.Status = leave.StatusApproved
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*leave.Leave, error) { return l, nil }

		_, err := d.service.Cancel(ctx, companyID, l.EmployeeID.String(), l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})
}

func TestLeaveService_ListBalances(t *testing.T) {
	d := setup(t)
	companyID := uuid.New().String()
	employeeID := uuid.New()

	d.repo.listBalancesFn = func(ctx context.Context, cid, eid string, year int) ([]leave.LeaveBalance, error) {
		return []leave.LeaveBalance{{EmployeeID: employeeID, Year: year, LeaveType: leave.TypeVacation, Allotted: 15, Used: 4}}, nil
	}

	resp, err := d.service.ListBalances(context.Background(), companyID, employeeID.String(), 2026)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, leave.TypeSick, resp[0].LeaveType)
	assert.Zero(t, resp[0].Allotted)
	assert.Equal(t, 11, resp[1].Remaining)
}
