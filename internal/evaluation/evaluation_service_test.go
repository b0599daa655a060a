package evaluation_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"hris-portal/internal/attendance"
	"hris-portal/internal/department"
	"hris-portal/internal/employee"
	"hris-portal/internal/evaluation"
	evaluationerrors "hris-portal/internal/evaluation/errors"
	evaluationMock "hris-portal/internal/evaluation/mock"
	"hris-portal/internal/events"
	"hris-portal/internal/messaging/kafka"
	kafkaMock "hris-portal/internal/messaging/kafka/mock"
	"hris-portal/internal/shared/access"
	accessMock "hris-portal/internal/shared/access/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     evaluation.Service
	repo        *evaluationMock.MockRepository
	employees   *evaluationMock.MockEmployeeLookup
	frequencies *evaluationMock.MockFrequencyResolver
	attendance  *evaluationMock.MockAttendanceSummarizer
	resolver    *accessMock.MockDepartmentResolver
	outbox      *kafkaMock.MockOutboxRepository
}

var fixedNow = time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	d := &serviceDeps{
		db:          db,
		sqlMock:     sqlMock,
		repo:        evaluationMock.NewMockRepository(ctrl),
		employees:   evaluationMock.NewMockEmployeeLookup(ctrl),
		frequencies: evaluationMock.NewMockFrequencyResolver(ctrl),
		attendance:  evaluationMock.NewMockAttendanceSummarizer(ctrl),
		resolver:    accessMock.NewMockDepartmentResolver(ctrl),
		outbox:      kafkaMock.NewMockOutboxRepository(ctrl),
	}
	d.service = evaluation.NewService(db, d.repo, d.employees, d.frequencies, d.attendance, d.resolver, d.outbox, evaluation.DefaultWeights)
	evaluation.SetClock(d.service, func() time.Time { return fixedNow })
	return d
}

func rubricInput() evaluation.RubricInput {
	return evaluation.RubricInput{
		SupervisorAttitude: 4,
		CoworkerAttitude:   5,
		WorkAttitude: map[string]float64{
			"initiative":    5,
			"TEAMWORK":      4,
			"COMMUNICATION": 4,
			"INTEGRITY":     4,
			"ADAPTABILITY":  4,
		},
		WorkFunctions: []evaluation.WorkFunctionInput{
			{Name: "Payroll processing", Quality: 4, Efficiency: 5},
			{Name: "Reporting", Quality: 3, Efficiency: 4},
		},
	}
}

func draftEvaluation(companyID string, departmentID uuid.UUID) *evaluation.Evaluation {
	return &evaluation.Evaluation{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		EmployeeID:  uuid.New(),
		Employee:    &evaluation.EmployeeRef{FullName: "Ana", EmployeeNumber: "EMP-000001", DepartmentID: &departmentID},
		EvaluatorID: uuid.New(),
		PeriodKey:   "2026-Q3",
		Frequency:   string(department.FrequencyQuarterly),
		PeriodStart: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		FinalRating: 4.12,
		Adjectival:  evaluation.AdjectivalVerySatisfactory,
		Status:      evaluation.StatusDraft,
	}
}

func TestEvaluationService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	departmentID := uuid.New().String()
	hr := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleHR}
	empl := employee.EmployeeResponse{ID: employeeID, FullName: "Ana", EmployeeNumber: "EMP-000001", DepartmentID: departmentID}

	t.Run("derives period and attendance", func(t *testing.T) {
		d := setupServiceTest(t)

		d.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(empl, nil)
		d.frequencies.EXPECT().FrequencyOf(ctx, companyID, departmentID).Return(department.FrequencyQuarterly, nil)
		d.attendance.EXPECT().
			Summary(ctx, companyID, employeeID, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)).
			Return(attendance.Summary{Present: 40, Late: 2, Absent: 1}, nil)

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().ExistsForPeriod(ctx, companyID, employeeID, "2026-Q3").Return(false, nil)
		d.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, e *evaluation.Evaluation) error {
			assert.Equal(t, evaluation.StatusDraft, e.Status)
			assert.Equal(t, hr.UserID, e.EvaluatorID.String())
			assert.Len(t, e.WorkAttitudes, len(evaluation.Criteria))
			assert.Len(t, e.WorkFunctions, 2)
			assert.Equal(t, 1, e.WorkFunctions[0].Position)
			return nil
		})

		resp, err := d.service.Create(ctx, hr, evaluation.CreateEvaluationRequest{EmployeeID: employeeID, RubricInput: rubricInput()})

		require.NoError(t, err)
		assert.Equal(t, "2026-Q3", resp.Period.Key)
		assert.Equal(t, 2, resp.Attendance.Late)
		assert.Equal(t, 1, resp.Attendance.Absent)
		// attendance 4.3, attitude 4.4, work attitude 4.2, work functions 4.0
		assert.InDelta(t, 4.18, resp.FinalRating, 1e-9)
		assert.Equal(t, evaluation.AdjectivalVerySatisfactory, resp.Adjectival)
		assert.Equal(t, "EMP-000001", resp.EmployeeNumber)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("explicit attendance and reference date", func(t *testing.T) {
		d := setupServiceTest(t)

		d.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(empl, nil)
		d.frequencies.EXPECT().FrequencyOf(ctx, companyID, departmentID).Return(department.FrequencySemiAnnual, nil)

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().ExistsForPeriod(ctx, companyID, employeeID, "2026-H1").Return(false, nil)
		d.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		in := rubricInput()
		in.Attendance = &evaluation.AttendanceInput{}
		resp, err := d.service.Create(ctx, hr, evaluation.CreateEvaluationRequest{
			EmployeeID:    employeeID,
			ReferenceDate: "2026-02-10",
			RubricInput:   in,
		})

		require.NoError(t, err)
		assert.Equal(t, "2026-H1", resp.Period.Key)
		assert.InDelta(t, 5.0, resp.AttendanceRating, 1e-9)
	})

	t.Run("duplicate period", func(t *testing.T) {
		d := setupServiceTest(t)

		d.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(empl, nil)
		d.frequencies.EXPECT().FrequencyOf(ctx, companyID, departmentID).Return(department.FrequencyAnnual, nil)
		in := rubricInput()
		in.Attendance = &evaluation.AttendanceInput{Late: 1}

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().ExistsForPeriod(ctx, companyID, employeeID, "2026").Return(true, nil)

		_, err := d.service.Create(ctx, hr, evaluation.CreateEvaluationRequest{EmployeeID: employeeID, RubricInput: in})

		assert.ErrorIs(t, err, evaluationerrors.ErrDuplicatePeriod)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("concurrent insert hits unique index", func(t *testing.T) {
		d := setupServiceTest(t)

		d.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(empl, nil)
		d.frequencies.EXPECT().FrequencyOf(ctx, companyID, departmentID).Return(department.FrequencyAnnual, nil)
		in := rubricInput()
		in.Attendance = &evaluation.AttendanceInput{}

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().ExistsForPeriod(ctx, companyID, employeeID, "2026").Return(false, nil)
		d.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_evaluation_employee_period"})

		_, err := d.service.Create(ctx, hr, evaluation.CreateEvaluationRequest{EmployeeID: employeeID, RubricInput: in})

		assert.ErrorIs(t, err, evaluationerrors.ErrDuplicatePeriod)
	})

	t.Run("period key must match frequency", func(t *testing.T) {
		d := setupServiceTest(t)

		d.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(empl, nil)
		d.frequencies.EXPECT().FrequencyOf(ctx, companyID, departmentID).Return(department.FrequencyQuarterly, nil)

		_, err := d.service.Create(ctx, hr, evaluation.CreateEvaluationRequest{
			EmployeeID:  employeeID,
			PeriodKey:   "2026-H1",
			RubricInput: rubricInput(),
		})

		assert.ErrorIs(t, err, evaluationerrors.ErrInvalidPeriodKey)
	})

	t.Run("invalid rubric never opens a transaction", func(t *testing.T) {
		d := setupServiceTest(t)

		d.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(empl, nil)
		d.frequencies.EXPECT().FrequencyOf(ctx, companyID, departmentID).Return(department.FrequencyAnnual, nil)
		in := rubricInput()
		in.Attendance = &evaluation.AttendanceInput{}
		delete(in.WorkAttitude, "INTEGRITY")

		_, err := d.service.Create(ctx, hr, evaluation.CreateEvaluationRequest{EmployeeID: employeeID, RubricInput: in})

		assert.ErrorIs(t, err, evaluationerrors.ErrMissingCriterion)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("supervisor outside department", func(t *testing.T) {
		d := setupServiceTest(t)
		supervisor := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleSupervisor}

		d.employees.EXPECT().Lookup(ctx, companyID, employeeID).Return(empl, nil)
		d.resolver.EXPECT().SupervisedDepartmentIDs(ctx, companyID, supervisor.UserID).Return([]string{uuid.New().String()}, nil)

		_, err := d.service.Create(ctx, supervisor, evaluation.CreateEvaluationRequest{EmployeeID: employeeID, RubricInput: rubricInput()})

		assert.ErrorIs(t, err, evaluationerrors.ErrOutOfScope)
	})
}

func TestEvaluationService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	hr := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleHR}

	t.Run("recomputes draft", func(t *testing.T) {
		d := setupServiceTest(t)
		e := draftEvaluation(companyID, uuid.New())

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByIDForUpdate(ctx, companyID, e.ID.String()).Return(e, nil)
		d.attendance.EXPECT().Summary(ctx, companyID, e.EmployeeID.String(), e.PeriodStart, e.PeriodEnd).
			Return(attendance.Summary{}, nil)
		d.repo.EXPECT().Update(ctx, e, evaluation.StatusDraft).Return(nil)
		d.repo.EXPECT().ReplaceScores(ctx, e).Return(nil)

		in := rubricInput()
		in.SupervisorAttitude, in.CoworkerAttitude = 5, 5
		resp, err := d.service.Update(ctx, hr, e.ID.String(), evaluation.UpdateEvaluationRequest{Comments: " good ", RubricInput: in})

		require.NoError(t, err)
		assert.InDelta(t, 5.0, resp.AttitudeRating, 1e-9)
		assert.Equal(t, "good", resp.Comments)
	})

	t.Run("finalized cannot change", func(t *testing.T) {
		d := setupServiceTest(t)
		e := draftEvaluation(companyID, uuid.New())
		e.Status = evaluation.StatusFinalized

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByIDForUpdate(ctx, companyID, e.ID.String()).Return(e, nil)

		_, err := d.service.Update(ctx, hr, e.ID.String(), evaluation.UpdateEvaluationRequest{RubricInput: rubricInput()})

		assert.ErrorIs(t, err, evaluationerrors.ErrNotDraft)
	})

	t.Run("finalized while editing keeps final state", func(t *testing.T) {
		d := setupServiceTest(t)
		e := draftEvaluation(companyID, uuid.New())

		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByIDForUpdate(ctx, companyID, e.ID.String()).Return(e, nil)
		d.attendance.EXPECT().Summary(ctx, companyID, e.EmployeeID.String(), e.PeriodStart, e.PeriodEnd).
			Return(attendance.Summary{}, nil)
		d.repo.EXPECT().Update(ctx, e, evaluation.StatusDraft).Return(evaluationerrors.ErrNotDraft)
		d.repo.EXPECT().ReplaceScores(gomock.Any(), gomock.Any()).Times(0)

		_, err := d.service.Update(ctx, hr, e.ID.String(), evaluation.UpdateEvaluationRequest{RubricInput: rubricInput()})

		assert.ErrorIs(t, err, evaluationerrors.ErrNotDraft)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}

func TestEvaluationService_Finalize(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	departmentID := uuid.New()
	supervisor := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleSupervisor}

	d := setupServiceTest(t)
	e := draftEvaluation(companyID, departmentID)

	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectCommit()
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.repo.EXPECT().FindByIDForUpdate(ctx, companyID, e.ID.String()).Return(e, nil)
	d.resolver.EXPECT().SupervisedDepartmentIDs(ctx, companyID, supervisor.UserID).Return([]string{departmentID.String()}, nil)
	d.repo.EXPECT().Update(ctx, e, evaluation.StatusDraft).Return(nil)
	d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
	d.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
		assert.Equal(t, events.EvaluationLifecycleTopic, ev.Topic)
		assert.Equal(t, "evaluation", ev.AggregateType)
		var payload events.EvaluationFinalizedEvent
		require.NoError(t, json.Unmarshal(ev.Payload, &payload))
		assert.Equal(t, "2026-Q3", payload.PeriodKey)
		assert.Equal(t, e.EmployeeID.String(), payload.EmployeeID)
		return nil
	})

	resp, err := d.service.Finalize(ctx, supervisor, e.ID.String())

	require.NoError(t, err)
	assert.Equal(t, evaluation.StatusFinalized, resp.Status)
	require.NotNil(t, resp.FinalizedAt)
	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}

func TestEvaluationService_Finalize_ConcurrentFinalize(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	hr := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleAdmin}

	d := setupServiceTest(t)
	e := draftEvaluation(companyID, uuid.New())

	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectRollback()
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.repo.EXPECT().FindByIDForUpdate(ctx, companyID, e.ID.String()).Return(e, nil)
	d.repo.EXPECT().Update(ctx, e, evaluation.StatusDraft).Return(evaluationerrors.ErrNotDraft)
	d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := d.service.Finalize(ctx, hr, e.ID.String())

	assert.ErrorIs(t, err, evaluationerrors.ErrNotDraft)
	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}

func TestEvaluationService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	hr := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleAdmin}

	t.Run("draft", func(t *testing.T) {
		d := setupServiceTest(t)
		e := draftEvaluation(companyID, uuid.New())
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByIDForUpdate(ctx, companyID, e.ID.String()).Return(e, nil)
		d.repo.EXPECT().Delete(ctx, companyID, e.ID.String()).Return(nil)

		assert.NoError(t, d.service.Delete(ctx, hr, e.ID.String()))
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		d := setupServiceTest(t)
		id := uuid.New().String()
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByIDForUpdate(ctx, companyID, id).Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, d.service.Delete(ctx, hr, id), evaluationerrors.ErrEvaluationNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		d := setupServiceTest(t)
		assert.ErrorIs(t, d.service.Delete(ctx, hr, "nope"), evaluationerrors.ErrInvalidEvaluationID)
	})
}

func TestEvaluationService_Acknowledge(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("own finalized evaluation", func(t *testing.T) {
		d := setupServiceTest(t)
		e := draftEvaluation(companyID, uuid.New())
		e.Status = evaluation.StatusFinalized
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectCommit()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByIDForUpdate(ctx, companyID, e.ID.String()).Return(e, nil)
		d.repo.EXPECT().Update(ctx, e, evaluation.StatusFinalized).Return(nil)

		resp, err := d.service.Acknowledge(ctx, companyID, e.EmployeeID.String(), e.ID.String())

		require.NoError(t, err)
		assert.Equal(t, evaluation.StatusAcknowledged, resp.Status)
		assert.Equal(t, fixedNow.Format(time.RFC3339), *resp.AcknowledgedAt)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("drafts are hidden", func(t *testing.T) {
		d := setupServiceTest(t)
		e := draftEvaluation(companyID, uuid.New())
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByIDForUpdate(ctx, companyID, e.ID.String()).Return(e, nil)

		_, err := d.service.Acknowledge(ctx, companyID, e.EmployeeID.String(), e.ID.String())

		assert.ErrorIs(t, err, evaluationerrors.ErrEvaluationNotFound)
	})

	t.Run("someone else's evaluation", func(t *testing.T) {
		d := setupServiceTest(t)
		e := draftEvaluation(companyID, uuid.New())
		e.Status = evaluation.StatusFinalized
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByIDForUpdate(ctx, companyID, e.ID.String()).Return(e, nil)

		_, err := d.service.Acknowledge(ctx, companyID, uuid.New().String(), e.ID.String())

		assert.ErrorIs(t, err, evaluationerrors.ErrEvaluationNotFound)
	})

	t.Run("acknowledged concurrently", func(t *testing.T) {
		d := setupServiceTest(t)
		e := draftEvaluation(companyID, uuid.New())
		e.Status = evaluation.StatusFinalized
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByIDForUpdate(ctx, companyID, e.ID.String()).Return(e, nil)
		d.repo.EXPECT().Update(ctx, e, evaluation.StatusFinalized).Return(evaluationerrors.ErrNotFinalized)

		_, err := d.service.Acknowledge(ctx, companyID, e.EmployeeID.String(), e.ID.String())

		assert.ErrorIs(t, err, evaluationerrors.ErrNotFinalized)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("already acknowledged", func(t *testing.T) {
		d := setupServiceTest(t)
		e := draftEvaluation(companyID, uuid.New())
		e.Status = evaluation.StatusAcknowledged
		d.sqlMock.ExpectBegin()
		d.sqlMock.ExpectRollback()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByIDForUpdate(ctx, companyID, e.ID.String()).Return(e, nil)

		_, err := d.service.Acknowledge(ctx, companyID, e.EmployeeID.String(), e.ID.String())

		assert.ErrorIs(t, err, evaluationerrors.ErrNotFinalized)
	})
}

func TestEvaluationService_ListForEmployee_HidesDrafts(t *testing.T) {
	ctx := context.Background()
	d := setupServiceTest(t)
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	d.repo.EXPECT().FindAll(ctx, companyID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, f evaluation.ListFilter) ([]evaluation.Evaluation, int64, error) {
			assert.True(t, f.HideDrafts)
			assert.Equal(t, employeeID, f.EmployeeID)
			assert.Nil(t, f.VisibleDepartmentIDs)
			return nil, 0, nil
		})

	_, total, err := d.service.ListForEmployee(ctx, companyID, employeeID, evaluation.ListFilter{Limit: 10})

	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestEvaluationService_GetAll_SupervisorScope(t *testing.T) {
	ctx := context.Background()
	d := setupServiceTest(t)
	companyID := uuid.New().String()
	deptID := uuid.New().String()
	supervisor := access.Actor{UserID: uuid.New().String(), CompanyID: companyID, Role: access.RoleSupervisor}

	d.resolver.EXPECT().SupervisedDepartmentIDs(ctx, companyID, supervisor.UserID).Return([]string{deptID}, nil)
	d.repo.EXPECT().FindAll(ctx, companyID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, f evaluation.ListFilter) ([]evaluation.Evaluation, int64, error) {
			assert.Equal(t, []string{deptID}, f.VisibleDepartmentIDs)
			return []evaluation.Evaluation{*draftEvaluation(companyID, uuid.MustParse(deptID))}, 1, nil
		})

	resp, total, err := d.service.GetAll(ctx, supervisor, evaluation.ListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, resp, 1)
}
