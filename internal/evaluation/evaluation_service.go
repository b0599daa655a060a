package evaluation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hris-portal/internal/attendance"
	"hris-portal/internal/department"
	"hris-portal/internal/employee"
	evaluationerrors "hris-portal/internal/evaluation/errors"
	"hris-portal/internal/events"
	"hris-portal/internal/messaging/kafka"
	"hris-portal/internal/shared/access"
	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=evaluation_service.go -destination=mock/evaluation_service_mock.go -package=mock
type EmployeeLookup interface {
	Lookup(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
}

type FrequencyResolver interface {
	FrequencyOf(ctx context.Context, companyID, departmentID string) (department.EvaluationFrequency, error)
}

type AttendanceSummarizer interface {
	Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (attendance.Summary, error)
}

type Service interface {
	Create(ctx context.Context, actor access.Actor, req CreateEvaluationRequest) (EvaluationResponse, error)
	Preview(ctx context.Context, actor access.Actor, req CreateEvaluationRequest) (PreviewResponse, error)
	GetAll(ctx context.Context, actor access.Actor, filter ListFilter) ([]EvaluationResponse, int64, error)
	GetByID(ctx context.Context, actor access.Actor, id string) (EvaluationResponse, error)
	Update(ctx context.Context, actor access.Actor, id string, req UpdateEvaluationRequest) (EvaluationResponse, error)
	Delete(ctx context.Context, actor access.Actor, id string) error
	Finalize(ctx context.Context, actor access.Actor, id string) (EvaluationResponse, error)
	Report(ctx context.Context, actor access.Actor, id string) (Report, error)
	ListForEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]EvaluationResponse, int64, error)
	GetForEmployee(ctx context.Context, companyID, employeeID, id string) (EvaluationResponse, error)
	Acknowledge(ctx context.Context, companyID, employeeID, id string) (EvaluationResponse, error)
	ReportForEmployee(ctx context.Context, companyID, employeeID, id string) (Report, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	employees   EmployeeLookup
	frequencies FrequencyResolver
	attendance  AttendanceSummarizer
	resolver    access.DepartmentResolver
	outbox      kafka.OutboxRepository
	weights     Weights
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeLookup,
	frequencies FrequencyResolver,
	attendance AttendanceSummarizer,
	resolver access.DepartmentResolver,
	outboxRepo kafka.OutboxRepository,
	weights Weights,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("evaluation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("evaluation.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		employees:   employees,
		frequencies: frequencies,
		attendance:  attendance,
		resolver:    resolver,
		outbox:      outboxRepo,
		weights:     weights,
		now:         time.Now,
		logger:      l,
	}
}

// draft is a computed but unsaved evaluation.
type draft struct {
	employee employee.EmployeeResponse
	period   Period
	rubric   Rubric
	result   Result
}

// prepare resolves the employee, the period and the rubric and computes the ratings.
func (s *service) prepare(ctx context.Context, actor access.Actor, req CreateEvaluationRequest) (draft, error) {
	empl, err := s.scopedEmployee(ctx, actor, req.EmployeeID)
	if err != nil {
		return draft{}, err
	}

	freq, err := s.frequencies.FrequencyOf(ctx, actor.CompanyID, empl.DepartmentID)
	if err != nil {
		return draft{}, err
	}
	period, err := s.resolvePeriod(freq, req.PeriodKey, req.ReferenceDate)
	if err != nil {
		return draft{}, err
	}

	rubric, err := s.buildRubric(ctx, actor.CompanyID, empl.ID, period, req.RubricInput)
	if err != nil {
		return draft{}, err
	}
	result, err := Compute(rubric, s.weights)
	if err != nil {
		return draft{}, err
	}
	return draft{employee: empl, period: period, rubric: rubric, result: result}, nil
}

func (s *service) resolvePeriod(freq department.EvaluationFrequency, key, referenceDate string) (Period, error) {
	if key != "" {
		return ParsePeriodKey(freq, key)
	}
	ref := s.now().UTC()
	if referenceDate != "" {
		d, err := time.Parse(time.DateOnly, referenceDate)
		if err != nil {
			return Period{}, evaluationerrors.ErrInvalidReferenceDate
		}
		ref = d
	}
	return PeriodFor(freq, ref), nil
}

// buildRubric fills missing attendance figures from the employee's records in the period.
func (s *service) buildRubric(ctx context.Context, companyID, employeeID string, period Period, in RubricInput) (Rubric, error) {
	r := Rubric{
		SupervisorAttitude: in.SupervisorAttitude,
		CoworkerAttitude:   in.CoworkerAttitude,
		WorkAttitude:       make(map[string]float64, len(in.WorkAttitude)),
		WorkFunctions:      make([]WorkFunctionScore, 0, len(in.WorkFunctions)),
	}
	for k, v := range in.WorkAttitude {
		r.WorkAttitude[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	for _, fn := range in.WorkFunctions {
		r.WorkFunctions = append(r.WorkFunctions, WorkFunctionScore{
			Name:       strings.TrimSpace(fn.Name),
			Quality:    fn.Quality,
			Efficiency: fn.Efficiency,
		})
	}

	if in.Attendance != nil {
		r.Attendance = AttendanceFigures{
			Late:      in.Attendance.Late,
			Absent:    in.Attendance.Absent,
			Undertime: in.Attendance.Undertime,
		}
		return r, nil
	}

	sum, err := s.attendance.Summary(ctx, companyID, employeeID, period.Start(), period.End())
	if err != nil {
		return Rubric{}, err
	}
	r.Attendance = AttendanceFigures{Late: sum.Late, Absent: sum.Absent, Undertime: sum.Undertime}
	return r, nil
}

func (s *service) Preview(ctx context.Context, actor access.Actor, req CreateEvaluationRequest) (PreviewResponse, error) {
	d, err := s.prepare(ctx, actor, req)
	if err != nil {
		return PreviewResponse{}, err
	}
	return PreviewResponse{
		EmployeeID: d.employee.ID,
		Period:     mapPeriod(d.period.Key(), string(d.period.Frequency), d.period.Start(), d.period.End()),
		Attendance: AttendanceInput{
			Late:      d.rubric.Attendance.Late,
			Absent:    d.rubric.Attendance.Absent,
			Undertime: d.rubric.Attendance.Undertime,
		},
		RatingsResponse: mapRatings(d.result),
	}, nil
}

func (s *service) Create(ctx context.Context, actor access.Actor, req CreateEvaluationRequest) (EvaluationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create evaluation requested",
		zap.String("company_id", actor.CompanyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("evaluator_id", actor.UserID),
	)

	evaluatorUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return EvaluationResponse{}, apperror.ErrUnauthorized
	}
	companyUUID, err := uuid.Parse(actor.CompanyID)
	if err != nil {
		return EvaluationResponse{}, apperror.ErrInvalidInput
	}

	d, err := s.prepare(ctx, actor, req)
	if err != nil {
		return EvaluationResponse{}, err
	}
	employeeUUID, err := uuid.Parse(d.employee.ID)
	if err != nil {
		return EvaluationResponse{}, evaluationerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create evaluation begin tx failed", zap.Error(err))
		return EvaluationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	periodKey := d.period.Key()
	exists, err := qtx.ExistsForPeriod(ctx, actor.CompanyID, d.employee.ID, periodKey)
	if err != nil {
		log.Error("create evaluation period check failed", zap.Error(err))
		return EvaluationResponse{}, err
	}
	if exists {
		log.Warn("create evaluation duplicate period",
			zap.String("employee_id", d.employee.ID),
			zap.String("period_key", periodKey),
		)
		return EvaluationResponse{}, evaluationerrors.ErrDuplicatePeriod
	}

	e := &Evaluation{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		EvaluatorID: evaluatorUUID,
		PeriodKey:   periodKey,
		Frequency:   string(d.period.Frequency),
		PeriodStart: d.period.Start(),
		PeriodEnd:   d.period.End(),
		Status:      StatusDraft,
		Comments:    strings.TrimSpace(req.Comments),
	}
	e.apply(d.rubric, d.result)

	if err := qtx.Create(ctx, e); err != nil {
		log.Error("create evaluation persist failed", zap.Error(err))
		return EvaluationResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		log.Error("create evaluation commit failed", zap.Error(err))
		return EvaluationResponse{}, mapRepositoryError(err)
	}

	log.Info("create evaluation success",
		zap.String("evaluation_id", e.ID.String()),
		zap.String("period_key", periodKey),
		zap.Float64("final_rating", e.FinalRating),
	)

	e.Employee = &EmployeeRef{FullName: d.employee.FullName, EmployeeNumber: d.employee.EmployeeNumber}
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, actor access.Actor, filter ListFilter) ([]EvaluationResponse, int64, error) {
	vis, err := access.Resolve(ctx, s.resolver, actor)
	if err != nil {
		return nil, 0, err
	}
	if !vis.All {
		filter.VisibleDepartmentIDs = append([]string{}, vis.DepartmentIDs...)
	}

	rows, total, err := s.repo.FindAll(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(rows), total, nil
}

func (s *service) GetByID(ctx context.Context, actor access.Actor, id string) (EvaluationResponse, error) {
	e, err := s.scopedLoad(ctx, s.repo, actor, id, false)
	if err != nil {
		return EvaluationResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, actor access.Actor, id string, req UpdateEvaluationRequest) (EvaluationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update evaluation begin tx failed", zap.Error(err))
		return EvaluationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := s.scopedLoad(ctx, qtx, actor, id, true)
	if err != nil {
		return EvaluationResponse{}, err
	}
	if e.Status != StatusDraft {
		return EvaluationResponse{}, evaluationerrors.ErrNotDraft
	}

	period := PeriodFor(department.EvaluationFrequency(e.Frequency), e.PeriodStart)

	rubric, err := s.buildRubric(ctx, actor.CompanyID, e.EmployeeID.String(), period, req.RubricInput)
	if err != nil {
		return EvaluationResponse{}, err
	}
	result, err := Compute(rubric, s.weights)
	if err != nil {
		return EvaluationResponse{}, err
	}

	e.apply(rubric, result)
	e.Comments = strings.TrimSpace(req.Comments)

	if err := qtx.Update(ctx, e, StatusDraft); err != nil {
		log.Error("update evaluation persist failed", zap.String("evaluation_id", id), zap.Error(err))
		return EvaluationResponse{}, mapRepositoryError(err)
	}
	if err := qtx.ReplaceScores(ctx, e); err != nil {
		log.Error("update evaluation scores failed", zap.String("evaluation_id", id), zap.Error(err))
		return EvaluationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("update evaluation commit failed", zap.Error(err))
		return EvaluationResponse{}, err
	}

	log.Info("update evaluation success",
		zap.String("evaluation_id", id),
		zap.Float64("final_rating", e.FinalRating),
	)
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, actor access.Actor, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return evaluationerrors.ErrInvalidEvaluationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := s.scopedLoad(ctx, qtx, actor, id, true)
	if err != nil {
		return err
	}
	if e.Status != StatusDraft {
		return evaluationerrors.ErrNotDraft
	}
	if err := qtx.Delete(ctx, actor.CompanyID, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	contextutil.GetLogger(ctx, s.logger).Info("evaluation deleted", zap.String("evaluation_id", id))
	return nil
}

// Finalize locks the ratings and announces the result to the employee.
func (s *service) Finalize(ctx context.Context, actor access.Actor, id string) (EvaluationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("finalize evaluation begin tx failed", zap.Error(err))
		return EvaluationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := s.scopedLoad(ctx, qtx, actor, id, true)
	if err != nil {
		return EvaluationResponse{}, err
	}
	if e.Status != StatusDraft {
		log.Warn("finalize evaluation invalid transition",
			zap.String("evaluation_id", id),
			zap.String("from_status", e.Status),
		)
		return EvaluationResponse{}, evaluationerrors.ErrNotDraft
	}

	now := s.now().UTC()
	e.Status = StatusFinalized
	e.FinalizedAt = &now

	if err := qtx.Update(ctx, e, StatusDraft); err != nil {
		log.Error("finalize evaluation persist failed", zap.String("evaluation_id", id), zap.Error(err))
		return EvaluationResponse{}, err
	}

	if s.outbox != nil {
		event := events.EvaluationFinalizedEvent{
			EventType:    events.EvaluationFinalizedType,
			RequestID:    contextutil.GetRequestID(ctx),
			EvaluationID: e.ID.String(),
			CompanyID:    actor.CompanyID,
			EmployeeID:   e.EmployeeID.String(),
			PeriodKey:    e.PeriodKey,
			FinalRating:  e.FinalRating,
			Adjectival:   e.Adjectival,
			OccurredAt:   now,
		}
		ev, err := kafka.NewOutboxEvent(ctx, "evaluation", e.ID.String(), events.EvaluationLifecycleTopic, event.EventType, event)
		if err != nil {
			return EvaluationResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, ev); err != nil {
			log.Error("finalize evaluation outbox persist failed", zap.Error(err))
			return EvaluationResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("finalize evaluation commit failed", zap.Error(err))
		return EvaluationResponse{}, err
	}
	log.Info("finalize evaluation success",
		zap.String("evaluation_id", id),
		zap.String("adjectival", e.Adjectival),
	)
	return mapToResponse(*e), nil
}

func (s *service) Report(ctx context.Context, actor access.Actor, id string) (Report, error) {
	e, err := s.scopedLoad(ctx, s.repo, actor, id, false)
	if err != nil {
		return Report{}, err
	}
	return renderReport(*e)
}

func (s *service) ListForEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]EvaluationResponse, int64, error) {
	filter.EmployeeID = employeeID
	filter.HideDrafts = true
	filter.VisibleDepartmentIDs = nil
	rows, total, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(rows), total, nil
}

func (s *service) GetForEmployee(ctx context.Context, companyID, employeeID, id string) (EvaluationResponse, error) {
	e, err := s.ownLoad(ctx, s.repo, companyID, employeeID, id, false)
	if err != nil {
		return EvaluationResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Acknowledge(ctx context.Context, companyID, employeeID, id string) (EvaluationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EvaluationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := s.ownLoad(ctx, qtx, companyID, employeeID, id, true)
	if err != nil {
		return EvaluationResponse{}, err
	}
	if e.Status != StatusFinalized {
		return EvaluationResponse{}, evaluationerrors.ErrNotFinalized
	}

	now := s.now().UTC()
	e.Status = StatusAcknowledged
	e.AcknowledgedAt = &now
	if err := qtx.Update(ctx, e, StatusFinalized); err != nil {
		return EvaluationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EvaluationResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("evaluation acknowledged",
		zap.String("evaluation_id", id),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*e), nil
}

func (s *service) ReportForEmployee(ctx context.Context, companyID, employeeID, id string) (Report, error) {
	e, err := s.ownLoad(ctx, s.repo, companyID, employeeID, id, false)
	if err != nil {
		return Report{}, err
	}
	return renderReport(*e)
}

// load reads one evaluation; lock holds the row until repo's transaction ends.
func (s *service) load(ctx context.Context, repo Repository, companyID, id string, lock bool) (*Evaluation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, evaluationerrors.ErrInvalidEvaluationID
	}
	find := repo.FindByIDAndCompany
	if lock {
		find = repo.FindByIDForUpdate
	}
	e, err := find(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return e, nil
}

func (s *service) scopedLoad(ctx context.Context, repo Repository, actor access.Actor, id string, lock bool) (*Evaluation, error) {
	e, err := s.load(ctx, repo, actor.CompanyID, id, lock)
	if err != nil {
		return nil, err
	}
	vis, err := access.Resolve(ctx, s.resolver, actor)
	if err != nil {
		return nil, err
	}
	departmentID := ""
	if e.Employee != nil && e.Employee.DepartmentID != nil {
		departmentID = e.Employee.DepartmentID.String()
	}
	if !vis.Allows(departmentID) {
		return nil, evaluationerrors.ErrOutOfScope
	}
	return e, nil
}

// ownLoad hides drafts and other employees' evaluations behind NOT_FOUND.
func (s *service) ownLoad(ctx context.Context, repo Repository, companyID, employeeID, id string, lock bool) (*Evaluation, error) {
	e, err := s.load(ctx, repo, companyID, id, lock)
	if err != nil {
		return nil, err
	}
	if e.EmployeeID.String() != employeeID || e.Status == StatusDraft {
		return nil, evaluationerrors.ErrEvaluationNotFound
	}
	return e, nil
}

func (s *service) scopedEmployee(ctx context.Context, actor access.Actor, employeeID string) (employee.EmployeeResponse, error) {
	empl, err := s.employees.Lookup(ctx, actor.CompanyID, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	vis, err := access.Resolve(ctx, s.resolver, actor)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !vis.Allows(empl.DepartmentID) {
		return employee.EmployeeResponse{}, evaluationerrors.ErrOutOfScope
	}
	return empl, nil
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func mapPeriod(key, frequency string, start, end time.Time) PeriodResponse {
	return PeriodResponse{
		Key:       key,
		Frequency: frequency,
		Start:     start.Format(time.DateOnly),
		End:       end.Format(time.DateOnly),
	}
}

func mapRatings(r Result) RatingsResponse {
	return RatingsResponse{
		AttendanceRating:   r.AttendanceRating,
		AttitudeRating:     r.AttitudeRating,
		WorkAttitudeRating: r.WorkAttitudeRating,
		WorkFunctionRating: r.WorkFunctionRating,
		FinalRating:        r.FinalRating,
		Adjectival:         r.Adjectival,
	}
}

func mapToResponse(e Evaluation) EvaluationResponse {
	resp := EvaluationResponse{
		ID:          e.ID.String(),
		CompanyID:   e.CompanyID.String(),
		EmployeeID:  e.EmployeeID.String(),
		EvaluatorID: e.EvaluatorID.String(),
		Period:      mapPeriod(e.PeriodKey, e.Frequency, e.PeriodStart, e.PeriodEnd),
		Attendance: AttendanceInput{
			Late:      e.LateCount,
			Absent:    e.AbsentCount,
			Undertime: e.UndertimeCount,
		},
		SupervisorAttitude: e.SupervisorAttitude,
		CoworkerAttitude:   e.CoworkerAttitude,
		WorkAttitude:       make(map[string]float64, len(e.WorkAttitudes)),
		WorkFunctions:      make([]WorkFunctionResponse, 0, len(e.WorkFunctions)),
		RatingsResponse: RatingsResponse{
			AttendanceRating:   e.AttendanceRating,
			AttitudeRating:     e.AttitudeRating,
			WorkAttitudeRating: e.WorkAttitudeRating,
			WorkFunctionRating: e.WorkFunctionRating,
			FinalRating:        e.FinalRating,
			Adjectival:         e.Adjectival,
		},
		Status:         e.Status,
		Comments:       e.Comments,
		FinalizedAt:    formatTimePtr(e.FinalizedAt),
		AcknowledgedAt: formatTimePtr(e.AcknowledgedAt),
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.FullName
		resp.EmployeeNumber = e.Employee.EmployeeNumber
	}
	for _, wa := range e.WorkAttitudes {
		resp.WorkAttitude[wa.Criterion] = wa.Score
	}
	for _, fn := range e.WorkFunctions {
		resp.WorkFunctions = append(resp.WorkFunctions, WorkFunctionResponse{
			Name:       fn.Name,
			Quality:    fn.Quality,
			Efficiency: fn.Efficiency,
			Rating:     round2((fn.Quality + fn.Efficiency) / 2),
		})
	}
	return resp
}

func mapToListResponse(rows []Evaluation) []EvaluationResponse {
	resp := make([]EvaluationResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e)
	}
	return resp
}

func reportFileName(e Evaluation) string {
	name := e.EmployeeID.String()
	if e.Employee != nil && e.Employee.EmployeeNumber != "" {
		name = e.Employee.EmployeeNumber
	}
	return fmt.Sprintf("evaluation-%s-%s.pdf", name, e.PeriodKey)
}
