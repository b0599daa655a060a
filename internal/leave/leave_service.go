package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"hris-portal/internal/employee"
	"hris-portal/internal/events"
	leaveerrors "hris-portal/internal/leave/errors"
	"hris-portal/internal/messaging/kafka"
	"hris-portal/internal/shared/access"
	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type EmployeeLookup interface {
	Lookup(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
}

type Service interface {
	Create(ctx context.Context, actor access.Actor, req CreateLeaveRequest) (LeaveResponse, error)
	Submit(ctx context.Context, companyID, employeeID string, req SubmitLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actor access.Actor, filter ListFilter) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, actor access.Actor, id string) (LeaveResponse, error)
	ListForEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]LeaveResponse, int64, error)
	GetForEmployee(ctx context.Context, companyID, employeeID, id string) (LeaveResponse, error)
	Approve(ctx context.Context, actor access.Actor, id string, req DecisionRequest) (LeaveResponse, error)
	Reject(ctx context.Context, actor access.Actor, id string, req DecisionRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, companyID, employeeID, id string) (LeaveResponse, error)
	AttachDocument(ctx context.Context, companyID, employeeID, id, documentID string) error
	SetBalance(ctx context.Context, actor access.Actor, req SetBalanceRequest) (BalanceResponse, error)
	ListBalances(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeLookup
	resolver  access.DepartmentResolver
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeLookup,
	resolver access.DepartmentResolver,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		resolver:  resolver,
		outbox:    outboxRepo,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actor access.Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	empl, err := s.scopedEmployee(ctx, actor, req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	return s.file(ctx, actor.CompanyID, empl, parseUUIDPtr(actor.UserID), req.SubmitLeaveRequest)
}

func (s *service) Submit(ctx context.Context, companyID, employeeID string, req SubmitLeaveRequest) (LeaveResponse, error) {
	empl, err := s.employees.Lookup(ctx, companyID, employeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	return s.file(ctx, companyID, empl, nil, req)
}

// file persists a new PENDING request and its leave_submitted event in one transaction.
func (s *service) file(
	ctx context.Context,
	companyID string,
	empl employee.EmployeeResponse,
	createdBy *uuid.UUID,
	req SubmitLeaveRequest,
) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("file leave requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", empl.ID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if !employee.WorkStatus(empl.WorkStatus).Active() {
		return LeaveResponse{}, leaveerrors.ErrEmployeeInactive
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrInvalidInput
	}
	employeeUUID, err := uuid.Parse(empl.ID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	startDate, endDate, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	totalDays := CountWeekdays(startDate, endDate)
	if totalDays == 0 {
		return LeaveResponse{}, leaveerrors.ErrNoWorkingDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("file leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, empl.ID, startDate, endDate)
	if err != nil {
		log.Error("file leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		log.Warn("file leave overlap detected",
			zap.String("employee_id", empl.ID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &Leave{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Kind:       req.Kind,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  totalDays,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     StatusPending,
		CreatedBy:  createdBy,
	}
	if err := qtx.Create(ctx, l); err != nil {
		log.Error("file leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	event := events.LeaveSubmittedEvent{
		EventType:    events.LeaveSubmittedType,
		RequestID:    contextutil.GetRequestID(ctx),
		LeaveID:      l.ID.String(),
		CompanyID:    companyID,
		EmployeeID:   empl.ID,
		EmployeeName: empl.FullName,
		DepartmentID: empl.DepartmentID,
		Kind:         l.Kind,
		LeaveType:    l.LeaveType,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		OccurredAt:   time.Now().UTC(),
	}
	if err := s.writeOutbox(ctx, tx, l.ID.String(), event.EventType, event); err != nil {
		log.Error("file leave outbox persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("file leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("file leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", empl.ID),
		zap.Int("total_days", totalDays),
	)

	l.Employee = &EmployeeRef{FullName: empl.FullName}
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, actor access.Actor, filter ListFilter) ([]LeaveResponse, int64, error) {
	vis, err := access.Resolve(ctx, s.resolver, actor)
	if err != nil {
		return nil, 0, err
	}
	if !vis.All {
		filter.VisibleDepartmentIDs = append([]string{}, vis.DepartmentIDs...)
	}

	leaves, total, err := s.repo.FindAll(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

func (s *service) GetByID(ctx context.Context, actor access.Actor, id string) (LeaveResponse, error) {
	l, err := s.load(ctx, s.repo, actor.CompanyID, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := s.checkScope(ctx, actor, l); err != nil {
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) ListForEmployee(ctx context.Context, companyID, employeeID string, filter ListFilter) ([]LeaveResponse, int64, error) {
	filter.EmployeeID = employeeID
	filter.VisibleDepartmentIDs = nil
	leaves, total, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

// GetForEmployee hides other employees' requests behind NOT_FOUND.
func (s *service) GetForEmployee(ctx context.Context, companyID, employeeID, id string) (LeaveResponse, error) {
	l, err := s.load(ctx, s.repo, companyID, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.EmployeeID.String() != employeeID {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actor access.Actor, id string, req DecisionRequest) (LeaveResponse, error) {
	return s.decide(ctx, actor, id, StatusApproved, req.Note)
}

func (s *service) Reject(ctx context.Context, actor access.Actor, id string, req DecisionRequest) (LeaveResponse, error) {
	if strings.TrimSpace(req.Note) == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionNoteRequired
	}
	return s.decide(ctx, actor, id, StatusRejected, req.Note)
}

func (s *service) decide(ctx context.Context, actor access.Actor, id, target, note string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.UserID),
		zap.String("target_status", target),
	)

	reviewer, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveResponse{}, apperror.ErrUnauthorized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.lock(ctx, qtx, actor.CompanyID, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := s.checkScope(ctx, actor, l); err != nil {
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		log.Warn("decide leave invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", target),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if target == StatusApproved && l.Kind == KindLeave && TrackedBalance(l.LeaveType) {
		if err := s.deductBalance(ctx, qtx, l); err != nil {
			return LeaveResponse{}, err
		}
	}

	now := time.Now().UTC()
	l.Status = target
	l.ReviewedBy = &reviewer
	l.ReviewedAt = &now
	if note = strings.TrimSpace(note); note != "" {
		l.ReviewNote = &note
	}

	if err := qtx.TransitionStatus(ctx, l, StatusPending); err != nil {
		log.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	event := events.LeaveDecidedEvent{
		EventType:  events.LeaveDecidedType,
		RequestID:  contextutil.GetRequestID(ctx),
		LeaveID:    l.ID.String(),
		CompanyID:  actor.CompanyID,
		EmployeeID: l.EmployeeID.String(),
		Status:     l.Status,
		ReviewNote: note,
		StartDate:  l.StartDate.Format(time.DateOnly),
		EndDate:    l.EndDate.Format(time.DateOnly),
		OccurredAt: now,
	}
	if err := s.writeOutbox(ctx, tx, l.ID.String(), event.EventType, event); err != nil {
		log.Error("decide leave outbox persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", target),
		zap.String("reviewed_by", actor.UserID),
	)
	return mapToResponse(*l), nil
}

func (s *service) deductBalance(ctx context.Context, qtx Repository, l *Leave) error {
	bal, err := qtx.FindBalanceForUpdate(ctx, l.CompanyID.String(), l.EmployeeID.String(), l.StartDate.Year(), l.LeaveType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrInsufficientBalance
	}
	if err != nil {
		return err
	}
	if bal.Remaining() < l.TotalDays {
		contextutil.GetLogger(ctx, s.logger).Warn("leave balance insufficient",
			zap.String("employee_id", l.EmployeeID.String()),
			zap.Int("remaining", bal.Remaining()),
			zap.Int("requested", l.TotalDays),
		)
		return leaveerrors.ErrInsufficientBalance
	}
	return qtx.UpdateBalanceUsed(ctx, bal.ID.String(), bal.Used+l.TotalDays)
}

func (s *service) Cancel(ctx context.Context, companyID, employeeID, id string) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.lock(ctx, qtx, companyID, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.EmployeeID.String() != employeeID {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = StatusCancelled
	if err := qtx.TransitionStatus(ctx, l, StatusPending); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}
	contextutil.GetLogger(ctx, s.logger).Info("leave cancelled", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) AttachDocument(ctx context.Context, companyID, employeeID, id, documentID string) error {
	if _, err := s.GetForEmployee(ctx, companyID, employeeID, id); err != nil {
		return err
	}
	if err := s.repo.SetAttachment(ctx, companyID, id, documentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}
	return nil
}

func (s *service) SetBalance(ctx context.Context, actor access.Actor, req SetBalanceRequest) (BalanceResponse, error) {
	if _, err := s.scopedEmployee(ctx, actor, req.EmployeeID); err != nil {
		return BalanceResponse{}, err
	}
	companyUUID, err := uuid.Parse(actor.CompanyID)
	if err != nil {
		return BalanceResponse{}, apperror.ErrInvalidInput
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	b := &LeaveBalance{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Year:       req.Year,
		LeaveType:  req.LeaveType,
		Allotted:   req.Allotted,
	}
	if err := s.repo.UpsertBalance(ctx, b); err != nil {
		return BalanceResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("leave balance set",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("year", req.Year),
		zap.String("leave_type", req.LeaveType),
		zap.Int("allotted", req.Allotted),
	)

	balances, err := s.ListBalances(ctx, actor.CompanyID, req.EmployeeID, req.Year)
	if err != nil {
		return BalanceResponse{}, err
	}
	for _, bal := range balances {
		if bal.LeaveType == req.LeaveType {
			return bal, nil
		}
	}
	return mapBalance(*b), nil
}

// ListBalances always reports every tracked type, zero-filled when no allotment exists.
func (s *service) ListBalances(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error) {
	rows, err := s.repo.ListBalances(ctx, companyID, employeeID, year)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]LeaveBalance, len(rows))
	for _, r := range rows {
		byType[r.LeaveType] = r
	}

	out := make([]BalanceResponse, 0, 2)
	for _, t := range []string{TypeSick, TypeVacation} {
		b, ok := byType[t]
		if !ok {
			b = LeaveBalance{LeaveType: t, Year: year}
			b.EmployeeID, _ = uuid.Parse(employeeID)
		}
		out = append(out, mapBalance(b))
	}
	return out, nil
}

func (s *service) load(ctx context.Context, repo Repository, companyID, id string) (*Leave, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}
	l, err := repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

// lock is load with the row held until tx ends, so concurrent decisions serialise on it.
func (s *service) lock(ctx context.Context, repo Repository, companyID, id string) (*Leave, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}
	l, err := repo.FindByIDForUpdate(ctx, companyID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	return l, err
}

func (s *service) checkScope(ctx context.Context, actor access.Actor, l *Leave) error {
	vis, err := access.Resolve(ctx, s.resolver, actor)
	if err != nil {
		return err
	}
	departmentID := ""
	if l.Employee != nil && l.Employee.DepartmentID != nil {
		departmentID = l.Employee.DepartmentID.String()
	}
	if !vis.Allows(departmentID) {
		return leaveerrors.ErrOutOfScope
	}
	return nil
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
		return employee.EmployeeResponse{}, leaveerrors.ErrOutOfScope
	}
	return empl, nil
}

func (s *service) writeOutbox(ctx context.Context, tx *sql.Tx, leaveID, eventType string, payload any) error {
	if s.outbox == nil {
		return nil
	}
	ev, err := kafka.NewOutboxEvent(ctx, "leave", leaveID, events.LeaveLifecycleTopic, eventType, payload)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, ev)
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func parseUUIDPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func formatUUIDPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:                   l.ID.String(),
		CompanyID:            l.CompanyID.String(),
		EmployeeID:           l.EmployeeID.String(),
		Kind:                 l.Kind,
		LeaveType:            l.LeaveType,
		StartDate:            l.StartDate.Format(time.DateOnly),
		EndDate:              l.EndDate.Format(time.DateOnly),
		TotalDays:            l.TotalDays,
		Reason:               l.Reason,
		Status:               l.Status,
		CreatedBy:            formatUUIDPtr(l.CreatedBy),
		ReviewedBy:           formatUUIDPtr(l.ReviewedBy),
		ReviewNote:           l.ReviewNote,
		AttachmentDocumentID: formatUUIDPtr(l.AttachmentDocumentID),
		CreatedAt:            l.CreatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}

func mapBalance(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		EmployeeID: b.EmployeeID.String(),
		Year:       b.Year,
		LeaveType:  b.LeaveType,
		Allotted:   b.Allotted,
		Used:       b.Used,
		Remaining:  b.Remaining(),
	}
}
