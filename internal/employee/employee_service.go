package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	employeeerrors "hris-portal/internal/employee/errors"
	"hris-portal/internal/events"
	"hris-portal/internal/messaging/kafka"
	"hris-portal/internal/shared/access"
	"hris-portal/internal/shared/contextutil"
	"hris-portal/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, actor access.Actor, filter ListFilter) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeOption, error)
	GetByID(ctx context.Context, actor access.Actor, id string) (EmployeeResponse, error)
	Lookup(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	SetPortalPassword(ctx context.Context, companyID, id string, req SetPortalPasswordRequest) error
	SetPhoto(ctx context.Context, companyID, id string, documentID *string) error
	CredentialsByEmail(ctx context.Context, email string) (Credentials, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	resolver access.DepartmentResolver
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	resolver access.DepartmentResolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counter,
		outbox:   outboxRepo,
		rdb:      rdb,
		resolver: resolver,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create employee requested",
		zap.String("company_id", companyID),
		zap.String("position_id", req.PositionID),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	hireDate, err := time.Parse(time.DateOnly, req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	var passwordHash string
	if req.PortalPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.PortalPassword), bcrypt.DefaultCost)
		if err != nil {
			return EmployeeResponse{}, err
		}
		passwordHash = string(hash)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	departmentID, err := qtx.GetDepartmentIDByPosition(ctx, companyID, req.PositionID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if departmentID == "" {
		log.Warn("create employee position not found in company", zap.String("position_id", req.PositionID))
		return EmployeeResponse{}, employeeerrors.ErrPositionNotFound
	}

	taken, err := qtx.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return EmployeeResponse{}, err
	}
	if taken {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
	}

	if req.EmployeeNumber == "" {
		next, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TypeEmployeeNumber)
		if err != nil {
			log.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = counter.FormatEmployeeNumber(next)
	}

	empl := &Employee{
		ID:                 uuid.New(),
		CompanyID:          companyUUID,
		EmployeeNumber:     req.EmployeeNumber,
		FullName:           req.FullName,
		Email:              req.Email,
		Phone:              req.Phone,
		PositionID:         uuidPtr(req.PositionID),
		DepartmentID:       uuidPtr(departmentID),
		HireDate:           hireDate,
		WorkStatus:         WorkStatus(req.WorkStatus),
		PortalPasswordHash: passwordHash,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:      events.EmployeeCreatedType,
			RequestID:      contextutil.GetRequestID(ctx),
			EmployeeID:     empl.ID.String(),
			CompanyID:      companyID,
			EmployeeNumber: empl.EmployeeNumber,
			FullName:       empl.FullName,
			Email:          empl.Email,
			OccurredAt:     time.Now().UTC(),
		}
		outboxEvent, err := kafka.NewOutboxEvent(ctx, "employee", empl.ID.String(),
			events.EmployeeLifecycleTopic, event.EventType, event)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			log.Error("create employee outbox persist failed", zap.String("employee_id", empl.ID.String()), zap.Error(err))
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	log.Info("create employee success",
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(
	ctx context.Context,
	actor access.Actor,
	filter ListFilter,
) ([]EmployeeResponse, int64, error) {
	vis, err := access.Resolve(ctx, s.resolver, actor)
	if err != nil {
		return nil, 0, err
	}
	if !vis.All {
		filter.VisibleDepartmentIDs = append([]string{}, vis.DepartmentIDs...)
	}

	employees, total, err := s.repo.FindAll(ctx, actor.CompanyID, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get all employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	return mapToListResponse(employees), total, nil
}

func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeOption, error) {
	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// forms hit this endpoint in bursts, collapse concurrent misses
	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		emps, err := s.repo.FindOptionsByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOption, len(emps))
		for i, e := range emps {
			resp[i] = EmployeeOption{ID: e.ID.String(), EmployeeNumber: e.EmployeeNumber, FullName: e.FullName}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(
	ctx context.Context,
	actor access.Actor,
	id string,
) (EmployeeResponse, error) {
	resp, err := s.Lookup(ctx, actor.CompanyID, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	vis, err := access.Resolve(ctx, s.resolver, actor)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if !vis.Allows(resp.DepartmentID) {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeOutOfScope
	}

	return resp, nil
}

// Lookup skips supervisor scoping; other modules apply their own rules.
func (s *service) Lookup(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	hireDate, err := time.Parse(time.DateOnly, req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	departmentID, err := qtx.GetDepartmentIDByPosition(ctx, companyID, req.PositionID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if departmentID == "" {
		return EmployeeResponse{}, employeeerrors.ErrPositionNotFound
	}

	if req.Email != empl.Email {
		taken, err := qtx.ExistsByEmail(ctx, req.Email, id)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if taken {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
		}
	}

	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.Phone = req.Phone
	empl.PositionID = uuidPtr(req.PositionID)
	empl.DepartmentID = uuidPtr(departmentID)
	empl.Position = nil
	empl.Department = nil
	empl.HireDate = hireDate
	empl.WorkStatus = WorkStatus(req.WorkStatus)
	if req.EmployeeNumber != "" {
		empl.EmployeeNumber = req.EmployeeNumber
	}

	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	log.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, companyID)
	contextutil.GetLogger(ctx, s.logger).Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) SetPortalPassword(ctx context.Context, companyID, id string, req SetPortalPasswordRequest) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePortalPassword(ctx, companyID, id, string(hash)); err != nil {
		return mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("portal password set", zap.String("employee_id", id))
	return nil
}

func (s *service) SetPhoto(ctx context.Context, companyID, id string, documentID *string) error {
	return mapRepositoryError(s.repo.UpdatePhoto(ctx, companyID, id, documentID))
}

func (s *service) CredentialsByEmail(ctx context.Context, email string) (Credentials, error) {
	empl, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return Credentials{}, mapRepositoryError(err)
	}

	return Credentials{
		EmployeeID:   empl.ID.String(),
		CompanyID:    empl.CompanyID.String(),
		FullName:     empl.FullName,
		PasswordHash: empl.PortalPasswordHash,
		WorkStatus:   empl.WorkStatus,
	}, nil
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache", zap.String("key", cacheKey), zap.Error(err))
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:              empl.ID.String(),
		CompanyID:       empl.CompanyID.String(),
		EmployeeNumber:  empl.EmployeeNumber,
		FullName:        empl.FullName,
		Email:           empl.Email,
		Phone:           empl.Phone,
		HireDate:        empl.HireDate.Format(time.DateOnly),
		WorkStatus:      string(empl.WorkStatus),
		HasPortalAccess: empl.PortalPasswordHash != "",
		CreatedAt:       empl.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       empl.UpdatedAt.Format(time.RFC3339),
	}
	if empl.DepartmentID != nil {
		resp.DepartmentID = empl.DepartmentID.String()
	}
	if empl.Department != nil {
		resp.DepartmentName = empl.Department.Name
	}
	if empl.PositionID != nil {
		resp.PositionID = empl.PositionID.String()
	}
	if empl.Position != nil {
		resp.PositionName = empl.Position.Name
	}
	if empl.PhotoDocumentID != nil {
		resp.PhotoDocumentID = empl.PhotoDocumentID.String()
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}
