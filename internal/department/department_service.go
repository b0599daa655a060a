package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	departmenterrors "hris-portal/internal/department/errors"
	"hris-portal/internal/shared/access"
	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const DepartmentAllKeyPrefix = "departments:all:"

func GetDepartmentAllKey(companyID string) string {
	return DepartmentAllKeyPrefix + companyID
}

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, companyID string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DepartmentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, companyID, id string) error

	ListSupervisors(ctx context.Context, companyID, departmentID string) ([]SupervisorResponse, error)
	AssignSupervisor(ctx context.Context, companyID, departmentID string, req AssignSupervisorRequest) (SupervisorResponse, error)
	RemoveSupervisor(ctx context.Context, companyID, departmentID, userID string) error
	SupervisedDepartmentIDs(ctx context.Context, companyID, userID string) ([]string, error)
	IsSupervisorOf(ctx context.Context, companyID, userID, departmentID string) (bool, error)
	FrequencyOf(ctx context.Context, companyID, departmentID string) (EvaluationFrequency, error)
}

var _ access.DepartmentResolver = (Service)(nil)

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DepartmentResponse{}, apperror.ErrInvalidInput
	}

	freq := EvaluationFrequency(req.EvaluationFrequency)
	if freq == "" {
		freq = FrequencyAnnual
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsByName(ctx, companyID, req.Name, "")
	if err != nil {
		return DepartmentResponse{}, err
	}
	if exists {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNameExists
	}

	dept := &Department{
		ID:                  uuid.New(),
		CompanyID:           companyUUID,
		Name:                req.Name,
		Description:         req.Description,
		EvaluationFrequency: freq,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx, companyID)
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]DepartmentResponse, error) {
	cacheKey := GetDepartmentAllKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []DepartmentResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		depts, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(depts)

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, data, 30*time.Minute)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	exists, err := qtx.ExistsByName(ctx, companyID, req.Name, id)
	if err != nil {
		return DepartmentResponse{}, err
	}
	if exists {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNameExists
	}

	dept.Name = req.Name
	dept.Description = req.Description
	if req.EvaluationFrequency != "" {
		dept.EvaluationFrequency = EvaluationFrequency(req.EvaluationFrequency)
	}

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx, companyID)
	return mapToResponse(*dept), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	inUse, err := qtx.CountPositions(ctx, companyID, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return departmenterrors.ErrDepartmentInUse
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, companyID)
	return nil
}

func (s *service) ListSupervisors(ctx context.Context, companyID, departmentID string) ([]SupervisorResponse, error) {
	if _, err := s.GetByID(ctx, companyID, departmentID); err != nil {
		return nil, err
	}

	links, err := s.repo.ListSupervisors(ctx, companyID, departmentID)
	if err != nil {
		return nil, err
	}

	res := make([]SupervisorResponse, len(links))
	for i, l := range links {
		res[i] = mapToSupervisorResponse(l)
	}
	return res, nil
}

func (s *service) AssignSupervisor(
	ctx context.Context,
	companyID, departmentID string,
	req AssignSupervisorRequest,
) (SupervisorResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(departmentID); err != nil {
		return SupervisorResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, departmentID)
	if err != nil {
		return SupervisorResponse{}, mapRepositoryError(err)
	}

	user, err := s.repo.FindUser(ctx, companyID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SupervisorResponse{}, departmenterrors.ErrSupervisorNotFound
		}
		return SupervisorResponse{}, err
	}
	if user.Role != access.RoleSupervisor {
		return SupervisorResponse{}, departmenterrors.ErrUserNotSupervisor
	}

	link := &DepartmentSupervisor{
		CompanyID:    dept.CompanyID,
		DepartmentID: dept.ID,
		UserID:       user.ID,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.AddSupervisor(ctx, link); err != nil {
		return SupervisorResponse{}, err
	}

	log.Info("supervisor assigned",
		zap.String("company_id", companyID),
		zap.String("department_id", departmentID),
		zap.String("user_id", req.UserID),
	)

	link.User = user
	return mapToSupervisorResponse(*link), nil
}

func (s *service) RemoveSupervisor(ctx context.Context, companyID, departmentID, userID string) error {
	if _, err := uuid.Parse(departmentID); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}
	return s.repo.RemoveSupervisor(ctx, companyID, departmentID, userID)
}

func (s *service) SupervisedDepartmentIDs(ctx context.Context, companyID, userID string) ([]string, error) {
	return s.repo.ListDepartmentIDsBySupervisor(ctx, companyID, userID)
}

func (s *service) IsSupervisorOf(ctx context.Context, companyID, userID, departmentID string) (bool, error) {
	ids, err := s.repo.ListDepartmentIDsBySupervisor(ctx, companyID, userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == departmentID {
			return true, nil
		}
	}
	return false, nil
}

// FrequencyOf falls back to ANNUAL for employees without a department.
func (s *service) FrequencyOf(ctx context.Context, companyID, departmentID string) (EvaluationFrequency, error) {
	if departmentID == "" {
		return FrequencyAnnual, nil
	}
	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, departmentID)
	if err != nil {
		return "", mapRepositoryError(err)
	}
	if !dept.EvaluationFrequency.Valid() {
		return FrequencyAnnual, nil
	}
	return dept.EvaluationFrequency, nil
}

func (s *service) invalidate(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	key := GetDepartmentAllKey(companyID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("failed to invalidate department cache", zap.String("key", key), zap.Error(err))
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:                  dept.ID.String(),
		CompanyID:           dept.CompanyID.String(),
		Name:                dept.Name,
		Description:         dept.Description,
		EvaluationFrequency: string(dept.EvaluationFrequency),
		CreatedAt:           dept.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           dept.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}

func mapToSupervisorResponse(l DepartmentSupervisor) SupervisorResponse {
	res := SupervisorResponse{
		UserID:       l.UserID.String(),
		DepartmentID: l.DepartmentID.String(),
		AssignedAt:   l.CreatedAt.Format(time.RFC3339),
	}
	if l.User != nil {
		res.Name = l.User.Name
		res.Email = l.User.Email
	}
	return res
}
