package position

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	positionerrors "hris-portal/internal/position/errors"
	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const PositionAllKeyPrefix = "positions:all:"

func GetPositionAllKey(companyID string) string {
	return PositionAllKeyPrefix + companyID
}

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreatePositionRequest) (PositionResponse, error)
	GetAll(ctx context.Context, companyID string, departmentID string) ([]PositionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PositionResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdatePositionRequest) (PositionResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("position.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("position.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return positionerrors.ErrPositionNotFound
	}
	return err
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreatePositionRequest,
) (PositionResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PositionResponse{}, apperror.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ok, err := qtx.DepartmentExists(ctx, companyID, req.DepartmentID)
	if err != nil {
		return PositionResponse{}, err
	}
	if !ok {
		return PositionResponse{}, positionerrors.ErrDepartmentNotFound
	}

	pos := &Position{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		DepartmentID: uuid.MustParse(req.DepartmentID),
		Name:         req.Name,
		Description:  req.Description,
	}

	if err := qtx.Create(ctx, pos); err != nil {
		return PositionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	s.invalidate(ctx, companyID)
	return mapToResponse(*pos), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	departmentID string,
) ([]PositionResponse, error) {
	// filtered lists are not cached
	if departmentID != "" {
		positions, err := s.repo.FindAllByCompany(ctx, companyID, departmentID)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(positions), nil
	}

	cacheKey := GetPositionAllKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []PositionResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		positions, err := s.repo.FindAllByCompany(ctx, companyID, "")
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(positions)

		// master data, 30 minutes is plenty
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]PositionResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (PositionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidPositionID
	}

	pos, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PositionResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*pos), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdatePositionRequest,
) (PositionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidPositionID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pos, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PositionResponse{}, mapRepositoryError(err)
	}

	moved := req.DepartmentID != pos.DepartmentID.String()
	if moved {
		ok, err := qtx.DepartmentExists(ctx, companyID, req.DepartmentID)
		if err != nil {
			return PositionResponse{}, err
		}
		if !ok {
			return PositionResponse{}, positionerrors.ErrDepartmentNotFound
		}
		pos.DepartmentID = uuid.MustParse(req.DepartmentID)
		pos.Department = nil
	}

	pos.Name = req.Name
	pos.Description = req.Description

	if err := qtx.Update(ctx, pos); err != nil {
		return PositionResponse{}, err
	}

	if moved {
		n, err := qtx.MoveEmployeesToDepartment(ctx, companyID, id, req.DepartmentID)
		if err != nil {
			return PositionResponse{}, err
		}
		contextutil.GetLogger(ctx, s.logger).Info("position moved department",
			zap.String("position_id", id),
			zap.String("department_id", req.DepartmentID),
			zap.Int64("employees_moved", n),
		)
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	s.invalidate(ctx, companyID)
	return mapToResponse(*pos), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	if _, err := uuid.Parse(id); err != nil {
		return positionerrors.ErrInvalidPositionID
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

	n, err := qtx.CountEmployees(ctx, companyID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return positionerrors.ErrPositionInUse
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, companyID)
	return nil
}

func (s *service) invalidate(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetPositionAllKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate position cache", zap.String("key", cacheKey), zap.Error(err))
	}
}

func mapToResponse(p Position) PositionResponse {
	resp := PositionResponse{
		ID:           p.ID.String(),
		CompanyID:    p.CompanyID.String(),
		DepartmentID: p.DepartmentID.String(),
		Name:         p.Name,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Department != nil {
		resp.DepartmentName = p.Department.Name
	}
	return resp
}

func mapToListResponse(positions []Position) []PositionResponse {
	res := make([]PositionResponse, len(positions))
	for i, p := range positions {
		res[i] = mapToResponse(p)
	}
	return res
}
