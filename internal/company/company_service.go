package company

import (
	"context"
	"strings"

	companyerrors "hris-portal/internal/company/errors"
	"hris-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mock/company_service_mock.go -package=mock . Service
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return CompanyResponse{}, companyerrors.ErrCompanyNameRequired
	}

	comp := &Company{
		ID:       uuid.New(),
		Name:     name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		IsActive: true,
	}
	if err := s.repo.Create(ctx, comp); err != nil {
		return CompanyResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("company created", zap.String("company_id", comp.ID.String()))
	return toResponse(comp), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return CompanyResponse{}, err
	}
	return toResponse(comp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return CompanyResponse{}, err
	}
	if !comp.IsActive {
		return CompanyResponse{}, companyerrors.ErrCompanyInactive
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return CompanyResponse{}, companyerrors.ErrCompanyNameRequired
		}
		comp.Name = name
	}
	if req.Email != nil {
		comp.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		comp.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		comp.Address = strings.TrimSpace(*req.Address)
	}

	if err := s.repo.UpdateProfile(ctx, comp); err != nil {
		return CompanyResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("company profile updated", zap.String("company_id", id))
	return toResponse(comp), nil
}
