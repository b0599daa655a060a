package user

import (
	"context"
	"strings"

	"hris-portal/internal/shared/access"
	"hris-portal/internal/shared/contextutil"
	usererrors "hris-portal/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RoleDirectory is the part of the RBAC service users depend on.
type RoleDirectory interface {
	RoleExists(ctx context.Context, companyID, name string) (bool, error)
	Invalidate(companyID string)
}

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateUserRequest) (UserResponse, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, companyID, id string) (UserResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateUserRequest) (UserResponse, error)

	ChangeRole(ctx context.Context, companyID, actorID, id, role string) (UserResponse, error)
	SetActive(ctx context.Context, companyID, actorID, id string, active bool) (UserResponse, error)

	ResetPassword(ctx context.Context, companyID, id, newPassword string) error
	ChangeOwnPassword(ctx context.Context, companyID, userID string, req ChangeOwnPasswordRequest) error
}

type service struct {
	repo   Repository
	roles  RoleDirectory
	cost   int
	logger *zap.Logger
}

func NewService(repo Repository, roles RoleDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, roles: roles, cost: bcrypt.DefaultCost, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidCompanyID
	}

	role, err := s.checkRole(ctx, companyID, req.Role)
	if err != nil {
		return UserResponse{}, err
	}

	email := normalizeEmail(req.Email)
	exists, err := s.repo.ExistsByEmail(ctx, email, "")
	if err != nil {
		return UserResponse{}, err
	}
	if exists {
		return UserResponse{}, usererrors.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	s.roles.Invalidate(companyID)
	l.Info("user created", zap.String("user_id", u.ID.String()), zap.String("role", role))
	return mapToResponse(*u), nil
}

func (s *service) List(ctx context.Context, companyID string, filter ListFilter) ([]UserResponse, int64, error) {
	if filter.Role != "" {
		filter.Role = strings.ToUpper(strings.TrimSpace(filter.Role))
	}
	users, total, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (UserResponse, error) {
	u, err := s.find(ctx, companyID, id)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateUserRequest) (UserResponse, error) {
	u, err := s.find(ctx, companyID, id)
	if err != nil {
		return UserResponse{}, err
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != u.Email {
			exists, err := s.repo.ExistsByEmail(ctx, email, u.ID.String())
			if err != nil {
				return UserResponse{}, err
			}
			if exists {
				return UserResponse{}, usererrors.ErrUserAlreadyExists
			}
			u.Email = email
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) ChangeRole(ctx context.Context, companyID, actorID, id, role string) (UserResponse, error) {
	if actorID == id {
		return UserResponse{}, usererrors.ErrSelfChange
	}
	u, err := s.find(ctx, companyID, id)
	if err != nil {
		return UserResponse{}, err
	}
	role, err = s.checkRole(ctx, companyID, role)
	if err != nil {
		return UserResponse{}, err
	}
	if role == u.Role {
		return mapToResponse(*u), nil
	}
	if err := s.guardLastAdmin(ctx, u); err != nil {
		return UserResponse{}, err
	}

	previous := u.Role
	u.Role = role
	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	s.roles.Invalidate(companyID)
	contextutil.GetLogger(ctx, s.logger).Info("user role changed",
		zap.String("user_id", id),
		zap.String("from", previous),
		zap.String("to", role),
	)
	return mapToResponse(*u), nil
}

func (s *service) SetActive(ctx context.Context, companyID, actorID, id string, active bool) (UserResponse, error) {
	if actorID == id {
		return UserResponse{}, usererrors.ErrSelfChange
	}
	u, err := s.find(ctx, companyID, id)
	if err != nil {
		return UserResponse{}, err
	}
	if u.IsActive == active {
		return mapToResponse(*u), nil
	}
	if !active {
		if err := s.guardLastAdmin(ctx, u); err != nil {
			return UserResponse{}, err
		}
	}

	u.IsActive = active
	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	s.roles.Invalidate(companyID)
	contextutil.GetLogger(ctx, s.logger).Info("user status changed",
		zap.String("user_id", id),
		zap.Bool("active", active),
	)
	return mapToResponse(*u), nil
}

func (s *service) ResetPassword(ctx context.Context, companyID, id, newPassword string) error {
	u, err := s.find(ctx, companyID, id)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	if err := s.repo.Update(ctx, u); err != nil {
		return mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("user password reset", zap.String("user_id", id))
	return nil
}

func (s *service) ChangeOwnPassword(ctx context.Context, companyID, userID string, req ChangeOwnPasswordRequest) error {
	u, err := s.find(ctx, companyID, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.CurrentPassword)); err != nil {
		return usererrors.ErrWrongPassword
	}
	if req.CurrentPassword == req.NewPassword {
		return usererrors.ErrSamePassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return mapRepositoryError(s.repo.Update(ctx, u))
}

func (s *service) find(ctx context.Context, companyID, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return u, nil
}

func (s *service) checkRole(ctx context.Context, companyID, role string) (string, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	ok, err := s.roles.RoleExists(ctx, companyID, role)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", usererrors.ErrUnknownRole
	}
	return role, nil
}

// guardLastAdmin refuses to take away the company's only active admin.
func (s *service) guardLastAdmin(ctx context.Context, u *User) error {
	if u.Role != access.RoleAdmin || !u.IsActive {
		return nil
	}
	n, err := s.repo.CountActiveByRole(ctx, u.CompanyID.String(), access.RoleAdmin)
	if err != nil {
		return err
	}
	if n <= 1 {
		return usererrors.ErrLastAdmin
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
