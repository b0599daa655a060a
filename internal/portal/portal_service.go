package portal

import (
	"context"
	"errors"
	"strings"
	"time"

	"hris-portal/internal/employee"
	employeeerrors "hris-portal/internal/employee/errors"
	"hris-portal/internal/middleware"
	portalerrors "hris-portal/internal/portal/errors"
	"hris-portal/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CredentialSource looks up an employee's portal credentials.
type CredentialSource interface {
	CredentialsByEmail(ctx context.Context, email string) (employee.Credentials, error)
}

//go:generate mockgen -source=portal_service.go -destination=mock/portal_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (sessionID string, resp LoginResponse, err error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, sessionID string) (contextutil.Principal, error)
}

var _ middleware.SessionAuthenticator = (Service)(nil)

type service struct {
	credentials CredentialSource
	sessions    SessionStore
	ttl         time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(credentials CredentialSource, sessions SessionStore, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("portal.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("portal.service")
	}
	return &service{credentials: credentials, sessions: sessions, ttl: ttl, now: time.Now, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, LoginResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	cred, err := s.credentials.CredentialsByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return "", LoginResponse{}, portalerrors.ErrInvalidCredentials
		}
		return "", LoginResponse{}, err
	}

	// employees without a portal password have not been invited yet
	if cred.PasswordHash == "" {
		return "", LoginResponse{}, portalerrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		l.Info("portal login rejected", zap.String("employee_id", cred.EmployeeID))
		return "", LoginResponse{}, portalerrors.ErrInvalidCredentials
	}
	if !cred.WorkStatus.Active() {
		return "", LoginResponse{}, portalerrors.ErrEmployeeInactive
	}

	now := s.now()
	sid, err := s.sessions.Create(ctx, Session{
		EmployeeID: cred.EmployeeID,
		CompanyID:  cred.CompanyID,
		CreatedAt:  now,
	})
	if err != nil {
		l.Error("failed to create portal session", zap.Error(err))
		return "", LoginResponse{}, portalerrors.ErrSessionUnavailable
	}

	l.Info("portal login", zap.String("employee_id", cred.EmployeeID), zap.String("company_id", cred.CompanyID))
	return sid, LoginResponse{
		EmployeeID: cred.EmployeeID,
		FullName:   cred.FullName,
		ExpiresAt:  now.Add(s.ttl),
	}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to delete portal session", zap.Error(err))
		return portalerrors.ErrSessionUnavailable
	}
	return nil
}

func (s *service) Authenticate(ctx context.Context, sessionID string) (contextutil.Principal, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return contextutil.Principal{}, portalerrors.ErrSessionExpired
	}
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to load portal session", zap.Error(err))
		return contextutil.Principal{}, portalerrors.ErrSessionUnavailable
	}

	return contextutil.Principal{
		Kind:      contextutil.PrincipalEmployee,
		ID:        sess.EmployeeID,
		CompanyID: sess.CompanyID,
	}, nil
}
