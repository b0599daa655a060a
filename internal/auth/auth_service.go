package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "hris-portal/internal/auth/errors"
	"hris-portal/internal/middleware"
	"hris-portal/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	repo   Repository
	tokens TokenConfig
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, tokens TokenConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, tokens: tokens, now: time.Now, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	acc, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", AuthResponse{}, err
		}
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)); err != nil {
		l.Info("login rejected", zap.String("user_id", acc.ID.String()))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !acc.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	access, refresh, err := s.issue(acc)
	if err != nil {
		l.Error("failed to sign tokens", zap.Error(err))
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	l.Info("user logged in", zap.String("user_id", acc.ID.String()), zap.String("company_id", acc.CompanyID.String()))
	return access, refresh, toResponse(acc), nil
}

// RefreshToken rotates both tokens and picks up role or status changes.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	claims, err := middleware.ParseToken(s.tokens.Secret, refreshToken, middleware.TokenTypeRefresh)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	acc, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
		}
		return "", "", AuthResponse{}, err
	}
	if !acc.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrUserInactive
	}

	access, refresh, err := s.issue(acc)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	return access, refresh, toResponse(acc), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrInvalidToken
		}
		return nil, err
	}

	resp := toResponse(acc)
	return &resp, nil
}

func (s *service) issue(acc *Account) (string, string, error) {
	access, err := s.generateToken(acc, middleware.TokenTypeAccess, s.tokens.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.generateToken(acc, middleware.TokenTypeRefresh, s.tokens.RefreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *service) generateToken(acc *Account, tokenType string, expiry time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":    acc.ID.String(),
		"company_id": acc.CompanyID.String(),
		"role":       acc.Role,
		"typ":        tokenType,
		"iat":        now.Unix(),
		"exp":        now.Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.tokens.Secret))
}

func toResponse(acc *Account) AuthResponse {
	return AuthResponse{
		ID:        acc.ID.String(),
		CompanyID: acc.CompanyID.String(),
		Email:     acc.Email,
		Name:      acc.Name,
		Role:      acc.Role,
	}
}
