package portal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hris-portal/internal/employee"
	employeeerrors "hris-portal/internal/employee/errors"
	"hris-portal/internal/portal"
	portalerrors "hris-portal/internal/portal/errors"
	portalMock "hris-portal/internal/portal/mock"
	"hris-portal/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type serviceDeps struct {
	service     portal.Service
	credentials *portalMock.MockCredentialSource
	sessions    *portalMock.MockSessionStore
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	credentials := portalMock.NewMockCredentialSource(ctrl)
	sessions := portalMock.NewMockSessionStore(ctrl)
	return &serviceDeps{
		service:     portal.NewService(credentials, sessions, 8*time.Hour),
		credentials: credentials,
		sessions:    sessions,
	}
}

func credentials(t *testing.T, status employee.WorkStatus) employee.Credentials {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("portal-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	return employee.Credentials{
		EmployeeID:   "e1",
		CompanyID:    "c1",
		FullName:     "Rina Santos",
		PasswordHash: string(hash),
		WorkStatus:   status,
	}
}

func TestPortalService_Login(t *testing.T) {
	ctx := context.Background()
	req := portal.LoginRequest{Email: " Rina@Example.com", Password: "portal-pass"}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.credentials.EXPECT().CredentialsByEmail(ctx, "rina@example.com").Return(credentials(t, employee.WorkStatusRegular), nil)
		deps.sessions.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, s portal.Session) (string, error) {
			assert.Equal(t, "e1", s.EmployeeID)
			assert.Equal(t, "c1", s.CompanyID)
			return "sid-1", nil
		})

		sid, resp, err := deps.service.Login(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, "sid-1", sid)
		assert.Equal(t, "Rina Santos", resp.FullName)
		assert.WithinDuration(t, time.Now().Add(8*time.Hour), resp.ExpiresAt, time.Minute)
	})

	t.Run("unknown email", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.credentials.EXPECT().CredentialsByEmail(ctx, gomock.Any()).Return(employee.Credentials{}, employeeerrors.ErrEmployeeNotFound)

		_, _, err := deps.service.Login(ctx, req)
		assert.ErrorIs(t, err, portalerrors.ErrInvalidCredentials)
	})

	t.Run("no portal password yet", func(t *testing.T) {
		deps := setupServiceTest(t)
		cred := credentials(t, employee.WorkStatusRegular)
		cred.PasswordHash = ""
		deps.credentials.EXPECT().CredentialsByEmail(ctx, gomock.Any()).Return(cred, nil)

		_, _, err := deps.service.Login(ctx, req)
		assert.ErrorIs(t, err, portalerrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.credentials.EXPECT().CredentialsByEmail(ctx, gomock.Any()).Return(credentials(t, employee.WorkStatusRegular), nil)

		_, _, err := deps.service.Login(ctx, portal.LoginRequest{Email: "rina@example.com", Password: "nope"})
		assert.ErrorIs(t, err, portalerrors.ErrInvalidCredentials)
	})

	for _, status := range []employee.WorkStatus{employee.WorkStatusResigned, employee.WorkStatusTerminated} {
		t.Run("rejects "+string(status), func(t *testing.T) {
			deps := setupServiceTest(t)
			deps.credentials.EXPECT().CredentialsByEmail(ctx, gomock.Any()).Return(credentials(t, status), nil)

			_, _, err := deps.service.Login(ctx, req)
			assert.ErrorIs(t, err, portalerrors.ErrEmployeeInactive)
		})
	}

	t.Run("redis down", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.credentials.EXPECT().CredentialsByEmail(ctx, gomock.Any()).Return(credentials(t, employee.WorkStatusProbationary), nil)
		deps.sessions.EXPECT().Create(ctx, gomock.Any()).Return("", errors.New("dial tcp: refused"))

		_, _, err := deps.service.Login(ctx, req)
		assert.ErrorIs(t, err, portalerrors.ErrSessionUnavailable)
	})
}

func TestPortalService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid session", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sessions.EXPECT().Load(ctx, "sid-1").Return(portal.Session{EmployeeID: "e1", CompanyID: "c1"}, nil)

		p, err := deps.service.Authenticate(ctx, "sid-1")
		assert.NoError(t, err)
		assert.Equal(t, contextutil.PrincipalEmployee, p.Kind)
		assert.Equal(t, "e1", p.ID)
		assert.Equal(t, "c1", p.CompanyID)
	})

	t.Run("expired", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sessions.EXPECT().Load(ctx, "old").Return(portal.Session{}, portal.ErrSessionNotFound)

		_, err := deps.service.Authenticate(ctx, "old")
		assert.ErrorIs(t, err, portalerrors.ErrSessionExpired)
	})

	t.Run("store failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sessions.EXPECT().Load(ctx, "sid").Return(portal.Session{}, errors.New("timeout"))

		_, err := deps.service.Authenticate(ctx, "sid")
		assert.ErrorIs(t, err, portalerrors.ErrSessionUnavailable)
	})
}

func TestPortalService_Logout(t *testing.T) {
	deps := setupServiceTest(t)
	deps.sessions.EXPECT().Delete(gomock.Any(), "sid-1").Return(nil)
	assert.NoError(t, deps.service.Logout(context.Background(), "sid-1"))
}
