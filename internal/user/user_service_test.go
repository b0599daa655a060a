package user_test

import (
	"context"
	"testing"

	"hris-portal/internal/shared/access"
	"hris-portal/internal/user"
	usererrors "hris-portal/internal/user/errors"
	userMock "hris-portal/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type serviceDeps struct {
	service user.Service
	repo    *userMock.MockRepository
	roles   *userMock.MockRoleDirectory
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	repo := userMock.NewMockRepository(ctrl)
	roles := userMock.NewMockRoleDirectory(ctrl)
	return &serviceDeps{
		service: user.NewService(repo, roles),
		repo:    repo,
		roles:   roles,
	}
}

func hash(t *testing.T, pw string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	req := user.CreateUserRequest{Name: " Dana ", Email: "Dana@Example.com ", Password: "secret123", Role: "hr"}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.roles.EXPECT().RoleExists(ctx, companyID, access.RoleHR).Return(true, nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "dana@example.com", "").Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.Equal(t, "Dana", u.Name)
			assert.Equal(t, access.RoleHR, u.Role)
			assert.True(t, u.IsActive)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
			return nil
		})
		deps.roles.EXPECT().Invalidate(companyID)

		resp, err := deps.service.Create(ctx, companyID, req)
		assert.NoError(t, err)
		assert.Equal(t, "dana@example.com", resp.Email)
		assert.Equal(t, access.RoleHR, resp.Role)
	})

	t.Run("unknown role", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.roles.EXPECT().RoleExists(ctx, companyID, "HR").Return(false, nil)

		_, err := deps.service.Create(ctx, companyID, req)
		assert.ErrorIs(t, err, usererrors.ErrUnknownRole)
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.roles.EXPECT().RoleExists(ctx, companyID, "HR").Return(true, nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "dana@example.com", "").Return(true, nil)

		_, err := deps.service.Create(ctx, companyID, req)
		assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
	})

	t.Run("invalid company", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, "nope", req)
		assert.ErrorIs(t, err, usererrors.ErrInvalidCompanyID)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.GetByID(ctx, companyID, "abc")
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByID(ctx, companyID, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, companyID, id)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_ChangeRole(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.NewString()

	t.Run("self change refused", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.ChangeRole(ctx, companyID.String(), actorID, actorID, "HR")
		assert.ErrorIs(t, err, usererrors.ErrSelfChange)
	})

	t.Run("last admin kept", func(t *testing.T) {
		deps := setupServiceTest(t)
		target := &user.User{ID: uuid.New(), CompanyID: companyID, Role: access.RoleAdmin, IsActive: true}
		deps.repo.EXPECT().FindByID(ctx, companyID.String(), target.ID.String()).Return(target, nil)
		deps.roles.EXPECT().RoleExists(ctx, companyID.String(), access.RoleHR).Return(true, nil)
		deps.repo.EXPECT().CountActiveByRole(ctx, companyID.String(), access.RoleAdmin).Return(int64(1), nil)

		_, err := deps.service.ChangeRole(ctx, companyID.String(), actorID, target.ID.String(), "hr")
		assert.ErrorIs(t, err, usererrors.ErrLastAdmin)
	})

	t.Run("success invalidates policy", func(t *testing.T) {
		deps := setupServiceTest(t)
		target := &user.User{ID: uuid.New(), CompanyID: companyID, Role: access.RoleHR, IsActive: true}
		deps.repo.EXPECT().FindByID(ctx, companyID.String(), target.ID.String()).Return(target, nil)
		deps.roles.EXPECT().RoleExists(ctx, companyID.String(), access.RoleSupervisor).Return(true, nil)
		deps.repo.EXPECT().Update(ctx, target).Return(nil)
		deps.roles.EXPECT().Invalidate(companyID.String())

		resp, err := deps.service.ChangeRole(ctx, companyID.String(), actorID, target.ID.String(), "supervisor")
		assert.NoError(t, err)
		assert.Equal(t, access.RoleSupervisor, resp.Role)
	})
}

func TestUserService_SetActive(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.NewString()

	t.Run("deactivate", func(t *testing.T) {
		deps := setupServiceTest(t)
		target := &user.User{ID: uuid.New(), CompanyID: companyID, Role: access.RoleAdmin, IsActive: true}
		deps.repo.EXPECT().FindByID(ctx, companyID.String(), target.ID.String()).Return(target, nil)
		deps.repo.EXPECT().CountActiveByRole(ctx, companyID.String(), access.RoleAdmin).Return(int64(2), nil)
		deps.repo.EXPECT().Update(ctx, target).Return(nil)
		deps.roles.EXPECT().Invalidate(companyID.String())

		resp, err := deps.service.SetActive(ctx, companyID.String(), actorID, target.ID.String(), false)
		assert.NoError(t, err)
		assert.False(t, resp.IsActive)
	})

	t.Run("no-op when unchanged", func(t *testing.T) {
		deps := setupServiceTest(t)
		target := &user.User{ID: uuid.New(), CompanyID: companyID, Role: access.RoleHR, IsActive: true}
		deps.repo.EXPECT().FindByID(ctx, companyID.String(), target.ID.String()).Return(target, nil)

		resp, err := deps.service.SetActive(ctx, companyID.String(), actorID, target.ID.String(), true)
		assert.NoError(t, err)
		assert.True(t, resp.IsActive)
	})
}

func TestUserService_ChangeOwnPassword(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("wrong current password", func(t *testing.T) {
		deps := setupServiceTest(t)
		u := &user.User{ID: uuid.New(), CompanyID: companyID, Password: hash(t, "old-password")}
		deps.repo.EXPECT().FindByID(ctx, companyID.String(), u.ID.String()).Return(u, nil)

		err := deps.service.ChangeOwnPassword(ctx, companyID.String(), u.ID.String(), user.ChangeOwnPasswordRequest{
			CurrentPassword: "guess", NewPassword: "new-password",
		})
		assert.ErrorIs(t, err, usererrors.ErrWrongPassword)
	})

	t.Run("same password", func(t *testing.T) {
		deps := setupServiceTest(t)
		u := &user.User{ID: uuid.New(), CompanyID: companyID, Password: hash(t, "old-password")}
		deps.repo.EXPECT().FindByID(ctx, companyID.String(), u.ID.String()).Return(u, nil)

		err := deps.service.ChangeOwnPassword(ctx, companyID.String(), u.ID.String(), user.ChangeOwnPasswordRequest{
			CurrentPassword: "old-password", NewPassword: "old-password",
		})
		assert.ErrorIs(t, err, usererrors.ErrSamePassword)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		u := &user.User{ID: uuid.New(), CompanyID: companyID, Password: hash(t, "old-password")}
		deps.repo.EXPECT().FindByID(ctx, companyID.String(), u.ID.String()).Return(u, nil)
		deps.repo.EXPECT().Update(ctx, u).DoAndReturn(func(_ context.Context, saved *user.User) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("new-password")))
			return nil
		})

		err := deps.service.ChangeOwnPassword(ctx, companyID.String(), u.ID.String(), user.ChangeOwnPasswordRequest{
			CurrentPassword: "old-password", NewPassword: "new-password",
		})
		assert.NoError(t, err)
	})
}
