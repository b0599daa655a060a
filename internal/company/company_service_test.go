package company_test

import (
	"context"
	"errors"
	"testing"

	"hris-portal/internal/company"
	companyerrors "hris-portal/internal/company/errors"
	companyMock "hris-portal/internal/company/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *company.Company) error {
		assert.Equal(t, "Acme", c.Name)
		assert.Equal(t, "hr@acme.test", c.Email)
		assert.True(t, c.IsActive)
		assert.NotEqual(t, uuid.Nil, c.ID)
		return nil
	})

	resp, err := service.Create(ctx, company.CreateCompanyRequest{Name: " Acme ", Email: "HR@Acme.test"})
	assert.NoError(t, err)
	assert.Equal(t, "Acme", resp.Name)

	_, err = service.Create(ctx, company.CreateCompanyRequest{Name: "  "})
	assert.ErrorIs(t, err, companyerrors.ErrCompanyNameRequired)
}

func TestService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().GetByID(ctx, id).Return(&company.Company{ID: id, Name: "Test Company", IsActive: true}, nil)

		resp, err := service.GetByID(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, "Test Company", resp.Name)
		assert.Equal(t, id.String(), resp.ID)
	})

	t.Run("Not Found", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().GetByID(ctx, id).Return(nil, companyerrors.ErrCompanyNotFound)

		_, err := service.GetByID(ctx, id.String())
		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		_, err := service.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := companyMock.NewMockRepository(ctrl)
	service := company.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success Update Name", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().GetByID(ctx, id).Return(&company.Company{ID: id, Name: "Old Name", Phone: "123", IsActive: true}, nil)
		mockRepo.EXPECT().UpdateProfile(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *company.Company) error {
			assert.Equal(t, "New Name", c.Name)
			assert.Equal(t, "123", c.Phone)
			return nil
		})

		name := "New Name"
		resp, err := service.Update(ctx, id.String(), company.UpdateCompanyRequest{Name: &name})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", resp.Name)
	})

	t.Run("Repository Failure", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().GetByID(ctx, id).Return(&company.Company{ID: id, IsActive: true}, nil)
		mockRepo.EXPECT().UpdateProfile(ctx, gomock.Any()).Return(errors.New("db down"))

		_, err := service.Update(ctx, id.String(), company.UpdateCompanyRequest{})
		assert.Error(t, err)
	})

	t.Run("Inactive Company", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().GetByID(ctx, id).Return(&company.Company{ID: id, IsActive: false}, nil)

		name := "Renamed"
		_, err := service.Update(ctx, id.String(), company.UpdateCompanyRequest{Name: &name})
		assert.ErrorIs(t, err, companyerrors.ErrCompanyInactive)
	})

	t.Run("Blank Name", func(t *testing.T) {
		id := uuid.New()
		mockRepo.EXPECT().GetByID(ctx, id).Return(&company.Company{ID: id, Name: "Acme", IsActive: true}, nil)

		blank := "   "
		_, err := service.Update(ctx, id.String(), company.UpdateCompanyRequest{Name: &blank})
		assert.ErrorIs(t, err, companyerrors.ErrCompanyNameRequired)
	})
}
