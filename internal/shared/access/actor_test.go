package access_test

import (
	"context"
	"errors"
	"testing"

	"hris-portal/internal/shared/access"
	accessMock "hris-portal/internal/shared/access/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("admin sees everything", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := accessMock.NewMockDepartmentResolver(ctrl)

		vis, err := access.Resolve(ctx, resolver, access.Actor{UserID: "u1", CompanyID: "c1", Role: access.RoleAdmin})

		assert.NoError(t, err)
		assert.True(t, vis.All)
		assert.True(t, vis.Allows("any-dept"))
	})

	t.Run("supervisor limited to assignments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := accessMock.NewMockDepartmentResolver(ctrl)
		resolver.EXPECT().SupervisedDepartmentIDs(ctx, "c1", "u2").Return([]string{"d1", "d2"}, nil)

		vis, err := access.Resolve(ctx, resolver, access.Actor{UserID: "u2", CompanyID: "c1", Role: access.RoleSupervisor})

		assert.NoError(t, err)
		assert.False(t, vis.All)
		assert.True(t, vis.Allows("d2"))
		assert.False(t, vis.Allows("d3"))
	})

	t.Run("resolver error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		resolver := accessMock.NewMockDepartmentResolver(ctrl)
		resolver.EXPECT().SupervisedDepartmentIDs(ctx, "c1", "u2").Return(nil, errors.New("db down"))

		_, err := access.Resolve(ctx, resolver, access.Actor{UserID: "u2", CompanyID: "c1", Role: access.RoleSupervisor})

		assert.Error(t, err)
	})
}
