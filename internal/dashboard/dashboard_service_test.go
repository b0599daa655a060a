package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hris-portal/internal/dashboard"
	dashboardMock "hris-portal/internal/dashboard/mock"
	"hris-portal/internal/shared/access"
	accessMock "hris-portal/internal/shared/access/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var today = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

type deps struct {
	repo      *dashboardMock.MockRepository
	resolver  *accessMock.MockDepartmentResolver
	redisMock redismock.ClientMock
	service   dashboard.Service
}

func setup(t *testing.T) *deps {
	ctrl := gomock.NewController(t)
	rdb, redisMock := redismock.NewClientMock()
	d := &deps{
		repo:      dashboardMock.NewMockRepository(ctrl),
		resolver:  accessMock.NewMockDepartmentResolver(ctrl),
		redisMock: redisMock,
	}
	d.service = dashboard.NewService(d.repo, d.resolver, rdb, func() time.Time { return today })
	return d
}

func expectBuild(d *deps, scope dashboard.Scope) {
	d.repo.EXPECT().CountEmployeesByStatus(gomock.Any(), scope).Return([]dashboard.StatusCount{
		{Status: "REGULAR", Count: 8},
		{Status: "PROBATIONARY", Count: 2},
		{Status: "RESIGNED", Count: 3},
	}, nil)
	d.repo.EXPECT().CountEmployeesByDepartment(gomock.Any(), scope).Return([]dashboard.DepartmentCount{
		{DepartmentID: "d1", Name: "Finance", Count: 10},
	}, nil)
	d.repo.EXPECT().CountAttendanceByStatus(gomock.Any(), scope, today).Return(map[string]int64{
		"PRESENT": 5,
		"LATE":    2,
		"ABSENT":  1,
	}, nil)
	d.repo.EXPECT().CountOnLeave(gomock.Any(), scope, today).Return(int64(1), nil)
	d.repo.EXPECT().CountPendingLeaves(gomock.Any(), scope).Return(int64(4), nil)
	d.repo.EXPECT().CountEvaluated(gomock.Any(), scope,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	).Return(int64(6), nil)
	d.repo.EXPECT().RecentLeaves(gomock.Any(), scope, 5).Return([]dashboard.RecentLeave{{ID: "l1"}}, nil)
}

func TestDashboardService_Get_Admin(t *testing.T) {
	ctx := context.Background()
	d := setup(t)
	actor := access.Actor{UserID: uuid.New().String(), CompanyID: uuid.New().String(), Role: access.RoleAdmin}
	key := dashboard.GetDashboardKey(actor)

	d.redisMock.ExpectGet(key).RedisNil()
	expectBuild(d, dashboard.Scope{CompanyID: actor.CompanyID})
	d.redisMock.Regexp().ExpectSet(key, `.*`, dashboard.CacheTTL).SetVal("OK")

	resp, err := d.service.Get(ctx, actor)

	require.NoError(t, err)
	assert.Equal(t, dashboard.ScopeCompany, resp.Scope)
	assert.Equal(t, int64(10), resp.TotalEmployees)
	assert.Equal(t, int64(5), resp.AttendanceToday.Present)
	assert.Equal(t, int64(1), resp.AttendanceToday.OnLeave)
	assert.Equal(t, int64(1), resp.AttendanceToday.NotRecorded)
	assert.Equal(t, "2026-03-04", resp.AttendanceToday.Date)
	assert.Equal(t, int64(4), resp.PendingLeaves)
	assert.Equal(t, dashboard.EvaluationProgress{PeriodKey: "2026", Done: 6, Total: 10}, resp.EvaluationProgress)
	assert.Len(t, resp.RecentLeaves, 1)
	assert.NoError(t, d.redisMock.ExpectationsWereMet())
}

func TestDashboardService_Get_SupervisorScoped(t *testing.T) {
	ctx := context.Background()
	d := setup(t)
	actor := access.Actor{UserID: uuid.New().String(), CompanyID: uuid.New().String(), Role: access.RoleSupervisor}
	key := dashboard.GetDashboardKey(actor)
	assert.Contains(t, key, actor.UserID)

	d.redisMock.ExpectGet(key).RedisNil()
	d.resolver.EXPECT().SupervisedDepartmentIDs(gomock.Any(), actor.CompanyID, actor.UserID).Return([]string{"d1"}, nil)
	expectBuild(d, dashboard.Scope{CompanyID: actor.CompanyID, DepartmentIDs: []string{"d1"}})
	d.redisMock.Regexp().ExpectSet(key, `.*`, dashboard.CacheTTL).SetVal("OK")

	resp, err := d.service.Get(ctx, actor)

	require.NoError(t, err)
	assert.Equal(t, dashboard.ScopeDepartments, resp.Scope)
	assert.Equal(t, []string{"d1"}, resp.DepartmentIDs)
}

func TestDashboardService_Get_CacheHit(t *testing.T) {
	ctx := context.Background()
	d := setup(t)
	actor := access.Actor{UserID: uuid.New().String(), CompanyID: uuid.New().String(), Role: access.RoleHR}

	cached, err := json.Marshal(dashboard.DashboardResponse{Scope: dashboard.ScopeCompany, TotalEmployees: 42})
	require.NoError(t, err)
	d.redisMock.ExpectGet(dashboard.GetDashboardKey(actor)).SetVal(string(cached))

	resp, err := d.service.Get(ctx, actor)

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.TotalEmployees)
}

func TestDashboardService_Get_RepoError(t *testing.T) {
	ctx := context.Background()
	d := setup(t)
	actor := access.Actor{UserID: uuid.New().String(), CompanyID: uuid.New().String(), Role: access.RoleAdmin}
	boom := errors.New("db down")

	d.redisMock.ExpectGet(dashboard.GetDashboardKey(actor)).RedisNil()
	d.repo.EXPECT().CountEmployeesByStatus(gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := d.service.Get(ctx, actor)

	assert.ErrorIs(t, err, boom)
}
