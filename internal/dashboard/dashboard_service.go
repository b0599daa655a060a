package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"hris-portal/internal/attendance"
	"hris-portal/internal/department"
	"hris-portal/internal/employee"
	"hris-portal/internal/evaluation"
	"hris-portal/internal/shared/access"
	"hris-portal/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DashboardKeyPrefix = "dashboard:"
	CacheTTL           = 60 * time.Second

	ScopeCompany     = "COMPANY"
	ScopeDepartments = "DEPARTMENTS"

	recentLeavesLimit = 5
)

// GetDashboardKey caches company-wide dashboards once per company and
// supervisor dashboards per user.
func GetDashboardKey(actor access.Actor) string {
	if actor.Restricted() {
		return DashboardKeyPrefix + actor.CompanyID + ":user:" + actor.UserID
	}
	return DashboardKeyPrefix + actor.CompanyID + ":all"
}

type Service interface {
	Get(ctx context.Context, actor access.Actor) (DashboardResponse, error)
}

type service struct {
	repo     Repository
	resolver access.DepartmentResolver
	rdb      *redis.Client
	sf       *singleflight.Group
	today    func() time.Time
	logger   *zap.Logger
}

// NewService builds the dashboard service; today returns the current work date.
func NewService(
	repo Repository,
	resolver access.DepartmentResolver,
	rdb *redis.Client,
	today func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	if today == nil {
		today = func() time.Time { return time.Now().UTC().Truncate(24 * time.Hour) }
	}
	return &service{
		repo:     repo,
		resolver: resolver,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		today:    today,
		logger:   l,
	}
}

// TodayFrom adapts an attendance schedule to the dashboard clock.
func TodayFrom(schedule attendance.Schedule) func() time.Time {
	return func() time.Time { return schedule.WorkDate(time.Now()) }
}

func (s *service) Get(ctx context.Context, actor access.Actor) (DashboardResponse, error) {
	cacheKey := GetDashboardKey(actor)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp DashboardResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		resp, err := s.build(ctx, actor)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, data, CacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return DashboardResponse{}, err
	}
	return v.(DashboardResponse), nil
}

func (s *service) build(ctx context.Context, actor access.Actor) (DashboardResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	vis, err := access.Resolve(ctx, s.resolver, actor)
	if err != nil {
		return DashboardResponse{}, err
	}
	scope := Scope{CompanyID: actor.CompanyID}
	resp := DashboardResponse{Scope: ScopeCompany}
	if !vis.All {
		scope.DepartmentIDs = append([]string{}, vis.DepartmentIDs...)
		resp.Scope = ScopeDepartments
		resp.DepartmentIDs = scope.DepartmentIDs
	}

	today := s.today()
	resp.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

	byStatus, err := s.repo.CountEmployeesByStatus(ctx, scope)
	if err != nil {
		log.Error("dashboard employee status counts failed", zap.Error(err))
		return DashboardResponse{}, err
	}
	resp.EmployeesByStatus = byStatus

	var active int64
	for _, sc := range byStatus {
		if employee.WorkStatus(sc.Status).Active() {
			active += sc.Count
		}
	}
	resp.TotalEmployees = active

	if resp.EmployeesByDept, err = s.repo.CountEmployeesByDepartment(ctx, scope); err != nil {
		return DashboardResponse{}, err
	}

	attendanceCounts, err := s.repo.CountAttendanceByStatus(ctx, scope, today)
	if err != nil {
		return DashboardResponse{}, err
	}
	onLeave, err := s.repo.CountOnLeave(ctx, scope, today)
	if err != nil {
		return DashboardResponse{}, err
	}
	at := AttendanceToday{
		Date:    today.Format(time.DateOnly),
		Present: attendanceCounts[attendance.StatusPresent],
		Late:    attendanceCounts[attendance.StatusLate],
		Absent:  attendanceCounts[attendance.StatusAbsent],
		OnLeave: onLeave,
	}
	if rest := active - at.Present - at.Late - at.Absent - at.OnLeave; rest > 0 {
		at.NotRecorded = rest
	}
	resp.AttendanceToday = at

	if resp.PendingLeaves, err = s.repo.CountPendingLeaves(ctx, scope); err != nil {
		return DashboardResponse{}, err
	}

	year := evaluation.PeriodFor(department.FrequencyAnnual, today)
	done, err := s.repo.CountEvaluated(ctx, scope, year.Start(), year.End())
	if err != nil {
		return DashboardResponse{}, err
	}
	resp.EvaluationProgress = EvaluationProgress{PeriodKey: year.Key(), Done: done, Total: active}

	if resp.RecentLeaves, err = s.repo.RecentLeaves(ctx, scope, recentLeavesLimit); err != nil {
		return DashboardResponse{}, err
	}

	log.Debug("dashboard built",
		zap.String("company_id", actor.CompanyID),
		zap.String("scope", resp.Scope),
		zap.Int64("total_employees", active),
	)
	return resp, nil
}
