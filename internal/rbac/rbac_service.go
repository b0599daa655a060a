package rbac

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"hris-portal/internal/domain"
	rbacerrors "hris-portal/internal/rbac/errors"
	"hris-portal/internal/shared/contextutil"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PolicyTTL bounds how long another instance's role changes can go unseen.
const PolicyTTL = time.Minute

var roleNamePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,49}$`)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(ctx context.Context, companyID string) error
	Invalidate(companyID string)
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
	PermissionsFor(ctx context.Context, companyID, userID string) ([]string, error)

	EnsureDefaultRoles(ctx context.Context, companyID string) error
	RoleExists(ctx context.Context, companyID, name string) (bool, error)

	ListRoles(ctx context.Context, companyID string) ([]domain.RoleResponse, error)
	GetRole(ctx context.Context, companyID, id string) (domain.RoleResponse, error)
	CreateRole(ctx context.Context, companyID string, req domain.CreateRoleRequest) (domain.RoleResponse, error)
	UpdateRole(ctx context.Context, companyID, id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error)
	DeleteRole(ctx context.Context, companyID, id string) error
	ListPermissions(ctx context.Context) ([]domain.PermissionResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	loaded   map[string]time.Time
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		loaded:   make(map[string]time.Time),
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) LoadCompanyPolicy(ctx context.Context, companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCompanyPolicyUnlocked(ctx, companyID)
}

// loadCompanyPolicyUnlocked replaces only the rules of one company domain.
func (s *service) loadCompanyPolicyUnlocked(ctx context.Context, companyID string) error {
	userRoles, err := s.repo.GetUserRoles(ctx, companyID)
	if err != nil {
		return err
	}
	rolePerms, err := s.repo.GetRolePermissions(ctx, companyID)
	if err != nil {
		return err
	}

	if _, err := s.enforcer.RemoveFilteredGroupingPolicy(2, companyID); err != nil {
		return err
	}
	if _, err := s.enforcer.RemoveFilteredPolicy(1, companyID); err != nil {
		return err
	}

	for _, ur := range userRoles {
		if _, err := s.enforcer.AddGroupingPolicy(ur.UserID, ur.Role, companyID); err != nil {
			return err
		}
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.Role, companyID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.loaded[companyID] = s.now()
	contextutil.GetLogger(ctx, s.logger).Debug("rbac policy loaded",
		zap.String("company_id", companyID),
		zap.Int("user_roles", len(userRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

func (s *service) Invalidate(companyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.loaded, companyID)
}

func (s *service) ensureLoadedUnlocked(ctx context.Context, companyID string) error {
	if at, ok := s.loaded[companyID]; ok && s.now().Sub(at) < PolicyTTL {
		return nil
	}
	return s.loadCompanyPolicyUnlocked(ctx, companyID)
}

func (s *service) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedUnlocked(ctx, req.CompanyID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.UserID, req.CompanyID, req.Resource, req.Action)
	if err != nil {
		return false, err
	}

	if !allowed {
		contextutil.GetLogger(ctx, s.logger).Info("rbac denied",
			zap.String("user_id", req.UserID),
			zap.String("company_id", req.CompanyID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
		)
	}
	return allowed, nil
}

func (s *service) PermissionsFor(ctx context.Context, companyID, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedUnlocked(ctx, companyID); err != nil {
		return nil, err
	}
	perms, err := s.enforcer.GetImplicitPermissionsForUser(userID, companyID)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(perms))
	for _, p := range perms {
		// p = [role, domain, resource, action]
		if len(p) == 4 {
			out = append(out, p[2]+":"+p[3])
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func (s *service) EnsureDefaultRoles(ctx context.Context, companyID string) error {
	if err := s.repo.EnsurePermissions(ctx, Catalog); err != nil {
		return err
	}
	company, err := uuid.Parse(companyID)
	if err != nil {
		return err
	}

	for name, def := range DefaultRoles {
		_, err := s.repo.GetRoleByName(ctx, companyID, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		permIDs, err := s.resolvePermissions(ctx, def.Permissions)
		if err != nil {
			return err
		}
		role := &Role{
			ID:          uuid.New(),
			CompanyID:   company,
			Name:        name,
			Description: def.Description,
			IsSystem:    true,
		}
		if err := s.repo.CreateRole(ctx, role); err != nil {
			return mapRepositoryError(err)
		}
		if err := s.repo.ReplaceRolePermissions(ctx, role.ID.String(), permIDs); err != nil {
			return err
		}
		contextutil.GetLogger(ctx, s.logger).Info("default role created",
			zap.String("company_id", companyID),
			zap.String("role", name),
		)
	}

	s.Invalidate(companyID)
	return nil
}

func (s *service) RoleExists(ctx context.Context, companyID, name string) (bool, error) {
	_, err := s.repo.GetRoleByName(ctx, companyID, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *service) ListRoles(ctx context.Context, companyID string) ([]domain.RoleResponse, error) {
	roles, err := s.repo.ListRoles(ctx, companyID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RoleResponse, 0, len(roles))
	for i := range roles {
		resp, err := s.toResponse(ctx, &roles[i])
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *service) GetRole(ctx context.Context, companyID, id string) (domain.RoleResponse, error) {
	role, err := s.findRole(ctx, companyID, id)
	if err != nil {
		return domain.RoleResponse{}, err
	}
	return s.toResponse(ctx, role)
}

func (s *service) CreateRole(ctx context.Context, companyID string, req domain.CreateRoleRequest) (domain.RoleResponse, error) {
	name := strings.ToUpper(strings.TrimSpace(req.Name))
	if !roleNamePattern.MatchString(name) {
		return domain.RoleResponse{}, rbacerrors.ErrInvalidRoleName
	}
	if _, ok := DefaultRoles[name]; ok {
		return domain.RoleResponse{}, rbacerrors.ErrRoleExists
	}
	company, err := uuid.Parse(companyID)
	if err != nil {
		return domain.RoleResponse{}, err
	}

	permIDs, err := s.resolvePermissions(ctx, req.Permissions)
	if err != nil {
		return domain.RoleResponse{}, err
	}

	role := &Role{
		ID:          uuid.New(),
		CompanyID:   company,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return domain.RoleResponse{}, mapRepositoryError(err)
	}
	if err := s.repo.ReplaceRolePermissions(ctx, role.ID.String(), permIDs); err != nil {
		return domain.RoleResponse{}, err
	}

	s.Invalidate(companyID)
	contextutil.GetLogger(ctx, s.logger).Info("role created", zap.String("role", name))
	return s.toResponse(ctx, role)
}

func (s *service) UpdateRole(ctx context.Context, companyID, id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error) {
	role, err := s.findRole(ctx, companyID, id)
	if err != nil {
		return domain.RoleResponse{}, err
	}

	if req.Description != nil {
		role.Description = strings.TrimSpace(*req.Description)
		if err := s.repo.UpdateRole(ctx, role); err != nil {
			return domain.RoleResponse{}, mapRepositoryError(err)
		}
	}
	if req.Permissions != nil {
		permIDs, err := s.resolvePermissions(ctx, req.Permissions)
		if err != nil {
			return domain.RoleResponse{}, err
		}
		if err := s.repo.ReplaceRolePermissions(ctx, role.ID.String(), permIDs); err != nil {
			return domain.RoleResponse{}, err
		}
	}

	s.Invalidate(companyID)
	contextutil.GetLogger(ctx, s.logger).Info("role updated", zap.String("role", role.Name))
	return s.toResponse(ctx, role)
}

func (s *service) DeleteRole(ctx context.Context, companyID, id string) error {
	role, err := s.findRole(ctx, companyID, id)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return rbacerrors.ErrSystemRole
	}

	n, err := s.repo.CountUsersWithRole(ctx, companyID, role.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		return rbacerrors.ErrRoleInUse
	}

	if err := s.repo.DeleteRole(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	s.Invalidate(companyID)
	contextutil.GetLogger(ctx, s.logger).Info("role deleted", zap.String("role", role.Name))
	return nil
}

func (s *service) ListPermissions(ctx context.Context) ([]domain.PermissionResponse, error) {
	perms, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PermissionResponse, len(perms))
	for i, p := range perms {
		out[i] = domain.PermissionResponse{
			ID:       p.ID.String(),
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		}
	}
	return out, nil
}

func (s *service) findRole(ctx context.Context, companyID, id string) (*Role, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, rbacerrors.ErrInvalidRoleID
	}
	role, err := s.repo.GetRoleByID(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return role, nil
}

func (s *service) resolvePermissions(ctx context.Context, wanted []string) ([]uuid.UUID, error) {
	all, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]uuid.UUID, len(all))
	for _, p := range all {
		byKey[p.Key()] = p.ID
	}

	ids := make([]uuid.UUID, 0, len(wanted))
	seen := make(map[string]bool, len(wanted))
	for _, k := range wanted {
		k = strings.ToLower(strings.TrimSpace(k))
		if seen[k] {
			continue
		}
		id, ok := byKey[k]
		if !ok {
			return nil, rbacerrors.ErrUnknownPermission.WithDetails(map[string]string{"permission": k})
		}
		seen[k] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *service) toResponse(ctx context.Context, role *Role) (domain.RoleResponse, error) {
	perms, err := s.repo.GetPermissionsByRoleID(ctx, role.ID.String())
	if err != nil {
		return domain.RoleResponse{}, err
	}
	return domain.RoleResponse{
		ID:          role.ID.String(),
		Name:        role.Name,
		Description: role.Description,
		System:      role.IsSystem,
		Permissions: keys(perms),
	}, nil
}
