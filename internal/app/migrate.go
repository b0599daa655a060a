package app

import (
	"context"
	"database/sql"
	"errors"

	"hris-portal/internal/company"
	"hris-portal/internal/rbac"
	"hris-portal/internal/rbac/infra"
	"hris-portal/internal/shared/access"
	"hris-portal/internal/shared/config"
	"hris-portal/internal/shared/connection"
	"hris-portal/internal/user"
	"hris-portal/migrations"

	"github.com/gin-gonic/gin/binding"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const migrationTable = "schema_migrations"

// RunMigrations runs a goose command ("up", "down", "status", ...) against
// the embedded migrations.
func RunMigrations(ctx context.Context, cfg config.Config, command string, args ...string) error {
	db, err := goose.OpenDBWithDriver("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	return runGoose(ctx, db, command, args...)
}

func runGoose(ctx context.Context, db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrationTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.RunContext(ctx, command, db, ".", args...)
}

type SeedOptions struct {
	CompanyName   string
	CompanyEmail  string
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

type SeedResult struct {
	CompanyID string
	AdminID   string
}

// Seeder creates a tenant with its default roles and a first administrator.
type Seeder struct {
	companies company.Service
	roles     rbac.Service
	users     user.Service
	logger    *zap.Logger
}

func NewSeeder(companies company.Service, roles rbac.Service, users user.Service, logger *zap.Logger) *Seeder {
	return &Seeder{companies: companies, roles: roles, users: users, logger: logger.Named("app.seed")}
}

func (s *Seeder) Seed(ctx context.Context, opts SeedOptions) (SeedResult, error) {
	if opts.CompanyName == "" {
		return SeedResult{}, errors.New("company name is required")
	}
	admin := user.CreateUserRequest{
		Name:     opts.AdminName,
		Email:    opts.AdminEmail,
		Password: opts.AdminPassword,
		Role:     access.RoleAdmin,
	}
	// same rules the API enforces on POST /users
	if err := binding.Validator.ValidateStruct(admin); err != nil {
		return SeedResult{}, err
	}

	comp, err := s.companies.Create(ctx, company.CreateCompanyRequest{Name: opts.CompanyName, Email: opts.CompanyEmail})
	if err != nil {
		return SeedResult{}, err
	}
	if err := s.roles.EnsureDefaultRoles(ctx, comp.ID); err != nil {
		return SeedResult{}, err
	}
	created, err := s.users.Create(ctx, comp.ID, admin)
	if err != nil {
		return SeedResult{}, err
	}

	s.logger.Info("tenant seeded",
		zap.String("company_id", comp.ID),
		zap.String("admin_id", created.ID),
		zap.String("admin_email", created.Email),
	)
	return SeedResult{CompanyID: comp.ID, AdminID: created.ID}, nil
}

// RunSeed seeds one tenant inside a single transaction.
func RunSeed(ctx context.Context, cfg config.Config, opts SeedOptions, logger *zap.Logger) (SeedResult, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DatabaseURL, connectRetries, logger)
	if err != nil {
		return SeedResult{}, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return SeedResult{}, err
	}
	defer sqlDB.Close()

	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return SeedResult{}, err
	}

	var result SeedResult
	err = gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rbacService := rbac.NewService(rbac.NewRepository(tx), enforcer, logger)
		seeder := NewSeeder(
			company.NewService(company.NewRepository(tx), logger),
			rbacService,
			user.NewService(user.NewRepository(tx), rbacService, logger),
			logger,
		)
		var err error
		result, err = seeder.Seed(ctx, opts)
		return err
	})
	return result, err
}
