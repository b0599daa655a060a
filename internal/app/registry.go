package app

import (
	"database/sql"
	"fmt"

	"hris-portal/internal/attendance"
	"hris-portal/internal/auth"
	"hris-portal/internal/company"
	"hris-portal/internal/dashboard"
	"hris-portal/internal/department"
	"hris-portal/internal/document"
	"hris-portal/internal/employee"
	"hris-portal/internal/evaluation"
	"hris-portal/internal/leave"
	"hris-portal/internal/messaging/kafka"
	"hris-portal/internal/middleware"
	"hris-portal/internal/notification"
	"hris-portal/internal/portal"
	"hris-portal/internal/position"
	"hris-portal/internal/rbac"
	"hris-portal/internal/rbac/infra"
	"hris-portal/internal/shared/config"
	"hris-portal/internal/shared/counter"
	"hris-portal/internal/shared/storage"
	"hris-portal/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	weights := evaluation.Weights(cfg.EvaluationWeights)
	if err := weights.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	evaluationRepo := evaluation.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	positionRepo := position.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- Infrastructure ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	store, err := storage.NewLocal(cfg.StorageDir)
	if err != nil {
		return err
	}
	schedule, err := attendance.NewSchedule(cfg.Schedule)
	if err != nil {
		return err
	}

	// --- Services ---
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	authService := auth.NewService(authRepo, auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.JWTAccessTTL,
		RefreshTTL: cfg.JWTRefreshTTL,
	}, logger)
	companyService := company.NewService(companyRepo, logger)
	userService := user.NewService(userRepo, rbacService, logger)
	departmentService := department.NewService(db, departmentRepo, rdb, logger)
	positionService := position.NewService(db, positionRepo, rdb, logger)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb, departmentService, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeService, departmentService, schedule, logger)
	leaveService := leave.NewService(db, leaveRepo, employeeService, departmentService, outboxRepo, logger)
	evaluationService := evaluation.NewService(
		db,
		evaluationRepo,
		employeeService,
		departmentService,
		attendanceService,
		departmentService,
		outboxRepo,
		weights,
		logger,
	)
	dashboardService := dashboard.NewService(dashboardRepo, departmentService, rdb, dashboard.TodayFrom(schedule), logger)
	documentService := document.NewService(
		documentRepo,
		store,
		employeeService,
		leaveService,
		departmentService,
		cfg.MaxUploadMB,
		logger,
	)
	notificationService := notification.NewService(notificationRepo, notification.NewSMTPMailer(cfg.SMTP), logger)
	portalService := portal.NewService(
		employeeService,
		portal.NewSessionStore(rdb, cfg.PortalSessionTTL),
		cfg.PortalSessionTTL,
		logger,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.JWTAccessTTL,
		RefreshTTL: cfg.JWTRefreshTTL,
	}, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	companyHandler := company.NewHandler(companyService, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, logger)
	departmentHandler := department.NewHandler(departmentService, logger)
	documentHandler := document.NewHandler(documentService, cfg.MaxUploadMB, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	evaluationHandler := evaluation.NewHandler(evaluationService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	notificationHandler := notification.NewHandler(notificationService, notification.UserRecipient, logger)
	portalNotificationHandler := notification.NewHandler(notificationService, notification.EmployeeRecipient, logger)
	positionHandler := position.NewHandler(positionService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	userHandler := user.NewHandler(userService, logger)
	portalHandler := portal.NewHandler(
		portalService,
		employeeService,
		attendanceService,
		leaveService,
		evaluationService,
		portal.HandlerConfig{SessionTTL: cfg.PortalSessionTTL, SecureCookie: cfg.IsProduction()},
		logger,
	)

	// --- Routes Registration ---
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)
	idempotency := middleware.Idempotency(rdb)

	root := router.Group("/api/v1")
	auth.RegisterRoutes(root, authHandler, authMiddleware)
	portal.RegisterRoutes(root, portalHandler, portalService, portalNotificationHandler, documentHandler, idempotency)

	api := root.Group("")
	api.Use(authMiddleware, middleware.RateLimitByUser(10, 40))
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		company.RegisterRoutes(api, companyHandler, rbacService)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		document.RegisterRoutes(api, documentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		evaluation.RegisterRoutes(api, evaluationHandler, rbacService, idempotency)
		leave.RegisterRoutes(api, leaveHandler, rbacService, idempotency)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		position.RegisterRoutes(api, positionHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		user.RegisterRoutes(api, userHandler, rbacService)
	}

	return nil
}
