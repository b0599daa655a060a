package app

import (
	"context"
	"net/http"
	"time"

	"hris-portal/internal/middleware"
	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/config"
	"hris-portal/internal/shared/connection"
	"hris-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const connectRetries = 5

// BuildApp connects the infrastructure, installs the global middleware and
// registers every module on router. The returned cleanup closes connections.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (func(), error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DatabaseURL, connectRetries, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, connectRetries, logger)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("close redis", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.CORS(cfg.CORSOrigins),
	)

	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "ok", "redis": "ok"}
		code := http.StatusOK
		if err := sqlDB.PingContext(ctx); err != nil {
			status["database"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		if code != http.StatusOK {
			response.Error(c, code, apperror.CodeServiceUnavailable, "Dependency unavailable", status)
			return
		}
		response.Success(c, code, status, nil)
	})

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb, logger); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}
