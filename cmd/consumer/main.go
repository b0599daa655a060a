package main

import (
	"hris-portal/internal/app"
	"hris-portal/internal/bootstrap"
	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/config"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := bootstrap.NewLogger(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()

	if err := app.RunConsumer(cfg, logger); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
