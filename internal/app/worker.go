package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hris-portal/internal/messaging/kafka"
	"hris-portal/internal/messaging/kafka/producer"
	"hris-portal/internal/shared/config"
	"hris-portal/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to kafka until SIGINT/SIGTERM.
func RunWorker(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DatabaseURL, connectRetries, log)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBrokers, connectRetries, log)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	relay := producer.NewRelay(kafka.NewOutboxRepository(sqlDB), kafkaWriter, producer.RelayConfig{
		PollInterval: 3 * time.Second,
		Retention:    cfg.OutboxRetention,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		relay.Run(ctx)
	}()

	<-ctx.Done()
	log.Info("worker shutting down")
	<-done

	return nil
}
