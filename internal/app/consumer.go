package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hris-portal/internal/messaging/kafka/consumer"
	"hris-portal/internal/notification"
	"hris-portal/internal/shared/config"
	"hris-portal/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer turns domain events into notifications until SIGINT/SIGTERM.
func RunConsumer(cfg config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DatabaseURL, connectRetries, log)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(notificationRepo, notification.NewSMTPMailer(cfg.SMTP), log)
	handler := notification.NewEventHandler(notificationService, notificationRepo, log)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		GroupID:        cfg.KafkaGroupID,
		GroupTopics:    notification.Topics,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.Run(ctx, reader, handler, log)
	}()

	<-ctx.Done()
	log.Info("consumer shutting down")
	<-done

	return nil
}
