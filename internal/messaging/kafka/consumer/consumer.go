package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"hris-portal/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader used by Run.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// EventHandler handles one decoded event. Returning ErrPermanent commits the
// message anyway; any other error leaves it uncommitted for redelivery.
type EventHandler interface {
	HandleEvent(ctx context.Context, eventType string, payload []byte) error
}

var ErrPermanent = errors.New("permanent event failure")

// Run fetches until ctx is cancelled.
func Run(ctx context.Context, reader MessageReader, handler EventHandler, logger *zap.Logger) {
	log := logger.Named("kafka.consumer")
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		HandleMessage(ctx, reader, handler, msg, log)
	}
}

func HandleMessage(ctx context.Context, reader MessageReader, handler EventHandler, msg kafkago.Message, log *zap.Logger) {
	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil || env.EventType == "" {
		log.Error("undecodable event, skipping",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		commit(ctx, reader, msg, log)
		return
	}

	if err := handler.HandleEvent(ctx, env.EventType, msg.Value); err != nil {
		if errors.Is(err, ErrPermanent) {
			log.Warn("event dropped",
				zap.String("event_type", env.EventType),
				zap.String("company_id", env.CompanyID),
				zap.Error(err),
			)
			commit(ctx, reader, msg, log)
			return
		}
		log.Error("handle event failed",
			zap.String("event_type", env.EventType),
			zap.String("company_id", env.CompanyID),
			zap.Error(err),
		)
		return
	}

	commit(ctx, reader, msg, log)
	log.Debug("event handled", zap.String("event_type", env.EventType), zap.String("topic", msg.Topic))
}

func commit(ctx context.Context, reader MessageReader, msg kafkago.Message, log *zap.Logger) {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit message failed", zap.String("topic", msg.Topic), zap.Error(err))
	}
}
