package producer

import (
	"context"
	"time"

	"hris-portal/internal/messaging/kafka"

	"go.uber.org/zap"
)

type RelayConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// Lease hides claimed rows from other relays while a batch is in flight.
	Lease time.Duration
	// Retention is how long sent rows are kept; zero disables purging.
	Retention time.Duration
}

func (c RelayConfig) withDefaults() RelayConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = 3 * time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 50
	}
	if c.Lease <= 0 {
		c.Lease = 30 * time.Second
	}
	return c
}

// Relay moves outbox rows onto kafka topics.
type Relay struct {
	repo   kafka.OutboxRepository
	writer MessageWriter
	cfg    RelayConfig
	log    *zap.Logger
	now    func() time.Time
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, cfg RelayConfig, logger *zap.Logger) *Relay {
	return &Relay{
		repo:   repo,
		writer: writer,
		cfg:    cfg.withDefaults(),
		log:    logger.Named("kafka.relay"),
		now:    time.Now,
	}
}

// Run polls until ctx is cancelled. Purging piggybacks on the poll loop at most once per hour.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	r.log.Info("outbox relay started",
		zap.Duration("poll_interval", r.cfg.PollInterval),
		zap.Int("batch_size", r.cfg.BatchSize),
	)

	var lastPurge time.Time
	for {
		select {
		case <-ctx.Done():
			r.log.Info("outbox relay stopped")
			return
		case <-ticker.C:
		}

		if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
			r.log.Error("outbox flush failed", zap.Error(err))
		}

		if r.cfg.Retention > 0 && r.now().Sub(lastPurge) >= time.Hour {
			lastPurge = r.now()
			if _, err := r.Purge(ctx); err != nil && ctx.Err() == nil {
				r.log.Error("outbox purge failed", zap.Error(err))
			}
		}
	}
}

// Flush claims one batch and publishes it, returning the number of rows marked sent.
// A publish failure is recorded on its row and does not stop the rest of the batch.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	batch, err := r.repo.ClaimBatch(ctx, r.cfg.BatchSize, r.cfg.Lease)
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}

	sent := 0
	for _, ev := range batch {
		log := r.log.With(
			zap.String("outbox_id", ev.ID),
			zap.String("event_type", ev.EventType),
			zap.String("topic", ev.Topic),
		)

		if err := publishEvent(ctx, r.writer, ev); err != nil {
			log.Warn("publish failed, scheduling retry", zap.Int("attempt", ev.RetryCount+1), zap.Error(err))
			if ev.RetryCount+1 >= kafka.MaxOutboxRetries {
				log.Error("outbox event exhausted retries")
			}
			if err := r.repo.MarkFailed(ctx, ev.ID, err.Error()); err != nil {
				log.Error("record outbox failure", zap.Error(err))
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, ev.ID); err != nil {
			// the lease expires and the event is published again; consumers dedupe
			log.Error("record outbox delivery", zap.Error(err))
			continue
		}
		sent++
		log.Debug("outbox event relayed", zap.String("request_id", ev.RequestID))
	}

	r.log.Info("outbox batch relayed", zap.Int("claimed", len(batch)), zap.Int("sent", sent))
	return sent, nil
}

// Purge drops sent rows older than the retention window.
func (r *Relay) Purge(ctx context.Context) (int64, error) {
	if r.cfg.Retention <= 0 {
		return 0, nil
	}
	n, err := r.repo.PurgeSent(ctx, r.now().Add(-r.cfg.Retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.log.Info("purged relayed outbox rows", zap.Int64("rows", n))
	}
	return n, nil
}
