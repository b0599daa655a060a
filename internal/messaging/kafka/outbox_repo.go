package kafka

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	// dead rows exhausted their retries and are left for an operator
	OutboxStatusDead = "dead"

	MaxOutboxRetries = 10

	maxErrorLength = 500
)

// OutboxEvent is one domain event waiting to be relayed to a kafka topic.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	// ClaimBatch leases up to limit due events so concurrent relays skip them until lease expires.
	ClaimBatch(ctx context.Context, limit int, lease time.Duration) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	PurgeSent(ctx context.Context, before time.Time) (int64, error)
}

type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) conn() sqlExecutor {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const insertOutboxSQL = `
INSERT INTO outbox_events (id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)`

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}

	_, err := r.conn().ExecContext(ctx, insertOutboxSQL,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	if err != nil {
		return fmt.Errorf("insert outbox %s/%s: %w", event.AggregateType, event.EventType, err)
	}
	return nil
}

// Claiming pushes next_retry_at forward by the lease, so a relay that dies mid-batch
// only delays its rows instead of losing them.
const claimOutboxSQL = `
UPDATE outbox_events o
SET next_retry_at = NOW() + $4 * INTERVAL '1 millisecond',
	updated_at = NOW()
FROM (
	SELECT id
	FROM outbox_events
	WHERE status IN ($1, $2)
		AND retry_count < $3
		AND (next_retry_at IS NULL OR next_retry_at <= NOW())
	ORDER BY created_at
	LIMIT $5
	FOR UPDATE SKIP LOCKED
) due
WHERE o.id = due.id
RETURNING o.id::text, COALESCE(o.request_id, ''), o.aggregate_type, o.aggregate_id,
	o.event_type, o.topic, o.payload, o.status, o.retry_count, o.created_at`

func (r *outboxRepository) ClaimBatch(ctx context.Context, limit int, lease time.Duration) ([]OutboxEvent, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.conn().QueryContext(ctx, claimOutboxSQL,
		OutboxStatusPending, OutboxStatusFailed, MaxOutboxRetries, lease.Milliseconds(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("claim outbox batch: %w", err)
	}
	defer rows.Close()

	var batch []OutboxEvent
	for rows.Next() {
		var (
			e         OutboxEvent
			createdAt time.Time
		)
		err := rows.Scan(&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID,
			&e.EventType, &e.Topic, &e.Payload, &e.Status, &e.RetryCount, &createdAt)
		if err != nil {
			return nil, err
		}
		e.NextRetryAt = createdAt
		batch = append(batch, e)
	}

	return batch, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.conn().ExecContext(ctx, `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1`, id, OutboxStatusSent)
	return err
}

// MarkFailed schedules a linear backoff retry; the final allowed attempt parks the row as dead.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if len(reason) > maxErrorLength {
		reason = reason[:maxErrorLength]
	}

	_, err := r.conn().ExecContext(ctx, `
UPDATE outbox_events
SET retry_count = retry_count + 1,
	status = CASE WHEN retry_count + 1 >= $4 THEN $3 ELSE $2 END,
	error_message = $5,
	next_retry_at = NOW() + (retry_count + 1) * INTERVAL '15 seconds',
	updated_at = NOW()
WHERE id = $1`, id, OutboxStatusFailed, OutboxStatusDead, MaxOutboxRetries, reason)
	return err
}

// PurgeSent deletes relayed rows processed before the cutoff.
func (r *outboxRepository) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.conn().ExecContext(ctx,
		`DELETE FROM outbox_events WHERE status = $1 AND processed_at < $2`,
		OutboxStatusSent, before,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var (
	errOutboxIDRequired      = errors.New("outbox id is required")
	errOutboxTopicRequired   = errors.New("outbox topic is required")
	errOutboxPayloadRequired = errors.New("outbox payload is required")
)

func ValidateOutboxEvent(event OutboxEvent) error {
	switch {
	case event.ID == "":
		return errOutboxIDRequired
	case event.Topic == "":
		return errOutboxTopicRequired
	case len(event.Payload) == 0:
		return errOutboxPayloadRequired
	}

	if event.Status != OutboxStatusPending && event.Status != OutboxStatusFailed {
		return fmt.Errorf("outbox event must be created %s, got %q", OutboxStatusPending, event.Status)
	}
	return nil
}
