package kafka_test

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"hris-portal/internal/messaging/kafka"
	"hris-portal/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "req-9")

	ev, err := kafka.NewOutboxEvent(ctx, "leave", "l-1", "hr.leave.lifecycle.v1", "leave_decided",
		map[string]string{"status": "APPROVED"})

	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "req-9", ev.RequestID)
	assert.Equal(t, kafka.OutboxStatusPending, ev.Status)
	assert.JSONEq(t, `{"status":"APPROVED"}`, string(ev.Payload))
	assert.NoError(t, kafka.ValidateOutboxEvent(ev))
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{ID: "1", Topic: "t", Payload: []byte("{}"), Status: kafka.OutboxStatusPending}
	assert.NoError(t, kafka.ValidateOutboxEvent(valid))

	noTopic := valid
	noTopic.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(noTopic))

	badStatus := valid
	badStatus.Status = "queued"
	assert.Error(t, kafka.ValidateOutboxEvent(badStatus))

	alreadySent := valid
	alreadySent.Status = kafka.OutboxStatusSent
	assert.Error(t, kafka.ValidateOutboxEvent(alreadySent))
}

func TestOutboxRepository_CreateInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs("id-1", "", "employee", "e-1", "employee_created", "topic", []byte(`{}`), kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	err = repo.Create(context.Background(), kafka.OutboxEvent{
		ID: "id-1", AggregateType: "employee", AggregateID: "e-1",
		EventType: "employee_created", Topic: "topic", Payload: []byte(`{}`), Status: kafka.OutboxStatusPending,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("id-1", kafka.OutboxStatusFailed, kafka.OutboxStatusDead, kafka.MaxOutboxRetries, "broker down").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "id-1", "broker down")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ClaimBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "created_at",
	}).AddRow("id-1", "req-1", "leave", "l-1", "leave_submitted", "hr.leave.lifecycle.v1", []byte(`{}`), kafka.OutboxStatusFailed, 2, created)

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, kafka.MaxOutboxRetries, int64(30000), 25).
		WillReturnRows(rows)

	batch, err := kafka.NewOutboxRepository(db).ClaimBatch(context.Background(), 25, 30*time.Second)

	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "leave_submitted", batch[0].EventType)
	assert.Equal(t, 2, batch[0].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ClaimBatchZeroLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	batch, err := kafka.NewOutboxRepository(db).ClaimBatch(context.Background(), 0, time.Second)

	assert.NoError(t, err)
	assert.Empty(t, batch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailedTruncatesReason(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	long := strings.Repeat("x", 600)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("id-1", kafka.OutboxStatusFailed, kafka.OutboxStatusDead, kafka.MaxOutboxRetries, long[:500]).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "id-1", long)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_PurgeSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM outbox_events")).
		WithArgs(kafka.OutboxStatusSent, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	n, err := kafka.NewOutboxRepository(db).PurgeSent(context.Background(), cutoff)

	require.NoError(t, err)
	assert.EqualValues(t, 12, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
