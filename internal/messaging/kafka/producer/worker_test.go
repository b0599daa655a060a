package producer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hris-portal/internal/messaging/kafka"
	kafkaMock "hris-portal/internal/messaging/kafka/mock"
	"hris-portal/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failTopic string
	written   []kafkago.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if m.Topic == w.failTopic {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestRelay_Flush(t *testing.T) {
	ctx := context.Background()
	cfg := producer.RelayConfig{BatchSize: 20, Lease: time.Minute}

	t.Run("publishes batch and records each outcome", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failTopic: "broken"}

		repo.EXPECT().ClaimBatch(ctx, 20, time.Minute).Return([]kafka.OutboxEvent{
			{ID: "1", Topic: "hr.leave.lifecycle.v1", EventType: "leave_decided", AggregateID: "l-1", Payload: []byte(`{}`)},
			{ID: "2", Topic: "broken", EventType: "leave_decided", AggregateID: "l-2", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "1").Return(nil)
		repo.EXPECT().MarkFailed(ctx, "2", "broker unavailable").Return(nil)

		sent, err := producer.NewRelay(repo, writer, cfg, zap.NewNop()).Flush(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Len(t, writer.written, 1)
		assert.Equal(t, "l-1", string(writer.written[0].Key))
		assert.Equal(t, "event_type", writer.written[0].Headers[0].Key)
	})

	t.Run("mark sent failure is not counted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ClaimBatch(ctx, 20, time.Minute).Return([]kafka.OutboxEvent{
			{ID: "1", Topic: "hr.employee.lifecycle.v1", AggregateID: "e-1", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "1").Return(errors.New("db down"))

		sent, err := producer.NewRelay(repo, &fakeWriter{}, cfg, zap.NewNop()).Flush(ctx)

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("nothing due", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ClaimBatch(ctx, 20, time.Minute).Return(nil, nil)

		sent, err := producer.NewRelay(repo, &fakeWriter{}, cfg, zap.NewNop()).Flush(ctx)

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("claim error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ClaimBatch(ctx, 20, time.Minute).Return(nil, errors.New("db down"))

		_, err := producer.NewRelay(repo, &fakeWriter{}, cfg, zap.NewNop()).Flush(ctx)
		assert.Error(t, err)
	})

	t.Run("defaults apply", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ClaimBatch(ctx, 50, 30*time.Second).Return(nil, nil)

		_, err := producer.NewRelay(repo, &fakeWriter{}, producer.RelayConfig{}, zap.NewNop()).Flush(ctx)
		assert.NoError(t, err)
	})
}

func TestRelay_Purge(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without retention", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		n, err := producer.NewRelay(repo, &fakeWriter{}, producer.RelayConfig{}, zap.NewNop()).Purge(ctx)

		assert.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("deletes rows older than retention", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		start := time.Now()
		repo.EXPECT().PurgeSent(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, before time.Time) (int64, error) {
			assert.WithinDuration(t, start.Add(-72*time.Hour), before, time.Minute)
			return 7, nil
		})

		relay := producer.NewRelay(repo, &fakeWriter{}, producer.RelayConfig{Retention: 72 * time.Hour}, zap.NewNop())
		n, err := relay.Purge(ctx)

		assert.NoError(t, err)
		assert.EqualValues(t, 7, n)
	})
}
