package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"hris-portal/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	committed []kafkago.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	return kafkago.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

type handlerFunc func(ctx context.Context, eventType string, payload []byte) error

func (f handlerFunc) HandleEvent(ctx context.Context, eventType string, payload []byte) error {
	return f(ctx, eventType, payload)
}

func TestHandleMessage(t *testing.T) {
	ctx := context.Background()
	msg := kafkago.Message{Topic: "hr.leave.lifecycle.v1", Value: []byte(`{"event_type":"leave_decided","company_id":"c1"}`)}

	t.Run("success commits", func(t *testing.T) {
		reader := &fakeReader{}
		var got string
		h := handlerFunc(func(ctx context.Context, eventType string, payload []byte) error {
			got = eventType
			return nil
		})

		consumer.HandleMessage(ctx, reader, h, msg, zap.NewNop())

		assert.Equal(t, "leave_decided", got)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("transient error keeps message", func(t *testing.T) {
		reader := &fakeReader{}
		h := handlerFunc(func(ctx context.Context, eventType string, payload []byte) error {
			return errors.New("db down")
		})

		consumer.HandleMessage(ctx, reader, h, msg, zap.NewNop())

		assert.Empty(t, reader.committed)
	})

	t.Run("permanent error commits", func(t *testing.T) {
		reader := &fakeReader{}
		h := handlerFunc(func(ctx context.Context, eventType string, payload []byte) error {
			return fmt.Errorf("employee gone: %w", consumer.ErrPermanent)
		})

		consumer.HandleMessage(ctx, reader, h, msg, zap.NewNop())

		assert.Len(t, reader.committed, 1)
	})

	t.Run("garbage payload is skipped", func(t *testing.T) {
		reader := &fakeReader{}
		called := false
		h := handlerFunc(func(ctx context.Context, eventType string, payload []byte) error {
			called = true
			return nil
		})

		consumer.HandleMessage(ctx, reader, h, kafkago.Message{Value: []byte("not json")}, zap.NewNop())

		assert.False(t, called)
		assert.Len(t, reader.committed, 1)
	})
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		consumer.Run(ctx, &fakeReader{}, handlerFunc(func(context.Context, string, []byte) error { return nil }), zap.NewNop())
		close(done)
	}()
	<-done
}
