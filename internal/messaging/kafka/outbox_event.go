package kafka

import (
	"context"
	"encoding/json"

	"hris-portal/internal/shared/contextutil"

	"github.com/google/uuid"
)

// NewOutboxEvent marshals payload into a pending event tagged with the request id from ctx.
func NewOutboxEvent(
	ctx context.Context,
	aggregateType, aggregateID string,
	topic, eventType string,
	payload any,
) (OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, err
	}

	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       data,
		Status:        OutboxStatusPending,
	}, nil
}
