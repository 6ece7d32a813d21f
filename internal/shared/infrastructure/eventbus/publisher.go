package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/slotwise/internal/shared/domain"
)

// Publisher defines the interface for publishing events to a message broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// EventEnvelope is the wire format for a published domain event. The
// payload holds the concrete event's own JSON fields.
type EventEnvelope struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	RoutingKey    string          `json:"routing_key"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// PublishDomainEvents wraps each event in an envelope and publishes it under
// its own routing key. The first failure stops the batch.
func PublishDomainEvents(ctx context.Context, publisher Publisher, events []domain.DomainEvent, logger *slog.Logger) error {
	if publisher == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", event.EventID(), err)
		}

		envelope := EventEnvelope{
			EventID:       event.EventID(),
			AggregateID:   event.AggregateID(),
			AggregateType: event.AggregateType(),
			RoutingKey:    event.RoutingKey(),
			OccurredAt:    event.OccurredAt(),
			Payload:       payload,
		}

		body, err := json.Marshal(envelope)
		if err != nil {
			return fmt.Errorf("failed to marshal envelope for event %s: %w", event.EventID(), err)
		}

		if err := publisher.Publish(ctx, event.RoutingKey(), body); err != nil {
			return fmt.Errorf("failed to publish event %s: %w", event.EventID(), err)
		}

		logger.Debug("domain event published",
			"event_id", event.EventID(),
			"routing_key", event.RoutingKey(),
		)
	}

	return nil
}
