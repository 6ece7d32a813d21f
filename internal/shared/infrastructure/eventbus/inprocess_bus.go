package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// RoutingKeyAll subscribes a handler to every routing key.
const RoutingKeyAll = "#"

// HandlerFunc processes a delivered event envelope.
type HandlerFunc func(ctx context.Context, envelope EventEnvelope) error

// InProcessBus is an in-memory publisher for local mode (no RabbitMQ).
// Events are delivered synchronously to subscribed handlers.
type InProcessBus struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
}

// NewInProcessBus creates a new in-process bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		logger:   logger,
		handlers: make(map[string][]HandlerFunc),
	}
}

// Subscribe registers a handler for a routing key. Use RoutingKeyAll to
// receive every event.
func (b *InProcessBus) Subscribe(routingKey string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[routingKey] = append(b.handlers[routingKey], handler)
}

// Publish decodes the envelope and dispatches it synchronously. Handler
// errors are logged, not returned; local mode never fails a publish.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	var envelope EventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		b.logger.Error("failed to unmarshal event payload",
			"routing_key", routingKey,
			"error", err,
		)
		return nil
	}
	if envelope.RoutingKey == "" {
		envelope.RoutingKey = routingKey
	}

	b.mu.RLock()
	handlers := make([]HandlerFunc, 0, len(b.handlers[routingKey])+len(b.handlers[RoutingKeyAll]))
	handlers = append(handlers, b.handlers[routingKey]...)
	handlers = append(handlers, b.handlers[RoutingKeyAll]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, envelope); err != nil {
			b.logger.Error("event handler failed",
				"routing_key", routingKey,
				"event_id", envelope.EventID,
				"error", err,
			)
		}
	}

	b.logger.Debug("event dispatched",
		"routing_key", routingKey,
		"event_id", envelope.EventID,
		"handlers", len(handlers),
	)

	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error {
	return nil
}
