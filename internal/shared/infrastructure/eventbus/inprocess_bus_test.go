package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/slotwise/internal/shared/domain"
)

type stubEvent struct {
	domain.BaseEvent
	Detail string `json:"detail"`
}

func TestInProcessBus_DispatchesByRoutingKey(t *testing.T) {
	bus := NewInProcessBus(nil)

	var received []EventEnvelope
	bus.Subscribe("scheduling.slot.committed", func(_ context.Context, envelope EventEnvelope) error {
		received = append(received, envelope)
		return nil
	})

	var all int
	bus.Subscribe(RoutingKeyAll, func(_ context.Context, _ EventEnvelope) error {
		all++
		return nil
	})

	event := stubEvent{
		BaseEvent: domain.NewBaseEvent(uuid.New(), "scheduling_run", "scheduling.slot.committed"),
		Detail:    "hello",
	}
	other := stubEvent{
		BaseEvent: domain.NewBaseEvent(uuid.New(), "scheduling_run", "scheduling.batch.completed"),
	}

	err := PublishDomainEvents(context.Background(), bus, []domain.DomainEvent{event, other}, nil)
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, event.EventID(), received[0].EventID)
	assert.Equal(t, "scheduling_run", received[0].AggregateType)
	assert.JSONEq(t, `{"detail":"hello"}`, string(received[0].Payload))
	assert.Equal(t, 2, all)
}

func TestInProcessBus_HandlerErrorDoesNotFailPublish(t *testing.T) {
	bus := NewInProcessBus(nil)
	bus.Subscribe(RoutingKeyAll, func(_ context.Context, _ EventEnvelope) error {
		return errors.New("boom")
	})

	event := stubEvent{
		BaseEvent: domain.NewBaseEvent(uuid.New(), "scheduling_run", "scheduling.slot.committed"),
	}
	assert.NoError(t, PublishDomainEvents(context.Background(), bus, []domain.DomainEvent{event}, nil))
}

func TestPublishDomainEvents_NilPublisher(t *testing.T) {
	assert.NoError(t, PublishDomainEvents(context.Background(), nil, nil, nil))
}

func TestNoopPublisher_DropsEvents(t *testing.T) {
	publisher := NewNoopPublisher(nil)
	defer func() { _ = publisher.Close() }()

	event := stubEvent{
		BaseEvent: domain.NewBaseEvent(uuid.New(), "scheduling_run", "scheduling.slot.committed"),
	}
	assert.NoError(t, PublishDomainEvents(context.Background(), publisher, []domain.DomainEvent{event}, nil))
}
