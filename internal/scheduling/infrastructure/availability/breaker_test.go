package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

type failingProbe struct {
	calls int
}

func (p *failingProbe) Available(_ context.Context, _ []domain.Participant, _, _ time.Time) ([]bool, error) {
	p.calls++
	return nil, errors.New("backend unreachable")
}

func TestBreakerProbe_TripsAfterConsecutiveFailures(t *testing.T) {
	inner := &failingProbe{}
	config := DefaultBreakerConfig("test")
	config.FailureThreshold = 3
	probe := NewBreakerProbe(inner, config, nil)

	participants := []domain.Participant{{ID: uuid.New(), Name: "Ada"}}
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := probe.Available(context.Background(), participants, start, start.Add(time.Hour))
		require.Error(t, err)
	}
	assert.Equal(t, 3, inner.calls)

	// The breaker is open now; the backend is no longer hit.
	_, err := probe.Available(context.Background(), participants, start, start.Add(time.Hour))
	require.Error(t, err)
	assert.Equal(t, 3, inner.calls, "open breaker must fail fast")
}

func TestBreakerProbe_PassesThroughSuccess(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	ada := domain.Participant{ID: uuid.New(), Name: "Ada"}

	inner := AlwaysAvailable()
	inner.MarkBusy(ada.ID, day.Add(10*time.Hour), day.Add(11*time.Hour))

	probe := NewBreakerProbe(inner, DefaultBreakerConfig("test"), nil)

	got, err := probe.Available(context.Background(), []domain.Participant{ada},
		day.Add(10*time.Hour), day.Add(11*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, got)
}
