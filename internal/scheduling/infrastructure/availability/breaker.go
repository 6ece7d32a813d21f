package availability

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// BreakerConfig configures the circuit breaker around a remote probe.
type BreakerConfig struct {
	// Name identifies the breaker in logs.
	Name string

	// MaxRequests is the maximum number of requests allowed in half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state.
	Interval time.Duration

	// Timeout is the period of the open state.
	Timeout time.Duration

	// FailureThreshold trips the breaker after this many consecutive
	// failures.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns a sensible default configuration.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         10 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerProbe shields a remote availability probe with a circuit breaker.
// While the breaker is open, calls fail fast instead of stacking timeouts
// on a broken calendar backend; the engine's degrade-to-free handling takes
// over from there.
type BreakerProbe struct {
	inner   domain.AvailabilityProbe
	breaker *gobreaker.CircuitBreaker[[]bool]
	logger  *slog.Logger
}

// NewBreakerProbe wraps the probe with a circuit breaker.
func NewBreakerProbe(inner domain.AvailabilityProbe, config BreakerConfig, logger *slog.Logger) *BreakerProbe {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"probe", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerProbe{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[[]bool](settings),
		logger:  logger,
	}
}

// Available delegates to the wrapped probe through the breaker.
func (p *BreakerProbe) Available(ctx context.Context, participants []domain.Participant, start, end time.Time) ([]bool, error) {
	return p.breaker.Execute(func() ([]bool, error) {
		return p.inner.Available(ctx, participants, start, end)
	})
}
