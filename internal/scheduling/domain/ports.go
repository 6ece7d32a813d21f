package domain

import (
	"context"
	"time"
)

// AvailabilityProbe answers, for one candidate interval, which of the given
// participants are free. Implementations must be deterministic for a fixed
// calendar state; the engine never simulates availability with randomness.
type AvailabilityProbe interface {
	Available(ctx context.Context, participants []Participant, start, end time.Time) ([]bool, error)
}

// CommitmentSource provides read access to existing bookings. The engine
// holds no process-wide booking state of its own; callers pass a source into
// each call and own persistence and concurrency control for it.
type CommitmentSource interface {
	Commitments(ctx context.Context, from, to time.Time) ([]Commitment, error)
}

// CommitmentStore extends the source with append access, used by callers
// that want the engine's accepted bookings reflected back into their store.
type CommitmentStore interface {
	CommitmentSource
	Append(ctx context.Context, commitment Commitment) error
}
