package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// BusyInterval is a half-open [Start, End) window during which a
// participant is unavailable.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// StaticProbe answers availability from a fixed per-participant busy map.
// It backs local mode and tests; participants without an entry are always
// free.
type StaticProbe struct {
	busy map[uuid.UUID][]BusyInterval
}

// NewStaticProbe creates a probe over the given busy map.
func NewStaticProbe(busy map[uuid.UUID][]BusyInterval) *StaticProbe {
	if busy == nil {
		busy = make(map[uuid.UUID][]BusyInterval)
	}
	return &StaticProbe{busy: busy}
}

// AlwaysAvailable creates a probe with no busy intervals at all.
func AlwaysAvailable() *StaticProbe {
	return NewStaticProbe(nil)
}

// MarkBusy records a busy interval for a participant.
func (p *StaticProbe) MarkBusy(participantID uuid.UUID, start, end time.Time) {
	p.busy[participantID] = append(p.busy[participantID], BusyInterval{Start: start, End: end})
}

// Available reports, index-aligned with participants, who is free for the
// whole [start, end) interval.
func (p *StaticProbe) Available(_ context.Context, participants []domain.Participant, start, end time.Time) ([]bool, error) {
	result := make([]bool, len(participants))
	for i, participant := range participants {
		result[i] = true
		for _, interval := range p.busy[participant.ID] {
			if domain.Overlaps(start, end, interval.Start, interval.End) {
				result[i] = false
				break
			}
		}
	}
	return result, nil
}
