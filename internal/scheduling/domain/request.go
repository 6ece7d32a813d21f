package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange = errors.New("date range start must not be after end")
	ErrInvalidDuration  = errors.New("meeting duration must be positive")
	ErrEmptyBatch       = errors.New("at least one scheduling request is required")
)

// SchedulingRequest is one pending meeting to place.
type SchedulingRequest struct {
	ID           uuid.UUID
	Duration     time.Duration
	Participants []Participant
	RangeStart   time.Time
	RangeEnd     time.Time
	Priority     int
	MeetingType  string
}

// Validate checks the request's date range and duration.
func (r SchedulingRequest) Validate() error {
	if r.Duration <= 0 {
		return ErrInvalidDuration
	}
	if r.RangeStart.IsZero() || r.RangeEnd.IsZero() || r.RangeStart.After(r.RangeEnd) {
		return ErrInvalidDateRange
	}
	return nil
}

// ScheduledMeeting is a request the engine committed automatically.
type ScheduledMeeting struct {
	Request       SchedulingRequest
	Slot          CandidateSlot
	Commitment    Commitment
	AutoScheduled bool
}

// DeferredRequest is a request left for manual slot selection, with up to
// three ranked suggestions.
type DeferredRequest struct {
	Request     SchedulingRequest
	Suggestions []CandidateSlot
}

// UnresolvedRequest is a request that could not be placed at all.
type UnresolvedRequest struct {
	Request SchedulingRequest
	Reason  string
}

// BatchResult is the outcome of one auto-scheduling run. Every input request
// appears in exactly one of the three lists.
type BatchResult struct {
	Scheduled  []ScheduledMeeting
	Deferred   []DeferredRequest
	Unresolved []UnresolvedRequest
}

// Size returns the total number of requests accounted for.
func (r BatchResult) Size() int {
	return len(r.Scheduled) + len(r.Deferred) + len(r.Unresolved)
}
