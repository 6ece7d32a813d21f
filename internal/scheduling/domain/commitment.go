package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommitmentStatus is the lifecycle state of a booked meeting.
type CommitmentStatus string

const (
	StatusScheduled CommitmentStatus = "scheduled"
	StatusCompleted CommitmentStatus = "completed"
	StatusCancelled CommitmentStatus = "cancelled"
	StatusNoShow    CommitmentStatus = "no-show"
)

// Commitment is a meeting that already occupies time on the calendar. The
// engine only reads commitments and appends newly accepted ones within a
// single run; persistence belongs to the caller.
type Commitment struct {
	ID       uuid.UUID
	Start    time.Time
	End      time.Time     // zero when unknown
	Duration time.Duration // zero when unknown
	Status   CommitmentStatus
	Outcome  string
}

// Interval returns the occupied half-open interval [start, end). When the
// commitment has no explicit end, the duration is used; when that is missing
// too, defaultLength applies.
func (c Commitment) Interval(defaultLength time.Duration) (time.Time, time.Time) {
	if !c.End.IsZero() {
		return c.Start, c.End
	}
	if c.Duration > 0 {
		return c.Start, c.Start.Add(c.Duration)
	}
	return c.Start, c.Start.Add(defaultLength)
}

// Blocks reports whether the commitment still occupies calendar time.
// Cancelled meetings free their slot.
func (c Commitment) Blocks() bool {
	return c.Status != StatusCancelled
}

// Succeeded reports whether the meeting ran to completion.
func (c Commitment) Succeeded() bool {
	return c.Status == StatusCompleted
}
