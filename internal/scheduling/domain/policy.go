package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidWorkingHours = errors.New("work start must be before work end")
	ErrInvalidBreakWindow  = errors.New("break window must lie within working hours")
	ErrInvalidBuffer       = errors.New("buffer minutes must not be negative")
	ErrInvalidDailyLimit   = errors.New("max meetings per day must be at least 1")
	ErrInvalidGranularity  = errors.New("slot granularity must be positive")
)

// WorkingPolicy describes the tenant's working-time rules for one scheduling
// run. Times of day are expressed as offsets from midnight, e.g. 9 * time.Hour
// for 09:00. The value is immutable for the duration of a run.
type WorkingPolicy struct {
	WorkStart  time.Duration
	WorkEnd    time.Duration
	BreakStart time.Duration
	BreakEnd   time.Duration

	BufferMinutes     int
	MaxMeetingsPerDay int

	PreferredDuration time.Duration
	SlotGranularity   time.Duration

	// DefaultCommitmentLength is assumed for commitments that carry neither
	// an end time nor a duration.
	DefaultCommitmentLength time.Duration
}

// DefaultWorkingPolicy returns the standard 9-to-5 policy with a one hour
// lunch break.
func DefaultWorkingPolicy() WorkingPolicy {
	return WorkingPolicy{
		WorkStart:               9 * time.Hour,
		WorkEnd:                 17 * time.Hour,
		BreakStart:              12 * time.Hour,
		BreakEnd:                13 * time.Hour,
		BufferMinutes:           15,
		MaxMeetingsPerDay:       6,
		PreferredDuration:       60 * time.Minute,
		SlotGranularity:         30 * time.Minute,
		DefaultCommitmentLength: 60 * time.Minute,
	}
}

// Validate checks the policy's internal consistency.
func (p WorkingPolicy) Validate() error {
	if p.WorkStart < 0 || p.WorkEnd > 24*time.Hour || p.WorkStart >= p.WorkEnd {
		return ErrInvalidWorkingHours
	}
	if p.BreakStart != 0 || p.BreakEnd != 0 {
		if p.BreakStart >= p.BreakEnd || p.BreakStart < p.WorkStart || p.BreakEnd > p.WorkEnd {
			return ErrInvalidBreakWindow
		}
	}
	if p.BufferMinutes < 0 {
		return ErrInvalidBuffer
	}
	if p.MaxMeetingsPerDay < 1 {
		return ErrInvalidDailyLimit
	}
	if p.SlotGranularity <= 0 {
		return ErrInvalidGranularity
	}
	return nil
}

// Buffer returns the buffer window as a duration.
func (p WorkingPolicy) Buffer() time.Duration {
	return time.Duration(p.BufferMinutes) * time.Minute
}

// HasBreak reports whether the policy defines a break window.
func (p WorkingPolicy) HasBreak() bool {
	return p.BreakEnd > p.BreakStart
}

// CommitmentLength returns the length assumed for commitments without an
// explicit end or duration.
func (p WorkingPolicy) CommitmentLength() time.Duration {
	if p.DefaultCommitmentLength > 0 {
		return p.DefaultCommitmentLength
	}
	return 60 * time.Minute
}
