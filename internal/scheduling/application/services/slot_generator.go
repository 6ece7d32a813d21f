package services

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

var ErrRangeTooLarge = errors.New("date range exceeds the enumeration limit")

// SlotGeneratorConfig bounds slot enumeration.
type SlotGeneratorConfig struct {
	// MaxRangeDays caps the number of calendar days a single request may
	// span. Enumeration is O(days x slots-per-day), so unbounded ranges are
	// rejected rather than ground through.
	MaxRangeDays int
}

// DefaultSlotGeneratorConfig returns the production limits.
func DefaultSlotGeneratorConfig() SlotGeneratorConfig {
	return SlotGeneratorConfig{MaxRangeDays: 92}
}

// SlotGenerator enumerates candidate slots that satisfy working-hours and
// break constraints and do not collide with existing commitments. It is a
// pure function of its inputs and the commitment snapshot taken at call
// time.
type SlotGenerator struct {
	config SlotGeneratorConfig
}

// NewSlotGenerator creates a slot generator.
func NewSlotGenerator(config SlotGeneratorConfig) *SlotGenerator {
	if config.MaxRangeDays <= 0 {
		config.MaxRangeDays = DefaultSlotGeneratorConfig().MaxRangeDays
	}
	return &SlotGenerator{config: config}
}

// Generate enumerates feasible slots for each working day in
// [rangeStart, rangeEnd]. Saturdays and Sundays are skipped. Start times
// advance at the policy's granularity from the start of the working day; a
// candidate is discarded when it would run past the end of the working day,
// intersect the break window, or overlap a booked commitment.
func (g *SlotGenerator) Generate(
	ctx context.Context,
	rangeStart, rangeEnd time.Time,
	duration time.Duration,
	policy domain.WorkingPolicy,
	commitments []domain.Commitment,
) ([]domain.CandidateSlot, error) {
	if duration <= 0 {
		return nil, domain.ErrInvalidDuration
	}
	if rangeStart.IsZero() || rangeEnd.IsZero() || rangeStart.After(rangeEnd) {
		return nil, domain.ErrInvalidDateRange
	}

	first := startOfDay(rangeStart)
	last := startOfDay(rangeEnd)
	if int(last.Sub(first).Hours()/24) >= g.config.MaxRangeDays {
		return nil, ErrRangeTooLarge
	}

	detector := domain.NewConflictDetector(policy.CommitmentLength())
	slots := make([]domain.CandidateSlot, 0)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if detector.CountOnDay(day, commitments) >= policy.MaxMeetingsPerDay {
			continue
		}

		for offset := policy.WorkStart; offset+duration <= policy.WorkEnd; offset += policy.SlotGranularity {
			if policy.HasBreak() && offset < policy.BreakEnd && offset+duration > policy.BreakStart {
				continue
			}

			start := day.Add(offset)
			end := start.Add(duration)
			if detector.Conflicts(start, end, commitments) {
				continue
			}

			slots = append(slots, domain.NewCandidateSlot(start, duration))
		}
	}

	return slots, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
