package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, time.March, 2, hour, min, 0, 0, time.UTC) // a Monday
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		s1h  int
		e1h  int
		s2h  int
		e2h  int
		want bool
	}{
		{"identical intervals", 10, 11, 10, 11, true},
		{"contained interval", 10, 12, 10, 11, true},
		{"partial overlap", 10, 11, 10, 12, true},
		{"end touches start", 9, 10, 10, 11, false},
		{"start touches end", 11, 12, 10, 11, false},
		{"disjoint", 9, 10, 14, 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(at(t, tt.s1h, 0), at(t, tt.e1h, 0), at(t, tt.s2h, 0), at(t, tt.e2h, 0))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConflictDetector_Conflicts(t *testing.T) {
	detector := NewConflictDetector(60 * time.Minute)
	commitments := []Commitment{
		{ID: uuid.New(), Start: at(t, 10, 0), End: at(t, 11, 0), Status: StatusScheduled},
	}

	// Ending exactly at the commitment start does not conflict.
	assert.False(t, detector.Conflicts(at(t, 9, 0), at(t, 10, 0), commitments))
	// Ending inside does.
	assert.True(t, detector.Conflicts(at(t, 9, 30), at(t, 10, 30), commitments))
	assert.True(t, detector.Conflicts(at(t, 10, 0), at(t, 11, 0), commitments))
	assert.True(t, detector.Conflicts(at(t, 10, 30), at(t, 11, 30), commitments))
	// Starting exactly at the commitment end does not conflict.
	assert.False(t, detector.Conflicts(at(t, 11, 0), at(t, 12, 0), commitments))
}

func TestConflictDetector_DefaultLength(t *testing.T) {
	detector := NewConflictDetector(30 * time.Minute)

	// No end, no duration: the configured default length applies.
	open := []Commitment{{ID: uuid.New(), Start: at(t, 10, 0), Status: StatusScheduled}}
	assert.True(t, detector.Conflicts(at(t, 10, 15), at(t, 10, 45), open))
	assert.False(t, detector.Conflicts(at(t, 10, 30), at(t, 11, 0), open))

	// Duration present: it wins over the default.
	long := []Commitment{{ID: uuid.New(), Start: at(t, 10, 0), Duration: 2 * time.Hour, Status: StatusScheduled}}
	assert.True(t, detector.Conflicts(at(t, 11, 30), at(t, 12, 0), long))
}

func TestConflictDetector_CancelledFreesSlot(t *testing.T) {
	detector := NewConflictDetector(60 * time.Minute)
	commitments := []Commitment{
		{ID: uuid.New(), Start: at(t, 10, 0), End: at(t, 11, 0), Status: StatusCancelled},
	}

	assert.False(t, detector.Conflicts(at(t, 10, 0), at(t, 11, 0), commitments))
}

func TestConflictDetector_CountOnDay(t *testing.T) {
	detector := NewConflictDetector(60 * time.Minute)
	commitments := []Commitment{
		{ID: uuid.New(), Start: at(t, 9, 0), End: at(t, 10, 0), Status: StatusScheduled},
		{ID: uuid.New(), Start: at(t, 14, 0), End: at(t, 15, 0), Status: StatusScheduled},
		{ID: uuid.New(), Start: at(t, 11, 0), End: at(t, 12, 0), Status: StatusCancelled},
		{ID: uuid.New(), Start: at(t, 9, 0).AddDate(0, 0, 1), Status: StatusScheduled},
	}

	assert.Equal(t, 2, detector.CountOnDay(at(t, 0, 0), commitments))
}
