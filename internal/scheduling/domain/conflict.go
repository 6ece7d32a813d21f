package domain

import "time"

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Touching endpoints do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// ConflictDetector checks candidate intervals against booked commitments.
type ConflictDetector struct {
	defaultLength time.Duration
}

// NewConflictDetector creates a detector. defaultLength is assumed for
// commitments without an explicit end or duration.
func NewConflictDetector(defaultLength time.Duration) *ConflictDetector {
	if defaultLength <= 0 {
		defaultLength = 60 * time.Minute
	}
	return &ConflictDetector{defaultLength: defaultLength}
}

// Conflicts reports whether [start, end) overlaps any blocking commitment.
func (d *ConflictDetector) Conflicts(start, end time.Time, commitments []Commitment) bool {
	for _, c := range commitments {
		if !c.Blocks() {
			continue
		}
		cs, ce := c.Interval(d.defaultLength)
		if Overlaps(start, end, cs, ce) {
			return true
		}
	}
	return false
}

// CountOnDay returns how many blocking commitments start on the given
// calendar day.
func (d *ConflictDetector) CountOnDay(day time.Time, commitments []Commitment) int {
	y, m, dd := day.Date()
	count := 0
	for _, c := range commitments {
		if !c.Blocks() {
			continue
		}
		cy, cm, cd := c.Start.Date()
		if cy == y && cm == m && cd == dd {
			count++
		}
	}
	return count
}
