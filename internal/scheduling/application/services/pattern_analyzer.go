package services

import (
	"time"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// PatternAnalyzer derives descriptive statistics from historical
// commitments in a single pass. The output feeds ranking only; it never
// filters slots, and there is no learned model behind it.
type PatternAnalyzer struct{}

// NewPatternAnalyzer creates a pattern analyzer.
func NewPatternAnalyzer() PatternAnalyzer {
	return PatternAnalyzer{}
}

// Analyze buckets commitments by time of day, weekday, and duration, and
// computes per-bucket completion rates. Buckets without data keep a zero
// rate; there is never a divide by zero.
func (PatternAnalyzer) Analyze(commitments []domain.Commitment) domain.PatternStats {
	stats := domain.NewPatternStats()

	for _, c := range commitments {
		bucket := domain.BucketForHour(c.Start.Hour())

		entry := stats.ByBucket[bucket]
		entry.Total++
		if c.Succeeded() {
			entry.Successful++
		}
		stats.ByBucket[bucket] = entry

		stats.ByWeekday[c.Start.Weekday()]++

		if d := commitmentDuration(c); d > 0 {
			stats.ByDuration[d]++
		}

		stats.Total++
	}

	for bucket, entry := range stats.ByBucket {
		if entry.Total > 0 {
			entry.Rate = float64(entry.Successful) / float64(entry.Total)
		}
		stats.ByBucket[bucket] = entry
	}

	return stats
}

// commitmentDuration resolves a commitment's length from its explicit
// duration or its end time; zero when neither is recorded.
func commitmentDuration(c domain.Commitment) time.Duration {
	if c.Duration > 0 {
		return c.Duration
	}
	if !c.End.IsZero() {
		return c.End.Sub(c.Start)
	}
	return 0
}
