package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

func TestPatternAnalyzer_Analyze(t *testing.T) {
	analyzer := NewPatternAnalyzer()

	history := []domain.Commitment{
		{Start: monday(t, 10, 0), Duration: time.Hour, Status: domain.StatusCompleted},
		{Start: monday(t, 10, 30), Duration: time.Hour, Status: domain.StatusCompleted},
		{Start: monday(t, 11, 0), Duration: time.Hour, Status: domain.StatusNoShow},
		{Start: monday(t, 15, 0), Duration: 30 * time.Minute, Status: domain.StatusCompleted},
		{Start: monday(t, 15, 0).AddDate(0, 0, 1), Duration: 30 * time.Minute, Status: domain.StatusCancelled},
	}

	stats := analyzer.Analyze(history)

	assert.Equal(t, 5, stats.Total)

	morning := stats.ByBucket[domain.BucketMorning]
	assert.Equal(t, 3, morning.Total)
	assert.Equal(t, 2, morning.Successful)
	assert.InDelta(t, 2.0/3.0, morning.Rate, 1e-9)

	afternoon := stats.ByBucket[domain.BucketAfternoon]
	assert.Equal(t, 2, afternoon.Total)
	assert.InDelta(t, 0.5, afternoon.Rate, 1e-9)

	assert.Equal(t, 4, stats.ByWeekday[time.Monday])
	assert.Equal(t, 1, stats.ByWeekday[time.Tuesday])

	assert.Equal(t, 3, stats.ByDuration[time.Hour])
	assert.Equal(t, 2, stats.ByDuration[30*time.Minute])
}

func TestPatternAnalyzer_Analyze_Empty(t *testing.T) {
	stats := NewPatternAnalyzer().Analyze(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Empty(t, stats.ByBucket)

	_, ok := stats.BucketRate(domain.BucketMorning)
	assert.False(t, ok, "no history means no bucket rate")
	_, ok = stats.WeekdayShare(time.Monday)
	assert.False(t, ok)
}

func TestPatternAnalyzer_Analyze_DurationFallsBackToEnd(t *testing.T) {
	history := []domain.Commitment{
		{Start: monday(t, 9, 0), End: monday(t, 9, 45), Status: domain.StatusCompleted},
	}

	stats := NewPatternAnalyzer().Analyze(history)
	require.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByDuration[45*time.Minute])
}
