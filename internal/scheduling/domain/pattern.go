package domain

import "time"

// BucketStats aggregates outcomes for one time bucket.
type BucketStats struct {
	Total      int
	Successful int
	Rate       float64
}

// PatternStats is the descriptive statistic derived from historical
// commitments. It is advisory input to ranking only and never filters slots.
type PatternStats struct {
	ByBucket   map[TimeBucket]BucketStats
	ByWeekday  map[time.Weekday]int
	ByDuration map[time.Duration]int
	Total      int
}

// NewPatternStats returns an empty, fully initialised stats value.
func NewPatternStats() PatternStats {
	return PatternStats{
		ByBucket:   make(map[TimeBucket]BucketStats),
		ByWeekday:  make(map[time.Weekday]int),
		ByDuration: make(map[time.Duration]int),
	}
}

// BucketRate returns the completion rate for a bucket and whether any
// historical data exists for it.
func (s PatternStats) BucketRate(bucket TimeBucket) (float64, bool) {
	stats, ok := s.ByBucket[bucket]
	if !ok || stats.Total == 0 {
		return 0, false
	}
	return stats.Rate, true
}

// WeekdayShare returns the fraction of all historical meetings held on the
// given weekday and whether any historical data exists.
func (s PatternStats) WeekdayShare(day time.Weekday) (float64, bool) {
	if s.Total == 0 {
		return 0, false
	}
	return float64(s.ByWeekday[day]) / float64(s.Total), true
}
