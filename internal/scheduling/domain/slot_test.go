package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBucketForHour(t *testing.T) {
	tests := []struct {
		hour int
		want TimeBucket
	}{
		{7, BucketEarlyMorning},
		{8, BucketEarlyMorning},
		{9, BucketMorning},
		{11, BucketMorning},
		{12, BucketEarlyAfternoon},
		{13, BucketEarlyAfternoon},
		{14, BucketAfternoon},
		{15, BucketAfternoon},
		{16, BucketLateAfternoon},
		{17, BucketLateAfternoon},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketForHour(tt.hour), "hour %d", tt.hour)
	}
}

func TestLabelForScore(t *testing.T) {
	assert.Equal(t, LabelExcellent, LabelForScore(95))
	assert.Equal(t, LabelExcellent, LabelForScore(90))
	assert.Equal(t, LabelVeryGood, LabelForScore(85.5))
	assert.Equal(t, LabelGood, LabelForScore(72))
	assert.Equal(t, LabelFair, LabelForScore(60))
	assert.Equal(t, LabelPoor, LabelForScore(59.99))
}

func TestFactorSet_Weighted(t *testing.T) {
	weights := DefaultFactorWeights()

	sum := weights.HistoricalSuccess + weights.TimeOfDay + weights.Availability +
		weights.DayOfWeek + weights.BufferQuality
	assert.InDelta(t, 1.0, sum, 1e-9)

	factors := FactorSet{
		HistoricalSuccess: 50,
		TimeOfDay:         90,
		Availability:      100,
		DayOfWeek:         70,
		BufferQuality:     75,
	}

	// 50*.30 + 90*.25 + 100*.20 + 70*.15 + 75*.10 = 75.5
	assert.InDelta(t, 75.5, factors.Weighted(weights), 1e-9)

	// Two decimal rounding.
	factors.HistoricalSuccess = 33.333
	got := factors.Weighted(weights)
	assert.InDelta(t, got, math.Round(got*100)/100, 1e-9)
}

func TestNewCandidateSlot(t *testing.T) {
	start := time.Date(2026, time.March, 3, 10, 30, 0, 0, time.UTC) // a Tuesday
	slot := NewCandidateSlot(start, 45*time.Minute)

	assert.Equal(t, start.Add(45*time.Minute), slot.End)
	assert.Equal(t, 45*time.Minute, slot.Duration)
	assert.Equal(t, time.Tuesday, slot.Day)
	assert.Equal(t, BucketMorning, slot.Bucket)
}

func TestCandidateSlot_AvailabilityRatio(t *testing.T) {
	slot := CandidateSlot{}
	assert.Equal(t, 1.0, slot.AvailabilityRatio(), "no participants means fully available")

	slot.Availability = []bool{true, false, true, true}
	assert.Equal(t, 3, slot.AvailableCount())
	assert.InDelta(t, 0.75, slot.AvailabilityRatio(), 1e-9)
}
