package domain

import (
	"math"
	"time"
)

// TimeBucket is a coarse partition of the working day used for preference
// scoring.
type TimeBucket string

const (
	BucketEarlyMorning   TimeBucket = "early-morning"
	BucketMorning        TimeBucket = "morning"
	BucketEarlyAfternoon TimeBucket = "early-afternoon"
	BucketAfternoon      TimeBucket = "afternoon"
	BucketLateAfternoon  TimeBucket = "late-afternoon"
)

// BucketForHour maps an hour of day to its time bucket.
func BucketForHour(hour int) TimeBucket {
	switch {
	case hour < 9:
		return BucketEarlyMorning
	case hour < 12:
		return BucketMorning
	case hour < 14:
		return BucketEarlyAfternoon
	case hour < 16:
		return BucketAfternoon
	default:
		return BucketLateAfternoon
	}
}

// SlotLabel is the human-facing quality band for a scored slot.
type SlotLabel string

const (
	LabelExcellent SlotLabel = "excellent"
	LabelVeryGood  SlotLabel = "very-good"
	LabelGood      SlotLabel = "good"
	LabelFair      SlotLabel = "fair"
	LabelPoor      SlotLabel = "poor"
)

// LabelForScore maps a 0-100 score to its quality band.
func LabelForScore(score float64) SlotLabel {
	switch {
	case score >= 90:
		return LabelExcellent
	case score >= 80:
		return LabelVeryGood
	case score >= 70:
		return LabelGood
	case score >= 60:
		return LabelFair
	default:
		return LabelPoor
	}
}

// FactorSet holds the five sub-scores that combine into a slot's score, each
// on a 0-100 scale.
type FactorSet struct {
	HistoricalSuccess float64
	TimeOfDay         float64
	Availability      float64
	DayOfWeek         float64
	BufferQuality     float64
}

// FactorWeights holds the relative weight of each scoring factor. Weights are
// expected to sum to 1.0.
type FactorWeights struct {
	HistoricalSuccess float64
	TimeOfDay         float64
	Availability      float64
	DayOfWeek         float64
	BufferQuality     float64
}

// DefaultFactorWeights returns the production weighting.
func DefaultFactorWeights() FactorWeights {
	return FactorWeights{
		HistoricalSuccess: 0.30,
		TimeOfDay:         0.25,
		Availability:      0.20,
		DayOfWeek:         0.15,
		BufferQuality:     0.10,
	}
}

// Weighted combines the factors into a single 0-100 score, rounded to two
// decimal places.
func (f FactorSet) Weighted(w FactorWeights) float64 {
	score := f.HistoricalSuccess*w.HistoricalSuccess +
		f.TimeOfDay*w.TimeOfDay +
		f.Availability*w.Availability +
		f.DayOfWeek*w.DayOfWeek +
		f.BufferQuality*w.BufferQuality
	return math.Round(score*100) / 100
}

// TimeOfDayPreferences maps each bucket to a static 0-100 preference score.
type TimeOfDayPreferences map[TimeBucket]float64

// DefaultTimeOfDayPreferences returns the built-in heuristic table. It is a
// configuration value, not derived from data.
func DefaultTimeOfDayPreferences() TimeOfDayPreferences {
	return TimeOfDayPreferences{
		BucketEarlyMorning:   60,
		BucketMorning:        90,
		BucketEarlyAfternoon: 85,
		BucketAfternoon:      75,
		BucketLateAfternoon:  65,
	}
}

// CandidateSlot is a generated, still-tentative time interval considered for
// a new meeting. Slots live only within one scheduling call.
type CandidateSlot struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration

	Day    time.Weekday
	Bucket TimeBucket

	// Availability holds one entry per requested participant, in request
	// order.
	Availability []bool

	Score   float64
	Factors FactorSet
	Label   SlotLabel
}

// NewCandidateSlot derives a slot from its start time and duration.
func NewCandidateSlot(start time.Time, duration time.Duration) CandidateSlot {
	return CandidateSlot{
		Start:    start,
		End:      start.Add(duration),
		Duration: duration,
		Day:      start.Weekday(),
		Bucket:   BucketForHour(start.Hour()),
	}
}

// AvailableCount returns how many probed participants are free for the slot.
func (s CandidateSlot) AvailableCount() int {
	count := 0
	for _, free := range s.Availability {
		if free {
			count++
		}
	}
	return count
}

// AvailabilityRatio returns the fraction of participants free for the slot,
// or 1 when there is nobody to check.
func (s CandidateSlot) AvailabilityRatio() float64 {
	if len(s.Availability) == 0 {
		return 1
	}
	return float64(s.AvailableCount()) / float64(len(s.Availability))
}
