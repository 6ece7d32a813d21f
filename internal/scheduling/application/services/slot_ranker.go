package services

import (
	"sort"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// SlotRankerConfig tunes how the five factors combine into a slot score.
type SlotRankerConfig struct {
	Weights     domain.FactorWeights
	Preferences domain.TimeOfDayPreferences

	// DefaultBucketScore applies when a bucket has no historical data.
	DefaultBucketScore float64
	// DefaultWeekdayScore applies when there is no history at all.
	DefaultWeekdayScore float64
}

// DefaultSlotRankerConfig returns the production weighting and preference
// table.
func DefaultSlotRankerConfig() SlotRankerConfig {
	return SlotRankerConfig{
		Weights:             domain.DefaultFactorWeights(),
		Preferences:         domain.DefaultTimeOfDayPreferences(),
		DefaultBucketScore:  50,
		DefaultWeekdayScore: 70,
	}
}

// SlotRanker scores conflict-free slots by weighted multi-criteria ranking:
// historical success, static time-of-day preference, participant
// availability, day-of-week history, and buffer quality.
type SlotRanker struct {
	config SlotRankerConfig
}

// NewSlotRanker creates a ranker with the given configuration.
func NewSlotRanker(config SlotRankerConfig) *SlotRanker {
	if config.Preferences == nil {
		config.Preferences = domain.DefaultTimeOfDayPreferences()
	}
	return &SlotRanker{config: config}
}

// Rank scores every slot and returns a new slice sorted descending by
// score. Ties keep the original enumeration order (earliest first) so that
// identical inputs always rank identically. Buffer quality is measured
// against booked commitments, not against other still-tentative candidates.
func (r *SlotRanker) Rank(
	slots []domain.CandidateSlot,
	stats domain.PatternStats,
	policy domain.WorkingPolicy,
	committed []domain.Commitment,
) []domain.CandidateSlot {
	ranked := make([]domain.CandidateSlot, len(slots))
	copy(ranked, slots)

	for i := range ranked {
		factors := domain.FactorSet{
			HistoricalSuccess: r.historicalScore(ranked[i], stats),
			TimeOfDay:         r.timeOfDayScore(ranked[i]),
			Availability:      ranked[i].AvailabilityRatio() * 100,
			DayOfWeek:         r.weekdayScore(ranked[i], stats),
			BufferQuality:     r.bufferScore(ranked[i], policy, committed),
		}
		ranked[i].Factors = factors
		ranked[i].Score = factors.Weighted(r.config.Weights)
		ranked[i].Label = domain.LabelForScore(ranked[i].Score)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

func (r *SlotRanker) historicalScore(slot domain.CandidateSlot, stats domain.PatternStats) float64 {
	rate, ok := stats.BucketRate(slot.Bucket)
	if !ok {
		return r.config.DefaultBucketScore
	}
	return rate * 100
}

func (r *SlotRanker) timeOfDayScore(slot domain.CandidateSlot) float64 {
	if score, ok := r.config.Preferences[slot.Bucket]; ok {
		return score
	}
	return r.config.DefaultBucketScore
}

func (r *SlotRanker) weekdayScore(slot domain.CandidateSlot, stats domain.PatternStats) float64 {
	share, ok := stats.WeekdayShare(slot.Day)
	if !ok {
		return r.config.DefaultWeekdayScore
	}
	return share * 100
}

// bufferScore rewards slots with breathing room around them: 100 when no
// commitment sits within the buffer window on either side, 75 when one side
// is crowded, 50 when both are.
func (r *SlotRanker) bufferScore(
	slot domain.CandidateSlot,
	policy domain.WorkingPolicy,
	committed []domain.Commitment,
) float64 {
	buffer := policy.Buffer()
	if buffer <= 0 {
		return 100
	}

	detector := domain.NewConflictDetector(policy.CommitmentLength())
	leadingClear := !detector.Conflicts(slot.Start.Add(-buffer), slot.Start, committed)
	trailingClear := !detector.Conflicts(slot.End, slot.End.Add(buffer), committed)

	switch {
	case leadingClear && trailingClear:
		return 100
	case leadingClear || trailingClear:
		return 75
	default:
		return 50
	}
}
