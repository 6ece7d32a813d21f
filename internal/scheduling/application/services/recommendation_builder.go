package services

import (
	"fmt"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// RecommendationKind categorises a recommendation entry.
type RecommendationKind string

const (
	RecommendationOptimal     RecommendationKind = "optimal"
	RecommendationAlternative RecommendationKind = "alternative"
	RecommendationInsight     RecommendationKind = "insight"
	RecommendationWarning     RecommendationKind = "warning"
)

// Recommendation is a human-facing scheduling hint derived from a ranked
// slot list.
type Recommendation struct {
	Kind    RecommendationKind
	Slot    *domain.CandidateSlot
	Message string
}

// RecommendationBuilderConfig tunes recommendation output.
type RecommendationBuilderConfig struct {
	// MaxAlternatives caps how many runner-up slots are suggested.
	MaxAlternatives int
	// LowAvailabilityScore is the availability sub-score below which a slot
	// counts as constrained when deciding whether to warn.
	LowAvailabilityScore float64
}

// DefaultRecommendationBuilderConfig returns the production settings.
func DefaultRecommendationBuilderConfig() RecommendationBuilderConfig {
	return RecommendationBuilderConfig{
		MaxAlternatives:      3,
		LowAvailabilityScore: 70,
	}
}

// RecommendationBuilder turns a ranked slot list into recommendation
// records. It never fails: an empty ranked list yields an empty result.
type RecommendationBuilder struct {
	config RecommendationBuilderConfig
}

// NewRecommendationBuilder creates a builder.
func NewRecommendationBuilder(config RecommendationBuilderConfig) *RecommendationBuilder {
	if config.MaxAlternatives <= 0 {
		config.MaxAlternatives = DefaultRecommendationBuilderConfig().MaxAlternatives
	}
	if config.LowAvailabilityScore <= 0 {
		config.LowAvailabilityScore = DefaultRecommendationBuilderConfig().LowAvailabilityScore
	}
	return &RecommendationBuilder{config: config}
}

// Build produces, in priority order: the top slot as optimal, up to
// MaxAlternatives runners-up, an insight naming the best-scoring time
// bucket, and a warning when more than half of all ranked slots are
// availability-constrained.
func (b *RecommendationBuilder) Build(ranked []domain.CandidateSlot, stats domain.PatternStats) []Recommendation {
	recommendations := make([]Recommendation, 0, b.config.MaxAlternatives+3)
	if len(ranked) == 0 {
		return recommendations
	}

	optimal := ranked[0]
	recommendations = append(recommendations, Recommendation{
		Kind: RecommendationOptimal,
		Slot: &optimal,
		Message: fmt.Sprintf("%s is the strongest option (score %.2f, %s)",
			optimal.Start.Format("Mon Jan 2 15:04"), optimal.Score, optimal.Label),
	})

	for i := 1; i < len(ranked) && i <= b.config.MaxAlternatives; i++ {
		alternative := ranked[i]
		recommendations = append(recommendations, Recommendation{
			Kind: RecommendationAlternative,
			Slot: &alternative,
			Message: fmt.Sprintf("%s scores %.2f (%s)",
				alternative.Start.Format("Mon Jan 2 15:04"), alternative.Score, alternative.Label),
		})
	}

	if bucket, ok := bestBucket(ranked); ok {
		recommendations = append(recommendations, Recommendation{
			Kind:    RecommendationInsight,
			Message: fmt.Sprintf("%s slots score best for this request", bucket),
		})
	}

	if b.availabilityConstrained(ranked) {
		recommendations = append(recommendations, Recommendation{
			Kind:    RecommendationWarning,
			Message: "participant availability is tight across most candidate slots; consider widening the date range",
		})
	}

	return recommendations
}

// bestBucket averages scores per time bucket across the ranked list and
// returns the bucket with the highest mean.
func bestBucket(ranked []domain.CandidateSlot) (domain.TimeBucket, bool) {
	sums := make(map[domain.TimeBucket]float64)
	counts := make(map[domain.TimeBucket]int)
	for _, slot := range ranked {
		sums[slot.Bucket] += slot.Score
		counts[slot.Bucket]++
	}

	var best domain.TimeBucket
	bestMean := -1.0
	for bucket, sum := range sums {
		mean := sum / float64(counts[bucket])
		if mean > bestMean {
			best = bucket
			bestMean = mean
		}
	}
	return best, bestMean >= 0
}

func (b *RecommendationBuilder) availabilityConstrained(ranked []domain.CandidateSlot) bool {
	constrained := 0
	for _, slot := range ranked {
		if slot.Factors.Availability < b.config.LowAvailabilityScore {
			constrained++
		}
	}
	return constrained*2 > len(ranked)
}
