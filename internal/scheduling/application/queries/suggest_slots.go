package queries

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/application/services"
	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// patternLookback is how far before the request range history is loaded for
// pattern analysis.
const patternLookback = 180 * 24 * time.Hour

// PatternCache caches pattern statistics between query calls. The zero
// result of Get with ok == false means a miss; errors are treated as misses
// by the handler.
type PatternCache interface {
	Get(ctx context.Context) (domain.PatternStats, bool, error)
	Put(ctx context.Context, stats domain.PatternStats) error
}

// SuggestSlotsQuery asks for ranked slot suggestions without booking
// anything.
type SuggestSlotsQuery struct {
	Request domain.SchedulingRequest
	Policy  domain.WorkingPolicy

	// MaxSuggestions caps the returned list; zero means all ranked slots.
	MaxSuggestions int
}

// SuggestionAnalytics summarises the candidate pool.
type SuggestionAnalytics struct {
	TotalCandidates int
	MeanScore       float64
	// UtilizationPct is how much of the working time in the request range is
	// already booked.
	UtilizationPct float64
}

// SuggestionsResult is the read model returned to callers.
type SuggestionsResult struct {
	Suggestions     []domain.CandidateSlot
	Patterns        domain.PatternStats
	Recommendations []services.Recommendation
	Analytics       SuggestionAnalytics
}

// SuggestSlotsHandler handles the SuggestSlotsQuery. It is strictly
// read-only: no commitment is written and no event is raised.
type SuggestSlotsHandler struct {
	commitments domain.CommitmentSource
	probe       domain.AvailabilityProbe
	generator   *services.SlotGenerator
	analyzer    services.PatternAnalyzer
	ranker      *services.SlotRanker
	builder     *services.RecommendationBuilder
	cache       PatternCache
	logger      *slog.Logger
}

// NewSuggestSlotsHandler creates a new SuggestSlotsHandler. The probe and
// cache are optional.
func NewSuggestSlotsHandler(
	commitments domain.CommitmentSource,
	probe domain.AvailabilityProbe,
	generator *services.SlotGenerator,
	analyzer services.PatternAnalyzer,
	ranker *services.SlotRanker,
	builder *services.RecommendationBuilder,
	cache PatternCache,
	logger *slog.Logger,
) *SuggestSlotsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SuggestSlotsHandler{
		commitments: commitments,
		probe:       probe,
		generator:   generator,
		analyzer:    analyzer,
		ranker:      ranker,
		builder:     builder,
		cache:       cache,
		logger:      logger,
	}
}

// Handle validates the request, enumerates and ranks feasible slots, and
// returns them with pattern statistics, recommendations, and pool
// analytics. Validation failures surface as errors; a query has no batch to
// fold them into.
func (h *SuggestSlotsHandler) Handle(ctx context.Context, query SuggestSlotsQuery) (*SuggestionsResult, error) {
	if err := query.Request.Validate(); err != nil {
		return nil, err
	}
	if err := query.Policy.Validate(); err != nil {
		return nil, err
	}

	existing, err := h.commitments.Commitments(ctx, query.Request.RangeStart.Add(-patternLookback), query.Request.RangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load commitments: %w", err)
	}

	stats := h.patternStats(ctx, existing)

	slots, err := h.generator.Generate(ctx, query.Request.RangeStart, query.Request.RangeEnd, query.Request.Duration, query.Policy, existing)
	if err != nil {
		return nil, err
	}

	slots = h.probeAvailability(ctx, query.Request, slots)
	ranked := h.ranker.Rank(slots, stats, query.Policy, existing)

	analytics := SuggestionAnalytics{
		TotalCandidates: len(ranked),
		MeanScore:       meanScore(ranked),
		UtilizationPct:  utilization(query.Request.RangeStart, query.Request.RangeEnd, query.Policy, existing),
	}

	suggestions := ranked
	if query.MaxSuggestions > 0 && len(suggestions) > query.MaxSuggestions {
		suggestions = suggestions[:query.MaxSuggestions]
	}

	return &SuggestionsResult{
		Suggestions:     suggestions,
		Patterns:        stats,
		Recommendations: h.builder.Build(ranked, stats),
		Analytics:       analytics,
	}, nil
}

// patternStats serves statistics from the cache when possible. Cache
// failures degrade to recomputing; the query never fails on a cache error.
func (h *SuggestSlotsHandler) patternStats(ctx context.Context, existing []domain.Commitment) domain.PatternStats {
	if h.cache != nil {
		stats, ok, err := h.cache.Get(ctx)
		if err != nil {
			h.logger.Warn("pattern cache read failed", "error", err)
		} else if ok {
			return stats
		}
	}

	stats := h.analyzer.Analyze(existing)

	if h.cache != nil {
		if err := h.cache.Put(ctx, stats); err != nil {
			h.logger.Warn("pattern cache write failed", "error", err)
		}
	}

	return stats
}

func (h *SuggestSlotsHandler) probeAvailability(
	ctx context.Context,
	request domain.SchedulingRequest,
	slots []domain.CandidateSlot,
) []domain.CandidateSlot {
	if h.probe == nil || len(request.Participants) == 0 {
		return slots
	}

	feasible := slots[:0]
	for _, slot := range slots {
		availability, err := h.probe.Available(ctx, request.Participants, slot.Start, slot.End)
		if err != nil {
			h.logger.Warn("availability probe failed, assuming free",
				"request_id", request.ID,
				"start", slot.Start,
				"error", err,
			)
			availability = nil
		}
		slot.Availability = availability

		if len(availability) > 0 && slot.AvailableCount() == 0 {
			continue
		}
		feasible = append(feasible, slot)
	}

	return feasible
}

func meanScore(ranked []domain.CandidateSlot) float64 {
	if len(ranked) == 0 {
		return 0
	}
	var sum float64
	for _, slot := range ranked {
		sum += slot.Score
	}
	return sum / float64(len(ranked))
}

// utilization measures booked working time against total working time over
// the request range, in percent. Weekend days contribute no capacity.
func utilization(rangeStart, rangeEnd time.Time, policy domain.WorkingPolicy, commitments []domain.Commitment) float64 {
	workday := policy.WorkEnd - policy.WorkStart
	if policy.HasBreak() {
		workday -= policy.BreakEnd - policy.BreakStart
	}

	first := time.Date(rangeStart.Year(), rangeStart.Month(), rangeStart.Day(), 0, 0, 0, 0, rangeStart.Location())
	last := time.Date(rangeEnd.Year(), rangeEnd.Month(), rangeEnd.Day(), 0, 0, 0, 0, rangeEnd.Location())

	var capacity, booked time.Duration

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		capacity += workday

		for _, c := range commitments {
			if !c.Blocks() {
				continue
			}
			start, end := c.Interval(policy.CommitmentLength())
			if start.Year() == day.Year() && start.YearDay() == day.YearDay() {
				booked += end.Sub(start)
			}
		}
	}

	if capacity <= 0 {
		return 0
	}
	pct := float64(booked) / float64(capacity) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
