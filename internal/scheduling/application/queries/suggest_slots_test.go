package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/application/services"
	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// monday is 2026-03-02, a Monday.
func monday(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, time.March, 2, hour, min, 0, 0, time.UTC)
}

type sourceStub struct {
	commitments []domain.Commitment
	err         error
}

func (s *sourceStub) Commitments(_ context.Context, _, _ time.Time) ([]domain.Commitment, error) {
	return s.commitments, s.err
}

type cacheStub struct {
	stats domain.PatternStats
	ok    bool
	err   error

	gets int
	puts int
}

func (c *cacheStub) Get(_ context.Context) (domain.PatternStats, bool, error) {
	c.gets++
	return c.stats, c.ok, c.err
}

func (c *cacheStub) Put(_ context.Context, stats domain.PatternStats) error {
	c.puts++
	c.stats = stats
	c.ok = true
	return nil
}

func newHandler(source domain.CommitmentSource, cache PatternCache) *SuggestSlotsHandler {
	return NewSuggestSlotsHandler(
		source,
		nil,
		services.NewSlotGenerator(services.DefaultSlotGeneratorConfig()),
		services.NewPatternAnalyzer(),
		services.NewSlotRanker(services.DefaultSlotRankerConfig()),
		services.NewRecommendationBuilder(services.DefaultRecommendationBuilderConfig()),
		cache,
		nil,
	)
}

func newQuery(t *testing.T) SuggestSlotsQuery {
	t.Helper()
	return SuggestSlotsQuery{
		Request: domain.SchedulingRequest{
			ID:         uuid.New(),
			Duration:   time.Hour,
			RangeStart: monday(t, 0, 0),
			RangeEnd:   monday(t, 0, 0),
		},
		Policy: domain.DefaultWorkingPolicy(),
	}
}

func TestSuggestSlotsHandler_Handle(t *testing.T) {
	booked := []domain.Commitment{{
		ID:     uuid.New(),
		Start:  monday(t, 10, 0),
		End:    monday(t, 11, 0),
		Status: domain.StatusScheduled,
	}}
	handler := newHandler(&sourceStub{commitments: booked}, nil)

	result, err := handler.Handle(context.Background(), newQuery(t))
	require.NoError(t, err)

	require.NotEmpty(t, result.Suggestions)
	for i := 1; i < len(result.Suggestions); i++ {
		assert.GreaterOrEqual(t, result.Suggestions[i-1].Score, result.Suggestions[i].Score)
	}
	for _, slot := range result.Suggestions {
		assert.False(t, slot.Start.Equal(monday(t, 10, 0)), "booked hour must not be suggested")
	}

	assert.Equal(t, len(result.Suggestions), result.Analytics.TotalCandidates)
	assert.Greater(t, result.Analytics.MeanScore, 0.0)
	// One booked hour out of seven working hours.
	assert.InDelta(t, 100.0/7.0, result.Analytics.UtilizationPct, 0.01)

	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t, services.RecommendationOptimal, result.Recommendations[0].Kind)
}

func TestSuggestSlotsHandler_Handle_MaxSuggestions(t *testing.T) {
	handler := newHandler(&sourceStub{}, nil)

	query := newQuery(t)
	query.MaxSuggestions = 5

	result, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)
	assert.Len(t, result.Suggestions, 5)
	assert.Greater(t, result.Analytics.TotalCandidates, 5, "analytics cover the full pool")
}

func TestSuggestSlotsHandler_Handle_ValidationFailsFast(t *testing.T) {
	handler := newHandler(&sourceStub{}, nil)

	query := newQuery(t)
	query.Request.Duration = 0

	_, err := handler.Handle(context.Background(), query)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestSuggestSlotsHandler_Handle_UsesPatternCache(t *testing.T) {
	cache := &cacheStub{}
	handler := newHandler(&sourceStub{}, cache)

	_, err := handler.Handle(context.Background(), newQuery(t))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.gets)
	assert.Equal(t, 1, cache.puts, "miss populates the cache")

	_, err = handler.Handle(context.Background(), newQuery(t))
	require.NoError(t, err)
	assert.Equal(t, 2, cache.gets)
	assert.Equal(t, 1, cache.puts, "hit skips recomputation")
}

func TestSuggestSlotsHandler_Handle_CacheErrorDegrades(t *testing.T) {
	cache := &cacheStub{err: errors.New("redis down")}
	handler := newHandler(&sourceStub{}, cache)

	result, err := handler.Handle(context.Background(), newQuery(t))
	require.NoError(t, err)
	assert.NotEmpty(t, result.Suggestions)
}
