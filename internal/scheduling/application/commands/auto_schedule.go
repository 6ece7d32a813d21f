package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/application/services"
	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
	"github.com/felixgeelhaar/slotwise/internal/shared/infrastructure/eventbus"
)

// DefaultAutoCommitThreshold is the minimum score at which a slot is booked
// without asking.
const DefaultAutoCommitThreshold = 80.0

const reasonNoSlots = "No available time slots found"

// patternLookback is how far before the batch window history is loaded for
// pattern analysis.
const patternLookback = 180 * 24 * time.Hour

// AutoScheduleCommand contains the data needed to auto-schedule a batch of
// meeting requests.
type AutoScheduleCommand struct {
	Requests []domain.SchedulingRequest
	Policy   domain.WorkingPolicy

	// Threshold overrides the auto-commit score threshold; zero means the
	// default.
	Threshold float64
}

// AutoScheduleHandler handles the AutoScheduleCommand.
type AutoScheduleHandler struct {
	commitments domain.CommitmentSource
	store       domain.CommitmentStore
	probe       domain.AvailabilityProbe
	generator   *services.SlotGenerator
	analyzer    services.PatternAnalyzer
	ranker      *services.SlotRanker
	publisher   eventbus.Publisher
	logger      *slog.Logger
}

// NewAutoScheduleHandler creates a new AutoScheduleHandler. The store and
// publisher are optional; when a store is given, accepted bookings are
// appended to it.
func NewAutoScheduleHandler(
	commitments domain.CommitmentSource,
	store domain.CommitmentStore,
	probe domain.AvailabilityProbe,
	generator *services.SlotGenerator,
	analyzer services.PatternAnalyzer,
	ranker *services.SlotRanker,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *AutoScheduleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AutoScheduleHandler{
		commitments: commitments,
		store:       store,
		probe:       probe,
		generator:   generator,
		analyzer:    analyzer,
		ranker:      ranker,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle folds the batch through a scheduling run in input order. Every
// request lands in exactly one of scheduled, deferred, or unresolved; a
// failure on one request never aborts the rest of the batch.
func (h *AutoScheduleHandler) Handle(ctx context.Context, cmd AutoScheduleCommand) (domain.BatchResult, error) {
	start := time.Now()

	if len(cmd.Requests) == 0 {
		return domain.BatchResult{}, domain.ErrEmptyBatch
	}
	if err := cmd.Policy.Validate(); err != nil {
		return domain.BatchResult{}, err
	}

	threshold := cmd.Threshold
	if threshold <= 0 {
		threshold = DefaultAutoCommitThreshold
	}

	from, to := batchWindow(cmd.Requests)
	existing, err := h.commitments.Commitments(ctx, from.Add(-patternLookback), to)
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("failed to load commitments: %w", err)
	}

	stats := h.analyzer.Analyze(existing)
	run := domain.NewSchedulingRun(cmd.Policy, existing)

	for _, request := range cmd.Requests {
		h.scheduleOne(ctx, run, request, stats, threshold)
	}

	run.Complete()
	result := run.Result()

	if h.store != nil {
		for _, meeting := range result.Scheduled {
			if err := h.store.Append(ctx, meeting.Commitment); err != nil {
				return result, fmt.Errorf("failed to persist commitment %s: %w", meeting.Commitment.ID, err)
			}
		}
	}

	if err := eventbus.PublishDomainEvents(ctx, h.publisher, run.DomainEvents(), h.logger); err != nil {
		h.logger.Warn("failed to publish scheduling events", "error", err)
	}
	run.ClearDomainEvents()

	h.logger.Info("auto-schedule completed",
		"requests", len(cmd.Requests),
		"scheduled", len(result.Scheduled),
		"deferred", len(result.Deferred),
		"unresolved", len(result.Unresolved),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}

// scheduleOne places a single request against the run's working commitment
// set. Panics in the pipeline are contained here so one bad request cannot
// take the batch down.
func (h *AutoScheduleHandler) scheduleOne(
	ctx context.Context,
	run *domain.SchedulingRun,
	request domain.SchedulingRequest,
	stats domain.PatternStats,
	threshold float64,
) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("scheduling panicked",
				"request_id", request.ID,
				"panic", r,
			)
			run.Reject(request, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if err := request.Validate(); err != nil {
		run.Reject(request, err.Error())
		return
	}

	slots, err := h.generator.Generate(ctx, request.RangeStart, request.RangeEnd, request.Duration, run.Policy(), run.Commitments())
	if err != nil {
		run.Reject(request, err.Error())
		return
	}

	slots = h.probeAvailability(ctx, request, slots)
	if len(slots) == 0 {
		run.Reject(request, reasonNoSlots)
		return
	}

	ranked := h.ranker.Rank(slots, stats, run.Policy(), run.Commitments())

	best := ranked[0]
	if best.Score >= threshold {
		commitment := run.Accept(request, best)
		h.logger.Info("slot committed",
			"request_id", request.ID,
			"commitment_id", commitment.ID,
			"start", best.Start,
			"score", best.Score,
		)
		return
	}

	suggestions := ranked
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	run.Defer(request, suggestions)
	h.logger.Info("request deferred for manual selection",
		"request_id", request.ID,
		"best_score", best.Score,
	)
}

// probeAvailability annotates each slot with per-participant availability
// and drops slots nobody can attend. A probe failure degrades to assuming
// everyone is free rather than blocking the batch.
func (h *AutoScheduleHandler) probeAvailability(
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

// batchWindow spans the earliest range start to the latest range end across
// the batch, so history and conflicts are loaded once.
func batchWindow(requests []domain.SchedulingRequest) (time.Time, time.Time) {
	var from, to time.Time
	for _, request := range requests {
		if request.RangeStart.IsZero() || request.RangeEnd.IsZero() {
			continue
		}
		if from.IsZero() || request.RangeStart.Before(from) {
			from = request.RangeStart
		}
		if to.IsZero() || request.RangeEnd.After(to) {
			to = request.RangeEnd
		}
	}
	return from, to
}
