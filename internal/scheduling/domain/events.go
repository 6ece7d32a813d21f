package domain

import (
	"time"

	shared "github.com/felixgeelhaar/slotwise/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateTypeSchedulingRun = "scheduling_run"

// SlotCommitted is raised when the engine books a slot without human
// confirmation.
type SlotCommitted struct {
	shared.BaseEvent
	RequestID    uuid.UUID `json:"request_id"`
	CommitmentID uuid.UUID `json:"commitment_id"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Score        float64   `json:"score"`
	MeetingType  string    `json:"meeting_type,omitempty"`
}

// NewSlotCommitted creates a SlotCommitted event.
func NewSlotCommitted(runID uuid.UUID, request SchedulingRequest, slot CandidateSlot, commitment Commitment) *SlotCommitted {
	return &SlotCommitted{
		BaseEvent:    shared.NewBaseEvent(runID, aggregateTypeSchedulingRun, "scheduling.slot.committed"),
		RequestID:    request.ID,
		CommitmentID: commitment.ID,
		Start:        slot.Start,
		End:          slot.End,
		Score:        slot.Score,
		MeetingType:  request.MeetingType,
	}
}

// BatchCompleted is raised once per run after every request has been
// resolved into one of the three outcome lists.
type BatchCompleted struct {
	shared.BaseEvent
	Scheduled  int `json:"scheduled"`
	Deferred   int `json:"deferred"`
	Unresolved int `json:"unresolved"`
}

// NewBatchCompleted creates a BatchCompleted event.
func NewBatchCompleted(runID uuid.UUID, result BatchResult) *BatchCompleted {
	return &BatchCompleted{
		BaseEvent:  shared.NewBaseEvent(runID, aggregateTypeSchedulingRun, "scheduling.batch.completed"),
		Scheduled:  len(result.Scheduled),
		Deferred:   len(result.Deferred),
		Unresolved: len(result.Unresolved),
	}
}
