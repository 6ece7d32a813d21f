package domain

import (
	shared "github.com/felixgeelhaar/slotwise/internal/shared/domain"
	"github.com/google/uuid"
)

// SchedulingRun is the aggregate for one auto-scheduling batch. It carries
// the working commitment set forward so that each acceptance becomes a
// conflict constraint for the requests that follow. Requests must therefore
// be folded through the run strictly in input order.
type SchedulingRun struct {
	shared.BaseAggregateRoot
	policy    WorkingPolicy
	committed []Commitment
	result    BatchResult
}

// NewSchedulingRun starts a run from the caller's snapshot of existing
// commitments. The snapshot is copied; the caller's slice is never mutated.
func NewSchedulingRun(policy WorkingPolicy, initial []Commitment) *SchedulingRun {
	committed := make([]Commitment, len(initial))
	copy(committed, initial)
	return &SchedulingRun{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		policy:            policy,
		committed:         committed,
	}
}

// Policy returns the working policy for this run.
func (r *SchedulingRun) Policy() WorkingPolicy { return r.policy }

// Commitments returns the working commitment set: the initial snapshot plus
// every slot accepted so far in this run.
func (r *SchedulingRun) Commitments() []Commitment { return r.committed }

// Accept books the slot for the request, appends the equivalent commitment
// to the working set, and raises a SlotCommitted event.
func (r *SchedulingRun) Accept(request SchedulingRequest, slot CandidateSlot) Commitment {
	commitment := Commitment{
		ID:       uuid.New(),
		Start:    slot.Start,
		End:      slot.End,
		Duration: slot.Duration,
		Status:   StatusScheduled,
	}
	r.committed = append(r.committed, commitment)
	r.result.Scheduled = append(r.result.Scheduled, ScheduledMeeting{
		Request:       request,
		Slot:          slot,
		Commitment:    commitment,
		AutoScheduled: true,
	})
	r.Touch()
	r.AddDomainEvent(NewSlotCommitted(r.ID(), request, slot, commitment))
	return commitment
}

// Defer records the request for manual selection with its best suggestions.
func (r *SchedulingRun) Defer(request SchedulingRequest, suggestions []CandidateSlot) {
	r.result.Deferred = append(r.result.Deferred, DeferredRequest{
		Request:     request,
		Suggestions: suggestions,
	})
	r.Touch()
}

// Reject records the request as unresolved with a human-readable reason.
func (r *SchedulingRun) Reject(request SchedulingRequest, reason string) {
	r.result.Unresolved = append(r.result.Unresolved, UnresolvedRequest{
		Request: request,
		Reason:  reason,
	})
	r.Touch()
}

// Complete closes the run and raises a BatchCompleted event.
func (r *SchedulingRun) Complete() {
	r.AddDomainEvent(NewBatchCompleted(r.ID(), r.result))
}

// Result returns the accumulated batch outcome.
func (r *SchedulingRun) Result() BatchResult { return r.result }
