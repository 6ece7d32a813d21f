package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// InMemoryCommitmentStore keeps commitments in memory. It backs local mode
// and tests; nothing survives a restart.
type InMemoryCommitmentStore struct {
	mu          sync.RWMutex
	commitments []domain.Commitment
}

// NewInMemoryCommitmentStore creates a store seeded with the given
// commitments.
func NewInMemoryCommitmentStore(seed ...domain.Commitment) *InMemoryCommitmentStore {
	commitments := make([]domain.Commitment, len(seed))
	copy(commitments, seed)
	return &InMemoryCommitmentStore{commitments: commitments}
}

// Commitments returns every commitment whose occupied interval intersects
// [from, to].
func (s *InMemoryCommitmentStore) Commitments(_ context.Context, from, to time.Time) ([]domain.Commitment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Commitment, 0, len(s.commitments))
	for _, c := range s.commitments {
		start, end := c.Interval(time.Hour)
		if start.After(to) || end.Before(from) {
			continue
		}
		matched = append(matched, c)
	}
	return matched, nil
}

// Append adds a commitment to the store.
func (s *InMemoryCommitmentStore) Append(_ context.Context, commitment domain.Commitment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitments = append(s.commitments, commitment)
	return nil
}
