package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

func TestInMemoryCommitmentStore(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	inside := domain.Commitment{
		ID:     uuid.New(),
		Start:  day.Add(10 * time.Hour),
		End:    day.Add(11 * time.Hour),
		Status: domain.StatusScheduled,
	}
	outside := domain.Commitment{
		ID:     uuid.New(),
		Start:  day.AddDate(0, 0, 14).Add(10 * time.Hour),
		End:    day.AddDate(0, 0, 14).Add(11 * time.Hour),
		Status: domain.StatusScheduled,
	}

	store := NewInMemoryCommitmentStore(inside, outside)

	got, err := store.Commitments(context.Background(), day, day.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inside.ID, got[0].ID)

	appended := domain.Commitment{
		ID:     uuid.New(),
		Start:  day.Add(14 * time.Hour),
		End:    day.Add(15 * time.Hour),
		Status: domain.StatusScheduled,
	}
	require.NoError(t, store.Append(context.Background(), appended))

	got, err = store.Commitments(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestInMemoryCommitmentStore_SeedIsCopied(t *testing.T) {
	seed := []domain.Commitment{{
		ID:    uuid.New(),
		Start: time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
	}}
	store := NewInMemoryCommitmentStore(seed...)

	seed[0].Status = domain.StatusCancelled

	got, err := store.Commitments(context.Background(),
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEqual(t, domain.StatusCancelled, got[0].Status)
}
