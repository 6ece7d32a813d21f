package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// PostgresCommitmentStore persists commitments in PostgreSQL for shared
// deployments.
type PostgresCommitmentStore struct {
	pool *pgxpool.Pool
}

// OpenPostgresCommitmentStore connects to the database and ensures the
// commitments table exists.
func OpenPostgresCommitmentStore(ctx context.Context, dsn string) (*PostgresCommitmentStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	store := &PostgresCommitmentStore{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresCommitmentStore wraps an existing pool.
func NewPostgresCommitmentStore(pool *pgxpool.Pool) *PostgresCommitmentStore {
	return &PostgresCommitmentStore{pool: pool}
}

func (s *PostgresCommitmentStore) migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS commitments (
			id UUID PRIMARY KEY,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ,
			duration_minutes INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			outcome TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_commitments_start ON commitments(start_time);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate commitments table: %w", err)
	}
	return nil
}

// Commitments returns commitments starting within [from, to].
func (s *PostgresCommitmentStore) Commitments(ctx context.Context, from, to time.Time) ([]domain.Commitment, error) {
	query := `
		SELECT id, start_time, end_time, duration_minutes, status, outcome
		FROM commitments
		WHERE start_time >= $1 AND start_time <= $2
		ORDER BY start_time
	`

	rows, err := s.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query commitments: %w", err)
	}
	defer rows.Close()

	var commitments []domain.Commitment
	for rows.Next() {
		var (
			commitment      domain.Commitment
			end             *time.Time
			durationMinutes int
			status          string
		)
		if err := rows.Scan(&commitment.ID, &commitment.Start, &end, &durationMinutes, &status, &commitment.Outcome); err != nil {
			return nil, fmt.Errorf("failed to scan commitment: %w", err)
		}
		if end != nil {
			commitment.End = *end
		}
		commitment.Duration = time.Duration(durationMinutes) * time.Minute
		commitment.Status = domain.CommitmentStatus(status)
		commitments = append(commitments, commitment)
	}
	return commitments, rows.Err()
}

// Append inserts a commitment.
func (s *PostgresCommitmentStore) Append(ctx context.Context, commitment domain.Commitment) error {
	query := `
		INSERT INTO commitments (id, start_time, end_time, duration_minutes, status, outcome)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var end *time.Time
	if !commitment.End.IsZero() {
		end = &commitment.End
	}

	_, err := s.pool.Exec(ctx, query,
		commitment.ID,
		commitment.Start,
		end,
		int(commitment.Duration.Minutes()),
		string(commitment.Status),
		commitment.Outcome,
	)
	if err != nil {
		return fmt.Errorf("failed to insert commitment: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresCommitmentStore) Close() {
	s.pool.Close()
}
