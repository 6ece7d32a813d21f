package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// SQLiteCommitmentStore persists commitments in SQLite for local mode.
type SQLiteCommitmentStore struct {
	db *sql.DB
}

// OpenSQLiteCommitmentStore opens (and if needed creates) the commitments
// table at the given path.
func OpenSQLiteCommitmentStore(path string) (*SQLiteCommitmentStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	store := &SQLiteCommitmentStore{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteCommitmentStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS commitments (
			id TEXT PRIMARY KEY,
			start_time TEXT NOT NULL,
			end_time TEXT,
			duration_minutes INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			outcome TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_commitments_start ON commitments(start_time);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate commitments table: %w", err)
	}
	return nil
}

// Commitments returns commitments starting within [from, to].
func (s *SQLiteCommitmentStore) Commitments(ctx context.Context, from, to time.Time) ([]domain.Commitment, error) {
	query := `
		SELECT id, start_time, end_time, duration_minutes, status, outcome
		FROM commitments
		WHERE start_time >= ? AND start_time <= ?
		ORDER BY start_time
	`

	rows, err := s.db.QueryContext(ctx, query,
		from.UTC().Format(time.RFC3339),
		to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query commitments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var commitments []domain.Commitment
	for rows.Next() {
		var (
			id              string
			startRaw        string
			endRaw          sql.NullString
			durationMinutes int
			status          string
			outcome         string
		)
		if err := rows.Scan(&id, &startRaw, &endRaw, &durationMinutes, &status, &outcome); err != nil {
			return nil, fmt.Errorf("failed to scan commitment: %w", err)
		}

		commitment, err := rowToCommitment(id, startRaw, endRaw, durationMinutes, status, outcome)
		if err != nil {
			return nil, err
		}
		commitments = append(commitments, commitment)
	}
	return commitments, rows.Err()
}

// Append inserts a commitment.
func (s *SQLiteCommitmentStore) Append(ctx context.Context, commitment domain.Commitment) error {
	query := `
		INSERT INTO commitments (id, start_time, end_time, duration_minutes, status, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var endRaw any
	if !commitment.End.IsZero() {
		endRaw = commitment.End.UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, query,
		commitment.ID.String(),
		commitment.Start.UTC().Format(time.RFC3339),
		endRaw,
		int(commitment.Duration.Minutes()),
		string(commitment.Status),
		commitment.Outcome,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert commitment: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteCommitmentStore) Close() error {
	return s.db.Close()
}

func rowToCommitment(id, startRaw string, endRaw sql.NullString, durationMinutes int, status, outcome string) (domain.Commitment, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return domain.Commitment{}, fmt.Errorf("invalid commitment id %q: %w", id, err)
	}

	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return domain.Commitment{}, fmt.Errorf("invalid start time %q: %w", startRaw, err)
	}

	var end time.Time
	if endRaw.Valid && endRaw.String != "" {
		end, err = time.Parse(time.RFC3339, endRaw.String)
		if err != nil {
			return domain.Commitment{}, fmt.Errorf("invalid end time %q: %w", endRaw.String, err)
		}
	}

	return domain.Commitment{
		ID:       parsedID,
		Start:    start,
		End:      end,
		Duration: time.Duration(durationMinutes) * time.Minute,
		Status:   domain.CommitmentStatus(status),
		Outcome:  outcome,
	}, nil
}
