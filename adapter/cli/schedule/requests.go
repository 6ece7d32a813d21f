package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// requestFile is the JSON shape accepted by `slotwise schedule auto`.
type requestFile struct {
	ID              string            `json:"id"`
	DurationMinutes int               `json:"duration_minutes"`
	Participants    []participantFile `json:"participants"`
	RangeStart      string            `json:"range_start"`
	RangeEnd        string            `json:"range_end"`
	Priority        int               `json:"priority"`
	MeetingType     string            `json:"meeting_type"`
}

type participantFile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// loadRequests reads a JSON array of scheduling requests from a file.
func loadRequests(path string) ([]domain.SchedulingRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	var entries []requestFile
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse request file: %w", err)
	}

	requests := make([]domain.SchedulingRequest, 0, len(entries))
	for i, entry := range entries {
		request, err := entry.toDomain()
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i+1, err)
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func (f requestFile) toDomain() (domain.SchedulingRequest, error) {
	id := uuid.New()
	if f.ID != "" {
		parsed, err := uuid.Parse(f.ID)
		if err != nil {
			return domain.SchedulingRequest{}, fmt.Errorf("invalid id %q: %w", f.ID, err)
		}
		id = parsed
	}

	rangeStart, err := parseDate(f.RangeStart)
	if err != nil {
		return domain.SchedulingRequest{}, fmt.Errorf("invalid range_start: %w", err)
	}
	rangeEnd, err := parseDate(f.RangeEnd)
	if err != nil {
		return domain.SchedulingRequest{}, fmt.Errorf("invalid range_end: %w", err)
	}

	participants := make([]domain.Participant, 0, len(f.Participants))
	for _, p := range f.Participants {
		participantID := uuid.New()
		if p.ID != "" {
			parsed, err := uuid.Parse(p.ID)
			if err != nil {
				return domain.SchedulingRequest{}, fmt.Errorf("invalid participant id %q: %w", p.ID, err)
			}
			participantID = parsed
		}
		participants = append(participants, domain.Participant{
			ID:    participantID,
			Name:  p.Name,
			Email: p.Email,
		})
	}

	return domain.SchedulingRequest{
		ID:           id,
		Duration:     time.Duration(f.DurationMinutes) * time.Minute,
		Participants: participants,
		RangeStart:   rangeStart,
		RangeEnd:     rangeEnd,
		Priority:     f.Priority,
		MeetingType:  f.MeetingType,
	}, nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("missing date")
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("use YYYY-MM-DD or RFC 3339: %w", err)
	}
	return t, nil
}
