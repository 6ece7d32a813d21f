package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

const defaultGoogleBaseURL = "https://www.googleapis.com/calendar/v3"

// GoogleFreeBusyProbe checks participant availability through the Google
// Calendar free/busy endpoint. Participants are matched to calendars by
// email.
type GoogleFreeBusyProbe struct {
	source  oauth2.TokenSource
	baseURL string
	logger  *slog.Logger
}

// NewGoogleFreeBusyProbe creates a probe using the given token source.
func NewGoogleFreeBusyProbe(source oauth2.TokenSource, logger *slog.Logger) *GoogleFreeBusyProbe {
	return NewGoogleFreeBusyProbeWithBaseURL(source, logger, defaultGoogleBaseURL)
}

// NewGoogleFreeBusyProbeWithBaseURL creates a probe against a custom base
// URL.
func NewGoogleFreeBusyProbeWithBaseURL(source oauth2.TokenSource, logger *slog.Logger, baseURL string) *GoogleFreeBusyProbe {
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GoogleFreeBusyProbe{
		source:  source,
		baseURL: baseURL,
		logger:  logger,
	}
}

type freeBusyRequest struct {
	TimeMin string             `json:"timeMin"`
	TimeMax string             `json:"timeMax"`
	Items   []freeBusyCalendar `json:"items"`
}

type freeBusyCalendar struct {
	ID string `json:"id"`
}

type freeBusyResponse struct {
	Calendars map[string]struct {
		Busy []struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		} `json:"busy"`
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"calendars"`
}

// Available queries free/busy once for all participants and reports who is
// free for the whole [start, end) interval. Calendars the API cannot
// resolve count as free.
func (p *GoogleFreeBusyProbe) Available(ctx context.Context, participants []domain.Participant, start, end time.Time) ([]bool, error) {
	if len(participants) == 0 {
		return nil, nil
	}

	request := freeBusyRequest{
		TimeMin: start.UTC().Format(time.RFC3339),
		TimeMax: end.UTC().Format(time.RFC3339),
		Items:   make([]freeBusyCalendar, 0, len(participants)),
	}
	for _, participant := range participants {
		request.Items = append(request.Items, freeBusyCalendar{ID: participant.Email})
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/freeBusy", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := http.Client{
		Timeout: 15 * time.Second,
		Transport: &oauthTransport{
			base:   http.DefaultTransport,
			source: p.source,
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("freebusy request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("freebusy request returned %d: %s", resp.StatusCode, payload)
	}

	var parsed freeBusyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode freebusy response: %w", err)
	}

	result := make([]bool, len(participants))
	for i, participant := range participants {
		result[i] = true
		calendar, ok := parsed.Calendars[participant.Email]
		if !ok {
			continue
		}
		if len(calendar.Errors) > 0 {
			p.logger.Warn("freebusy lookup failed for calendar, assuming free",
				"email", participant.Email,
				"reason", calendar.Errors[0].Reason,
			)
			continue
		}
		for _, busy := range calendar.Busy {
			if domain.Overlaps(start, end, busy.Start, busy.End) {
				result[i] = false
				break
			}
		}
	}
	return result, nil
}

type oauthTransport struct {
	base   http.RoundTripper
	source oauth2.TokenSource
}

func (t *oauthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.source.Token()
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	return t.base.RoundTrip(req)
}
