package availability

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

// Common CalDAV server URLs
const (
	AppleCalDAVURL    = "https://caldav.icloud.com"
	FastmailCalDAVURL = "https://caldav.fastmail.com"
)

// CalDAVProbe checks participant availability against a CalDAV server
// (Apple Calendar, Fastmail, Nextcloud, etc.). Participants are matched to
// calendars by email; participants without a mapped calendar count as free.
type CalDAVProbe struct {
	baseURL   string
	username  string
	password  string
	calendars map[string]string // participant email -> calendar path
	logger    *slog.Logger
}

// NewCalDAVProbe creates a CalDAV availability probe.
func NewCalDAVProbe(baseURL, username, password string, logger *slog.Logger) *CalDAVProbe {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalDAVProbe{
		baseURL:   baseURL,
		username:  username,
		password:  password,
		calendars: make(map[string]string),
		logger:    logger,
	}
}

// WithCalendar maps a participant email to a calendar path.
func (p *CalDAVProbe) WithCalendar(email, path string) *CalDAVProbe {
	p.calendars[email] = path
	return p
}

// Available queries each mapped calendar for events overlapping
// [start, end). Cancelled and transparent events do not block.
func (p *CalDAVProbe) Available(ctx context.Context, participants []domain.Participant, start, end time.Time) ([]bool, error) {
	client, err := p.getClient()
	if err != nil {
		return nil, err
	}

	result := make([]bool, len(participants))
	for i, participant := range participants {
		result[i] = true

		path, ok := p.calendars[participant.Email]
		if !ok {
			continue
		}

		busy, err := p.hasBlockingEvent(ctx, client, path, start, end)
		if err != nil {
			return nil, fmt.Errorf("caldav query for %s failed: %w", participant.Email, err)
		}
		result[i] = !busy
	}
	return result, nil
}

func (p *CalDAVProbe) hasBlockingEvent(ctx context.Context, client *caldav.Client, path string, start, end time.Time) (bool, error) {
	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name:  "VCALENDAR",
			Props: []string{"VERSION"},
			Comps: []caldav.CalendarCompRequest{
				{
					Name:  "VEVENT",
					Props: []string{"UID", "DTSTART", "DTEND", "STATUS", "TRANSP"},
				},
			},
		},
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{
				{
					Name:  "VEVENT",
					Start: start,
					End:   end,
				},
			},
		},
	}

	objects, err := client.QueryCalendar(ctx, path, query)
	if err != nil {
		return false, err
	}

	for _, obj := range objects {
		if obj.Data == nil {
			continue
		}
		for _, child := range obj.Data.Children {
			if child.Name != ical.CompEvent {
				continue
			}
			if eventBlocks(child, start, end) {
				return true, nil
			}
		}
	}
	return false, nil
}

// eventBlocks reports whether a VEVENT occupies any part of [start, end).
// The server already filtered by time range, so this is a refinement for
// status and transparency plus a defense against lax servers.
func eventBlocks(component *ical.Component, start, end time.Time) bool {
	if props := component.Props[ical.PropStatus]; len(props) > 0 {
		if strings.EqualFold(props[0].Value, "CANCELLED") {
			return false
		}
	}
	if props := component.Props[ical.PropTransparency]; len(props) > 0 {
		if strings.EqualFold(props[0].Value, "TRANSPARENT") {
			return false
		}
	}

	event := &ical.Event{Component: component}
	eventStart, err := event.DateTimeStart(time.UTC)
	if err != nil {
		return true
	}
	eventEnd, err := event.DateTimeEnd(time.UTC)
	if err != nil || !eventEnd.After(eventStart) {
		eventEnd = eventStart.Add(time.Hour)
	}
	return domain.Overlaps(start, end, eventStart, eventEnd)
}

func (p *CalDAVProbe) getClient() (*caldav.Client, error) {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &basicAuthTransport{
			username: p.username,
			password: p.password,
			base:     http.DefaultTransport,
		},
	}

	client, err := caldav.NewClient(webdav.HTTPClientWithBasicAuth(httpClient, p.username, p.password), p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	return client, nil
}

type basicAuthTransport struct {
	username string
	password string
	base     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(req)
}
