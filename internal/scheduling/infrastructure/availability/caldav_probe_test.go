package availability

import (
	"context"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

func buildEvent(t *testing.T, start, end time.Time, props map[string]string) *ical.Component {
	t.Helper()
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uuid.NewString())
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, end)
	for name, value := range props {
		event.Props.SetText(name, value)
	}
	return event.Component
}

func TestCalDAVProbe_UnmappedParticipantsCountFree(t *testing.T) {
	probe := NewCalDAVProbe(AppleCalDAVURL, "user", "secret", nil)

	participants := []domain.Participant{
		{ID: uuid.New(), Email: "ada@example.com"},
		{ID: uuid.New(), Email: "grace@example.com"},
	}

	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	result, err := probe.Available(context.Background(), participants, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, result)
}

func TestCalDAVProbe_WithCalendar(t *testing.T) {
	probe := NewCalDAVProbe(FastmailCalDAVURL, "user", "secret", nil).
		WithCalendar("ada@example.com", "/calendars/user/ada/")

	assert.Equal(t, "/calendars/user/ada/", probe.calendars["ada@example.com"])
}

func TestEventBlocks(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("cancelled events never block", func(t *testing.T) {
		event := buildEvent(t, start, end, map[string]string{"STATUS": "CANCELLED"})
		assert.False(t, eventBlocks(event, start, end))
	})

	t.Run("transparent events never block", func(t *testing.T) {
		event := buildEvent(t, start, end, map[string]string{"TRANSP": "TRANSPARENT"})
		assert.False(t, eventBlocks(event, start, end))
	})

	t.Run("overlapping event blocks", func(t *testing.T) {
		event := buildEvent(t, start.Add(30*time.Minute), end.Add(30*time.Minute), nil)
		assert.True(t, eventBlocks(event, start, end))
	})

	t.Run("adjacent event does not block", func(t *testing.T) {
		event := buildEvent(t, end, end.Add(time.Hour), nil)
		assert.False(t, eventBlocks(event, start, end))
	})
}
