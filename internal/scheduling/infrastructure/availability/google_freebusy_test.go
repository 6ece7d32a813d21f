package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

func TestGoogleFreeBusyProbe_Available(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/freeBusy" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		response := map[string]any{
			"calendars": map[string]any{
				"ada@example.com": map[string]any{
					"busy": []map[string]string{
						{"start": start.Format(time.RFC3339), "end": end.Format(time.RFC3339)},
					},
				},
				"grace@example.com": map[string]any{
					"busy": []map[string]string{},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	probe := NewGoogleFreeBusyProbeWithBaseURL(source, nil, server.URL)

	participants := []domain.Participant{
		{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"},
		{ID: uuid.New(), Name: "Grace", Email: "grace@example.com"},
		{ID: uuid.New(), Name: "Edsger", Email: "edsger@example.com"},
	}

	got, err := probe.Available(context.Background(), participants, start, end)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true}, got, "unknown calendars count as free")

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, start.Format(time.RFC3339), gotBody["timeMin"])
	items, ok := gotBody["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 3)
}

func TestGoogleFreeBusyProbe_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	probe := NewGoogleFreeBusyProbeWithBaseURL(source, nil, server.URL)

	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	_, err := probe.Available(context.Background(),
		[]domain.Participant{{ID: uuid.New(), Email: "ada@example.com"}},
		start, start.Add(time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestGoogleFreeBusyProbe_NoParticipants(t *testing.T) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	probe := NewGoogleFreeBusyProbe(source, nil)

	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	got, err := probe.Available(context.Background(), nil, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, got)
}
