package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/slotwise/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/slotwise/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:                  "development",
		Tenant:                  "test",
		StorageDriver:           "memory",
		WorkStart:               9 * time.Hour,
		WorkEnd:                 17 * time.Hour,
		BreakStart:              12 * time.Hour,
		BreakEnd:                13 * time.Hour,
		BufferMinutes:           15,
		MaxMeetingsPerDay:       6,
		PreferredDuration:       time.Hour,
		SlotGranularity:         30 * time.Minute,
		DefaultCommitmentLength: 45 * time.Minute,
		AutoCommitThreshold:     80,
		MaxRangeDays:            92,
		ProbeDriver:             "static",
	}
}

func TestNewContainer_MemoryMode(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	defer func() { _ = container.Close() }()

	assert.NotNil(t, container.Store)
	assert.NotNil(t, container.Probe)
	assert.NotNil(t, container.Publisher)
	assert.NotNil(t, container.AutoScheduleHandler)
	assert.NotNil(t, container.SuggestSlotsHandler)
	assert.NoError(t, container.Policy.Validate())

	// The assumed commitment length is its own knob, not the preferred
	// meeting duration.
	assert.Equal(t, 45*time.Minute, container.Policy.DefaultCommitmentLength)
	assert.NotEqual(t, container.Policy.PreferredDuration, container.Policy.DefaultCommitmentLength)
}

func TestNewContainer_EventsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.EventsDisabled = true

	container, err := NewContainer(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer func() { _ = container.Close() }()

	assert.IsType(t, &eventbus.NoopPublisher{}, container.Publisher)
}

func TestNewContainer_RejectsInvalidPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.WorkStart = 18 * time.Hour

	_, err := NewContainer(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid working policy")
}

func TestNewContainer_RejectsUnknownStorageDriver(t *testing.T) {
	cfg := testConfig()
	cfg.StorageDriver = "oracle"

	_, err := NewContainer(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}
