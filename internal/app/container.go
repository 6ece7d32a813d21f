// Package app wires configuration, infrastructure, and handlers into a
// runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"

	"github.com/felixgeelhaar/slotwise/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/slotwise/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/slotwise/internal/scheduling/application/services"
	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
	"github.com/felixgeelhaar/slotwise/internal/scheduling/infrastructure/availability"
	"github.com/felixgeelhaar/slotwise/internal/scheduling/infrastructure/cache"
	"github.com/felixgeelhaar/slotwise/internal/scheduling/infrastructure/persistence"
	"github.com/felixgeelhaar/slotwise/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/slotwise/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	Policy domain.WorkingPolicy

	Store     domain.CommitmentStore
	Probe     domain.AvailabilityProbe
	Publisher eventbus.Publisher

	AutoScheduleHandler *commands.AutoScheduleHandler
	SuggestSlotsHandler *queries.SuggestSlotsHandler

	closers []func() error
}

// NewContainer builds the dependency graph from configuration.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	c.Policy = domain.WorkingPolicy{
		WorkStart:               cfg.WorkStart,
		WorkEnd:                 cfg.WorkEnd,
		BreakStart:              cfg.BreakStart,
		BreakEnd:                cfg.BreakEnd,
		BufferMinutes:           cfg.BufferMinutes,
		MaxMeetingsPerDay:       cfg.MaxMeetingsPerDay,
		PreferredDuration:       cfg.PreferredDuration,
		SlotGranularity:         cfg.SlotGranularity,
		DefaultCommitmentLength: cfg.DefaultCommitmentLength,
	}
	if err := c.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid working policy: %w", err)
	}

	if err := c.initStore(ctx, cfg); err != nil {
		return nil, err
	}
	if err := c.initPublisher(cfg, logger); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.initProbe(cfg, logger)

	var patternCache queries.PatternCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(opts)
		c.closers = append(c.closers, client.Close)

		redisCache := cache.NewRedisPatternCache(client, cfg.Tenant, cfg.PatternTTL)
		patternCache = redisCache

		// New bookings change the historical patterns; drop the cached stats
		// whenever a slot is committed locally.
		if bus, ok := c.Publisher.(*eventbus.InProcessBus); ok {
			bus.Subscribe("scheduling.slot.committed", func(ctx context.Context, _ eventbus.EventEnvelope) error {
				return redisCache.Invalidate(ctx)
			})
		}
	}

	generator := services.NewSlotGenerator(services.SlotGeneratorConfig{MaxRangeDays: cfg.MaxRangeDays})
	analyzer := services.NewPatternAnalyzer()
	ranker := services.NewSlotRanker(services.DefaultSlotRankerConfig())
	builder := services.NewRecommendationBuilder(services.DefaultRecommendationBuilderConfig())

	c.AutoScheduleHandler = commands.NewAutoScheduleHandler(
		c.Store, c.Store, c.Probe, generator, analyzer, ranker, c.Publisher, logger,
	)
	c.SuggestSlotsHandler = queries.NewSuggestSlotsHandler(
		c.Store, c.Probe, generator, analyzer, ranker, builder, patternCache, logger,
	)

	return c, nil
}

func (c *Container) initStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.StorageDriver {
	case "memory":
		c.Store = persistence.NewInMemoryCommitmentStore()
	case "postgres":
		store, err := persistence.OpenPostgresCommitmentStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		c.Store = store
		c.closers = append(c.closers, func() error { store.Close(); return nil })
	case "sqlite":
		store, err := persistence.OpenSQLiteCommitmentStore(cfg.SQLitePath)
		if err != nil {
			return err
		}
		c.Store = store
		c.closers = append(c.closers, store.Close)
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	return nil
}

func (c *Container) initPublisher(cfg *config.Config, logger *slog.Logger) error {
	if cfg.EventsDisabled {
		c.Publisher = eventbus.NewNoopPublisher(logger)
		return nil
	}
	if cfg.RabbitMQURL == "" {
		c.Publisher = eventbus.NewInProcessBus(logger)
		return nil
	}

	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		return fmt.Errorf("failed to connect event publisher: %w", err)
	}
	c.Publisher = publisher
	c.closers = append(c.closers, publisher.Close)
	return nil
}

func (c *Container) initProbe(cfg *config.Config, logger *slog.Logger) {
	switch cfg.ProbeDriver {
	case "google":
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GoogleAccessToken})
		probe := availability.NewGoogleFreeBusyProbe(source, logger)
		c.Probe = availability.NewBreakerProbe(probe, availability.DefaultBreakerConfig("google-freebusy"), logger)
	case "caldav":
		baseURL := cfg.CalDAVURL
		if baseURL == "" {
			baseURL = availability.AppleCalDAVURL
		}
		probe := availability.NewCalDAVProbe(baseURL, cfg.CalDAVUsername, cfg.CalDAVPassword, logger)
		c.Probe = availability.NewBreakerProbe(probe, availability.DefaultBreakerConfig("caldav"), logger)
	default:
		c.Probe = availability.AlwaysAvailable()
	}
}

// Close releases every resource the container opened, in reverse order.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
