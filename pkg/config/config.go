// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	Tenant   string

	// Storage: "memory", "sqlite", or "postgres".
	StorageDriver string
	SQLitePath    string
	DatabaseURL   string

	// Redis (pattern cache); empty disables caching.
	RedisURL   string
	PatternTTL time.Duration

	// RabbitMQ; empty selects the in-process bus.
	RabbitMQURL string
	// EventsDisabled drops domain events instead of publishing them.
	EventsDisabled bool

	// Working policy
	WorkStart               time.Duration
	WorkEnd                 time.Duration
	BreakStart              time.Duration
	BreakEnd                time.Duration
	BufferMinutes           int
	MaxMeetingsPerDay       int
	PreferredDuration       time.Duration
	SlotGranularity         time.Duration
	DefaultCommitmentLength time.Duration

	// Scheduling
	AutoCommitThreshold float64
	MaxRangeDays        int

	// Availability probe: "static", "google", or "caldav".
	ProbeDriver string

	// Google Calendar
	GoogleAccessToken string

	// CalDAV
	CalDAVURL      string
	CalDAVUsername string
	CalDAVPassword string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("SLOTWISE_ENV", "development"),
		LogLevel: getEnv("SLOTWISE_LOG_LEVEL", "info"),
		Tenant:   getEnv("SLOTWISE_TENANT", "default"),

		StorageDriver: getEnv("SLOTWISE_STORAGE_DRIVER", ""),
		SQLitePath:    getEnv("SLOTWISE_SQLITE_PATH", defaultSQLitePath()),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		RedisURL:   getEnv("REDIS_URL", ""),
		PatternTTL: getDurationEnv("SLOTWISE_PATTERN_TTL", 15*time.Minute),

		RabbitMQURL:    getEnv("RABBITMQ_URL", ""),
		EventsDisabled: getBoolEnv("SLOTWISE_EVENTS_DISABLED", false),

		WorkStart:               getDurationEnv("SLOTWISE_WORK_START", 9*time.Hour),
		WorkEnd:                 getDurationEnv("SLOTWISE_WORK_END", 17*time.Hour),
		BreakStart:              getDurationEnv("SLOTWISE_BREAK_START", 12*time.Hour),
		BreakEnd:                getDurationEnv("SLOTWISE_BREAK_END", 13*time.Hour),
		BufferMinutes:           getIntEnv("SLOTWISE_BUFFER_MINUTES", 15),
		MaxMeetingsPerDay:       getIntEnv("SLOTWISE_MAX_MEETINGS_PER_DAY", 6),
		PreferredDuration:       getDurationEnv("SLOTWISE_PREFERRED_DURATION", 60*time.Minute),
		SlotGranularity:         getDurationEnv("SLOTWISE_SLOT_GRANULARITY", 30*time.Minute),
		DefaultCommitmentLength: getDurationEnv("SLOTWISE_DEFAULT_COMMITMENT_LENGTH", 60*time.Minute),

		AutoCommitThreshold: getFloatEnv("SLOTWISE_AUTO_COMMIT_THRESHOLD", 80),
		MaxRangeDays:        getIntEnv("SLOTWISE_MAX_RANGE_DAYS", 92),

		ProbeDriver: getEnv("SLOTWISE_PROBE_DRIVER", "static"),

		GoogleAccessToken: getEnv("GOOGLE_ACCESS_TOKEN", ""),

		CalDAVURL:      getEnv("CALDAV_URL", ""),
		CalDAVUsername: getEnv("CALDAV_USERNAME", ""),
		CalDAVPassword: getEnv("CALDAV_PASSWORD", ""),
	}

	// Pick a storage driver from what is configured when not set explicitly.
	if cfg.StorageDriver == "" {
		switch {
		case cfg.DatabaseURL != "":
			cfg.StorageDriver = "postgres"
		default:
			cfg.StorageDriver = "sqlite"
		}
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".slotwise/slotwise.db"
	}
	return home + "/.slotwise/slotwise.db"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
