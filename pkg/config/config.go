package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel string
	HTTPPort string

	// External market indexer
	IndexerBaseURL      string
	IndexerPollInterval time.Duration
	IndexerSnapshotTTL  time.Duration

	// Encryption gateway
	GatewaySigningAddress string

	// Administration
	AdminToken string

	// Journal
	StorageMode  string // "postgres" or "console"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string

	// Cache
	CacheNumCounters int64
	CacheMaxCost     int64
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// Indexer defaults
		IndexerBaseURL:      getEnvOrDefault("INDEXER_BASE_URL", "https://indexer.private-markets.dev"),
		IndexerPollInterval: getDurationOrDefault("INDEXER_POLL_INTERVAL", 30*time.Second),
		IndexerSnapshotTTL:  getDurationOrDefault("INDEXER_SNAPSHOT_TTL", 5*time.Minute),

		// Gateway
		GatewaySigningAddress: os.Getenv("GATEWAY_SIGNING_ADDRESS"),

		// Administration
		AdminToken: os.Getenv("ADMIN_TOKEN"),

		// Journal defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "console"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "ledger"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "ledger"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "private_markets"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),

		// Cache defaults
		CacheNumCounters: getInt64OrDefault("CACHE_NUM_COUNTERS", 10000),
		CacheMaxCost:     getInt64OrDefault("CACHE_MAX_COST", 1000),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.IndexerBaseURL == "" {
		return fmt.Errorf("INDEXER_BASE_URL cannot be empty")
	}

	if c.IndexerPollInterval <= 0 {
		return fmt.Errorf("INDEXER_POLL_INTERVAL must be positive, got %s", c.IndexerPollInterval)
	}

	if c.StorageMode != "postgres" && c.StorageMode != "console" {
		return fmt.Errorf("STORAGE_MODE must be 'postgres' or 'console', got %q", c.StorageMode)
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt64OrDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
