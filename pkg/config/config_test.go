package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.StorageMode != "console" {
		t.Errorf("StorageMode = %q, want console", cfg.StorageMode)
	}
	if cfg.IndexerPollInterval != 30*time.Second {
		t.Errorf("IndexerPollInterval = %s, want 30s", cfg.IndexerPollInterval)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("STORAGE_MODE", "postgres")
	t.Setenv("INDEXER_POLL_INTERVAL", "5s")
	t.Setenv("CACHE_MAX_COST", "42")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.HTTPPort != "9999" {
		t.Errorf("HTTPPort = %q", cfg.HTTPPort)
	}
	if cfg.StorageMode != "postgres" {
		t.Errorf("StorageMode = %q", cfg.StorageMode)
	}
	if cfg.IndexerPollInterval != 5*time.Second {
		t.Errorf("IndexerPollInterval = %s", cfg.IndexerPollInterval)
	}
	if cfg.CacheMaxCost != 42 {
		t.Errorf("CacheMaxCost = %d", cfg.CacheMaxCost)
	}
}

func TestLoadFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("INDEXER_POLL_INTERVAL", "not-a-duration")
	t.Setenv("CACHE_MAX_COST", "not-a-number")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.IndexerPollInterval != 30*time.Second {
		t.Errorf("IndexerPollInterval = %s, want default 30s", cfg.IndexerPollInterval)
	}
	if cfg.CacheMaxCost != 1000 {
		t.Errorf("CacheMaxCost = %d, want default 1000", cfg.CacheMaxCost)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid-defaults", mutate: func(c *Config) {}},
		{name: "empty-port", mutate: func(c *Config) { c.HTTPPort = "" }, wantErr: true},
		{name: "empty-indexer-url", mutate: func(c *Config) { c.IndexerBaseURL = "" }, wantErr: true},
		{name: "zero-poll-interval", mutate: func(c *Config) { c.IndexerPollInterval = 0 }, wantErr: true},
		{name: "bad-storage-mode", mutate: func(c *Config) { c.StorageMode = "redis" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				HTTPPort:            "8080",
				IndexerBaseURL:      "http://localhost:1234",
				IndexerPollInterval: time.Second,
				StorageMode:         "console",
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		logger, err := NewLogger(level)
		if err != nil || logger == nil {
			t.Errorf("NewLogger(%q) = %v, %v", level, logger, err)
		}
	}

	_, err := NewLogger("shouting")
	if err == nil {
		t.Error("NewLogger(shouting) expected error")
	}
}
