// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, audio) via constructors.
  - Optional Infrastructure: PostgreSQL, Redis and Kafka are only wired when
    their connection settings are present.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Cinetrend server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Movie dataset
	MoviesCSVURL string `env:"MOVIES_CSV_URL" envDefault:"final.csv"`
	WatchCSV     bool   `env:"WATCH_CSV"      envDefault:"true"`

	// Relational Database (PostgreSQL). Empty keeps the catalogue in memory.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath overrides the embedded SQL migrations with a directory on disk.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value Cache (Redis). Empty disables the raw CSV cache.
	RedisURL    string        `env:"REDIS_URL"`
	CSVCacheTTL time.Duration `env:"CSV_CACHE_TTL" envDefault:"5m"`

	// Selection events (Kafka). Empty disables publishing.
	KafkaBrokers        []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaSelectionTopic string   `env:"KAFKA_SELECTION_TOPIC" envDefault:"movie.selections"`

	// Audio playback
	AudioBackend       string `env:"AUDIO_BACKEND"        envDefault:"ebiten"`
	AudioAssetDir      string `env:"AUDIO_ASSET_DIR"      envDefault:"./assets"`
	AudioSampleRate    int    `env:"AUDIO_SAMPLE_RATE"    envDefault:"44100"`
	PlaybackMode       string `env:"PLAYBACK_MODE"        envDefault:"award"`
	PlaybackPolicyPath string `env:"PLAYBACK_POLICY_PATH"`

	// Chart rendering
	ChartMetrics []string `env:"CHART_METRICS" envSeparator:"," envDefault:"vote_average"`
	ChartMode    string   `env:"CHART_MODE"    envDefault:"markers"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects enumerated settings outside their known values.
func (c *Config) validate() error {
	switch c.AudioBackend {
	case "ebiten", "silent":
	default:
		return fmt.Errorf("config: AUDIO_BACKEND must be ebiten or silent, got %q", c.AudioBackend)
	}

	switch c.PlaybackMode {
	case "award", "dual":
	default:
		return fmt.Errorf("config: PLAYBACK_MODE must be award or dual, got %q", c.PlaybackMode)
	}

	switch c.ChartMode {
	case "markers", "lines+markers":
	default:
		return fmt.Errorf("config: CHART_MODE must be markers or lines+markers, got %q", c.ChartMode)
	}

	if c.AudioSampleRate <= 0 {
		return fmt.Errorf("config: AUDIO_SAMPLE_RATE must be positive")
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDatabase reports whether PostgreSQL persistence is configured.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// UsesCache reports whether the Redis CSV cache is configured.
func (c *Config) UsesCache() bool {
	return c.RedisURL != ""
}

// PublishesSelections reports whether selection events go to Kafka.
func (c *Config) PublishesSelections() bool {
	return len(c.KafkaBrokers) > 0
}

// AllowsOrigin reports whether origin is listed in EXTRA_ORIGINS.
func (c *Config) AllowsOrigin(origin string) bool {
	for _, allowed := range strings.Split(c.ExtraOrigins, ",") {
		if allowed = strings.TrimSpace(allowed); allowed != "" && allowed == origin {
			return true
		}
	}
	return false
}
