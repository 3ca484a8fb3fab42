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
  - DI-Friendly: Passed to core components (DB, Redis, Gateway) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/inkwell/internal/gateway"
)

// Relay modes accepted by REALTIME_RELAY.
const (
	RelayLocal = "local"
	RelayRedis = "redis"
)

// # Configuration Schema

// Config holds all runtime configuration for the Inkwell API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache and Pub/Sub (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Remote identity service
	SSOURL        string        `env:"SSO_URL,required,notEmpty"`
	SSOTimeout    time.Duration `env:"SSO_TIMEOUT"     envDefault:"5s"`
	SSORetries    int           `env:"SSO_RETRIES"     envDefault:"0"`
	SSORetryDelay time.Duration `env:"SSO_RETRY_DELAY" envDefault:"200ms"`

	// Authorization policy
	APIPrefix   string   `env:"API_PREFIX"   envDefault:"/api/v1"`
	PublicPaths []string `env:"PUBLIC_PATHS" envSeparator:";"`

	// Cross-Origin Resource Sharing
	ExtraOrigins     string `env:"EXTRA_ORIGINS"`
	WSOriginPatterns string `env:"WS_ORIGIN_PATTERNS"`

	// Realtime fan-out
	RealtimeRelay  string        `env:"REALTIME_RELAY"  envDefault:"redis"`
	RealtimeBuffer int           `env:"REALTIME_BUFFER" envDefault:"32"`
	PublishTimeout time.Duration `env:"PUBLISH_TIMEOUT" envDefault:"10s"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.RealtimeRelay != RelayLocal && cfg.RealtimeRelay != RelayRedis {
		return nil, fmt.Errorf("config: REALTIME_RELAY must be %q or %q, got %q", RelayLocal, RelayRedis, cfg.RealtimeRelay)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins returns the trimmed, non-empty entries of EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	return splitList(c.ExtraOrigins)
}

// WebsocketOrigins returns the origin patterns accepted on websocket upgrades.
func (c *Config) WebsocketOrigins() []string {
	return splitList(c.WSOriginPatterns)
}

// GatewayConfig builds the explicit authorization policy configuration.
//
// An empty PUBLIC_PATHS falls back to [gateway.DefaultPublicPatterns].
func (c *Config) GatewayConfig() gateway.Config {
	patterns := c.PublicPaths
	if len(patterns) == 0 {
		patterns = gateway.DefaultPublicPatterns()
	}

	return gateway.Config{
		PublicPatterns: patterns,
		APIPrefix:      c.APIPrefix,
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
