package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %s)", c.Auth.AccessTokenTTL)
	}

	if c.Server.StartsPerMinute < 0 {
		return fmt.Errorf("server.starts_per_minute must be >= 0 (got %d)", c.Server.StartsPerMinute)
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the %s driver", DriverPostgres)
		}
		if c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return fmt.Errorf("storage.sqlite_path is required for the %s driver", DriverSQLite)
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q (got %q)", DriverPostgres, DriverSQLite, c.Storage.Driver)
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}

	if err := c.Session.validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	return nil
}

func (s *SessionConfig) validate() error {
	if s.MaxQueueLength < 2 {
		return fmt.Errorf("max_queue_length must be >= 2 (got %d)", s.MaxQueueLength)
	}
	if s.DuePullLimit < 1 || s.DuePullLimit > s.MaxQueueLength {
		return fmt.Errorf("due_pull_limit must be within [1, max_queue_length] (got %d)", s.DuePullLimit)
	}
	if s.SmartTopUpThreshold < 0 {
		return fmt.Errorf("smart_top_up_threshold must be >= 0 (got %d)", s.SmartTopUpThreshold)
	}
	if s.IdleTTL <= 0 {
		return fmt.Errorf("idle_ttl must be > 0 (got %s)", s.IdleTTL)
	}
	return nil
}
