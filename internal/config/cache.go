package config

import (
	"fmt"
	"time"
)

// Cache driver names.
const (
	CacheDriverSQLite   = "sqlite"
	CacheDriverPostgres = "postgres"
)

// CacheConfig holds cache store configuration.
type CacheConfig struct {
	// Driver selects the backing store ("sqlite" or "postgres").
	Driver string
	// DSN is the connection string. For sqlite this is a file path or
	// ":memory:"; for postgres a full DSN.
	DSN string
	// DefaultTTL is applied to entries written without an explicit TTL.
	DefaultTTL time.Duration
	// FallbackToMock enables synthetic data when live fetches and stale
	// cache are both unavailable.
	FallbackToMock bool
}

// LoadCacheConfigFromEnv loads cache configuration from environment variables.
func LoadCacheConfigFromEnv() CacheConfig {
	return CacheConfig{
		Driver:         GetEnv("CACHE_DRIVER", CacheDriverSQLite),
		DSN:            GetEnv("CACHE_DSN", "dashboard_cache.db"),
		DefaultTTL:     GetEnvDuration("CACHE_TTL", 15*time.Minute),
		FallbackToMock: GetEnvBool("FALLBACK_TO_MOCK", false),
	}
}

// Validate validates cache configuration.
func (c CacheConfig) Validate() []ValidationError {
	var errs []ValidationError
	if c.Driver != CacheDriverSQLite && c.Driver != CacheDriverPostgres {
		errs = append(errs, ValidationError{
			Variable: "CACHE_DRIVER",
			Message:  fmt.Sprintf("unsupported driver %q (must be: sqlite, postgres)", c.Driver),
		})
	}
	if c.DSN == "" {
		errs = append(errs, ValidationError{
			Variable: "CACHE_DSN",
			Message:  "connection string is required",
		})
	}
	if c.DefaultTTL <= 0 {
		errs = append(errs, ValidationError{
			Variable: "CACHE_TTL",
			Message:  "default TTL must be greater than 0",
		})
	}
	return errs
}
