package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chuehnone/developers-dashboard/internal/config"
	"github.com/chuehnone/developers-dashboard/pkg/retry"
)

// Open connects to the configured cache backend and applies migrations.
func Open(cfg config.CacheConfig) (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	db, err := retry.DoWithResult(ctx, retry.DatabaseConfig(), func() (*gorm.DB, error) {
		switch cfg.Driver {
		case config.CacheDriverPostgres:
			return gorm.Open(postgres.Open(cfg.DSN), gormCfg)
		default:
			return gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
		}
	})
	if err != nil {
		return nil, sanitizeError(err, cfg)
	}

	if err := Migrate(db, cfg.Driver); err != nil {
		return nil, fmt.Errorf("failed to migrate cache store: %w", err)
	}

	return db, nil
}

// HealthCheck verifies cache store availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cache store connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("cache store ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes the cache store connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close cache store connection: %w", err)
	}
	return nil
}

// sanitizeError strips credentials from connection error messages.
func sanitizeError(err error, cfg config.CacheConfig) error {
	if err == nil {
		return nil
	}
	errMsg := err.Error()
	if cfg.Driver == config.CacheDriverPostgres {
		errMsg = strings.ReplaceAll(errMsg, cfg.DSN, "<redacted dsn>")
	}
	return fmt.Errorf("failed to connect to cache store: %s", errMsg)
}
