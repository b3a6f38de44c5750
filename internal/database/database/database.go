// Package database provides database connection management for PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/festy23/ideawaves/internal/database/config"
	"github.com/festy23/ideawaves/internal/database/pool"
	"github.com/festy23/ideawaves/pkg/retry"
)

// connectTimeout bounds the whole retry loop on startup.
const connectTimeout = 2 * time.Minute

// New connects to PostgreSQL using configuration from the environment.
func New(ctx context.Context, log *zap.SugaredLogger) (*gorm.DB, error) {
	return NewWithConfig(ctx, config.LoadConfigFromEnv(), log)
}

// NewWithConfig connects with cfg, retrying transient failures, and applies the pool limits.
func NewWithConfig(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	dsn := config.BuildDSN(cfg)
	attempt := 0
	db, err := retry.DoWithResult(ctx, cfg.Retry, func() (*gorm.DB, error) {
		attempt++
		conn, openErr := Open(postgres.Open(dsn))
		if openErr != nil {
			log.Warnw("Database connection attempt failed",
				"attempt", attempt,
				"error", config.SanitizeError(openErr, cfg),
			)
		}
		return conn, openErr
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, cfg.Pool); err != nil {
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	log.Infow("Database connected",
		"host", cfg.Host,
		"database", cfg.DBName,
		"attempts", attempt,
		"max_open_conns", cfg.Pool.MaxOpenConns,
	)
	return db, nil
}

// Open opens a gorm connection on dialector with the settings shared by every store.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
