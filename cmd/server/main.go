// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/festy23/ideawaves/internal/config"
	"github.com/festy23/ideawaves/internal/database/database"
	"github.com/festy23/ideawaves/internal/database/migrate"
	"github.com/festy23/ideawaves/internal/realtime"
	applogger "github.com/festy23/ideawaves/pkg/logger"
	"github.com/festy23/ideawaves/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	// .env is optional; real deployments pass the environment directly.
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := applogger.NewWithConfig(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if stats, err := database.GetStats(db); err == nil {
			logger.Infow("Database pool stats", "open", stats.OpenConnections, "wait_count", stats.WaitCount)
		}
		if err := database.Close(db); err != nil {
			logger.Warnw("Database close failed", "error", err)
		}
	}()

	if err := migrate.Migrate(db, logger); err != nil {
		return err
	}

	images, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to init image storage: %w", err)
	}

	var backplane realtime.Backplane
	if cfg.Realtime.RedisURL != "" {
		backplane, err = realtime.NewRedisBackplane(cfg.Realtime.RedisURL, cfg.Realtime.ChannelPrefix, logger)
		if err != nil {
			return fmt.Errorf("failed to init realtime backplane: %w", err)
		}
		logger.Infow("Realtime backplane enabled", "prefix", cfg.Realtime.ChannelPrefix)
	}

	a := newApp(dependencies{
		cfg:       cfg,
		db:        db,
		images:    images,
		backplane: backplane,
		logger:    logger,
	})
	a.hub.Run(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      a.engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Infow("Server starting", "address", srv.Addr, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Infow("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.hub.Close(); err != nil {
		logger.Warnw("Realtime hub close failed", "error", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Infow("Server stopped")
	return nil
}
