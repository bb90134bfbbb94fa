package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"store/api"
	"store/config"
	"store/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// Run serves until ctx is done, then drains in-flight requests for at most
// the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening",
			zap.String("addr", a.server.Addr),
			zap.String("health", "/health"))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// Handler exposes the routed engine, mostly for tests.
func (a *App) Handler() http.Handler {
	return a.router.Engine()
}

// Close releases the database pool and the redis client.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database", zap.Error(err))
			}
		}
	}
}
