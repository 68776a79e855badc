package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fairway-collective/roundhouse/app/modules/activity"
	"github.com/fairway-collective/roundhouse/config"
	"github.com/fairway-collective/roundhouse/internal/db/bundb"
	"github.com/fairway-collective/roundhouse/internal/eventbus"
	"github.com/fairway-collective/roundhouse/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/uptrace/bun"
)

// App owns the process-level resources: config, observability, storage, the
// event bus, the activity module, and the HTTP listeners.
type App struct {
	Config        *config.Config
	Observability *observability.Observability

	ActivityModule *activity.Module

	db            *bun.DB
	bus           eventbus.EventBus
	httpServer    *http.Server
	metricsServer *http.Server
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.New(cfg.Observability.Environment, cfg.Observability.LogLevel)
	logger := obs.Logger

	logger.InfoContext(ctx, "Initializing application",
		"environment", cfg.Observability.Environment,
	)

	db, err := bundb.NewDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus, err := eventbus.New(cfg.NATS.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	httpRouter := chi.NewRouter()
	httpRouter.Use(middleware.RequestID)
	httpRouter.Use(middleware.RealIP)
	httpRouter.Use(middleware.Recoverer)

	activityModule, err := activity.NewModule(ctx, cfg, obs, bus, httpRouter, db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize activity module: %w", err)
	}

	app := &App{
		Config:         cfg,
		Observability:  obs,
		ActivityModule: activityModule,
		db:             db,
		bus:            bus,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           httpRouter,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	if cfg.Observability.MetricsAddress != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", obs.MetricsHandler())
		app.metricsServer = &http.Server{
			Addr:              cfg.Observability.MetricsAddress,
			Handler:           metricsMux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return app, nil
}

// Run serves HTTP until the context is cancelled, then shuts down within the
// configured grace period.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger

	errCh := make(chan error, 2)

	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "addr", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if a.metricsServer != nil {
		go func() {
			logger.InfoContext(ctx, "Metrics server listening", "addr", a.metricsServer.Addr)
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.Config.HTTP.ShutdownSeconds)*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown failed", "error", err)
		}
	}

	return nil
}

// Close releases process-level resources.
func (a *App) Close() error {
	logger := a.Observability.Logger

	if a.ActivityModule != nil {
		if err := a.ActivityModule.Close(); err != nil {
			logger.Error("Error closing activity module", "error", err)
		}
	}

	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			logger.Error("Error closing event bus", "error", err)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.Error("Error closing database", "error", err)
			return err
		}
	}

	logger.Info("Application shut down gracefully")
	return nil
}
