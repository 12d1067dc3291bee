package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/wildfire-insights/internal/adapter/csvsource"
	httpadapter "github.com/couchcryptid/wildfire-insights/internal/adapter/http"
	"github.com/couchcryptid/wildfire-insights/internal/config"
	"github.com/couchcryptid/wildfire-insights/internal/domain"
	"github.com/couchcryptid/wildfire-insights/internal/engine"
	"github.com/couchcryptid/wildfire-insights/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	mappings, err := domain.LoadMappings(cfg.MappingsPath)
	if err != nil {
		logger.Error("failed to load classification mappings", "error", err)
		os.Exit(1)
	}

	rows, err := csvsource.ReadFile(cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to read dataset", "error", err, "path", cfg.DatasetPath)
		os.Exit(1)
	}
	metrics.RowsLoaded.Add(float64(len(rows)))

	incidents, stats := domain.BuildIncidents(rows, mappings)
	for reason, n := range stats.Rejected {
		metrics.RowsRejected.WithLabelValues(reason).Add(float64(n))
	}
	metrics.DatasetSize.Set(float64(len(incidents)))
	logger.Info("dataset loaded",
		"rows", len(rows),
		"accepted", stats.Accepted,
		"rejected", stats.RejectedTotal(),
	)

	eng := engine.New(incidents, mappings, logger, metrics, engine.Options{
		DebounceWindow: cfg.DebounceWindow,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, eng, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
