// Package main is the entry point for the transfer validation API.
// It loads configuration, builds the document store and the CEP client,
// and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apix/internal/config"
	"apix/internal/repositories"
	"apix/internal/routes"
	"apix/internal/services/cep"
	"apix/internal/services/transfer"
	"apix/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	logger := telemetry.InitLogger(cfg.ServiceName, !cfg.IsProduction())

	shutdownTracer, err := telemetry.InitTracer(cfg.ServiceName, cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		logger.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer shutdownTracer()

	store, err := repositories.NewDocumentStore(cfg)
	if err != nil {
		logger.Error("failed to initialize document store",
			slog.String("driver", cfg.Storage.Driver),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close document store", slog.String("error", err.Error()))
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		logger.Warn("document store not reachable", slog.String("error", err.Error()))
	} else {
		logger.Info("document store ready", slog.String("driver", cfg.Storage.Driver))
	}
	cancel()

	transferService := transfer.NewService(
		transfer.NewCEPValidator(cep.NewClient(cfg.CEP.BaseURL, cfg.CEP.Timeout)),
		store,
		transfer.NewPrometheusMetrics(prometheus.DefaultRegisterer),
		logger,
	)

	app := routes.NewApp(routes.Options{
		TransferService: transferService,
		Store:           store,
		StorageDriver:   cfg.Storage.Driver,
		Registerer:      prometheus.DefaultRegisterer,
		Gatherer:        prometheus.DefaultGatherer,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		AccessLog:       true,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
	}
}
