package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shapedtime/wsindex/internal/api"
	"github.com/shapedtime/wsindex/internal/config"
	"github.com/shapedtime/wsindex/internal/digest"
	"github.com/shapedtime/wsindex/internal/metrics"
	"github.com/shapedtime/wsindex/internal/series"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger, logCloser, err := cfg.Log.NewLogger(os.Stdout)
	if err != nil {
		slog.Error("Failed to setup logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	slog.Info("Starting wsindex", "version", version, "config", *configPath)

	// Login digests are impossible without MD5 and SHA-1
	if err := digest.Available(); err != nil {
		slog.Error("Hash primitives unavailable", "error", err)
		os.Exit(1)
	}

	started := time.Now()

	// Initialize metrics
	var m *metrics.Metrics
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			metrics.NewStatusCollector(version, started, digest.Available),
		)
		m = metrics.New(reg)
		metricsServer = metrics.NewServer(cfg.Metrics.Port, reg)
		slog.Info("Metrics initialized", "port", cfg.Metrics.Port)
	}

	// Initialize services
	organizer := series.NewOrganizer(cfg.Organizer.Workers, m)
	apiServer := api.NewServer(organizer, m, version)
	apiServer.SetAuth(cfg.Server.Auth)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers in goroutines
	go func() {
		slog.Info("Starting REST API server", "port", cfg.Server.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("REST API server error", "error", err)
		}
	}()

	if metricsServer != nil {
		go func() {
			_ = metricsServer.Start()
		}()
	}

	slog.Info("wsindex is ready",
		"api_url", fmt.Sprintf("http://localhost:%d/api", cfg.Server.HTTPPort),
		"workers", cfg.Organizer.Workers,
	)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	slog.Info("Received signal, shutting down", "signal", sig)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("REST API server shutdown error", "error", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			slog.Error("Metrics server shutdown error", "error", err)
		}
	}

	slog.Info("wsindex stopped")
}
