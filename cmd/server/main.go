package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"pulseboard/internal/airtable"
	"pulseboard/internal/automation"
	"pulseboard/internal/cache"
	"pulseboard/internal/cache/janitor"
	"pulseboard/internal/dashboard"
	"pulseboard/internal/dashboard/handler"
	"pulseboard/internal/platform/config"
	"pulseboard/internal/platform/health"
	"pulseboard/internal/platform/logger"
	httptransport "pulseboard/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing pulseboard",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	store := cache.New(cfg.Airtable.CacheTTL)

	sweeper, err := janitor.New(store, janitor.WithLogger(log))
	if err != nil {
		log.Error("failed to create cache janitor", "error", err)
		os.Exit(1)
	}
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go func() {
		if err := sweeper.Start(janitorCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("cache janitor stopped", "error", err)
		}
	}()

	tables := airtable.New(airtable.Config{
		BaseURL:    cfg.Airtable.BaseURL,
		APIKey:     cfg.Airtable.APIKey,
		BaseID:     cfg.Airtable.BaseID,
		Timeout:    cfg.Airtable.Timeout,
		MaxRetries: cfg.Airtable.MaxRetries,
		RetryDelay: cfg.Airtable.RetryDelay,
		CacheTTL:   cfg.Airtable.CacheTTL,
	}, store, log)

	stats := dashboard.NewService(tables, store, log, dashboard.WithTTL(cfg.StatsTTL))

	auto := automation.New(automation.Config{
		BaseURL: cfg.Automation.BaseURL,
		APIKey:  cfg.Automation.APIKey,
		Timeout: cfg.Automation.Timeout,
	}, log)

	api := handler.New(stats, tables, auto, log)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("airtable_config", func() error {
		return cfg.Airtable.Validate()
	})

	router := httptransport.NewRouter(api, healthHandler, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
