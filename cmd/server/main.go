package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docrank/internal/api"
	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/logging"
	"github.com/dgallion1/docrank/internal/metrics"
	"github.com/dgallion1/docrank/internal/pipeline"
)

func main() {
	cfg := config.Load()
	log := logging.Setup(os.Stdout, cfg.LogLevel, "json")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()

	orch := pipeline.NewOrchestrator(cfg, m, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, m, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}

		orch.Stop()
	}()

	log.Info("starting docrank", "port", cfg.Port, "workers", cfg.WorkerCount, "queue_size", cfg.MaxQueueSize)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
