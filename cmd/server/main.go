package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"smuggr.xyz/timeweave/internal/config"
	"smuggr.xyz/timeweave/internal/httpapi"
	"smuggr.xyz/timeweave/internal/logging"
	"smuggr.xyz/timeweave/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	m := metrics.New()
	handlers := httpapi.NewHandlers(logger, m, cfg.AllowFallback, cfg.SolverRandomSeed, cfg.SolverTimeLimitSec)
	router := httpapi.NewRouter(logger, m, handlers)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.SolverTimeLimitSec+30) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Sugar().Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGraceTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalw("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}
