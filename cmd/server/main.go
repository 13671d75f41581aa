package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/linkinbio-be/internal/config"
	"github.com/hongminglow/linkinbio-be/internal/server"
	"github.com/hongminglow/linkinbio-be/internal/storage/backend"
	"github.com/hongminglow/linkinbio-be/internal/telemetry"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()
	shutdownTelemetry := telemetry.Setup(ctx, cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	store, err := backend.Open(ctx, cfg)
	if err != nil {
		logger.Error("init database", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(cfg, store, logger)

	go func() {
		logger.Info("link-in-bio backend listening", "addr", srv.Addr())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", "error", err)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; relying on existing environment")
	}
}
