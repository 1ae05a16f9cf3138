package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	api "taskapi/internal/adapter/http"
	"taskapi/internal/adapter/telemetry"
	"taskapi/pkg/config"
)

func main() {
	cfg := config.MustLoad()

	logger, err := config.NewLogger(cfg.Log, cfg.Telemetry.ServiceName)

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel(cfg.Log.Level)})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.NewContainer(ctx, cfg.Telemetry, cfg.Server.Environment)

	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	go tel.ServeMetrics(slog.Default())
	tel.AppMetrics.StartSystemMetrics(ctx)

	probe := tel.NewTelemetryProbe(slog.Default())

	server, err := api.NewServer(ctx, cfg, tel.AppMetrics, probe, logger)

	if err != nil {
		logger.Fatal("Failed to build server", zap.Error(err))
	}

	if err := server.Run(ctx); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}

func slogLevel(level string) slog.Level {
	var l slog.Level

	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}

	return l
}
