package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riftlabs/fantasy-esports/internal/app"
	"github.com/riftlabs/fantasy-esports/internal/config"
	"github.com/riftlabs/fantasy-esports/internal/observability"
	"github.com/riftlabs/fantasy-esports/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	appLogger, logShutdown, err := observability.InitBetterStackLogger(cfg, logging.NewJSON(cfg.LogLevel))
	if err != nil {
		panic(err)
	}
	logging.SetDefault(appLogger)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	}))

	uptraceShutdown, err := observability.InitUptrace(cfg, appLogger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	pyroscopeStop, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		os.Exit(1)
	}

	application, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	application.StartBackgroundJobs()

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := observability.StopPprofServer(pprofSrv, logger, shutdownTimeout); err != nil {
		logger.Error("stop pprof server", "error", err)
	}
	if err := pyroscopeStop(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	if err := uptraceShutdown(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}
	if err := logShutdown(shutdownCtx); err != nil {
		logger.Error("shutdown log shipper", "error", err)
	}

	logger.Info("http server stopped")
}

func slogLevel(level logging.Level) slog.Level {
	switch {
	case level <= logging.LevelDebug:
		return slog.LevelDebug
	case level == logging.LevelInfo:
		return slog.LevelInfo
	case level == logging.LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
