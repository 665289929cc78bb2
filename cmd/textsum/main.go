package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/drywaters/textsum/internal/bridge"
	"github.com/drywaters/textsum/internal/config"
	"github.com/drywaters/textsum/internal/metrics"
	"github.com/drywaters/textsum/internal/server"
	"github.com/drywaters/textsum/internal/summarizer"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Set up logging
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	var logger *slog.Logger
	if cfg.LogFormat == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	slog.SetDefault(logger)

	slog.Info("starting textsum",
		"port", cfg.Port,
		"provider", cfg.Provider,
		"load_policy", cfg.LoadPolicy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the summarizer in the background so the server can accept
	// connections right away; requests wait on the bridge.
	sumOpts := summarizer.OptionsFromConfig(cfg)
	b := bridge.New(
		func(ctx context.Context) (summarizer.Summarizer, error) {
			return summarizer.New(ctx, sumOpts)
		},
		bridge.Policy(cfg.LoadPolicy),
		bridge.WithStateHook(metrics.SetBridgeState),
	)
	b.Start(ctx)

	srv := server.New(cfg, b)

	// No WriteTimeout: a summarize request lasts as long as the provider call
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	err = g.Wait()

	if cerr := b.Close(); cerr != nil {
		slog.Warn("failed to close summarizer", "error", cerr)
	}
	if err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}
