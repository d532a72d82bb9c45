package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/triage/internal/engine"
	mcpinternal "github.com/felixgeelhaar/triage/internal/mcp"
	"github.com/felixgeelhaar/triage/pkg/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	if _, err := engine.ParseStrategy(cfg.DefaultStrategy); err != nil {
		logger.Error("invalid TRIAGE_DEFAULT_STRATEGY", "error", err)
		os.Exit(1)
	}

	eng := engine.New(engine.Config{Logger: logger})

	if err := mcpinternal.Serve(ctx, cfg, eng, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
