package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/triage/adapter/cli"
	"github.com/felixgeelhaar/triage/adapter/cli/mcp"
	"github.com/felixgeelhaar/triage/internal/engine"
	"github.com/felixgeelhaar/triage/pkg/config"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// In development without .env, use defaults
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	// Update logger level based on config
	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	cli.SetLogger(logger)

	if _, err := engine.ParseStrategy(cfg.DefaultStrategy); err != nil {
		logger.Error("invalid TRIAGE_DEFAULT_STRATEGY", "error", err)
		os.Exit(1)
	}

	eng := engine.New(engine.Config{Logger: logger})
	cli.SetApp(cli.NewApp(eng, cfg))

	// Register commands
	cli.AddCommand(mcp.Cmd)

	// Execute CLI
	cli.ExecuteContext(ctx)
}
