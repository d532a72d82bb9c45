package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/felixgeelhaar/triage/internal/engine"
	mcpinternal "github.com/felixgeelhaar/triage/internal/mcp"
	"github.com/felixgeelhaar/triage/pkg/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if _, err := engine.ParseStrategy(cfg.DefaultStrategy); err != nil {
			return fmt.Errorf("invalid default strategy in config: %w", err)
		}

		logger := newServerLogger(cmd.OutOrStdout(), cfg.IsDevelopment())

		eng := engine.New(engine.Config{Logger: logger})

		err = mcpinternal.Serve(ctx, cfg, eng, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func newServerLogger(out io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
}
