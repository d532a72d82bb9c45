package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/felixgeelhaar/triage/adapter/api"
	"github.com/felixgeelhaar/triage/internal/engine"
	"github.com/felixgeelhaar/triage/pkg/config"
	"github.com/felixgeelhaar/triage/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server and block until interrupted.

The server exposes task scoring under /api/v1 and a health check
under /health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if _, err := engine.ParseStrategy(cfg.DefaultStrategy); err != nil {
			return fmt.Errorf("invalid default strategy in config: %w", err)
		}

		srvLogger := newServerLogger(cfg)

		handler := api.NewTaskHandler(api.TaskHandlerConfig{
			Engine:          serveEngine(srvLogger),
			Logger:          srvLogger,
			DefaultStrategy: cfg.DefaultStrategy,
			SuggestionLimit: cfg.SuggestionLimit,
		})
		server := api.NewServer(api.ServerConfig{
			Addr:         cfg.HTTPAddr,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  cfg.HTTPIdleTimeout,
		}, handler, srvLogger, nil)

		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// newServerLogger builds the request logger for the API server. Unlike
// the plain CLI logger it pulls correlation and request ids out of the
// request context, so every log line of a request carries them.
func newServerLogger(cfg *config.Config) *slog.Logger {
	logCfg := observability.DefaultLogConfig()
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	if verbose {
		logCfg.Level = observability.LogLevelDebug
	}
	logCfg.ServiceVersion = Version
	return observability.NewLogger(logCfg)
}

// loadConfig returns the app config, loading it from the environment
// when main did not provide one.
func loadConfig() (*config.Config, error) {
	if a := GetApp(); a != nil && a.Config != nil {
		return a.Config, nil
	}
	return config.Load()
}

// serveEngine returns the shared engine or builds one for the server.
func serveEngine(l *slog.Logger) *engine.Engine {
	if a := GetApp(); a != nil && a.Engine != nil {
		return a.Engine
	}
	return engine.New(engine.Config{Logger: l})
}
