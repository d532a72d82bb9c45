package cli

import (
	"github.com/felixgeelhaar/triage/internal/engine"
	"github.com/felixgeelhaar/triage/pkg/config"
)

// App holds the CLI application dependencies.
type App struct {
	Engine *engine.Engine
	Config *config.Config
}

// NewApp creates a new CLI application around a scoring engine.
func NewApp(eng *engine.Engine, cfg *config.Config) *App {
	return &App{
		Engine: eng,
		Config: cfg,
	}
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
