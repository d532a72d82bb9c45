package mcp

import (
	"errors"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/triage/internal/engine"
)

// ToolDependencies provides the scoring engine for MCP tools.
type ToolDependencies struct {
	Engine *engine.Engine
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.Engine == nil {
		return errors.New("engine is required")
	}

	if err := registerTaskTools(srv, deps); err != nil {
		return err
	}
	if err := registerStrategyTools(srv, deps); err != nil {
		return err
	}

	return nil
}
