package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/triage/internal/engine"
)

type strategyInfo struct {
	Name    string         `json:"name"`
	Weights engine.Weights `json:"weights"`
	Default bool           `json:"default"`
}

func registerStrategyTools(srv *mcp.Server, deps ToolDependencies) error {
	srv.Tool("strategies.list").
		Description("List the available weighting strategies and their weights").
		Handler(func(ctx context.Context, input struct{}) ([]strategyInfo, error) {
			strategies := engine.Strategies()
			infos := make([]strategyInfo, 0, len(strategies))
			for _, s := range strategies {
				infos = append(infos, strategyInfo{
					Name:    s.String(),
					Weights: s.Weights(),
					Default: s == engine.DefaultStrategy,
				})
			}
			return infos, nil
		})

	return nil
}
