package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/triage/internal/engine"
	"github.com/felixgeelhaar/triage/internal/task"
)

type analyzeInput struct {
	Tasks    []task.Task `json:"tasks" jsonschema:"required"`
	Strategy string      `json:"strategy,omitempty"`
}

type suggestInput struct {
	Tasks    []task.Task `json:"tasks" jsonschema:"required"`
	Strategy string      `json:"strategy,omitempty"`
	Limit    int         `json:"limit,omitempty"`
}

func registerTaskTools(srv *mcp.Server, deps ToolDependencies) error {
	eng := deps.Engine

	srv.Tool("tasks.analyze").
		Description("Score a batch of tasks and rank them by priority").
		Handler(func(ctx context.Context, input analyzeInput) (*engine.AnalyzeResult, error) {
			if len(input.Tasks) == 0 {
				return nil, errors.New("at least one task is required")
			}
			return eng.Analyze(ctx, engine.AnalyzeRequest{
				Tasks:    input.Tasks,
				Strategy: input.Strategy,
			})
		})

	srv.Tool("tasks.suggest").
		Description("Suggest the next tasks to work on with action items").
		Handler(func(ctx context.Context, input suggestInput) (*engine.SuggestResult, error) {
			if len(input.Tasks) == 0 {
				return nil, errors.New("at least one task is required")
			}
			return eng.Suggest(ctx, engine.SuggestRequest{
				Tasks:    input.Tasks,
				Strategy: input.Strategy,
				Limit:    input.Limit,
			})
		})

	return nil
}
