package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/triage/internal/engine"
	"github.com/felixgeelhaar/triage/internal/task"
)

// TaskHandler handles task scoring API requests.
type TaskHandler struct {
	engine          *engine.Engine
	logger          *slog.Logger
	defaultStrategy string
	suggestionLimit int
}

// TaskHandlerConfig holds dependencies for the task handler. The
// configured defaults fill in requests that omit a strategy or limit.
type TaskHandlerConfig struct {
	Engine          *engine.Engine
	Logger          *slog.Logger
	DefaultStrategy string
	SuggestionLimit int
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(cfg TaskHandlerConfig) *TaskHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &TaskHandler{
		engine:          cfg.Engine,
		logger:          cfg.Logger,
		defaultStrategy: cfg.DefaultStrategy,
		suggestionLimit: cfg.SuggestionLimit,
	}
}

// AnalyzeTasks handles POST /api/v1/tasks/analyze
func (h *TaskHandler) AnalyzeTasks(w http.ResponseWriter, r *http.Request) {
	var req engine.AnalyzeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Tasks) == 0 {
		writeError(w, http.StatusBadRequest, "At least one task is required")
		return
	}
	if req.Strategy == "" {
		req.Strategy = h.defaultStrategy
	}

	result, err := h.engine.Analyze(r.Context(), req)
	if err != nil {
		h.writeEngineError(w, err, "failed to analyze tasks")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// SuggestTasks handles POST /api/v1/tasks/suggest
func (h *TaskHandler) SuggestTasks(w http.ResponseWriter, r *http.Request) {
	var req engine.SuggestRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Tasks) == 0 {
		writeError(w, http.StatusBadRequest, "At least one task is required")
		return
	}
	if req.Strategy == "" {
		req.Strategy = h.defaultStrategy
	}
	if req.Limit == 0 {
		req.Limit = h.suggestionLimit
	}

	result, err := h.engine.Suggest(r.Context(), req)
	if err != nil {
		h.writeEngineError(w, err, "failed to suggest tasks")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// strategyDTO describes one strategy in the listing response.
type strategyDTO struct {
	Name    string         `json:"name"`
	Weights engine.Weights `json:"weights"`
	Default bool           `json:"default"`
}

// ListStrategies handles GET /api/v1/strategies
func (h *TaskHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	strategies := engine.Strategies()
	dtos := make([]strategyDTO, len(strategies))
	for i, s := range strategies {
		dtos[i] = strategyDTO{
			Name:    s.String(),
			Weights: s.Weights(),
			Default: s == engine.DefaultStrategy,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"strategies": dtos,
	})
}

// HealthCheck scores a fixed probe task to verify the pipeline end to end.
func (h *TaskHandler) HealthCheck(ctx context.Context) error {
	probe := []task.Task{{
		ID:             1,
		Title:          "health probe",
		DueDate:        task.DateOf(time.Now().Add(24 * time.Hour)),
		EstimatedHours: 1,
		Importance:     5,
	}}
	_, err := h.engine.Analyze(ctx, engine.AnalyzeRequest{Tasks: probe})
	return err
}

func (h *TaskHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON request body")
		return false
	}
	return true
}

// writeEngineError maps scoring pipeline failures onto API responses.
// Invalid input stays a 400 with a machine-readable error code; anything
// unexpected is logged and becomes a 500.
func (h *TaskHandler) writeEngineError(w http.ResponseWriter, err error, logMsg string) {
	if verr, ok := task.AsValidationError(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "validation_failed",
			"message": verr.Error(),
			"details": map[string]any{
				"task_index": verr.Index,
				"task_id":    verr.TaskID,
				"field":      verr.Field,
			},
		})
		return
	}

	if cerr, ok := task.AsCycleError(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "circular_dependencies",
			"message": cerr.Error(),
			"cycles":  cerr.Cycles,
		})
		return
	}

	if errors.Is(err, engine.ErrUnknownStrategy) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "unknown_strategy",
			"message": err.Error(),
		})
		return
	}

	h.logger.Error(logMsg, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
