// Package engine scores and ranks task batches against a weighting
// strategy. Scoring is pure computation: the same batch and reference
// date always produce the same ranking.
package engine

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/felixgeelhaar/triage/internal/task"
	"github.com/felixgeelhaar/triage/pkg/observability"
)

// Level classifies a composite score.
type Level string

const (
	LevelHigh   Level = "High"
	LevelMedium Level = "Medium"
	LevelLow    Level = "Low"
)

// Score thresholds for priority levels.
const (
	highThreshold   = 80.0
	mediumThreshold = 60.0
)

// Config configures an Engine.
type Config struct {
	// Logger receives operation logs. Defaults to slog.Default().
	Logger *slog.Logger
	// Metrics receives operation metrics. Defaults to NoopMetrics.
	Metrics observability.Metrics
	// Now supplies the reference instant for all date arithmetic.
	// Defaults to time.Now.
	Now func() time.Time
}

// Engine scores task batches. Apart from its clock and instrumentation
// it holds no state, so a single Engine is safe for concurrent use.
type Engine struct {
	logger  *slog.Logger
	metrics observability.Metrics
	now     func() time.Time
}

// New creates an Engine.
func New(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetrics{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		now:     cfg.Now,
	}
}

// AnalyzeRequest is a batch of tasks to score. An empty Strategy selects
// the default.
type AnalyzeRequest struct {
	Tasks    []task.Task `json:"tasks"`
	Strategy string      `json:"strategy,omitempty"`
}

// ComponentScores are the per-dimension scores behind a priority score.
type ComponentScores struct {
	Urgency    float64 `json:"urgency"`
	Importance float64 `json:"importance"`
	Effort     float64 `json:"effort"`
	Dependency float64 `json:"dependency"`
}

// PriorityResult is one scored task.
type PriorityResult struct {
	TaskID          int64           `json:"task_id"`
	Title           string          `json:"title"`
	DueDate         task.Date       `json:"due_date"`
	EstimatedHours  float64         `json:"estimated_hours"`
	Importance      int             `json:"importance"`
	Dependencies    []int64         `json:"dependencies,omitempty"`
	PriorityScore   float64         `json:"priority_score"`
	PriorityLevel   Level           `json:"priority_level"`
	Explanation     string          `json:"explanation"`
	ComponentScores ComponentScores `json:"component_scores"`
}

// AnalyzeResult is a scored batch ordered by descending priority.
type AnalyzeResult struct {
	Ranked     []PriorityResult `json:"ranked"`
	Strategy   Strategy         `json:"strategy"`
	TotalTasks int              `json:"total_tasks"`
	Warnings   []task.Warning   `json:"warnings,omitempty"`
}

// Analyze validates, scores, and ranks a batch of tasks. Failures are
// all-or-nothing: a validation error, unknown strategy, or dependency
// cycle aborts the call before any result is produced.
func (e *Engine) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	return observability.TimeOperationResult(ctx, e.logger, e.metrics, "engine.analyze", func() (*AnalyzeResult, error) {
		return e.analyze(ctx, req, task.DateOf(e.now()))
	})
}

func (e *Engine) analyze(ctx context.Context, req AnalyzeRequest, today task.Date) (*AnalyzeResult, error) {
	warnings, err := task.ValidateBatch(req.Tasks)
	if err != nil {
		e.metrics.Counter(observability.MetricValidationFailures, 1)
		return nil, err
	}

	strategy, err := ParseStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}

	graph := task.NewGraph(req.Tasks)
	if cycles := graph.Cycles(); len(cycles) > 0 {
		e.metrics.Counter(observability.MetricCyclesDetected, int64(len(cycles)))
		return nil, &task.CycleError{Cycles: cycles}
	}
	blocked := graph.BlockedCounts()

	weights := strategy.Weights()
	ranked := make([]PriorityResult, len(req.Tasks))
	for i, t := range req.Tasks {
		days := today.DaysUntil(t.DueDate)

		scores := ComponentScores{
			Urgency:    round2(urgencyScore(days)),
			Importance: round2(importanceScore(t.Importance)),
			Effort:     round2(effortScore(t.EstimatedHours)),
			Dependency: round2(dependencyScore(blocked[i])),
		}

		// The composite is the weighted sum of the reported component
		// scores, so the output stays internally consistent.
		score := scores.Urgency*weights.Urgency +
			scores.Importance*weights.Importance +
			scores.Effort*weights.Effort +
			scores.Dependency*weights.Dependency
		score = clamp(round2(score), 0, 100)

		ranked[i] = PriorityResult{
			TaskID:          t.ID,
			Title:           t.Title,
			DueDate:         t.DueDate,
			EstimatedHours:  t.EstimatedHours,
			Importance:      t.Importance,
			Dependencies:    t.Dependencies,
			PriorityScore:   score,
			PriorityLevel:   levelFor(score),
			Explanation:     buildExplanation(t, days),
			ComponentScores: scores,
		}
	}

	sortByPriority(ranked)

	e.metrics.Counter(observability.MetricBatchesAnalyzed, 1, observability.T("strategy", strategy.String()))
	e.metrics.Counter(observability.MetricTasksScored, int64(len(ranked)))
	e.logger.DebugContext(ctx, "batch analyzed",
		"tasks", len(ranked),
		"strategy", strategy.String(),
	)

	return &AnalyzeResult{
		Ranked:     ranked,
		Strategy:   strategy,
		TotalTasks: len(ranked),
		Warnings:   warnings,
	}, nil
}

// levelFor buckets a composite score into a priority level.
func levelFor(score float64) Level {
	switch {
	case score >= highThreshold:
		return LevelHigh
	case score >= mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// sortByPriority orders by descending score, ties broken by earlier due
// date, then ascending task id. Ids are unique per batch, so the order
// is total and repeated calls rank identically.
func sortByPriority(results []PriorityResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].PriorityScore != results[j].PriorityScore {
			return results[i].PriorityScore > results[j].PriorityScore
		}
		if !results[i].DueDate.Equal(results[j].DueDate) {
			return results[i].DueDate.Before(results[j].DueDate)
		}
		return results[i].TaskID < results[j].TaskID
	})
}
