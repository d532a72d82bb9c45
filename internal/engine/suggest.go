package engine

import (
	"context"
	"time"

	"github.com/felixgeelhaar/triage/internal/task"
	"github.com/felixgeelhaar/triage/pkg/observability"
)

// DefaultSuggestionLimit is the number of suggestions returned when a
// request does not ask for a specific count.
const DefaultSuggestionLimit = 3

// SuggestRequest asks for the top tasks to work on next. Limit values
// below one select the default.
type SuggestRequest struct {
	Tasks    []task.Task `json:"tasks"`
	Strategy string      `json:"strategy,omitempty"`
	Limit    int         `json:"limit,omitempty"`
}

// Suggestion is one recommended task with its next steps.
type Suggestion struct {
	TaskID         int64     `json:"task_id"`
	Title          string    `json:"title"`
	DueDate        task.Date `json:"due_date"`
	EstimatedHours float64   `json:"estimated_hours"`
	Importance     int       `json:"importance"`
	PriorityScore  float64   `json:"priority_score"`
	Reason         string    `json:"reason"`
	ActionItems    []string  `json:"action_items"`
}

// SuggestResult is an ordered list of recommendations.
type SuggestResult struct {
	Suggestions []Suggestion   `json:"suggestions"`
	Strategy    Strategy       `json:"strategy"`
	GeneratedAt time.Time      `json:"generated_at"`
	Warnings    []task.Warning `json:"warnings,omitempty"`
}

// Suggest ranks the batch and returns the leading tasks, each annotated
// with action items. The ranking is identical to Analyze on the same
// input.
func (e *Engine) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResult, error) {
	return observability.TimeOperationResult(ctx, e.logger, e.metrics, "engine.suggest", func() (*SuggestResult, error) {
		now := e.now()
		today := task.DateOf(now)

		analyzed, err := e.analyze(ctx, AnalyzeRequest{Tasks: req.Tasks, Strategy: req.Strategy}, today)
		if err != nil {
			return nil, err
		}

		limit := req.Limit
		if limit < 1 {
			limit = DefaultSuggestionLimit
		}
		if limit > len(analyzed.Ranked) {
			limit = len(analyzed.Ranked)
		}

		suggestions := make([]Suggestion, 0, limit)
		for i, r := range analyzed.Ranked[:limit] {
			days := today.DaysUntil(r.DueDate)
			suggestions = append(suggestions, Suggestion{
				TaskID:         r.TaskID,
				Title:          r.Title,
				DueDate:        r.DueDate,
				EstimatedHours: r.EstimatedHours,
				Importance:     r.Importance,
				PriorityScore:  r.PriorityScore,
				Reason:         r.Explanation,
				ActionItems:    actionItems(r, i+1, days),
			})
		}

		e.metrics.Counter(observability.MetricSuggestions, int64(len(suggestions)))

		return &SuggestResult{
			Suggestions: suggestions,
			Strategy:    analyzed.Strategy,
			GeneratedAt: now,
			Warnings:    analyzed.Warnings,
		}, nil
	})
}
