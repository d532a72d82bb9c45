package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/felixgeelhaar/triage/internal/task"
	"github.com/felixgeelhaar/triage/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testToday fixes the reference date so urgency scores are stable.
var testToday = task.NewDate(2026, time.March, 10)

func newTestEngine(metrics observability.Metrics) *Engine {
	return New(Config{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: metrics,
		Now:     func() time.Time { return testToday.Time() },
	})
}

func dueIn(days int) task.Date {
	return task.DateOf(testToday.Time().AddDate(0, 0, days))
}

func sampleBatch() []task.Task {
	return []task.Task{
		{ID: 1, Title: "Finish quarterly report", DueDate: dueIn(3), EstimatedHours: 3, Importance: 8},
		{ID: 2, Title: "Review analytics dashboard", DueDate: dueIn(10), EstimatedHours: 5, Importance: 6, Dependencies: []int64{1}},
		{ID: 3, Title: "Reply to customer escalation", DueDate: dueIn(2), EstimatedHours: 1, Importance: 7},
	}
}

func TestAnalyze_RanksSampleBatch(t *testing.T) {
	eng := newTestEngine(nil)

	res, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: sampleBatch()})
	require.NoError(t, err)

	assert.Equal(t, StrategySmartBalance, res.Strategy)
	assert.Equal(t, 3, res.TotalTasks)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Ranked, 3)

	assert.Equal(t, int64(1), res.Ranked[0].TaskID)
	assert.Equal(t, int64(3), res.Ranked[1].TaskID)
	assert.Equal(t, int64(2), res.Ranked[2].TaskID)

	first := res.Ranked[0]
	assert.Equal(t, "Finish quarterly report", first.Title)
	assert.True(t, first.DueDate.Equal(dueIn(3)))
	assert.Equal(t, 3.0, first.EstimatedHours)
	assert.Equal(t, 8, first.Importance)
	assert.InDelta(t, 69.87, first.PriorityScore, scoreDelta)
	assert.Equal(t, LevelMedium, first.PriorityLevel)
	assert.InDelta(t, 81, first.ComponentScores.Urgency, scoreDelta)
	assert.InDelta(t, 66.92, first.ComponentScores.Importance, scoreDelta)
	assert.InDelta(t, 76.67, first.ComponentScores.Effort, scoreDelta)
	assert.InDelta(t, 44, first.ComponentScores.Dependency, scoreDelta)
	assert.Equal(t, "Due in 3 days | High importance | Short task (3h)", first.Explanation)

	second := res.Ranked[1]
	assert.InDelta(t, 64.32, second.PriorityScore, scoreDelta)
	assert.InDelta(t, 84, second.ComponentScores.Urgency, scoreDelta)
	assert.InDelta(t, 52.62, second.ComponentScores.Importance, scoreDelta)
	assert.InDelta(t, 90, second.ComponentScores.Effort, scoreDelta)
	assert.InDelta(t, 20, second.ComponentScores.Dependency, scoreDelta)
	assert.Equal(t, "Due in 2 days | Medium importance | Quick win (<1h)", second.Explanation)

	third := res.Ranked[2]
	assert.InDelta(t, 61.70, third.PriorityScore, scoreDelta)
	assert.InDelta(t, 100, third.ComponentScores.Urgency, scoreDelta)
	assert.InDelta(t, 39.87, third.ComponentScores.Importance, scoreDelta)
	assert.InDelta(t, 65, third.ComponentScores.Effort, scoreDelta)
	assert.InDelta(t, 20, third.ComponentScores.Dependency, scoreDelta)
	assert.Equal(t, []int64{1}, third.Dependencies)
	assert.Equal(t, "Due later | Medium importance | Half-day task (5h)", third.Explanation)
}

func TestAnalyze_ScoreMatchesReportedComponents(t *testing.T) {
	eng := newTestEngine(nil)

	res, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: sampleBatch()})
	require.NoError(t, err)

	weights := res.Strategy.Weights()
	for _, r := range res.Ranked {
		sum := r.ComponentScores.Urgency*weights.Urgency +
			r.ComponentScores.Importance*weights.Importance +
			r.ComponentScores.Effort*weights.Effort +
			r.ComponentScores.Dependency*weights.Dependency
		assert.InDelta(t, sum, r.PriorityScore, 0.0051, "task %d", r.TaskID)
	}
}

func TestAnalyze_ScoresStayInRange(t *testing.T) {
	eng := newTestEngine(nil)

	tasks := []task.Task{
		{ID: 1, Title: "Ancient overdue epic", DueDate: dueIn(-400), EstimatedHours: 500, Importance: 10},
		{ID: 2, Title: "Distant trivial chore", DueDate: dueIn(365), EstimatedHours: 0.1, Importance: 1},
	}

	res, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: tasks})
	require.NoError(t, err)

	for _, r := range res.Ranked {
		assert.GreaterOrEqual(t, r.PriorityScore, 0.0)
		assert.LessOrEqual(t, r.PriorityScore, 100.0)
		for _, c := range []float64{
			r.ComponentScores.Urgency,
			r.ComponentScores.Importance,
			r.ComponentScores.Effort,
			r.ComponentScores.Dependency,
		} {
			assert.GreaterOrEqual(t, c, 0.0)
			assert.LessOrEqual(t, c, 100.0)
		}
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	eng := newTestEngine(nil)

	first, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: sampleBatch()})
	require.NoError(t, err)
	second, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: sampleBatch()})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_TieBreakEarlierDueDate(t *testing.T) {
	eng := newTestEngine(nil)

	// Days 8 and 10 both clamp urgency to 100, so the scores tie and the
	// earlier due date must win.
	tasks := []task.Task{
		{ID: 5, Title: "Later deadline", DueDate: dueIn(10), EstimatedHours: 2, Importance: 5},
		{ID: 9, Title: "Earlier deadline", DueDate: dueIn(8), EstimatedHours: 2, Importance: 5},
	}

	res, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: tasks})
	require.NoError(t, err)
	require.Len(t, res.Ranked, 2)
	assert.InDelta(t, res.Ranked[0].PriorityScore, res.Ranked[1].PriorityScore, 1e-9)
	assert.Equal(t, int64(9), res.Ranked[0].TaskID)
	assert.Equal(t, int64(5), res.Ranked[1].TaskID)
}

func TestAnalyze_TieBreakLowerTaskID(t *testing.T) {
	eng := newTestEngine(nil)

	tasks := []task.Task{
		{ID: 7, Title: "Twin task", DueDate: dueIn(4), EstimatedHours: 2, Importance: 5},
		{ID: 2, Title: "Twin task", DueDate: dueIn(4), EstimatedHours: 2, Importance: 5},
	}

	res, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: tasks})
	require.NoError(t, err)
	require.Len(t, res.Ranked, 2)
	assert.Equal(t, int64(2), res.Ranked[0].TaskID)
	assert.Equal(t, int64(7), res.Ranked[1].TaskID)
}

func TestAnalyze_StrategyChangesRanking(t *testing.T) {
	// A is a trivial low-stakes task, B a heavy high-stakes one; both are
	// due today. Effort-oriented weighting must put A first, impact
	// weighting B.
	tasks := []task.Task{
		{ID: 1, Title: "Tiny cleanup", DueDate: dueIn(0), EstimatedHours: 1, Importance: 3},
		{ID: 2, Title: "Strategic migration", DueDate: dueIn(0), EstimatedHours: 20, Importance: 9},
	}

	eng := newTestEngine(nil)

	fastest, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: tasks, Strategy: "fastest_wins"})
	require.NoError(t, err)
	require.Len(t, fastest.Ranked, 2)
	assert.Equal(t, int64(1), fastest.Ranked[0].TaskID)
	assert.InDelta(t, 68.29, fastest.Ranked[0].PriorityScore, scoreDelta)
	assert.InDelta(t, 50.53, fastest.Ranked[1].PriorityScore, scoreDelta)

	impact, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: tasks, Strategy: "high_impact"})
	require.NoError(t, err)
	require.Len(t, impact.Ranked, 2)
	assert.Equal(t, int64(2), impact.Ranked[0].TaskID)
	assert.InDelta(t, 69.18, impact.Ranked[0].PriorityScore, scoreDelta)
	assert.InDelta(t, 29.62, impact.Ranked[1].PriorityScore, scoreDelta)
}

func TestAnalyze_EmptyBatch(t *testing.T) {
	eng := newTestEngine(nil)

	res, err := eng.Analyze(context.Background(), AnalyzeRequest{})
	require.NoError(t, err)
	assert.Empty(t, res.Ranked)
	assert.Equal(t, 0, res.TotalTasks)
	assert.Equal(t, StrategySmartBalance, res.Strategy)
}

func TestAnalyze_ValidationFailure(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	eng := newTestEngine(metrics)

	tasks := sampleBatch()
	tasks[1].Title = "   "

	res, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: tasks})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, task.ErrEmptyTitle)

	verr, ok := task.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, 1, verr.Index)
	assert.Equal(t, int64(2), verr.TaskID)
	assert.Equal(t, "title", verr.Field)

	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricValidationFailures))
}

func TestAnalyze_UnknownStrategy(t *testing.T) {
	eng := newTestEngine(nil)

	res, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: sampleBatch(), Strategy: "weird"})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Contains(t, err.Error(), `"weird"`)
}

func TestAnalyze_CircularDependencies(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	eng := newTestEngine(metrics)

	tasks := []task.Task{
		{ID: 1, Title: "First half", DueDate: dueIn(1), EstimatedHours: 2, Importance: 5, Dependencies: []int64{2}},
		{ID: 2, Title: "Second half", DueDate: dueIn(1), EstimatedHours: 2, Importance: 5, Dependencies: []int64{1}},
		{ID: 3, Title: "Unrelated", DueDate: dueIn(1), EstimatedHours: 2, Importance: 5},
	}

	res, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: tasks})
	require.Error(t, err)
	assert.Nil(t, res)

	cerr, ok := task.AsCycleError(err)
	require.True(t, ok)
	require.Len(t, cerr.Cycles, 1)
	assert.Equal(t, []int64{1, 2, 1}, cerr.Cycles[0])
	assert.Contains(t, err.Error(), "1 -> 2 -> 1")

	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricCyclesDetected))
}

func TestAnalyze_ValidationRunsBeforeStrategy(t *testing.T) {
	eng := newTestEngine(nil)

	tasks := sampleBatch()
	tasks[0].Title = ""

	_, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: tasks, Strategy: "bogus"})
	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrEmptyTitle)
	assert.NotErrorIs(t, err, ErrUnknownStrategy)
}

func TestAnalyze_StrategyRunsBeforeCycleCheck(t *testing.T) {
	eng := newTestEngine(nil)

	tasks := []task.Task{
		{ID: 1, Title: "First half", DueDate: dueIn(1), EstimatedHours: 2, Importance: 5, Dependencies: []int64{2}},
		{ID: 2, Title: "Second half", DueDate: dueIn(1), EstimatedHours: 2, Importance: 5, Dependencies: []int64{1}},
	}

	_, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: tasks, Strategy: "bogus"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	_, isCycle := task.AsCycleError(err)
	assert.False(t, isCycle)
}

func TestAnalyze_WarningsPassThrough(t *testing.T) {
	eng := newTestEngine(nil)

	tasks := sampleBatch()
	tasks[0].EstimatedHours = 1500

	res, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: tasks})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, int64(1), res.Warnings[0].TaskID)
	assert.Equal(t, "estimated_hours", res.Warnings[0].Field)
	assert.Contains(t, res.Warnings[0].Message, "1500")
	assert.Len(t, res.Ranked, 3)
}

func TestAnalyze_RecordsMetrics(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	eng := newTestEngine(metrics)

	_, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: sampleBatch(), Strategy: "deadline_driven"})
	require.NoError(t, err)

	assert.Equal(t, int64(1),
		metrics.GetCounter(observability.MetricBatchesAnalyzed, observability.T("strategy", "deadline_driven")))
	assert.Equal(t, int64(3), metrics.GetCounter(observability.MetricTasksScored))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelHigh, levelFor(100))
	assert.Equal(t, LevelHigh, levelFor(80))
	assert.Equal(t, LevelMedium, levelFor(79.99))
	assert.Equal(t, LevelMedium, levelFor(60))
	assert.Equal(t, LevelLow, levelFor(59.99))
	assert.Equal(t, LevelLow, levelFor(0))
}

func TestNew_Defaults(t *testing.T) {
	eng := New(Config{})
	require.NotNil(t, eng)

	res, err := eng.Analyze(context.Background(), AnalyzeRequest{Tasks: []task.Task{
		{ID: 1, Title: "Anything", DueDate: task.DateOf(time.Now().Add(48 * time.Hour)), EstimatedHours: 1, Importance: 5},
	}})
	require.NoError(t, err)
	assert.Len(t, res.Ranked, 1)
}
