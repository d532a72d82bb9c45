package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/felixgeelhaar/triage/internal/engine"
	"github.com/felixgeelhaar/triage/internal/task"
	"github.com/spf13/cobra"
)

var (
	analyzeStrategy string
	analyzeToday    string
	analyzeJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Score and rank a batch of tasks",
	Long: `Score every task in a batch and rank them by priority.

Tasks are read as JSON from a file argument or stdin, either as a
bare array or wrapped in {"tasks": [...]}.

Examples:
  triage analyze tasks.json
  cat tasks.json | triage analyze
  triage analyze tasks.json --strategy fastest_wins
  triage analyze tasks.json --today 2026-03-10 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		tasks, err := readTasksInput(path)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			return errors.New("at least one task is required")
		}

		eng, err := engineFor(analyzeToday)
		if err != nil {
			return err
		}

		result, err := eng.Analyze(cmd.Context(), engine.AnalyzeRequest{
			Tasks:    tasks,
			Strategy: resolveStrategy(analyzeStrategy),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if analyzeJSON {
			return printJSON(out, result)
		}
		printRanked(out, result)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeStrategy, "strategy", "s", "", "weighting strategy (smart_balance, fastest_wins, high_impact, deadline_driven)")
	analyzeCmd.Flags().StringVar(&analyzeToday, "today", "", "score relative to this date instead of today (YYYY-MM-DD)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw JSON result")
	rootCmd.AddCommand(analyzeCmd)
}

// engineFor returns the scoring engine, pinned to a fixed reference date
// when one is given.
func engineFor(today string) (*engine.Engine, error) {
	if today != "" {
		d, err := task.ParseDate(today)
		if err != nil {
			return nil, fmt.Errorf("invalid --today date: %w", err)
		}
		return engine.New(engine.Config{
			Logger: logger,
			Now:    func() time.Time { return d.Time() },
		}), nil
	}
	if a := GetApp(); a != nil && a.Engine != nil {
		return a.Engine, nil
	}
	return engine.New(engine.Config{Logger: logger}), nil
}

// resolveStrategy falls back to the configured default when no strategy
// flag was given.
func resolveStrategy(flag string) string {
	if flag != "" {
		return flag
	}
	if a := GetApp(); a != nil && a.Config != nil {
		return a.Config.DefaultStrategy
	}
	return ""
}

// printRanked renders the ranked batch in list form.
func printRanked(out io.Writer, result *engine.AnalyzeResult) {
	if len(result.Ranked) == 0 {
		fmt.Fprintln(out, "No tasks to rank.")
		return
	}

	fmt.Fprintf(out, "Ranked tasks (%d, strategy: %s):\n", result.TotalTasks, result.Strategy)
	fmt.Fprintln(out, strings.Repeat("-", 60))

	for i, r := range result.Ranked {
		fmt.Fprintf(out, "%d. [%s] %s\n", i+1, r.PriorityLevel, r.Title)
		fmt.Fprintf(out, "   id: %d  score: %.2f  due: %s\n", r.TaskID, r.PriorityScore, r.DueDate)
		fmt.Fprintf(out, "   %s\n", r.Explanation)
		fmt.Fprintf(out, "   urgency %.2f | importance %.2f | effort %.2f | dependency %.2f\n",
			r.ComponentScores.Urgency,
			r.ComponentScores.Importance,
			r.ComponentScores.Effort,
			r.ComponentScores.Dependency,
		)
		fmt.Fprintln(out)
	}

	printWarnings(out, result.Warnings)
}

// printWarnings lists advisory warnings after the main output.
func printWarnings(out io.Writer, warnings []task.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(out, "Warning: task %d: %s\n", w.TaskID, w.Message)
	}
}
