package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/triage/internal/engine"
	"github.com/spf13/cobra"
)

var (
	suggestStrategy string
	suggestToday    string
	suggestLimit    int
	suggestJSON     bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [file]",
	Short: "Suggest the next tasks to work on",
	Long: `Rank a batch of tasks and print the top suggestions with
concrete action items.

Examples:
  triage suggest tasks.json
  triage suggest tasks.json --limit 5
  cat tasks.json | triage suggest --strategy high_impact`,
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

		eng, err := engineFor(suggestToday)
		if err != nil {
			return err
		}

		result, err := eng.Suggest(cmd.Context(), engine.SuggestRequest{
			Tasks:    tasks,
			Strategy: resolveStrategy(suggestStrategy),
			Limit:    resolveLimit(suggestLimit),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if suggestJSON {
			return printJSON(out, result)
		}
		printSuggestions(out, result)
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestStrategy, "strategy", "s", "", "weighting strategy (smart_balance, fastest_wins, high_impact, deadline_driven)")
	suggestCmd.Flags().StringVar(&suggestToday, "today", "", "score relative to this date instead of today (YYYY-MM-DD)")
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 0, "number of suggestions (default 3)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "print the raw JSON result")
	rootCmd.AddCommand(suggestCmd)
}

// resolveLimit falls back to the configured suggestion limit when no
// limit flag was given.
func resolveLimit(flag int) int {
	if flag > 0 {
		return flag
	}
	if a := GetApp(); a != nil && a.Config != nil {
		return a.Config.SuggestionLimit
	}
	return 0
}

// printSuggestions renders the top suggestions with their action items.
func printSuggestions(out io.Writer, result *engine.SuggestResult) {
	if len(result.Suggestions) == 0 {
		fmt.Fprintln(out, "No suggestions.")
		return
	}

	fmt.Fprintf(out, "Top %d tasks (strategy: %s):\n", len(result.Suggestions), result.Strategy)
	fmt.Fprintln(out, strings.Repeat("-", 60))

	for i, s := range result.Suggestions {
		fmt.Fprintf(out, "%d. %s (score %.2f, due %s)\n", i+1, s.Title, s.PriorityScore, s.DueDate)
		fmt.Fprintf(out, "   %s\n", s.Reason)
		for _, item := range s.ActionItems {
			fmt.Fprintf(out, "   - %s\n", item)
		}
		fmt.Fprintln(out)
	}

	printWarnings(out, result.Warnings)
}
