package cli

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/triage/internal/engine"
	"github.com/spf13/cobra"
)

var strategiesJSON bool

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List available weighting strategies",
	Long: `List the weighting strategies and the component weights each
one applies to urgency, importance, effort, and dependencies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		strategies := engine.Strategies()

		if strategiesJSON {
			type strategyInfo struct {
				Name    string         `json:"name"`
				Weights engine.Weights `json:"weights"`
				Default bool           `json:"default"`
			}
			infos := make([]strategyInfo, 0, len(strategies))
			for _, s := range strategies {
				infos = append(infos, strategyInfo{
					Name:    s.String(),
					Weights: s.Weights(),
					Default: s == engine.DefaultStrategy,
				})
			}
			return printJSON(out, infos)
		}

		fmt.Fprintf(out, "Strategies (%d):\n", len(strategies))
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, s := range strategies {
			name := s.String()
			if s == engine.DefaultStrategy {
				name += " (default)"
			}
			w := s.Weights()
			fmt.Fprintf(out, "%s\n", name)
			fmt.Fprintf(out, "   urgency %.2f | importance %.2f | effort %.2f | dependency %.2f\n",
				w.Urgency, w.Importance, w.Effort, w.Dependency)
		}
		return nil
	},
}

func init() {
	strategiesCmd.Flags().BoolVar(&strategiesJSON, "json", false, "print the raw JSON result")
	rootCmd.AddCommand(strategiesCmd)
}
