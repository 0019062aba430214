package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/normsuite/internal/cli"
	"github.com/aretw0/normsuite/internal/presentation/graph"
	"github.com/aretw0/normsuite/pkg/domain"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <scenario>",
	Short: "Export the action graph visualization",
	Long: `Outputs the scenario's action graph as a Mermaid diagram (graph TD) or in
Graphviz DOT. With --trace the visited and sanctioned nodes are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _ := cmd.Flags().GetString("repo")
		format, _ := cmd.Flags().GetString("format")
		rawTrace, _ := cmd.Flags().GetString("trace")

		sc, err := cli.LoadScenario(cmd.Context(), repo, args[0])
		if err != nil {
			return err
		}
		model, err := sc.Model()
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if rawTrace != "" {
			trace, err := domain.ParseTraceString(rawTrace)
			if err != nil {
				return err
			}
			overlay = &graph.GraphOverlay{Trace: trace}
		}

		switch format {
		case "mermaid":
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(model.Actions, model.Goal, overlay))
		case "dot":
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateDOT(model.Actions, model.Goal, overlay))
		default:
			return fmt.Errorf("unknown graph format %q (want mermaid or dot)", format)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("format", "mermaid", "Output format: mermaid or dot")
	graphCmd.Flags().String("trace", "", "Observed trace to highlight, e.g. \"a c ! e d\"")
}
