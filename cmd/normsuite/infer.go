package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/normsuite"
	"github.com/aretw0/normsuite/internal/cli"
)

var inferCmd = &cobra.Command{
	Use:   "infer <scenario>",
	Short: "Rank the norms that best explain a scenario's traces",
	Long: `Builds the suite described by the scenario, applies every trace in order
and prints the most probable norms. Extra traces can be given with --trace,
using the token form "a c ! e d" where "!" marks a sanction after a node.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _ := cmd.Flags().GetString("repo")
		format, _ := cmd.Flags().GetString("format")
		traces, _ := cmd.Flags().GetStringArray("trace")
		ranked, _ := cmd.Flags().GetBool("ranked")

		opts, _, err := suiteOptions(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("top") {
			top, _ := cmd.Flags().GetInt("top")
			opts = append(opts, normsuite.WithTop(top))
		}
		if ranked {
			opts = append(opts, normsuite.WithRanked())
		}

		sc, err := cli.LoadScenario(cmd.Context(), repo, args[0])
		if err != nil {
			return err
		}
		cli.AppendTraces(sc, traces)

		report, err := normsuite.Infer(cmd.Context(), sc, opts...)
		if err != nil {
			return err
		}
		return cli.WriteReport(cmd.OutOrStdout(), report, format)
	},
}

func init() {
	rootCmd.AddCommand(inferCmd)

	inferCmd.Flags().IntP("top", "n", 0, "Number of norms to report (default: the scenario's top)")
	inferCmd.Flags().StringP("format", "f", cli.FormatAuto, "Output format: auto, json, markdown or text")
	inferCmd.Flags().StringArrayP("trace", "t", nil, "Additional observed trace (repeatable)")
	inferCmd.Flags().Bool("ranked", false, "Include the full ranked report (json only)")
}
