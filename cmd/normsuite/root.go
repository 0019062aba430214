package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/normsuite"
	"github.com/aretw0/normsuite/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "normsuite",
	Short: "Infer behavioral norms from observed plan traces",
	Long: `normsuite ranks candidate norms (obligations and prohibitions over the
nodes of an action graph) by how well they explain observed trajectories
and the sanctions that followed them.

A scenario is a YAML or JSON file, or a document ID inside a Loam
repository when --repo is set.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("repo", "", "Loam repository holding scenario documents")
	rootCmd.PersistentFlags().Int("concurrency", 1, "Hypotheses scored in parallel per trace")
}

// suiteOptions builds the options shared by every command from the persistent flags.
func suiteOptions(cmd *cobra.Command) ([]normsuite.Option, *slog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	logger, err := cli.NewLogger(level)
	if err != nil {
		return nil, nil, err
	}
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	return []normsuite.Option{
		normsuite.WithLogger(logger),
		normsuite.WithConcurrency(concurrency),
	}, logger, nil
}
