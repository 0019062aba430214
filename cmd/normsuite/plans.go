package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/normsuite"
	"github.com/aretw0/normsuite/internal/cli"
)

var plansCmd = &cobra.Command{
	Use:   "plans <scenario>",
	Short: "List the plans that reach the scenario goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _ := cmd.Flags().GetString("repo")

		opts, _, err := suiteOptions(cmd)
		if err != nil {
			return err
		}
		sc, err := cli.LoadScenario(cmd.Context(), repo, args[0])
		if err != nil {
			return err
		}
		suite, err := normsuite.FromScenario(sc, opts...)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range suite.Paths() {
			fmt.Fprintln(out, strings.Join(p, " "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plansCmd)
}
