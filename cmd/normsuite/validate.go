package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/normsuite/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario>",
	Short: "Check a scenario for consistency",
	Long: `Checks hypotheses, parameters and traces, verifies that the goal has at
least one plan and reports traces no plan can explain.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _ := cmd.Flags().GetString("repo")
		strict, _ := cmd.Flags().GetBool("strict")

		opts, _, err := suiteOptions(cmd)
		if err != nil {
			return err
		}
		sc, err := cli.LoadScenario(cmd.Context(), repo, args[0])
		if err != nil {
			return err
		}
		res, err := cli.Validate(cmd.Context(), sc, opts...)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		cli.PrintValidation(out, res)
		if !res.Valid() && strict {
			return fmt.Errorf("validation failed: %d trace(s) cannot be explained", len(res.Unexplained))
		}
		fmt.Fprintln(out, "Scenario is valid!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("strict", false, "Fail when a trace cannot be explained by any plan")
}
