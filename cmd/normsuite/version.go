package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/normsuite"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of normsuite",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "normsuite version %s\n", strings.TrimSpace(normsuite.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
