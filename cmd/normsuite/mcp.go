package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/aretw0/normsuite/internal/cli"
	"github.com/aretw0/normsuite/pkg/adapters/loam"
	"github.com/aretw0/normsuite/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes norm inference as MCP tools (infer_norms, list_plans). With --repo
the stored scenarios are available through list_scenarios and infer_scenario.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repoDir, _ := cmd.Flags().GetString("repo")
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		opts, logger, err := suiteOptions(cmd)
		if err != nil {
			return err
		}

		serverOpts := []mcp.Option{
			mcp.WithLogger(logger),
			mcp.WithSuiteOptions(opts...),
		}
		if repoDir != "" {
			repo, err := loam.Open(repoDir)
			if err != nil {
				return err
			}
			serverOpts = append(serverOpts, mcp.WithScenarios(repo))
		}
		srv := mcp.NewServer(serverOpts...)

		switch transport {
		case "stdio":
			logger.Info("starting normsuite MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx, stop := cli.ShutdownContext(cmd.Context(), logger)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("MCP server failed: %w", err)
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
