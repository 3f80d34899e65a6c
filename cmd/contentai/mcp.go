// ABOUTME: MCP server command implementation for contentai.
// ABOUTME: Starts the MCP server in stdio mode for AI agent integration.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcppkg "github.com/2389-research/contentai/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

The MCP server communicates via stdio, allowing AI agents like Claude
to search content, manage saved items, and generate drafts.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var opts []mcppkg.ServerOption
	if globalConfig != nil && globalConfig.HasSyncTarget() {
		sy, err := newSyncer()
		if err != nil {
			return err
		}
		opts = append(opts, mcppkg.WithSyncer(sy))
	}

	server, err := mcppkg.NewServer(globalCatalog, globalSaved, globalHistory, opts...)
	if err != nil {
		return err
	}

	return server.Serve(ctx)
}
