package cli

import (
	"github.com/spf13/cobra"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server over stdio",
	Long: `Run a Model Context Protocol server speaking JSON-RPC over
stdin/stdout, exposing the task, project, folder, tag, and utility
tools to MCP clients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcp.NewServer(client).Run(cmd.Context())
	},
}
