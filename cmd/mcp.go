package cmd

import (
	"github.com/nfi-health/assess/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the assessment MCP server",
	Long: `Launch an MCP server that allows AI agents to score forms, check completion
and browse saved records via standard tools.`,
	PreRunE: storeSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager, version)
	},
}
