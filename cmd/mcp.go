package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vidbrief/vidbrief/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server exposing video analysis tools",
	Long: `Run a Model Context Protocol (MCP) server that exposes vidbrief
functionality as tools.

The MCP server provides two tools:
- analyze_video: run the full pipeline and return a structured report
- get_video_transcript: download and transcribe a video

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)`,
	Example: `  # Run MCP server with stdio transport
  vidbrief mcp

  # Run MCP server with HTTP transport on port 8080
  vidbrief mcp --transport=http --port=8080`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// MCP uses stdio protocol, so suppress all terminal output
		config.Verbose = false
		config.Quiet = true
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		internal.InitMCPLogging(config)

		provider, err := internal.ParseProvider(config.Provider)
		if err != nil {
			return err
		}

		app := internal.NewApp(config, provider)
		mcpServer := internal.NewMCPServer(app, config)

		// Blocks until the context is cancelled
		return mcpServer.Start(cmd.Context(), transport, port)
	},
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol: stdio or http")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport")
	rootCmd.AddCommand(mcpCmd)
}
