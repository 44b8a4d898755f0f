package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search,
read and edit the session's fragments.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which also exposes:
  GET /health   - liveness check
  GET /metrics  - Prometheus metrics
  /mcp          - streamable MCP endpoint, rate limited by mcp.rate_limit

Examples:
  # Stdio mode (default, for Claude Desktop)
  fragments mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  fragments mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "fragments": {
        "command": "/path/to/fragments",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	mcp.Version = version
	ports := &mcp.Ports{
		Fragments: fragmentService,
		Search:    searchService,
		Changes:   changeFeed,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}
	defer server.Close()

	limits := settingsOrDefault().MCP
	server.SetLimits(limits.RateLimit, limits.Burst)

	if watchSettings != nil {
		stop, err := watchSettings(func(s *domain.AppSettings) {
			server.SetLimits(s.MCP.RateLimit, s.MCP.Burst)
		})
		switch {
		case errors.Is(err, domain.ErrNotImplemented):
		case err != nil:
			logger.Warn("Settings will not reload: %v", err)
		default:
			defer func() { _ = stop() }()
		}
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
