package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-metrics/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve season stats as MCP tools over stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing
list_seasons, get_team_stats, get_player_stats, get_league_stats and
get_team_offense. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	svc, db, err := openService()
	if err != nil {
		return err
	}
	defer db.Close()

	slog.Info("starting mcp server", "version", version, "backend", db.Backend())
	return mcp.Serve(svc, version)
}
