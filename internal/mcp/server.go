// Package mcp exposes season aggregates as Model Context Protocol tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pable/go-nfl-metrics/internal/season"
)

// NewServer configures the MCP server without starting it.
func NewServer(svc *season.Service, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"NFL Metrics Server",
		version,
		server.WithLogging(),
	)
	h := &toolHandler{svc: svc}

	seasonArg := mcp.WithNumber("season", mcp.Description("Season year, e.g. 2024. Defaults to the latest ingested season."))

	s.AddTool(mcp.NewTool("list_seasons",
		mcp.WithDescription("List ingested seasons with play and roster counts."),
	), h.handleListSeasons)

	s.AddTool(mcp.NewTool("get_team_stats",
		mcp.WithDescription("Team offensive EPA per play, overall and split by pass and run, ranked best first."),
		seasonArg,
		mcp.WithNumber("limit", mcp.Description("Return only the top N teams.")),
	), h.handleTeamStats)

	s.AddTool(mcp.NewTool("get_player_stats",
		mcp.WithDescription("Ranked EPA leaderboards for QB, RB, WR or TE cohorts."),
		seasonArg,
		mcp.WithString("position", mcp.Description("Cohort to return."), mcp.Required(), mcp.Enum("qb", "rb", "wr", "te")),
		mcp.WithNumber("limit", mcp.Description("Return only the top N players.")),
	), h.handlePlayerStats)

	s.AddTool(mcp.NewTool("get_league_stats",
		mcp.WithDescription("League-wide play, touchdown, pass and rush counts."),
		seasonArg,
	), h.handleLeagueStats)

	s.AddTool(mcp.NewTool("get_team_offense",
		mcp.WithDescription("Passing and rushing breakdown for one team."),
		seasonArg,
		mcp.WithString("team", mcp.Description("Team abbreviation, e.g. KC."), mcp.Required()),
	), h.handleTeamOffense)

	s.AddTool(mcp.NewTool("get_player_profile",
		mcp.WithDescription("Passing, rushing and receiving line for one player, looked up by the name used in the data (e.g. P.Mahomes)."),
		seasonArg,
		mcp.WithString("name", mcp.Description("Player display name, case-insensitive."), mcp.Required()),
	), h.handlePlayerProfile)

	return s
}

// Serve runs the server over stdio until stdin closes.
func Serve(svc *season.Service, version string) error {
	return server.ServeStdio(NewServer(svc, version))
}
