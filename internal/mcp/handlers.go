package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pable/go-nfl-metrics/internal/season"
)

type toolHandler struct {
	svc *season.Service
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

func truncate[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func (h *toolHandler) handleListSeasons(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seasons, err := h.svc.Seasons()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list seasons failed: %v", err)), nil
	}
	return jsonResult(seasons), nil
}

func (h *toolHandler) handleTeamStats(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.svc.Teams(request.GetInt("season", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("team stats failed: %v", err)), nil
	}
	if rows == nil {
		return mcp.NewToolResultError("season has no EPA data"), nil
	}
	return jsonResult(truncate(rows, request.GetInt("limit", 0))), nil
}

func (h *toolHandler) handlePlayerStats(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pos := strings.ToLower(request.GetString("position", ""))
	limit := request.GetInt("limit", 0)

	ps, err := h.svc.Players(request.GetInt("season", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("player stats failed: %v", err)), nil
	}
	if ps == nil {
		return mcp.NewToolResultError("season has no EPA data"), nil
	}
	switch pos {
	case "qb":
		return jsonResult(truncate(ps.QB, limit)), nil
	case "rb":
		return jsonResult(truncate(ps.RB, limit)), nil
	case "wr":
		return jsonResult(truncate(ps.WR, limit)), nil
	case "te":
		return jsonResult(truncate(ps.TE, limit)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("position must be one of qb, rb, wr, te; got %q", pos)), nil
	}
}

func (h *toolHandler) handleLeagueStats(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	l, err := h.svc.League(request.GetInt("season", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("league stats failed: %v", err)), nil
	}
	return jsonResult(l), nil
}

func (h *toolHandler) handleTeamOffense(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	team := request.GetString("team", "")
	if team == "" {
		return mcp.NewToolResultError("team is required"), nil
	}
	off, err := h.svc.TeamOffense(request.GetInt("season", 0), team)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(off), nil
}

func (h *toolHandler) handlePlayerProfile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	p, err := h.svc.PlayerProfile(request.GetInt("season", 0), name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(p), nil
}
