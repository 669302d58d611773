// Package report renders aggregates as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-nfl-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func epa(v float64) string { return fmt.Sprintf("%+.3f", v) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) }

func opt(v *float64, format string) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf(format, *v)
}

// PrintSeasonHeader prints a one-line header naming the season and league totals.
func PrintSeasonHeader(w io.Writer, season int, l model.LeagueStats) {
	fmt.Fprintf(w, "\nSeason: %d  |  Plays: %d  |  TDs: %d  |  Pass: %d  |  Rush: %d\n\n",
		season, l.TotalPlays, l.TotalTouchdowns, l.PassingPlays, l.RushingPlays)
}

// PrintSeasons lists ingested seasons.
func PrintSeasons(w io.Writer, seasons []model.SeasonSummary) {
	table := newTable(w)
	table.Header("SEASON", "PLAYS", "ROSTER", "EPA", "SEASON_TYPE", "INGESTED", "INGEST_ID", "SOURCE")
	for _, s := range seasons {
		table.Append(
			strconv.Itoa(s.Season),
			strconv.Itoa(s.Plays),
			strconv.Itoa(s.RosterSize),
			yesNo(s.HasEPA),
			yesNo(s.HasSeasonType),
			s.IngestedAt.Format("2006-01-02 15:04"),
			s.IngestID[:min(8, len(s.IngestID))],
			s.Source,
		)
	}
	table.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// PrintLeague prints the league-wide structural counts.
func PrintLeague(w io.Writer, l model.LeagueStats) {
	table := newTable(w)
	table.Header("TOTAL_PLAYS", "TOUCHDOWNS", "PASS_PLAYS", "RUSH_PLAYS")
	table.Append(
		strconv.Itoa(l.TotalPlays),
		strconv.Itoa(l.TotalTouchdowns),
		strconv.Itoa(l.PassingPlays),
		strconv.Itoa(l.RushingPlays),
	)
	table.Render()
}

// PrintTeamTable prints the team EPA ranking. A non-empty focusTeam marks that
// team's row with ">".
func PrintTeamTable(w io.Writer, rows []model.TeamStats, focusTeam string) {
	table := newTable(w)
	table.Header(" ", "#", "TEAM", "EPA/PLAY", "TOTAL_EPA", "PLAYS",
		"PASS_EPA", "PASS_N", "RUSH_EPA", "RUSH_N")
	for i, r := range rows {
		marker := " "
		if focusTeam != "" && strings.EqualFold(r.Team, focusTeam) {
			marker = ">"
		}
		table.Append(
			marker,
			strconv.Itoa(i+1),
			r.Team,
			epa(r.EPAPerPlay),
			fmt.Sprintf("%.1f", r.TotalEPA),
			strconv.Itoa(r.Plays),
			epa(r.PassEPAPerPlay),
			strconv.Itoa(r.PassPlays),
			epa(r.RushEPAPerPlay),
			strconv.Itoa(r.RushPlays),
		)
	}
	table.Render()
}

// PrintTeamOffense prints the single-team passing and rushing breakdown.
func PrintTeamOffense(w io.Writer, o model.TeamOffense) {
	fmt.Fprintf(w, "\nTeam: %s\n\n", o.Team)

	pass := newTable(w)
	pass.Header("PASSING", "ATT", "CMP", "CMP%", "YDS", "Y/A", "TD", "INT", "EPA/PLAY")
	pass.Append(
		"",
		strconv.Itoa(o.PassAttempts),
		strconv.Itoa(o.Completions),
		opt(o.CompletionPct, "%.1f"),
		strconv.Itoa(o.PassYards),
		opt(o.YardsPerAttempt, "%.2f"),
		strconv.Itoa(o.PassTouchdowns),
		strconv.Itoa(o.Interceptions),
		opt(o.PassEPA, "%+.3f"),
	)
	pass.Render()
	fmt.Fprintln(w)

	rush := newTable(w)
	rush.Header("RUSHING", "ATT", "YDS", "Y/C", "TD", "EPA/PLAY")
	rush.Append(
		"",
		strconv.Itoa(o.RushAttempts),
		strconv.Itoa(o.RushYards),
		opt(o.YardsPerCarry, "%.2f"),
		strconv.Itoa(o.RushTouchdowns),
		opt(o.RushEPA, "%+.3f"),
	)
	rush.Render()
}

// PrintRows prints a raw query result; every cell is already a string.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
