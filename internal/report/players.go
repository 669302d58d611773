package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pable/go-nfl-metrics/internal/model"
)

// PrintQBTable prints the quarterback cohort.
func PrintQBTable(w io.Writer, rows []model.QBStats) {
	table := newTable(w)
	table.Header("#", "PLAYER", "EPA/PLAY", "TOTAL_EPA", "PLAYS",
		"CMP%", "YDS", "Y/A", "TD", "INT", "TD/INT", "RUSH", "R_YDS", "R_TD")
	for i, r := range rows {
		table.Append(
			strconv.Itoa(i+1),
			r.Player,
			epa(r.EPAPerPlay),
			fmt.Sprintf("%.1f", r.TotalEPA),
			strconv.Itoa(r.Plays),
			opt(r.CompletionPct, "%.1f"),
			num(r.PassingYards),
			opt(r.YardsPerAtt, "%.2f"),
			num(r.Touchdowns),
			num(r.Interceptions),
			fmt.Sprintf("%.2f", r.TDINTRatio),
			num(r.RushAttempts),
			num(r.RushingYards),
			num(r.RushTouchdowns),
		)
	}
	table.Render()
}

// PrintRBTable prints the running back cohort.
func PrintRBTable(w io.Writer, rows []model.RBStats) {
	table := newTable(w)
	table.Header("#", "PLAYER", "EPA/PLAY", "TOTAL_EPA", "RUSH", "YDS", "Y/C", "TD")
	for i, r := range rows {
		table.Append(
			strconv.Itoa(i+1),
			r.Player,
			epa(r.EPAPerPlay),
			fmt.Sprintf("%.1f", r.TotalEPA),
			strconv.Itoa(r.Plays),
			num(r.RushingYards),
			opt(r.YardsPerCarry, "%.2f"),
			num(r.Touchdowns),
		)
	}
	table.Render()
}

// PrintReceiverTable prints a WR or TE cohort.
func PrintReceiverTable(w io.Writer, rows []model.ReceiverStats) {
	table := newTable(w)
	table.Header("#", "PLAYER", "EPA/TGT", "TOTAL_EPA", "TGT", "REC", "CATCH%", "YDS", "Y/R", "TD")
	for i, r := range rows {
		table.Append(
			strconv.Itoa(i+1),
			r.Player,
			epa(r.EPAPerPlay),
			fmt.Sprintf("%.1f", r.TotalEPA),
			strconv.Itoa(r.Targets),
			num(r.Receptions),
			opt(r.CatchRate, "%.1f"),
			num(r.ReceivingYards),
			fmt.Sprintf("%.1f", r.YardsPerRec),
			num(r.Touchdowns),
		)
	}
	table.Render()
}

// PrintPlayerStats prints the cohorts selected by pos ("" prints all four).
func PrintPlayerStats(w io.Writer, ps model.PlayerStats, pos model.Position) {
	section := func(title string) { fmt.Fprintf(w, "\n%s\n", title) }
	if pos == "" || pos == model.PosQB {
		section("Quarterbacks")
		PrintQBTable(w, ps.QB)
	}
	if pos == "" || pos == model.PosRB {
		section("Running backs")
		PrintRBTable(w, ps.RB)
	}
	if pos == "" || pos == model.PosWR {
		section("Wide receivers")
		PrintReceiverTable(w, ps.WR)
	}
	if pos == "" || pos == model.PosTE {
		section("Tight ends")
		PrintReceiverTable(w, ps.TE)
	}
}

// PrintPlayerProfile prints one player's line for each role they filled.
func PrintPlayerProfile(w io.Writer, p model.PlayerProfile) {
	pos := string(p.Position)
	if pos == "" {
		pos = "not on roster"
	}
	fmt.Fprintf(w, "\nPlayer: %s  |  %s\n", p.Player, pos)

	if s := p.Passing; s != nil {
		fmt.Fprintln(w)
		table := newTable(w)
		table.Header("PASSING", "ATT", "CMP", "CMP%", "YDS", "Y/A", "TD", "INT", "TD:INT", "EPA/PLAY", "TOTAL_EPA")
		table.Append(
			"",
			strconv.Itoa(s.Attempts),
			strconv.Itoa(s.Completions),
			opt(s.CompletionPct, "%.1f"),
			strconv.Itoa(s.Yards),
			opt(s.YardsPerAttempt, "%.2f"),
			strconv.Itoa(s.Touchdowns),
			strconv.Itoa(s.Interceptions),
			fmt.Sprintf("%.2f", s.TDINTRatio),
			opt(s.EPAPerPlay, "%+.3f"),
			opt(s.TotalEPA, "%.1f"),
		)
		table.Render()
	}
	if s := p.Rushing; s != nil {
		fmt.Fprintln(w)
		table := newTable(w)
		table.Header("RUSHING", "ATT", "YDS", "Y/C", "TD", "EPA/PLAY")
		table.Append(
			"",
			strconv.Itoa(s.Attempts),
			strconv.Itoa(s.Yards),
			opt(s.YardsPerCarry, "%.2f"),
			strconv.Itoa(s.Touchdowns),
			opt(s.EPAPerPlay, "%+.3f"),
		)
		table.Render()
	}
	if s := p.Receiving; s != nil {
		fmt.Fprintln(w)
		table := newTable(w)
		table.Header("RECEIVING", "TGT", "REC", "CATCH%", "YDS", "Y/R", "TD", "EPA/PLAY")
		table.Append(
			"",
			strconv.Itoa(s.Targets),
			strconv.Itoa(s.Receptions),
			opt(s.CatchRate, "%.1f"),
			strconv.Itoa(s.Yards),
			fmt.Sprintf("%.1f", s.YardsPerRec),
			strconv.Itoa(s.Touchdowns),
			opt(s.EPAPerPlay, "%+.3f"),
		)
		table.Render()
	}
}
