package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-metrics/internal/report"
	"github.com/pable/go-nfl-metrics/internal/season"
	"github.com/pable/go-nfl-metrics/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

// shellSession holds the open store and the season commands default to.
type shellSession struct {
	svc    *season.Service
	db     *storage.DB
	season int
}

func runShell(_ *cobra.Command, _ []string) error {
	svc, db, err := openService()
	if err != nil {
		return err
	}
	defer db.Close()
	sh := &shellSession{svc: svc, db: db}

	cGreeting.Println("nflmetrics shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("nflmetrics")
		if sh.season != 0 {
			cMuted.Printf("[%d]", sh.season)
		}
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := strings.ToLower(tokens[0]), tokens[1:]

		var cmdErr error
		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "use":
			cmdErr = sh.use(args)
		case "list":
			cmdErr = sh.list()
		case "teams":
			cmdErr = sh.teams(args)
		case "players":
			cmdErr = sh.players(args)
		case "league":
			cmdErr = sh.league()
		case "team":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: team <abbr>")
				continue
			}
			cmdErr = sh.team(args[0])
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <name>")
				continue
			}
			cmdErr = sh.player(strings.Join(args, " "))
		case "sql":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: sql <query>")
				continue
			}
			cmdErr = sh.sql(strings.TrimSpace(line[len(tokens[0]):]))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q: type 'help'\n", cmd)
		}
		if cmdErr != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", cmdErr)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"use <season>", "set the season for later commands (default: latest)"},
		{"list", "list ingested seasons"},
		{"teams [TEAM]", "team EPA ranking, highlighting TEAM"},
		{"players [qb|rb|wr|te]", "position leaderboards"},
		{"league", "league-wide counts"},
		{"team <abbr>", "one team's passing and rushing breakdown"},
		{"player <name>", "one player's passing, rushing and receiving line"},
		{"sql <query>", "run a raw SQL query"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-26s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (sh *shellSession) use(args []string) error {
	if len(args) == 0 {
		sh.season = 0
		cMuted.Println("using the latest season")
		return nil
	}
	s, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid season %q", args[0])
	}
	if _, err := sh.svc.League(s); err != nil {
		return err
	}
	sh.season = s
	return nil
}

func (sh *shellSession) list() error {
	seasons, err := sh.svc.Seasons()
	if err != nil {
		return err
	}
	if len(seasons) == 0 {
		cMuted.Println("No seasons stored yet.")
		return nil
	}
	cHeader.Fprintf(os.Stdout, "%-8s  %8s  %7s  %-4s  %s\n", "SEASON", "PLAYS", "ROSTER", "EPA", "SOURCE")
	cMuted.Fprintf(os.Stdout, "%-8s  %8s  %7s  %-4s  %s\n", "──────", "────────", "───────", "───", "──────")
	for _, s := range seasons {
		fmt.Fprintf(os.Stdout, "%-8d  %8d  %7d  %-4s  %s\n", s.Season, s.Plays, s.RosterSize, yesNo(s.HasEPA), s.Source)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (sh *shellSession) teams(args []string) error {
	rows, err := sh.svc.Teams(sh.season)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		cWarn.Println("no qualifying offensive plays")
		return nil
	}
	focus := ""
	if len(args) > 0 {
		focus = args[0]
	}
	report.PrintTeamTable(os.Stdout, rows, focus)
	return nil
}

func (sh *shellSession) players(args []string) error {
	pos := ""
	if len(args) > 0 {
		pos = args[0]
	}
	p, err := positionFlag(pos)
	if err != nil {
		return err
	}
	ps, err := sh.svc.Players(sh.season)
	if err != nil {
		return err
	}
	if ps == nil {
		cWarn.Println("season has no epa column")
		return nil
	}
	report.PrintPlayerStats(os.Stdout, *ps, p)
	return nil
}

func (sh *shellSession) league() error {
	l, err := sh.svc.League(sh.season)
	if err != nil {
		return err
	}
	report.PrintLeague(os.Stdout, l)
	return nil
}

func (sh *shellSession) team(abbr string) error {
	off, err := sh.svc.TeamOffense(sh.season, abbr)
	if err != nil {
		return err
	}
	report.PrintTeamOffense(os.Stdout, *off)
	return nil
}

func (sh *shellSession) player(name string) error {
	p, err := sh.svc.PlayerProfile(sh.season, name)
	if err != nil {
		return err
	}
	report.PrintPlayerProfile(os.Stdout, *p)
	return nil
}

func (sh *shellSession) sql(query string) error {
	cols, rows, err := sh.db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintRows(os.Stdout, cols, rows)
	return nil
}
