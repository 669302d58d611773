package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-metrics/internal/report"
)

var teamCmd = &cobra.Command{
	Use:   "team <abbr> [season]",
	Short: "Show one team's passing and rushing breakdown",
	Long: `Show attempts, completions, yards, touchdowns, interceptions and EPA
per play for one team's passing game, and carries, yards and EPA for its
running game. Counts include every play the team ran, postseason included.`,
	Example: "  nflmetrics team KC 2024",
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runTeam,
}

func runTeam(cmd *cobra.Command, args []string) error {
	season, err := seasonArg(args, 1)
	if err != nil {
		return err
	}
	svc, db, err := openService()
	if err != nil {
		return err
	}
	defer db.Close()

	off, err := svc.TeamOffense(season, args[0])
	if err != nil {
		return err
	}
	report.PrintTeamOffense(os.Stdout, *off)
	return nil
}
