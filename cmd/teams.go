package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-metrics/internal/report"
)

var teamsFocus string

var teamsCmd = &cobra.Command{
	Use:   "teams [season]",
	Short: "Rank teams by offensive EPA per play",
	Long: `Rank every team by mean EPA over regular-season offensive plays
(passes and runs with a possession team, a recorded EPA and no penalty),
with pass and run splits. Defaults to the latest stored season.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTeams,
}

func init() {
	teamsCmd.Flags().StringVar(&teamsFocus, "team", "", "highlight one team's row (e.g. KC)")
}

func runTeams(cmd *cobra.Command, args []string) error {
	season, err := seasonArg(args, 0)
	if err != nil {
		return err
	}
	svc, db, err := openService()
	if err != nil {
		return err
	}
	defer db.Close()

	tt, err := svc.TeamTable(season)
	if err != nil {
		return fmt.Errorf("team stats: %w", err)
	}
	report.PrintSeasonHeader(os.Stdout, tt.Season, tt.League)
	if len(tt.Teams) == 0 {
		fmt.Fprintln(os.Stdout, "No qualifying offensive plays (is the epa column present?).")
		return nil
	}
	report.PrintTeamTable(os.Stdout, tt.Teams, teamsFocus)
	return nil
}
