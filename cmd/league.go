package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-metrics/internal/report"
)

var leagueCmd = &cobra.Command{
	Use:   "league [season]",
	Short: "Show league-wide play, touchdown, pass and rush counts",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLeague,
}

func runLeague(cmd *cobra.Command, args []string) error {
	season, err := seasonArg(args, 0)
	if err != nil {
		return err
	}
	svc, db, err := openService()
	if err != nil {
		return err
	}
	defer db.Close()

	season, err = svc.Resolve(season)
	if err != nil {
		return err
	}
	l, err := svc.League(season)
	if err != nil {
		return fmt.Errorf("league stats: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\nSeason: %d\n\n", season)
	report.PrintLeague(os.Stdout, l)
	return nil
}
