package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-metrics/internal/report"
)

var playerCmd = &cobra.Command{
	Use:   "player <name> [season]",
	Short: "Show one player's passing, rushing and receiving line",
	Long: `Look a player up by the display name used in the play-by-play data
(e.g. P.Mahomes, C.McCaffrey; case-insensitive) and show a line for each
role they filled. Every row naming the player counts, so players below the
leaderboard thresholds can be inspected too.`,
	Example: "  nflmetrics player P.Mahomes 2024",
	Args:    cobra.RangeArgs(1, 2),
	RunE:    runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	season, err := seasonArg(args, 1)
	if err != nil {
		return err
	}
	svc, db, err := openService()
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := svc.PlayerProfile(season, args[0])
	if err != nil {
		return err
	}
	report.PrintPlayerProfile(os.Stdout, *p)
	return nil
}
