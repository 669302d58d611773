package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-metrics/internal/model"
	"github.com/pable/go-nfl-metrics/internal/report"
)

var playersPosition string

var playersCmd = &cobra.Command{
	Use:   "players [season]",
	Short: "Show QB, RB, WR and TE EPA leaderboards",
	Long: `Show position leaderboards ranked by EPA per play. Players below the
sample thresholds (--min-qb-plays, --min-rb-rushes, --min-wr-targets,
--min-te-targets) are dropped before ranking; --limit caps each table.
Positions come from the roster stored with the season.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlayers,
}

func init() {
	playersCmd.Flags().StringVarP(&playersPosition, "position", "p", "", "only one cohort: qb, rb, wr or te")
}

// positionFlag validates a cohort name; "" selects all cohorts.
func positionFlag(s string) (model.Position, error) {
	if s == "" {
		return "", nil
	}
	pos := model.ParsePosition(s)
	if pos == model.PosOther {
		return "", fmt.Errorf("invalid position %q: want qb, rb, wr or te", s)
	}
	return pos, nil
}

func runPlayers(cmd *cobra.Command, args []string) error {
	pos, err := positionFlag(strings.TrimSpace(playersPosition))
	if err != nil {
		return err
	}
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
	ps, err := svc.Players(season)
	if err != nil {
		return fmt.Errorf("player stats: %w", err)
	}
	if ps == nil {
		return fmt.Errorf("season %d has no epa column; player stats unavailable", season)
	}
	fmt.Fprintf(os.Stdout, "\nSeason: %d\n", season)
	report.PrintPlayerStats(os.Stdout, *ps, pos)
	return nil
}
