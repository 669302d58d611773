package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-metrics/internal/aggregator"
	"github.com/pable/go-nfl-metrics/internal/model"
	"github.com/pable/go-nfl-metrics/internal/parser"
	"github.com/pable/go-nfl-metrics/internal/report"
)

var (
	ingestSeason int
	ingestRoster string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <play_by_play.csv[.gz|.zst]>",
	Short: "Load a season of play-by-play (and optionally its roster) into the database",
	Long: `Parse an nflverse play_by_play CSV and store it, replacing any season
already stored under the same year. Files ending in .gz or .zst are
decompressed on the fly.

Without --season the year is taken from the first row's season column.
Rows belonging to other seasons are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().IntVar(&ingestSeason, "season", 0, "season year (default: from the file)")
	ingestCmd.Flags().StringVar(&ingestRoster, "roster", "", "roster CSV for the same season (gsis_id, position)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]
	start := time.Now()

	table, err := parser.ParsePlaysFile(path, ingestSeason)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	if table.Season == 0 {
		return fmt.Errorf("ingest: %s has no rows and --season was not given", path)
	}
	slog.Info("parsed plays", "file", path, "season", table.Season, "plays", len(table.Plays),
		"epa", table.HasEPA, "season_type", table.HasSeasonType)

	var roster []model.RosterEntry
	if ingestRoster != "" {
		roster, err = parser.ParseRosterFile(ingestRoster, table.Season)
		if err != nil {
			return fmt.Errorf("ingest: %w", err)
		}
		slog.Info("parsed roster", "file", ingestRoster, "players", len(roster))
	} else {
		slog.Warn("no roster given; player leaderboards will be empty", "season", table.Season)
	}

	db, err := cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	id, err := db.ReplaceSeason(table, roster, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("store season %d: %w", table.Season, err)
	}
	slog.Info("stored season", "season", table.Season, "ingest_id", id, "took", time.Since(start).Round(time.Millisecond))

	fmt.Fprintf(os.Stdout, "Stored season %d (%d plays, %d roster entries)\n", table.Season, len(table.Plays), len(roster))
	report.PrintLeague(os.Stdout, aggregator.LeagueSummary(table))
	return nil
}
