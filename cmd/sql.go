package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-metrics/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the metrics database",
	Long: `Run an arbitrary SQL query against the metrics database and print results as a table.

Schema overview:
  seasons(season, ingest_id, source, plays, roster_size, has_epa,
    has_season_type, ingested_at)
  plays(season, seq, posteam, play_type, season_type, epa, is_pass, is_rush,
    touchdown, pass_touchdown, rush_touchdown, complete_pass, interception,
    penalty, pass_attempt, yards_gained, passing_yards, rushing_yards,
    receiving_yards, passer_id, passer_name, rusher_id, rusher_name,
    receiver_id, receiver_name)
  rosters(season, player_id, name, position)

Flags are stored as 0/1 integers; missing numbers are NULL.
Example: SELECT posteam, AVG(epa) FROM plays WHERE season = 2024 AND play_type = 'pass' GROUP BY posteam`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	db, err := cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	report.PrintRows(os.Stdout, cols, rows)
	return nil
}
