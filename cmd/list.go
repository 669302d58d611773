package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-metrics/internal/report"
	"github.com/pable/go-nfl-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all ingested seasons",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	svc, db, err := openService()
	if err != nil {
		return err
	}
	defer db.Close()

	seasons, err := svc.Seasons()
	if err != nil {
		return fmt.Errorf("list seasons: %w", err)
	}
	if len(seasons) == 0 {
		fmt.Fprintln(os.Stdout, "No seasons stored yet. Run 'nflmetrics ingest <play_by_play.csv>' to add one.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Store: %s\n\n", storage.Describe(db.Backend(), storeTarget(db.Backend())))
	report.PrintSeasons(os.Stdout, seasons)
	return nil
}

// storeTarget is the database path for sqlite and the DSN otherwise.
func storeTarget(b storage.Backend) string {
	if b == storage.SQLite {
		return cfg.DB
	}
	return cfg.DSN
}
