package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-metrics/internal/storage"
)

var (
	dropForce bool
	dropAll   bool
)

// dropCmd deletes one stored season, or the whole SQLite database with --all.
var dropCmd = &cobra.Command{
	Use:   "drop [season]",
	Short: "Delete a stored season, or the whole database with --all",
	Long: `Permanently delete one season's plays and roster. With --all the SQLite
database file is removed instead; re-ingest your CSVs afterwards to rebuild.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().BoolVar(&dropAll, "all", false, "delete the entire SQLite database file")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dropAll {
		return dropDatabase()
	}
	if len(args) == 0 {
		return fmt.Errorf("drop: a season is required (or --all)")
	}
	season, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid season %q", args[0])
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete season %d.\n", season)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}

	db, err := cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ok, err := db.DropSeason(season)
	if err != nil {
		return fmt.Errorf("drop season %d: %w", season, err)
	}
	if !ok {
		fmt.Fprintf(os.Stdout, "Season %d is not stored, nothing to drop.\n", season)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted season %d\n", season)
	return nil
}

func dropDatabase() error {
	backend, err := storage.ParseBackend(cfg.Backend)
	if err != nil {
		return err
	}
	if backend != storage.SQLite {
		return fmt.Errorf("drop --all only removes SQLite files; drop seasons individually on %s", backend)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", cfg.DB)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(cfg.DB); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(cfg.DB + suffix)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", cfg.DB)
	return nil
}
