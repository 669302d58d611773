package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-nfl-metrics/internal/export"
	"github.com/pable/go-nfl-metrics/internal/model"
)

var (
	exportFormat string
	exportOut    string
	exportAll    bool
	exportStdout bool
)

var exportCmd = &cobra.Command{
	Use:   "export [season]",
	Short: "Write season aggregates as JSON, Parquet or CSV",
	Long: `Run the full aggregation for a season and write the result.

  json     nfl_<season>.json: teamStats, playerStats, leagueStats and
           lastUpdated. teamStats and playerStats are omitted when the
           season has no epa column.
  parquet  nfl_<season>_teams.parquet and nfl_<season>_players.parquet
           in the --out directory.
  csv      nfl_<season>_teams.csv with the team EPA table.

With --all every stored season is exported; --out is then a directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json, parquet or csv")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (json, csv) or directory (parquet); default nfl_<season>.<ext>")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "export every stored season")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "write JSON to stdout instead of a file")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	if exportStdout && format != export.JSON {
		return fmt.Errorf("--stdout only supports --format json")
	}
	if exportAll && len(args) > 0 {
		return fmt.Errorf("--all and a season argument are mutually exclusive")
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

	seasons := []int{season}
	if exportAll {
		stored, err := svc.Seasons()
		if err != nil {
			return fmt.Errorf("list seasons: %w", err)
		}
		if len(stored) == 0 {
			return fmt.Errorf("no seasons stored")
		}
		seasons = seasons[:0]
		for _, s := range stored {
			seasons = append(seasons, s.Season)
		}
	}

	for _, s := range seasons {
		doc, err := svc.Export(s)
		if err != nil {
			return fmt.Errorf("export season %d: %w", s, err)
		}
		if exportStdout {
			if err := export.WriteJSON(os.Stdout, doc); err != nil {
				return err
			}
			continue
		}
		files, err := export.Write(doc, format, exportPath(doc, format))
		if err != nil {
			return fmt.Errorf("export season %d: %w", doc.Season, err)
		}
		for _, f := range files {
			slog.Debug("wrote export", "season", doc.Season, "format", format, "file", f)
			fmt.Fprintf(os.Stdout, "Wrote %s\n", f)
		}
	}
	return nil
}

// exportPath resolves --out for one season. With --all, --out names a
// directory that receives the default file names.
func exportPath(doc *model.SeasonExport, format export.Format) string {
	def := export.DefaultPath(doc.Season, format)
	switch {
	case exportOut == "":
		return def
	case exportAll && format != export.Parquet:
		return filepath.Join(exportOut, def)
	default:
		return exportOut
	}
}
