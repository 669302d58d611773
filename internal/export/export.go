// Package export writes season aggregates as static files: the JSON document
// consumed by the web front end, Parquet tables for analytics, and a CSV of the
// team table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pable/go-nfl-metrics/internal/model"
)

// Format selects an output encoding.
type Format string

const (
	JSON    Format = "json"
	Parquet Format = "parquet"
	CSV     Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case JSON, Parquet, CSV:
		return f, nil
	case "":
		return JSON, nil
	default:
		return "", fmt.Errorf("unknown format %q: must be json, parquet or csv", s)
	}
}

// DefaultPath returns the conventional output location for a season: a file
// for json and csv, a directory for parquet.
func DefaultPath(season int, f Format) string {
	switch f {
	case Parquet:
		return "."
	case CSV:
		return fmt.Sprintf("nfl_%d_teams.csv", season)
	default:
		return fmt.Sprintf("nfl_%d.json", season)
	}
}

// Write renders e in format f under path and returns the files written.
func Write(e *model.SeasonExport, f Format, path string) ([]string, error) {
	switch f {
	case Parquet:
		return WriteParquet(path, e)
	case CSV:
		return []string{path}, writeFile(path, func(w io.Writer) error { return WriteTeamCSV(w, e.TeamStats) })
	default:
		return []string{path}, writeFile(path, func(w io.Writer) error { return WriteJSON(w, e) })
	}
}

func writeFile(path string, render func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteJSON writes the export document indented by two spaces.
func WriteJSON(w io.Writer, e *model.SeasonExport) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteTeamCSV writes the team table with the export's field names as header.
func WriteTeamCSV(w io.Writer, rows []model.TeamStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"team", "epaPerPlay", "totalEPA", "plays",
		"passEpaPerPlay", "passTotalEPA", "passPlays",
		"rushEpaPerPlay", "rushTotalEPA", "rushPlays",
	}); err != nil {
		return err
	}
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, r := range rows {
		if err := cw.Write([]string{
			r.Team, ff(r.EPAPerPlay), ff(r.TotalEPA), strconv.Itoa(r.Plays),
			ff(r.PassEPAPerPlay), ff(r.PassTotalEPA), strconv.Itoa(r.PassPlays),
			ff(r.RushEPAPerPlay), ff(r.RushTotalEPA), strconv.Itoa(r.RushPlays),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
