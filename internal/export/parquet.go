package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/pable/go-nfl-metrics/internal/model"
)

// TeamRow is one team in the teams Parquet table.
type TeamRow struct {
	Season         int32   `parquet:"season,snappy"`
	Rank           int32   `parquet:"rank,snappy"`
	Team           string  `parquet:"team,snappy"`
	EPAPerPlay     float64 `parquet:"epa_per_play,snappy"`
	TotalEPA       float64 `parquet:"total_epa,snappy"`
	Plays          int32   `parquet:"plays,snappy"`
	PassEPAPerPlay float64 `parquet:"pass_epa_per_play,snappy"`
	PassTotalEPA   float64 `parquet:"pass_total_epa,snappy"`
	PassPlays      int32   `parquet:"pass_plays,snappy"`
	RushEPAPerPlay float64 `parquet:"rush_epa_per_play,snappy"`
	RushTotalEPA   float64 `parquet:"rush_total_epa,snappy"`
	RushPlays      int32   `parquet:"rush_plays,snappy"`
}

// PlayerRow flattens all four cohorts into one table. Sample is plays for QB
// and RB, targets for WR and TE. Metrics a position does not have are null.
type PlayerRow struct {
	Season     int32   `parquet:"season,snappy"`
	Position   string  `parquet:"position,snappy,dict"`
	Rank       int32   `parquet:"rank,snappy"`
	Player     string  `parquet:"player,snappy"`
	EPAPerPlay float64 `parquet:"epa_per_play,snappy"`
	TotalEPA   float64 `parquet:"total_epa,snappy"`
	Sample     int32   `parquet:"sample,snappy"`
	Yards      float64 `parquet:"yards,snappy"`
	Touchdowns float64 `parquet:"touchdowns,snappy"`

	Interceptions *float64 `parquet:"interceptions,optional,snappy"`
	CompletionPct *float64 `parquet:"completion_pct,optional,snappy"`
	YardsPerAtt   *float64 `parquet:"yards_per_attempt,optional,snappy"`
	TDINTRatio    *float64 `parquet:"td_int_ratio,optional,snappy"`
	YardsPerCarry *float64 `parquet:"yards_per_carry,optional,snappy"`
	Receptions    *float64 `parquet:"receptions,optional,snappy"`
	CatchRate     *float64 `parquet:"catch_rate,optional,snappy"`
	YardsPerRec   *float64 `parquet:"yards_per_reception,optional,snappy"`
}

// TeamRows converts the team table.
func TeamRows(season int, rows []model.TeamStats) []TeamRow {
	out := make([]TeamRow, 0, len(rows))
	for i, r := range rows {
		out = append(out, TeamRow{
			Season:         int32(season),
			Rank:           int32(i + 1),
			Team:           r.Team,
			EPAPerPlay:     r.EPAPerPlay,
			TotalEPA:       r.TotalEPA,
			Plays:          int32(r.Plays),
			PassEPAPerPlay: r.PassEPAPerPlay,
			PassTotalEPA:   r.PassTotalEPA,
			PassPlays:      int32(r.PassPlays),
			RushEPAPerPlay: r.RushEPAPerPlay,
			RushTotalEPA:   r.RushTotalEPA,
			RushPlays:      int32(r.RushPlays),
		})
	}
	return out
}

func ptr(v float64) *float64 { return &v }

// PlayerRows flattens the cohorts in QB, RB, WR, TE order.
func PlayerRows(season int, ps *model.PlayerStats) []PlayerRow {
	if ps == nil {
		return nil
	}
	var out []PlayerRow
	for i, r := range ps.QB {
		out = append(out, PlayerRow{
			Season: int32(season), Position: string(model.PosQB), Rank: int32(i + 1),
			Player: r.Player, EPAPerPlay: r.EPAPerPlay, TotalEPA: r.TotalEPA,
			Sample: int32(r.Plays), Yards: r.PassingYards, Touchdowns: r.Touchdowns,
			Interceptions: ptr(r.Interceptions),
			CompletionPct: r.CompletionPct,
			YardsPerAtt:   r.YardsPerAtt,
			TDINTRatio:    ptr(r.TDINTRatio),
			YardsPerCarry: r.YardsPerCarry,
		})
	}
	for i, r := range ps.RB {
		out = append(out, PlayerRow{
			Season: int32(season), Position: string(model.PosRB), Rank: int32(i + 1),
			Player: r.Player, EPAPerPlay: r.EPAPerPlay, TotalEPA: r.TotalEPA,
			Sample: int32(r.Plays), Yards: r.RushingYards, Touchdowns: r.Touchdowns,
			YardsPerCarry: r.YardsPerCarry,
		})
	}
	recv := func(pos model.Position, rows []model.ReceiverStats) {
		for i, r := range rows {
			out = append(out, PlayerRow{
				Season: int32(season), Position: string(pos), Rank: int32(i + 1),
				Player: r.Player, EPAPerPlay: r.EPAPerPlay, TotalEPA: r.TotalEPA,
				Sample: int32(r.Targets), Yards: r.ReceivingYards, Touchdowns: r.Touchdowns,
				Receptions:  ptr(r.Receptions),
				CatchRate:   r.CatchRate,
				YardsPerRec: ptr(r.YardsPerRec),
			})
		}
	}
	recv(model.PosWR, ps.WR)
	recv(model.PosTE, ps.TE)
	return out
}

// WriteParquet writes nfl_<season>_teams.parquet and nfl_<season>_players.parquet
// into dir. Nothing is written when the export carries no EPA sections.
func WriteParquet(dir string, e *model.SeasonExport) ([]string, error) {
	if e.TeamStats == nil && e.PlayerStats == nil {
		return nil, fmt.Errorf("season %d has no EPA data to write as parquet", e.Season)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	teamsPath := filepath.Join(dir, fmt.Sprintf("nfl_%d_teams.parquet", e.Season))
	if err := writeParquetFile(teamsPath, TeamRows(e.Season, e.TeamStats)); err != nil {
		return nil, err
	}
	playersPath := filepath.Join(dir, fmt.Sprintf("nfl_%d_players.parquet", e.Season))
	if err := writeParquetFile(playersPath, PlayerRows(e.Season, e.PlayerStats)); err != nil {
		return nil, err
	}
	return []string{teamsPath, playersPath}, nil
}

func writeParquetFile[T any](path string, rows []T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return file.Close()
}
