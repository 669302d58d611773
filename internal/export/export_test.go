package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-nfl-metrics/internal/model"
)

func f(v float64) *float64 { return &v }

func sampleExport() *model.SeasonExport {
	return &model.SeasonExport{
		Season:      2024,
		LeagueStats: model.LeagueStats{TotalPlays: 10, TotalTouchdowns: 1, PassingPlays: 6, RushingPlays: 4},
		TeamStats: []model.TeamStats{
			{Team: "BAL", EPAPerPlay: 0.2, TotalEPA: 2, Plays: 10, PassPlays: 6, RushPlays: 4},
		},
		PlayerStats: &model.PlayerStats{
			QB: []model.QBStats{{Player: "L.Jackson", Plays: 120, EPAPerPlay: 0.3, CompletionPct: f(66.7), TDINTRatio: 4}},
			RB: []model.RBStats{{Player: "D.Henry", Plays: 60}},
			WR: []model.ReceiverStats{},
			TE: []model.ReceiverStats{{Player: "M.Andrews", Targets: 40, Receptions: 30, CatchRate: f(75)}},
		},
		LastUpdated: "2025-02-01T00:00:00Z",
	}
}

func TestWriteJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleExport()))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	for _, k := range []string{"season", "leagueStats", "teamStats", "playerStats", "lastUpdated"} {
		assert.Contains(t, doc, k)
	}
	players := doc["playerStats"].(map[string]any)
	for _, k := range []string{"qb", "rb", "wr", "te"} {
		assert.Contains(t, players, k)
	}
	qb := players["qb"].([]any)[0].(map[string]any)
	assert.Contains(t, qb, "epaPerPlay")
	assert.Contains(t, qb, "completionPct")
	assert.NotContains(t, qb, "yardsPerCarry", "nil derived metrics are omitted")

	assert.Contains(t, buf.String(), "\n  \"season\": 2024")
}

func TestWriteJSONWithoutEPA(t *testing.T) {
	e := sampleExport()
	e.TeamStats = nil
	e.PlayerStats = nil
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, e))
	assert.NotContains(t, buf.String(), "teamStats")
	assert.NotContains(t, buf.String(), "playerStats")
	assert.Contains(t, buf.String(), "totalPlays")
}

func TestWriteTeamCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTeamCSV(&buf, sampleExport().TeamStats))
	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "team", recs[0][0])
	assert.Equal(t, []string{"BAL", "0.2", "2", "10"}, recs[1][:4])
}

func TestWriteParquet(t *testing.T) {
	dir := t.TempDir()
	paths, err := WriteParquet(filepath.Join(dir, "out"), sampleExport())
	require.NoError(t, err)
	require.Len(t, paths, 2)

	file, err := os.Open(paths[1])
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[PlayerRow](file)
	defer reader.Close()
	rows := make([]PlayerRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 3, n)

	assert.Equal(t, "QB", rows[0].Position)
	require.NotNil(t, rows[0].CompletionPct)
	assert.Equal(t, 66.7, *rows[0].CompletionPct)
	assert.Nil(t, rows[1].CompletionPct, "RB rows carry no passing metrics")
	assert.Equal(t, "TE", rows[2].Position)
	assert.Equal(t, int32(40), rows[2].Sample)
}

func TestWriteParquetNoEPA(t *testing.T) {
	e := sampleExport()
	e.TeamStats, e.PlayerStats = nil, nil
	_, err := WriteParquet(t.TempDir(), e)
	assert.Error(t, err)
}

func TestWriteDispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", DefaultPath(2024, JSON))
	files, err := Write(sampleExport(), JSON, path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestParseFormat(t *testing.T) {
	got, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, JSON, got)
	got, err = ParseFormat("parquet")
	require.NoError(t, err)
	assert.Equal(t, Parquet, got)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
