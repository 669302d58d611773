package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-nfl-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err, "open in-memory db")
	t.Cleanup(func() { db.Close() })
	return db
}

func f(v float64) *float64 { return &v }

func sampleTable(season int) *model.PlayTable {
	return &model.PlayTable{
		Season:        season,
		HasEPA:        true,
		HasSeasonType: true,
		Plays: []model.Play{
			{
				PosTeam: "KC", PlayType: model.PlayPass, SeasonType: model.SeasonRegular,
				EPA: f(0.52), IsPass: true, PassAttempt: true, CompletePass: true,
				PassTouchdown: true, Touchdown: true, YardsGained: 18,
				PassingYards: f(18), ReceivingYards: f(18),
				Passer:   model.Participant{ID: "00-qb1", Name: "P.Mahomes"},
				Receiver: model.Participant{ID: "00-te1", Name: "T.Kelce"},
			},
			{
				PosTeam: "KC", PlayType: model.PlayRun, SeasonType: model.SeasonRegular,
				IsRush: true, Penalty: true, YardsGained: -2, RushingYards: f(-2),
				Rusher: model.Participant{ID: "00-rb1", Name: "I.Pacheco"},
			},
		},
	}
}

func sampleRoster() []model.RosterEntry {
	return []model.RosterEntry{
		{PlayerID: "00-qb1", Name: "Patrick Mahomes", Position: model.PosQB},
		{PlayerID: "00-te1", Name: "Travis Kelce", Position: model.PosTE},
		{PlayerID: "00-rb1", Name: "Isiah Pacheco", Position: model.PosRB},
	}
}

func TestReplaceSeasonRoundTrip(t *testing.T) {
	db := openMemDB(t)
	db.now = func() time.Time { return time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC) }

	in := sampleTable(2024)
	id, err := db.ReplaceSeason(in, sampleRoster(), "pbp_2024.csv")
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "ingest id should be a uuid")

	out, err := db.LoadPlays(2024)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	roster, err := db.LoadRoster(2024)
	require.NoError(t, err)
	assert.Len(t, roster, 3)
	assert.Equal(t, model.PosTE, roster["00-te1"].Position)

	sum, err := db.GetSeason(2024)
	require.NoError(t, err)
	require.NotNil(t, sum)
	assert.Equal(t, id, sum.IngestID)
	assert.Equal(t, 2, sum.Plays)
	assert.Equal(t, 3, sum.RosterSize)
	assert.True(t, sum.HasEPA)
	assert.Equal(t, "pbp_2024.csv", sum.Source)
	assert.Equal(t, 2025, sum.IngestedAt.Year())
}

// TestReplaceSeasonReplaces: a second ingest of the same season discards the first.
func TestReplaceSeasonReplaces(t *testing.T) {
	db := openMemDB(t)
	first, err := db.ReplaceSeason(sampleTable(2024), sampleRoster(), "a.csv")
	require.NoError(t, err)

	smaller := sampleTable(2024)
	smaller.Plays = smaller.Plays[:1]
	smaller.HasEPA = false
	second, err := db.ReplaceSeason(smaller, nil, "b.csv")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	out, err := db.LoadPlays(2024)
	require.NoError(t, err)
	assert.Len(t, out.Plays, 1)
	assert.False(t, out.HasEPA)

	roster, err := db.LoadRoster(2024)
	require.NoError(t, err)
	assert.NotNil(t, roster)
	assert.Empty(t, roster)
}

func TestReplaceSeasonRequiresSeason(t *testing.T) {
	db := openMemDB(t)
	_, err := db.ReplaceSeason(sampleTable(0), nil, "x")
	assert.Error(t, err)
	_, err = db.ReplaceSeason(nil, nil, "x")
	assert.Error(t, err)
}

func TestListAndLatestSeasons(t *testing.T) {
	db := openMemDB(t)

	_, err := db.LatestSeason()
	assert.ErrorIs(t, err, ErrSeasonNotFound)

	for _, s := range []int{2022, 2024, 2023} {
		_, err := db.ReplaceSeason(sampleTable(s), sampleRoster(), "x")
		require.NoError(t, err)
	}
	list, err := db.ListSeasons()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 2024, list[0].Season)
	assert.Equal(t, 2022, list[2].Season)

	latest, err := db.LatestSeason()
	require.NoError(t, err)
	assert.Equal(t, 2024, latest)
}

func TestLoadPlaysMissingSeason(t *testing.T) {
	db := openMemDB(t)
	_, err := db.LoadPlays(1999)
	assert.ErrorIs(t, err, ErrSeasonNotFound)

	sum, err := db.GetSeason(1999)
	assert.NoError(t, err)
	assert.Nil(t, sum)
}

func TestDropSeason(t *testing.T) {
	db := openMemDB(t)
	_, err := db.ReplaceSeason(sampleTable(2024), sampleRoster(), "x")
	require.NoError(t, err)

	removed, err := db.DropSeason(2024)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = db.DropSeason(2024)
	require.NoError(t, err)
	assert.False(t, removed)

	_, rows, err := db.QueryRaw("SELECT COUNT(*) FROM plays")
	require.NoError(t, err)
	assert.Equal(t, "0", rows[0][0])
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	_, err := db.ReplaceSeason(sampleTable(2024), sampleRoster(), "x")
	require.NoError(t, err)

	cols, rows, err := db.QueryRaw("SELECT posteam, epa FROM plays ORDER BY seq")
	require.NoError(t, err)
	assert.Equal(t, []string{"posteam", "epa"}, cols)
	require.Len(t, rows, 2)
	assert.Equal(t, "KC", rows[0][0])
	assert.Equal(t, "NULL", rows[1][1])

	_, _, err = db.QueryRaw("SELECT * FROM nope")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &DB{backend: PostgreSQL}
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", pg.rebind("SELECT a FROM t WHERE x = ? AND y = ?"))
	lite := &DB{backend: SQLite}
	assert.Equal(t, "x = ?", lite.rebind("x = ?"))
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"", SQLite, false},
		{"SQLite", SQLite, false},
		{"postgres", PostgreSQL, false},
		{"postgresql", PostgreSQL, false},
		{"mysql", MySQL, false},
		{"oracle", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestDescribeHidesPassword(t *testing.T) {
	d := Describe(MySQL, "user:secret@tcp(db.local:3306)/nfl")
	assert.Equal(t, "mysql db.local:3306/nfl", d)
	assert.NotContains(t, Describe(PostgreSQL, "password=secret host=pg dbname=nfl"), "secret")
}
