package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-nfl-metrics/internal/model"
)

const pbpCSV = `season,season_type,posteam,play_type,epa,pass,rush,touchdown,pass_touchdown,rush_touchdown,complete_pass,interception,penalty,pass_attempt,yards_gained,passing_yards,rushing_yards,receiving_yards,passer_player_id,passer_player_name,rusher_player_id,rusher_player_name,receiver_player_id,receiver_player_name
2024,REG,KC,pass,0.52,1,0,1,1,0,1,0,0,1,18,18,NA,18,00-qb1,P.Mahomes,NA,NA,00-te1,T.Kelce
2024,REG,KC,run,-0.1,0,1,0,0,0,0,0,0,0,3,NA,3,NA,NA,NA,00-rb1,I.Pacheco,NA,NA
2024,POST,BUF,run,NA,0,1,0,0,0,0,0,1,0,0,NA,0,NA,,,00-qb2,J.Allen,,
2023,REG,KC,pass,1.0,1,0,0,0,0,0,0,0,1,0,0,NA,NA,00-qb1,P.Mahomes,NA,NA,NA,NA
`

func TestParsePlays(t *testing.T) {
	tb, err := ParsePlays(strings.NewReader(pbpCSV), 2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, tb.Season)
	assert.True(t, tb.HasEPA)
	assert.True(t, tb.HasSeasonType)
	require.Len(t, tb.Plays, 3, "2023 row must be skipped")

	p := tb.Plays[0]
	assert.Equal(t, "KC", p.PosTeam)
	assert.Equal(t, model.PlayPass, p.PlayType)
	assert.Equal(t, model.SeasonRegular, p.SeasonType)
	require.NotNil(t, p.EPA)
	assert.Equal(t, 0.52, *p.EPA)
	assert.True(t, p.IsPass)
	assert.True(t, p.PassTouchdown)
	assert.True(t, p.CompletePass)
	assert.Equal(t, 18, p.YardsGained)
	assert.Nil(t, p.RushingYards)
	assert.Equal(t, model.Participant{ID: "00-qb1", Name: "P.Mahomes"}, p.Passer)
	assert.False(t, p.Rusher.Present())

	post := tb.Plays[2]
	assert.Nil(t, post.EPA)
	assert.True(t, post.Penalty)
	assert.Equal(t, model.SeasonPost, post.SeasonType)
	assert.False(t, post.Passer.Present())
}

// TestParsePlays_SeasonFromFirstRow: season 0 adopts the first row's season.
func TestParsePlays_SeasonFromFirstRow(t *testing.T) {
	tb, err := ParsePlays(strings.NewReader(pbpCSV), 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, tb.Season)
	assert.Len(t, tb.Plays, 3)
}

func TestParsePlays_OptionalColumnsAbsent(t *testing.T) {
	csv := "posteam,play_type,pass,rush\nKC,pass,1,0\nKC,run,0,1\n"
	tb, err := ParsePlays(strings.NewReader(csv), 2024)
	require.NoError(t, err)
	assert.False(t, tb.HasEPA)
	assert.False(t, tb.HasSeasonType)
	require.Len(t, tb.Plays, 2)
	assert.Nil(t, tb.Plays[0].EPA)
	assert.Equal(t, model.SeasonUnknown, tb.Plays[0].SeasonType)
}

func TestParsePlays_MissingRequiredColumn(t *testing.T) {
	_, err := ParsePlays(strings.NewReader("season,epa\n2024,0.1\n"), 2024)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "posteam")
}

func TestParsePlays_BadNumber(t *testing.T) {
	_, err := ParsePlays(strings.NewReader("posteam,play_type,epa\nKC,pass,abc\n"), 2024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "epa")
}

func TestParsePlays_EmptyInput(t *testing.T) {
	_, err := ParsePlays(strings.NewReader(""), 2024)
	assert.Error(t, err)
}

const rosterCSV = `season,team,position,full_name,gsis_id
2024,KC,QB,Patrick Mahomes,00-qb1
2024,KC,te,Travis Kelce,00-te1
2024,KC,K,Harrison Butker,00-k1
2024,KC,RB,No Id,NA
2023,KC,WR,Old Player,00-wr0
`

func TestParseRoster(t *testing.T) {
	entries, err := ParseRoster(strings.NewReader(rosterCSV), 2024)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, model.RosterEntry{PlayerID: "00-qb1", Name: "Patrick Mahomes", Position: model.PosQB}, entries[0])
	assert.Equal(t, model.PosTE, entries[1].Position)
	assert.Equal(t, model.PosOther, entries[2].Position)
}

func TestParseRoster_MissingID(t *testing.T) {
	_, err := ParseRoster(strings.NewReader("position,name\nQB,x\n"), 0)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

// ---- Compressed input ----

func TestParsePlaysFile_Compressed(t *testing.T) {
	dir := t.TempDir()

	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, err := gw.Write([]byte(pbpCSV))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	gzPath := filepath.Join(dir, "pbp.csv.gz")
	require.NoError(t, os.WriteFile(gzPath, gzBuf.Bytes(), 0o644))

	var zBuf bytes.Buffer
	zw, err := zstd.NewWriter(&zBuf)
	require.NoError(t, err)
	_, err = zw.Write([]byte(pbpCSV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	zPath := filepath.Join(dir, "pbp.csv.zst")
	require.NoError(t, os.WriteFile(zPath, zBuf.Bytes(), 0o644))

	plainPath := filepath.Join(dir, "pbp.csv")
	require.NoError(t, os.WriteFile(plainPath, []byte(pbpCSV), 0o644))

	for _, path := range []string{gzPath, zPath, plainPath} {
		tb, err := ParsePlaysFile(path, 2024)
		require.NoError(t, err, path)
		assert.Len(t, tb.Plays, 3, path)
	}

	_, err = ParsePlaysFile(filepath.Join(dir, "missing.csv"), 2024)
	assert.Error(t, err)
}
