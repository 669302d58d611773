package season

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-nfl-metrics/internal/aggregator"
	"github.com/pable/go-nfl-metrics/internal/model"
)

var errMissing = errors.New("season not ingested")

// memSource is an in-memory Source.
type memSource struct {
	tables  map[int]*model.PlayTable
	rosters map[int]model.Roster
	loads   int
}

func (m *memSource) ListSeasons() ([]model.SeasonSummary, error) {
	var out []model.SeasonSummary
	for s, t := range m.tables {
		out = append(out, model.SeasonSummary{Season: s, Plays: len(t.Plays)})
	}
	return out, nil
}

func (m *memSource) LatestSeason() (int, error) {
	latest := 0
	for s := range m.tables {
		latest = max(latest, s)
	}
	if latest == 0 {
		return 0, errMissing
	}
	return latest, nil
}

func (m *memSource) LoadPlays(season int) (*model.PlayTable, error) {
	m.loads++
	t, ok := m.tables[season]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errMissing, season)
	}
	return t, nil
}

func (m *memSource) LoadRoster(season int) (model.Roster, error) {
	return m.rosters[season], nil
}

func f(v float64) *float64 { return &v }

func fixture() *memSource {
	qb := model.Participant{ID: "qb", Name: "Q.Back"}
	te := model.Participant{ID: "te", Name: "T.End"}
	plays := []model.Play{
		{PosTeam: "KC", PlayType: model.PlayPass, SeasonType: model.SeasonRegular, EPA: f(0.5),
			IsPass: true, PassAttempt: true, CompletePass: true, YardsGained: 10, Passer: qb, Receiver: te},
		{PosTeam: "KC", PlayType: model.PlayRun, SeasonType: model.SeasonRegular, EPA: f(0.3),
			IsRush: true, YardsGained: 4, Rusher: qb},
		{PosTeam: "BUF", PlayType: model.PlayRun, SeasonType: model.SeasonRegular, EPA: f(-0.1), IsRush: true},
	}
	return &memSource{
		tables: map[int]*model.PlayTable{
			2023: {Season: 2023, HasEPA: false, Plays: plays[:1]},
			2024: {Season: 2024, HasEPA: true, HasSeasonType: true, Plays: plays},
		},
		rosters: map[int]model.Roster{
			2024: model.NewRoster([]model.RosterEntry{
				{PlayerID: "qb", Position: model.PosQB},
				{PlayerID: "te", Position: model.PosTE},
			}),
		},
	}
}

func newTestService() *Service {
	svc := NewService(fixture(), &aggregator.Pipeline{Limit: 10})
	svc.Now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportLatestSeason(t *testing.T) {
	out, err := newTestService().Export(0)
	require.NoError(t, err)
	assert.Equal(t, 2024, out.Season)
	assert.Equal(t, "2025-01-01T00:00:00Z", out.LastUpdated)
	require.Len(t, out.TeamStats, 2)
	assert.Equal(t, "KC", out.TeamStats[0].Team)
	require.NotNil(t, out.PlayerStats)
	require.Len(t, out.PlayerStats.QB, 1)
	assert.Equal(t, 2, out.PlayerStats.QB[0].Plays)
	require.Len(t, out.PlayerStats.TE, 1)
}

func TestPlayersWithoutEPA(t *testing.T) {
	ps, err := newTestService().Players(2023)
	require.NoError(t, err)
	assert.Nil(t, ps)
}

func TestTeamOffenseUnknownTeam(t *testing.T) {
	svc := newTestService()
	off, err := svc.TeamOffense(2024, "buf")
	require.NoError(t, err)
	assert.Equal(t, 1, off.RushAttempts)

	_, err = svc.TeamOffense(2024, "NYJ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BUF KC")
}

func TestMissingSeason(t *testing.T) {
	_, err := newTestService().League(1999)
	assert.ErrorIs(t, err, errMissing)

	empty := NewService(&memSource{}, aggregator.New())
	_, err = empty.Teams(0)
	assert.ErrorIs(t, err, errMissing)
}

func TestPlayerProfileResolvesPosition(t *testing.T) {
	svc := newTestService()
	p, err := svc.PlayerProfile(0, "Q.Back")
	require.NoError(t, err)
	assert.Equal(t, model.PosQB, p.Position)
	require.NotNil(t, p.Passing)
	assert.Equal(t, 1, p.Passing.Attempts)
	require.NotNil(t, p.Rushing)
	assert.Equal(t, 4, p.Rushing.Yards)

	_, err = svc.PlayerProfile(2024, "Nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Nobody"`)
}

func TestTeamTableLoadsOnce(t *testing.T) {
	src := fixture()
	svc := NewService(src, &aggregator.Pipeline{Limit: 10})

	tt, err := svc.TeamTable(0)
	require.NoError(t, err)
	assert.Equal(t, 1, src.loads)
	assert.Equal(t, 2024, tt.Season)
	require.Len(t, tt.Teams, 2)
	assert.Equal(t, "KC", tt.Teams[0].Team)
	assert.Equal(t, 3, tt.League.TotalPlays)

	_, err = svc.TeamTable(1999)
	assert.ErrorIs(t, err, errMissing)
}
