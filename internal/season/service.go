// Package season loads stored seasons and runs the aggregation pipeline over
// them. It is the shared read path for the CLI, the shell and the MCP server.
package season

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pable/go-nfl-metrics/internal/aggregator"
	"github.com/pable/go-nfl-metrics/internal/model"
)

// Source is the read side of the season store.
type Source interface {
	ListSeasons() ([]model.SeasonSummary, error)
	LatestSeason() (int, error)
	LoadPlays(season int) (*model.PlayTable, error)
	LoadRoster(season int) (model.Roster, error)
}

// Service answers season queries. Safe for concurrent use when Source is.
type Service struct {
	Source   Source
	Pipeline *aggregator.Pipeline
	Now      func() time.Time
}

// NewService returns a service with the wall clock.
func NewService(src Source, p *aggregator.Pipeline) *Service {
	return &Service{Source: src, Pipeline: p, Now: time.Now}
}

// Resolve returns season, or the latest stored season when season is 0.
func (s *Service) Resolve(season int) (int, error) {
	if season != 0 {
		return season, nil
	}
	latest, err := s.Source.LatestSeason()
	if err != nil {
		return 0, fmt.Errorf("latest season: %w", err)
	}
	return latest, nil
}

func (s *Service) load(season int) (*model.PlayTable, model.Roster, error) {
	season, err := s.Resolve(season)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.Source.LoadPlays(season)
	if err != nil {
		return nil, nil, fmt.Errorf("load plays: %w", err)
	}
	roster, err := s.Source.LoadRoster(season)
	if err != nil {
		return nil, nil, fmt.Errorf("load roster: %w", err)
	}
	if !t.HasEPA {
		slog.Warn("season has no epa column; team and player stats omitted", "season", season)
	}
	if len(roster) == 0 {
		slog.Warn("season has no roster; player cohorts will be empty", "season", season)
	}
	return t, roster, nil
}

// Export builds the full export document.
func (s *Service) Export(season int) (*model.SeasonExport, error) {
	t, roster, err := s.load(season)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := s.Pipeline.Run(t, roster, s.Now())
	if err != nil {
		return nil, err
	}
	slog.Debug("aggregated season", "season", t.Season, "plays", len(t.Plays), "took", time.Since(start))
	return out, nil
}

// Teams returns the ranked team table.
func (s *Service) Teams(season int) ([]model.TeamStats, error) {
	t, _, err := s.load(season)
	if err != nil {
		return nil, err
	}
	return s.Pipeline.TeamStats(t), nil
}

// TeamTable is the ranked team table with the league counts for its header.
type TeamTable struct {
	Season int
	Teams  []model.TeamStats
	League model.LeagueStats
}

// TeamTable loads the season once and derives both the team ranking and the
// league counts from it.
func (s *Service) TeamTable(season int) (*TeamTable, error) {
	t, _, err := s.load(season)
	if err != nil {
		return nil, err
	}
	return &TeamTable{
		Season: t.Season,
		Teams:  s.Pipeline.TeamStats(t),
		League: aggregator.LeagueSummary(t),
	}, nil
}

// Players returns the ranked cohorts.
func (s *Service) Players(season int) (*model.PlayerStats, error) {
	t, roster, err := s.load(season)
	if err != nil {
		return nil, err
	}
	if !t.HasEPA {
		return nil, nil
	}
	ps := s.Pipeline.PlayerStats(t, roster)
	return &ps, nil
}

// League returns the structural league counts.
func (s *Service) League(season int) (model.LeagueStats, error) {
	t, _, err := s.load(season)
	if err != nil {
		return model.LeagueStats{}, err
	}
	return aggregator.LeagueSummary(t), nil
}

// TeamOffense returns one team's breakdown; unknown teams are an error that
// lists the teams present.
func (s *Service) TeamOffense(season int, team string) (*model.TeamOffense, error) {
	t, _, err := s.load(season)
	if err != nil {
		return nil, err
	}
	off, ok := aggregator.TeamOffense(t, team)
	if !ok {
		return nil, fmt.Errorf("no plays for team %q in %d (teams: %s)",
			team, t.Season, strings.Join(aggregator.Teams(t), " "))
	}
	return off, nil
}

// PlayerProfile returns one player's passing, rushing and receiving line,
// with the position filled in from the roster when the player's id is on it.
func (s *Service) PlayerProfile(season int, name string) (*model.PlayerProfile, error) {
	t, roster, err := s.load(season)
	if err != nil {
		return nil, err
	}
	p, ok := aggregator.PlayerProfile(t, name)
	if !ok {
		return nil, fmt.Errorf("no plays for player %q in %d (names are as in the data, e.g. P.Mahomes)", name, t.Season)
	}
	if pos, ok := aggregator.NewResolver(roster).Resolve(p.PlayerID); ok {
		p.Position = pos
	}
	return p, nil
}

// Seasons lists stored seasons.
func (s *Service) Seasons() ([]model.SeasonSummary, error) {
	return s.Source.ListSeasons()
}
