package aggregator

import (
	"errors"
	"time"

	"github.com/pable/go-nfl-metrics/internal/model"
)

// ErrNoTable is returned by Run when no play table was supplied.
var ErrNoTable = errors.New("aggregator: no play table")

// Thresholds are the minimum sample sizes per cohort.
type Thresholds struct {
	QBPlays   int
	RBRushes  int
	WRTargets int
	TETargets int
}

// DefaultThresholds returns the standard cohort minimums.
func DefaultThresholds() Thresholds {
	return Thresholds{QBPlays: 100, RBRushes: 50, WRTargets: 30, TETargets: 30}
}

// DefaultLimit caps each ranked player cohort.
const DefaultLimit = 50

// Pipeline runs the team and player aggregations for one season.
type Pipeline struct {
	Thresholds Thresholds
	Limit      int
}

// New returns a pipeline with the default thresholds and limit.
func New() *Pipeline {
	return &Pipeline{Thresholds: DefaultThresholds(), Limit: DefaultLimit}
}

// Run produces the complete export document for one season. now stamps
// LastUpdated; identical inputs and now give identical output.
func (p *Pipeline) Run(t *model.PlayTable, roster model.Roster, now time.Time) (*model.SeasonExport, error) {
	if t == nil {
		return nil, ErrNoTable
	}
	out := &model.SeasonExport{
		Season:      t.Season,
		LeagueStats: LeagueSummary(t),
		LastUpdated: now.UTC().Format(time.RFC3339),
	}
	if !t.HasEPA {
		return out, nil
	}
	out.TeamStats = p.TeamStats(t)
	players := p.PlayerStats(t, roster)
	out.PlayerStats = &players
	return out, nil
}

// ---- Team ----

// TeamStats returns one row per offensive team ordered by EPA per play. Teams
// with no pass or no run plays get zeros in that split. Returns nil when the
// table has no EPA column.
func (p *Pipeline) TeamStats(t *model.PlayTable) []model.TeamStats {
	if t == nil || !t.HasEPA {
		return nil
	}
	offense := OffensivePlays(t)
	all := Aggregate(offense, ByTeam, ColEPA)
	pass := Aggregate(PassingPlays(offense), ByTeam, ColEPA)
	rush := Aggregate(RushingPlays(offense), ByTeam, ColEPA)

	keys := OuterJoinKeys(all, pass, rush)
	rows := make([]model.TeamStats, 0, len(keys))
	for _, team := range keys {
		a := all.Lookup(ColEPA.Name, team)
		pa := pass.Lookup(ColEPA.Name, team)
		ra := rush.Lookup(ColEPA.Name, team)
		rows = append(rows, model.TeamStats{
			Team:           team,
			EPAPerPlay:     a.Mean,
			TotalEPA:       a.Sum,
			Plays:          a.Count,
			PassEPAPerPlay: pa.Mean,
			PassTotalEPA:   pa.Sum,
			PassPlays:      pa.Count,
			RushEPAPerPlay: ra.Mean,
			RushTotalEPA:   ra.Sum,
			RushPlays:      ra.Count,
		})
	}
	return Ranking[model.TeamStats]{
		Sample: func(r model.TeamStats) int { return r.Plays },
		Metric: func(r model.TeamStats) float64 { return r.EPAPerPlay },
		Key:    func(r model.TeamStats) string { return r.Team },
	}.Apply(rows)
}

// ---- Players ----

// PlayerStats builds the four ranked position cohorts. Participants missing
// from the roster are left out of every cohort.
func (p *Pipeline) PlayerStats(t *model.PlayTable, roster model.Roster) model.PlayerStats {
	res := NewResolver(roster)
	offense := OffensivePlays(t)
	pass := PassingPlays(offense)
	rush := RushingPlays(offense)

	return model.PlayerStats{
		QB: p.quarterbacks(pass, rush, res),
		RB: p.runningBacks(rush, res),
		WR: p.receivers(offense, res, model.PosWR, p.Thresholds.WRTargets),
		TE: p.receivers(offense, res, model.PosTE, p.Thresholds.TETargets),
	}
}

func (p *Pipeline) quarterbacks(pass, rush []model.Play, res *Resolver) []model.QBStats {
	qbPass := Filter(pass, res.Plays(PasserRole, model.PosQB))
	qbRush := Filter(rush, res.Plays(RusherRole, model.PosQB))

	combined := make([]model.Play, 0, len(qbPass)+len(qbRush))
	combined = append(combined, qbPass...)
	combined = append(combined, qbRush...)

	epa := Aggregate(combined, ByBallCarrier, ColEPA)
	passing := Aggregate(qbPass, ByPasser,
		ColPassingYards, ColPassTouchdown, ColInterception, ColCompletePass, ColPassAttempt)
	rushing := Aggregate(qbRush, ByRusher, ColEPA, ColRushingYards, ColRushTouchdown)

	keys := OuterJoinKeys(epa, passing, rushing)
	rows := make([]model.QBStats, 0, len(keys))
	for _, name := range keys {
		e := epa.Lookup(ColEPA.Name, name)
		yards := passing.Lookup(ColPassingYards.Name, name).Sum
		tds := passing.Lookup(ColPassTouchdown.Name, name).Sum
		ints := passing.Lookup(ColInterception.Name, name).Sum
		comp := passing.Lookup(ColCompletePass.Name, name).Sum
		att := passing.Lookup(ColPassAttempt.Name, name).Sum
		carries := float64(rushing.Rows[name])
		rushYards := rushing.Lookup(ColRushingYards.Name, name).Sum

		rows = append(rows, model.QBStats{
			Player:         name,
			EPAPerPlay:     e.Mean,
			TotalEPA:       e.Sum,
			Plays:          e.Count,
			PassingYards:   yards,
			Touchdowns:     tds,
			Interceptions:  ints,
			Completions:    comp,
			Attempts:       att,
			RushAttempts:   carries,
			RushingYards:   rushYards,
			RushTouchdowns: rushing.Lookup(ColRushTouchdown.Name, name).Sum,
			CompletionPct:  CompletionPct(comp, att),
			YardsPerAtt:    YardsPerAttempt(yards, att),
			YardsPerCarry:  YardsPerCarry(rushYards, carries),
			TDINTRatio:     TDINTRatio(tds, ints),
		})
	}
	return Ranking[model.QBStats]{
		MinSample: p.Thresholds.QBPlays,
		Sample:    func(r model.QBStats) int { return r.Plays },
		Metric:    func(r model.QBStats) float64 { return r.EPAPerPlay },
		Key:       func(r model.QBStats) string { return r.Player },
		Limit:     p.Limit,
	}.Apply(rows)
}

func (p *Pipeline) runningBacks(rush []model.Play, res *Resolver) []model.RBStats {
	rbRush := Filter(rush, res.Plays(RusherRole, model.PosRB))
	g := Aggregate(rbRush, ByRusher, ColEPA, ColRushingYards, ColRushTouchdown)

	rows := make([]model.RBStats, 0, len(g.Keys))
	for _, name := range g.Keys {
		e := g.Lookup(ColEPA.Name, name)
		yards := g.Lookup(ColRushingYards.Name, name).Sum
		rows = append(rows, model.RBStats{
			Player:        name,
			EPAPerPlay:    e.Mean,
			TotalEPA:      e.Sum,
			Plays:         e.Count,
			RushingYards:  yards,
			Touchdowns:    g.Lookup(ColRushTouchdown.Name, name).Sum,
			YardsPerCarry: YardsPerCarry(yards, float64(e.Count)),
		})
	}
	return Ranking[model.RBStats]{
		MinSample: p.Thresholds.RBRushes,
		Sample:    func(r model.RBStats) int { return r.Plays },
		Metric:    func(r model.RBStats) float64 { return r.EPAPerPlay },
		Key:       func(r model.RBStats) string { return r.Player },
		Limit:     p.Limit,
	}.Apply(rows)
}

func (p *Pipeline) receivers(offense []model.Play, res *Resolver, pos model.Position, minTargets int) []model.ReceiverStats {
	targets := Filter(offense, And(
		func(pl *model.Play) bool { return pl.PassAttempt },
		res.Plays(ReceiverRole, pos),
	))
	g := Aggregate(targets, ByReceiver, ColEPA, ColReceivingYards, ColPassTouchdown, ColCompletePass)

	rows := make([]model.ReceiverStats, 0, len(g.Keys))
	for _, name := range g.Keys {
		e := g.Lookup(ColEPA.Name, name)
		yards := g.Lookup(ColReceivingYards.Name, name).Sum
		rec := g.Lookup(ColCompletePass.Name, name).Sum
		rows = append(rows, model.ReceiverStats{
			Player:         name,
			EPAPerPlay:     e.Mean,
			TotalEPA:       e.Sum,
			Targets:        e.Count,
			ReceivingYards: yards,
			Touchdowns:     g.Lookup(ColPassTouchdown.Name, name).Sum,
			Receptions:     rec,
			CatchRate:      CatchRate(rec, float64(e.Count)),
			YardsPerRec:    YardsPerReception(yards, rec),
		})
	}
	return Ranking[model.ReceiverStats]{
		MinSample: minTargets,
		Sample:    func(r model.ReceiverStats) int { return r.Targets },
		Metric:    func(r model.ReceiverStats) float64 { return r.EPAPerPlay },
		Key:       func(r model.ReceiverStats) string { return r.Player },
		Limit:     p.Limit,
	}.Apply(rows)
}

// ---- League ----

// LeagueSummary counts over the unfiltered table: every row, touchdowns, and
// rows flagged pass or rush. No penalty or season filter applies.
func LeagueSummary(t *model.PlayTable) model.LeagueStats {
	var s model.LeagueStats
	if t == nil {
		return s
	}
	s.TotalPlays = len(t.Plays)
	for i := range t.Plays {
		p := &t.Plays[i]
		if p.Touchdown {
			s.TotalTouchdowns++
		}
		if p.IsPass {
			s.PassingPlays++
		}
		if p.IsRush {
			s.RushingPlays++
		}
	}
	return s
}
