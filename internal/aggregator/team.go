package aggregator

import (
	"strings"

	"github.com/pable/go-nfl-metrics/internal/model"
)

// TeamOffense breaks down one team's passing and rushing over the raw table,
// using the pass/rush flags rather than play_type. ok is false when the team
// has no rows.
func TeamOffense(t *model.PlayTable, team string) (*model.TeamOffense, bool) {
	if t == nil {
		return nil, false
	}
	team = strings.ToUpper(strings.TrimSpace(team))
	rows := Filter(t.Plays, func(p *model.Play) bool { return p.PosTeam == team })
	if len(rows) == 0 {
		return nil, false
	}

	out := &model.TeamOffense{Team: team}
	var passEPA, rushEPA Agg
	for i := range rows {
		p := &rows[i]
		if p.IsPass {
			out.PassAttempts++
			if p.CompletePass {
				out.Completions++
			}
			out.PassYards += p.YardsGained
			if p.PassTouchdown {
				out.PassTouchdowns++
			}
			if p.Interception {
				out.Interceptions++
			}
			if p.EPA != nil {
				passEPA.Sum += *p.EPA
				passEPA.Count++
			}
		}
		if p.IsRush {
			out.RushAttempts++
			out.RushYards += p.YardsGained
			if p.RushTouchdown {
				out.RushTouchdowns++
			}
			if p.EPA != nil {
				rushEPA.Sum += *p.EPA
				rushEPA.Count++
			}
		}
	}

	out.CompletionPct = CompletionPct(float64(out.Completions), float64(out.PassAttempts))
	out.YardsPerAttempt = YardsPerAttempt(float64(out.PassYards), float64(out.PassAttempts))
	out.YardsPerCarry = YardsPerCarry(float64(out.RushYards), float64(out.RushAttempts))
	if t.HasEPA {
		out.PassEPA = ratio(passEPA.Sum, float64(passEPA.Count))
		out.RushEPA = ratio(rushEPA.Sum, float64(rushEPA.Count))
	}
	return out, true
}

// Teams lists the distinct offensive team codes in t, sorted.
func Teams(t *model.PlayTable) []string {
	if t == nil {
		return nil
	}
	return Aggregate(t.Plays, ByTeam).Keys
}
