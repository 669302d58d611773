package aggregator

import (
	"strings"

	"github.com/pable/go-nfl-metrics/internal/model"
)

const profileKey = "player"

func profileKeyFunc(*model.Play) (string, bool) { return profileKey, true }

// PlayerProfile looks one player up by display name (case-insensitive) over
// the raw table and reports a passing, rushing and receiving line for each
// role they appeared in. Like TeamOffense it ignores the eligibility filter
// and cohort thresholds; yards come from yards_gained. ok is false when no
// row names the player.
func PlayerProfile(t *model.PlayTable, name string) (*model.PlayerProfile, bool) {
	name = strings.TrimSpace(name)
	if t == nil || name == "" {
		return nil, false
	}
	named := func(role Role) Predicate {
		return func(p *model.Play) bool { return strings.EqualFold(role(p).Name, name) }
	}
	passes := Filter(t.Plays, named(PasserRole))
	rushes := Filter(t.Plays, named(RusherRole))
	targets := Filter(t.Plays, named(ReceiverRole))

	out := &model.PlayerProfile{}
	for _, seen := range []struct {
		rows []model.Play
		role Role
	}{{passes, PasserRole}, {rushes, RusherRole}, {targets, ReceiverRole}} {
		if len(seen.rows) > 0 {
			who := seen.role(&seen.rows[0])
			out.Player, out.PlayerID = who.Name, who.ID
			break
		}
	}
	if out.Player == "" {
		return nil, false
	}

	epaMean := func(g *Grouped) *float64 {
		if !t.HasEPA {
			return nil
		}
		a, ok := g.Get(ColEPA.Name, profileKey)
		if !ok {
			return nil
		}
		return ratio(a.Sum, float64(a.Count))
	}
	sum := func(g *Grouped, c Column) int {
		return int(g.Lookup(c.Name, profileKey).Sum)
	}

	if len(passes) > 0 {
		g := Aggregate(passes, profileKeyFunc,
			ColEPA, ColYardsGained, ColCompletePass, ColPassTouchdown, ColInterception)
		line := &model.PassingLine{
			Attempts:      len(passes),
			Completions:   sum(g, ColCompletePass),
			Yards:         sum(g, ColYardsGained),
			Touchdowns:    sum(g, ColPassTouchdown),
			Interceptions: sum(g, ColInterception),
			EPAPerPlay:    epaMean(g),
		}
		att := float64(line.Attempts)
		line.CompletionPct = CompletionPct(float64(line.Completions), att)
		line.YardsPerAttempt = YardsPerAttempt(float64(line.Yards), att)
		line.TDINTRatio = TDINTRatio(float64(line.Touchdowns), float64(line.Interceptions))
		if line.EPAPerPlay != nil {
			total := g.Lookup(ColEPA.Name, profileKey).Sum
			line.TotalEPA = &total
		}
		out.Passing = line
	}

	if len(rushes) > 0 {
		g := Aggregate(rushes, profileKeyFunc, ColEPA, ColYardsGained, ColRushTouchdown)
		line := &model.RushingLine{
			Attempts:   len(rushes),
			Yards:      sum(g, ColYardsGained),
			Touchdowns: sum(g, ColRushTouchdown),
			EPAPerPlay: epaMean(g),
		}
		line.YardsPerCarry = YardsPerCarry(float64(line.Yards), float64(line.Attempts))
		out.Rushing = line
	}

	if len(targets) > 0 {
		g := Aggregate(targets, profileKeyFunc, ColEPA, ColYardsGained, ColCompletePass, ColPassTouchdown)
		line := &model.ReceivingLine{
			Targets:    len(targets),
			Receptions: sum(g, ColCompletePass),
			Yards:      sum(g, ColYardsGained),
			Touchdowns: sum(g, ColPassTouchdown),
			EPAPerPlay: epaMean(g),
		}
		line.CatchRate = CatchRate(float64(line.Receptions), float64(line.Targets))
		line.YardsPerRec = YardsPerReception(float64(line.Yards), float64(line.Receptions))
		out.Receiving = line
	}
	return out, true
}
