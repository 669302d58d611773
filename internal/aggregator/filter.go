// Package aggregator turns a season's play table into team and player
// efficiency aggregates: filter eligible rows, group and reduce, derive
// secondary metrics, then threshold and rank.
package aggregator

import "github.com/pable/go-nfl-metrics/internal/model"

// Predicate selects plays.
type Predicate func(p *model.Play) bool

// And combines predicates; every one must hold.
func And(preds ...Predicate) Predicate {
	return func(p *model.Play) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// Filter returns a fresh slice holding the plays that satisfy keep. The input
// is never modified.
func Filter(plays []model.Play, keep Predicate) []model.Play {
	out := make([]model.Play, 0, len(plays)/2)
	for i := range plays {
		if keep(&plays[i]) {
			out = append(out, plays[i])
		}
	}
	return out
}

// IsOffensive is the base eligibility rule: a pass or run with an offensive
// team, a known EPA value, and no penalty.
func IsOffensive(p *model.Play) bool {
	if p.PlayType != model.PlayPass && p.PlayType != model.PlayRun {
		return false
	}
	return p.PosTeam != "" && p.EPA != nil && !p.Penalty
}

// IsRegularSeason holds for REG plays.
func IsRegularSeason(p *model.Play) bool {
	return p.SeasonType == model.SeasonRegular
}

// OffensivePlays returns the offensive-eligible plays of t. When the table
// carries a season-type column only regular-season plays are kept; a table
// without the column is taken to be regular season only.
func OffensivePlays(t *model.PlayTable) []model.Play {
	if t == nil {
		return nil
	}
	if t.HasSeasonType {
		return Filter(t.Plays, And(IsOffensive, IsRegularSeason))
	}
	return Filter(t.Plays, IsOffensive)
}

// PassingPlays narrows offensive-eligible plays to pass plays.
func PassingPlays(offense []model.Play) []model.Play {
	return Filter(offense, func(p *model.Play) bool { return p.PlayType == model.PlayPass })
}

// RushingPlays narrows offensive-eligible plays to run plays.
func RushingPlays(offense []model.Play) []model.Play {
	return Filter(offense, func(p *model.Play) bool { return p.PlayType == model.PlayRun })
}
