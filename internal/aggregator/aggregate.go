package aggregator

import (
	"sort"

	"github.com/pable/go-nfl-metrics/internal/model"
)

// Agg is the reduction of one metric column within one group. Count is the
// number of non-null values, not the group's row count.
type Agg struct {
	Mean  float64
	Sum   float64
	Count int
}

// Column extracts one metric from a play; ok=false means the value is null.
type Column struct {
	Name  string
	Value func(p *model.Play) (float64, bool)
}

// KeyFunc extracts the grouping key; ok=false drops the row from every column.
type KeyFunc func(p *model.Play) (string, bool)

// Grouped is the result of Aggregate.
type Grouped struct {
	// Keys lists every group seen, in ascending lexical order.
	Keys []string
	// Rows is the number of rows per group, regardless of nulls.
	Rows map[string]int

	cols map[string]map[string]Agg
}

// Aggregate groups plays by key and reduces each column independently. A row
// null in one column still counts toward the others. Groups with no non-null
// value for a column are absent from that column.
func Aggregate(plays []model.Play, key KeyFunc, cols ...Column) *Grouped {
	g := &Grouped{
		Rows: make(map[string]int),
		cols: make(map[string]map[string]Agg, len(cols)),
	}
	for _, c := range cols {
		g.cols[c.Name] = make(map[string]Agg)
	}

	for i := range plays {
		p := &plays[i]
		k, ok := key(p)
		if !ok {
			continue
		}
		if _, seen := g.Rows[k]; !seen {
			g.Keys = append(g.Keys, k)
		}
		g.Rows[k]++
		for _, c := range cols {
			v, ok := c.Value(p)
			if !ok {
				continue
			}
			a := g.cols[c.Name][k]
			a.Sum += v
			a.Count++
			g.cols[c.Name][k] = a
		}
	}

	for _, byKey := range g.cols {
		for k, a := range byKey {
			a.Mean = a.Sum / float64(a.Count)
			byKey[k] = a
		}
	}
	sort.Strings(g.Keys)
	return g
}

// Get returns the aggregate for a column and group.
func (g *Grouped) Get(col, key string) (Agg, bool) {
	a, ok := g.cols[col][key]
	return a, ok
}

// Lookup is Get with zero-fill, for use after an outer join.
func (g *Grouped) Lookup(col, key string) Agg {
	a, _ := g.Get(col, key)
	return a
}

// Column returns the per-group aggregates for one column.
func (g *Grouped) Column(col string) map[string]Agg {
	return g.cols[col]
}

// OuterJoinKeys returns the sorted union of group keys across tables.
func OuterJoinKeys(gs ...*Grouped) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, g := range gs {
		if g == nil {
			continue
		}
		for _, k := range g.Keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// ---- Columns ----

func flag(name string, get func(p *model.Play) bool) Column {
	return Column{Name: name, Value: func(p *model.Play) (float64, bool) {
		if get(p) {
			return 1, true
		}
		return 0, true
	}}
}

func nullable(name string, get func(p *model.Play) *float64) Column {
	return Column{Name: name, Value: func(p *model.Play) (float64, bool) {
		v := get(p)
		if v == nil {
			return 0, false
		}
		return *v, true
	}}
}

var (
	ColEPA            = nullable("epa", func(p *model.Play) *float64 { return p.EPA })
	ColPassingYards   = nullable("passing_yards", func(p *model.Play) *float64 { return p.PassingYards })
	ColRushingYards   = nullable("rushing_yards", func(p *model.Play) *float64 { return p.RushingYards })
	ColReceivingYards = nullable("receiving_yards", func(p *model.Play) *float64 { return p.ReceivingYards })

	ColYardsGained = Column{Name: "yards_gained", Value: func(p *model.Play) (float64, bool) {
		return float64(p.YardsGained), true
	}}

	ColCompletePass  = flag("complete_pass", func(p *model.Play) bool { return p.CompletePass })
	ColPassAttempt   = flag("pass_attempt", func(p *model.Play) bool { return p.PassAttempt })
	ColPassTouchdown = flag("pass_touchdown", func(p *model.Play) bool { return p.PassTouchdown })
	ColRushTouchdown = flag("rush_touchdown", func(p *model.Play) bool { return p.RushTouchdown })
	ColInterception  = flag("interception", func(p *model.Play) bool { return p.Interception })
)

// ---- Keys ----

// ByTeam groups by offensive team code.
func ByTeam(p *model.Play) (string, bool) { return p.PosTeam, p.PosTeam != "" }

// ByPasser groups by passer display name.
func ByPasser(p *model.Play) (string, bool) { return p.Passer.Name, p.Passer.Name != "" }

// ByRusher groups by rusher display name.
func ByRusher(p *model.Play) (string, bool) { return p.Rusher.Name, p.Rusher.Name != "" }

// ByReceiver groups by receiver display name.
func ByReceiver(p *model.Play) (string, bool) { return p.Receiver.Name, p.Receiver.Name != "" }

// ByBallCarrier groups pass plays by passer and run plays by rusher, so a
// quarterback's dropbacks and carries land in one group.
func ByBallCarrier(p *model.Play) (string, bool) {
	switch p.PlayType {
	case model.PlayPass:
		return ByPasser(p)
	case model.PlayRun:
		return ByRusher(p)
	default:
		return "", false
	}
}
