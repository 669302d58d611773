package aggregator

import "github.com/pable/go-nfl-metrics/internal/model"

// Role picks one participant column off a play.
type Role func(p *model.Play) model.Participant

var (
	PasserRole   Role = func(p *model.Play) model.Participant { return p.Passer }
	RusherRole   Role = func(p *model.Play) model.Participant { return p.Rusher }
	ReceiverRole Role = func(p *model.Play) model.Participant { return p.Receiver }
)

// Resolver looks participant ids up in a season roster.
type Resolver struct {
	roster model.Roster
}

// NewResolver wraps a roster; a nil roster resolves nothing.
func NewResolver(roster model.Roster) *Resolver {
	return &Resolver{roster: roster}
}

// Resolve returns the position for id. Unknown ids report ok=false.
func (r *Resolver) Resolve(id string) (model.Position, bool) {
	if id == "" {
		return "", false
	}
	e, ok := r.roster[id]
	if !ok {
		return "", false
	}
	return e.Position, true
}

// Plays returns a predicate holding when the participant in role is named and
// resolves to pos. Rows whose participant is unknown never match.
func (r *Resolver) Plays(role Role, pos model.Position) Predicate {
	return func(p *model.Play) bool {
		who := role(p)
		if who.Name == "" {
			return false
		}
		got, ok := r.Resolve(who.ID)
		return ok && got == pos
	}
}
