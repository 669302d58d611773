package model

import (
	"strings"
	"time"
)

// PlayType classifies a play-by-play row.
type PlayType string

const (
	PlayPass  PlayType = "pass"
	PlayRun   PlayType = "run"
	PlayOther PlayType = "other"
)

// ParsePlayType maps a raw play_type value; anything but pass/run is PlayOther.
func ParsePlayType(s string) PlayType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pass":
		return PlayPass
	case "run":
		return PlayRun
	default:
		return PlayOther
	}
}

// SeasonType is the season segment a play belongs to.
type SeasonType string

const (
	SeasonUnknown SeasonType = ""
	SeasonRegular SeasonType = "REG"
	SeasonPost    SeasonType = "POST"
	SeasonPre     SeasonType = "PRE"
)

// ParseSeasonType accepts the nflverse codes and their spelled-out forms.
func ParseSeasonType(s string) SeasonType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "REG", "REGULAR", "REGULAR SEASON":
		return SeasonRegular
	case "POST", "POSTSEASON":
		return SeasonPost
	case "PRE", "PRESEASON":
		return SeasonPre
	default:
		return SeasonUnknown
	}
}

// Position is a roster position code.
type Position string

const (
	PosQB    Position = "QB"
	PosRB    Position = "RB"
	PosWR    Position = "WR"
	PosTE    Position = "TE"
	PosOther Position = "OTHER"
)

// ParsePosition normalizes a roster position; unrecognized codes are PosOther.
func ParsePosition(s string) Position {
	switch p := Position(strings.ToUpper(strings.TrimSpace(s))); p {
	case PosQB, PosRB, PosWR, PosTE:
		return p
	default:
		return PosOther
	}
}

// Participant identifies a player involved in a play in one role.
type Participant struct {
	ID   string
	Name string
}

// Present reports whether the role was filled on this play.
func (p Participant) Present() bool { return p.ID != "" || p.Name != "" }

// ---- Raw rows ----

// Play is one play-by-play row. Optional numeric columns are nil when absent.
type Play struct {
	PosTeam    string
	PlayType   PlayType
	SeasonType SeasonType
	EPA        *float64

	IsPass        bool
	IsRush        bool
	Touchdown     bool
	PassTouchdown bool
	RushTouchdown bool
	CompletePass  bool
	Interception  bool
	Penalty       bool
	PassAttempt   bool

	YardsGained    int
	PassingYards   *float64
	RushingYards   *float64
	ReceivingYards *float64

	Passer   Participant
	Rusher   Participant
	Receiver Participant
}

// PlayTable is the loaded play-by-play data for one season. HasEPA and
// HasSeasonType record whether the source carried those columns at all.
type PlayTable struct {
	Season        int
	Plays         []Play
	HasEPA        bool
	HasSeasonType bool
}

// RosterEntry maps a participant id to a position for one season.
type RosterEntry struct {
	PlayerID string
	Name     string
	Position Position
}

// Roster is the read-only id -> entry lookup for one season.
type Roster map[string]RosterEntry

// NewRoster indexes entries by player id; later duplicates win.
func NewRoster(entries []RosterEntry) Roster {
	r := make(Roster, len(entries))
	for _, e := range entries {
		if e.PlayerID == "" {
			continue
		}
		r[e.PlayerID] = e
	}
	return r
}

// SeasonSummary describes one ingested season in the store.
type SeasonSummary struct {
	Season        int
	IngestID      string
	Source        string
	Plays         int
	RosterSize    int
	HasEPA        bool
	HasSeasonType bool
	IngestedAt    time.Time
}
