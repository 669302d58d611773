package model

// ---- Aggregated outputs ----
//
// JSON field names are the export vocabulary consumed downstream and must not
// change. Derived metrics are pointers: nil means the denominator was zero or
// missing and the metric is omitted.

// TeamStats is one row of the team EPA table.
type TeamStats struct {
	Team           string  `json:"team"`
	EPAPerPlay     float64 `json:"epaPerPlay"`
	TotalEPA       float64 `json:"totalEPA"`
	Plays          int     `json:"plays"`
	PassEPAPerPlay float64 `json:"passEpaPerPlay"`
	PassTotalEPA   float64 `json:"passTotalEPA"`
	PassPlays      int     `json:"passPlays"`
	RushEPAPerPlay float64 `json:"rushEpaPerPlay"`
	RushTotalEPA   float64 `json:"rushTotalEPA"`
	RushPlays      int     `json:"rushPlays"`
}

// QBStats combines a quarterback's passing and rushing rows.
type QBStats struct {
	Player         string   `json:"player"`
	EPAPerPlay     float64  `json:"epaPerPlay"`
	TotalEPA       float64  `json:"totalEPA"`
	Plays          int      `json:"plays"`
	PassingYards   float64  `json:"passingYards"`
	Touchdowns     float64  `json:"touchdowns"`
	Interceptions  float64  `json:"interceptions"`
	Completions    float64  `json:"completions"`
	Attempts       float64  `json:"attempts"`
	RushAttempts   float64  `json:"rushAttempts"`
	RushingYards   float64  `json:"rushingYards"`
	RushTouchdowns float64  `json:"rushTouchdowns"`
	CompletionPct  *float64 `json:"completionPct,omitempty"`
	YardsPerAtt    *float64 `json:"yardsPerAttempt,omitempty"`
	YardsPerCarry  *float64 `json:"yardsPerCarry,omitempty"`
	TDINTRatio     float64  `json:"tdIntRatio"`
}

// RBStats is a running back's rushing aggregate.
type RBStats struct {
	Player        string   `json:"player"`
	EPAPerPlay    float64  `json:"epaPerPlay"`
	TotalEPA      float64  `json:"totalEPA"`
	Plays         int      `json:"plays"`
	RushingYards  float64  `json:"rushingYards"`
	Touchdowns    float64  `json:"touchdowns"`
	YardsPerCarry *float64 `json:"yardsPerCarry,omitempty"`
}

// ReceiverStats is a WR or TE target aggregate.
type ReceiverStats struct {
	Player         string   `json:"player"`
	EPAPerPlay     float64  `json:"epaPerPlay"`
	TotalEPA       float64  `json:"totalEPA"`
	Targets        int      `json:"targets"`
	ReceivingYards float64  `json:"receivingYards"`
	Touchdowns     float64  `json:"touchdowns"`
	Receptions     float64  `json:"receptions"`
	CatchRate      *float64 `json:"catchRate,omitempty"`
	YardsPerRec    float64  `json:"yardsPerReception"`
}

// PlayerStats holds the ranked cohorts keyed the way the export expects.
type PlayerStats struct {
	QB []QBStats       `json:"qb"`
	RB []RBStats       `json:"rb"`
	WR []ReceiverStats `json:"wr"`
	TE []ReceiverStats `json:"te"`
}

// LeagueStats are structural counts over the unfiltered table.
type LeagueStats struct {
	TotalPlays      int `json:"totalPlays"`
	TotalTouchdowns int `json:"totalTouchdowns"`
	PassingPlays    int `json:"passingPlays"`
	RushingPlays    int `json:"rushingPlays"`
}

// SeasonExport is the static document written per season. TeamStats and
// PlayerStats are nil when the source had no EPA column.
type SeasonExport struct {
	Season      int          `json:"season"`
	LeagueStats LeagueStats  `json:"leagueStats"`
	TeamStats   []TeamStats  `json:"teamStats,omitempty"`
	PlayerStats *PlayerStats `json:"playerStats,omitempty"`
	LastUpdated string       `json:"lastUpdated"`
}

// TeamOffense is the single-team breakdown. Counts come from the raw table;
// EPA means are nil when the EPA column is absent or no row carried a value.
type TeamOffense struct {
	Team string `json:"team"`

	PassAttempts    int      `json:"passAttempts"`
	Completions     int      `json:"completions"`
	PassYards       int      `json:"passYards"`
	PassTouchdowns  int      `json:"passTouchdowns"`
	Interceptions   int      `json:"interceptions"`
	CompletionPct   *float64 `json:"completionPct,omitempty"`
	YardsPerAttempt *float64 `json:"yardsPerAttempt,omitempty"`
	PassEPA         *float64 `json:"passEpa,omitempty"`

	RushAttempts   int      `json:"rushAttempts"`
	RushYards      int      `json:"rushYards"`
	RushTouchdowns int      `json:"rushTouchdowns"`
	YardsPerCarry  *float64 `json:"yardsPerCarry,omitempty"`
	RushEPA        *float64 `json:"rushEpa,omitempty"`
}

// PlayerProfile is one player's season line by role, taken from every row
// naming them regardless of cohort thresholds. A nil section means the player
// never appeared in that role.
type PlayerProfile struct {
	Player   string   `json:"player"`
	PlayerID string   `json:"playerId,omitempty"`
	Position Position `json:"position,omitempty"`

	Passing   *PassingLine   `json:"passing,omitempty"`
	Rushing   *RushingLine   `json:"rushing,omitempty"`
	Receiving *ReceivingLine `json:"receiving,omitempty"`
}

// PassingLine covers rows where the player is the passer.
type PassingLine struct {
	Attempts        int      `json:"attempts"`
	Completions     int      `json:"completions"`
	CompletionPct   *float64 `json:"completionPct,omitempty"`
	Yards           int      `json:"yards"`
	YardsPerAttempt *float64 `json:"yardsPerAttempt,omitempty"`
	Touchdowns      int      `json:"touchdowns"`
	Interceptions   int      `json:"interceptions"`
	TDINTRatio      float64  `json:"tdIntRatio"`
	EPAPerPlay      *float64 `json:"epaPerPlay,omitempty"`
	TotalEPA        *float64 `json:"totalEPA,omitempty"`
}

// RushingLine covers rows where the player is the rusher.
type RushingLine struct {
	Attempts      int      `json:"attempts"`
	Yards         int      `json:"yards"`
	YardsPerCarry *float64 `json:"yardsPerCarry,omitempty"`
	Touchdowns    int      `json:"touchdowns"`
	EPAPerPlay    *float64 `json:"epaPerPlay,omitempty"`
}

// ReceivingLine covers rows where the player is the targeted receiver.
type ReceivingLine struct {
	Targets     int      `json:"targets"`
	Receptions  int      `json:"receptions"`
	CatchRate   *float64 `json:"catchRate,omitempty"`
	Yards       int      `json:"yards"`
	YardsPerRec float64  `json:"yardsPerReception"`
	Touchdowns  int      `json:"touchdowns"`
	EPAPerPlay  *float64 `json:"epaPerPlay,omitempty"`
}
