package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pable/go-nfl-metrics/internal/model"
)

// ErrSeasonNotFound is returned when a season has not been ingested.
var ErrSeasonNotFound = errors.New("season not ingested")

// ReplaceSeason stores a season's play table and roster, replacing anything
// previously ingested for that season, in one transaction. It returns the new
// ingest id.
func (db *DB) ReplaceSeason(t *model.PlayTable, roster []model.RosterEntry, source string) (string, error) {
	if t == nil || t.Season == 0 {
		return "", errors.New("replace season: play table has no season")
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	for _, table := range []string{"plays", "rosters", "seasons"} {
		if _, err := tx.Exec(db.rebind("DELETE FROM "+table+" WHERE season = ?"), t.Season); err != nil {
			return "", fmt.Errorf("clear %s for %d: %w", table, t.Season, err)
		}
	}

	ingestID := uuid.NewString()
	entries := model.NewRoster(roster)
	_, err = tx.Exec(db.rebind(`
		INSERT INTO seasons(season, ingest_id, source, plays, roster_size, has_epa, has_season_type, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		t.Season, ingestID, source, len(t.Plays), len(entries),
		boolInt(t.HasEPA), boolInt(t.HasSeasonType),
		db.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert season %d: %w", t.Season, err)
	}

	stmt, err := tx.Prepare(db.rebind(`
		INSERT INTO plays(
			season, seq, posteam, play_type, season_type, epa,
			is_pass, is_rush, touchdown, pass_touchdown, rush_touchdown,
			complete_pass, interception, penalty, pass_attempt,
			yards_gained, passing_yards, rushing_yards, receiving_yards,
			passer_id, passer_name, rusher_id, rusher_name, receiver_id, receiver_name
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`))
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, p := range t.Plays {
		_, err = stmt.Exec(
			t.Season, i, p.PosTeam, string(p.PlayType), string(p.SeasonType), nullFloat(p.EPA),
			boolInt(p.IsPass), boolInt(p.IsRush), boolInt(p.Touchdown),
			boolInt(p.PassTouchdown), boolInt(p.RushTouchdown),
			boolInt(p.CompletePass), boolInt(p.Interception), boolInt(p.Penalty), boolInt(p.PassAttempt),
			p.YardsGained, nullFloat(p.PassingYards), nullFloat(p.RushingYards), nullFloat(p.ReceivingYards),
			p.Passer.ID, p.Passer.Name, p.Rusher.ID, p.Rusher.Name, p.Receiver.ID, p.Receiver.Name,
		)
		if err != nil {
			return "", fmt.Errorf("insert play %d: %w", i, err)
		}
	}

	rstmt, err := tx.Prepare(db.rebind(`
		INSERT INTO rosters(season, player_id, name, position) VALUES (?, ?, ?, ?)`))
	if err != nil {
		return "", err
	}
	defer rstmt.Close()

	for _, e := range entries {
		if _, err := rstmt.Exec(t.Season, e.PlayerID, e.Name, string(e.Position)); err != nil {
			return "", fmt.Errorf("insert roster %s: %w", e.PlayerID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return ingestID, nil
}

// GetSeason returns the summary for one season, or nil if it is not stored.
func (db *DB) GetSeason(season int) (*model.SeasonSummary, error) {
	row := db.conn.QueryRow(db.rebind(`
		SELECT season, ingest_id, source, plays, roster_size, has_epa, has_season_type, ingested_at
		FROM seasons WHERE season = ?`), season)
	s, err := scanSeason(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListSeasons returns every stored season, newest first.
func (db *DB) ListSeasons() ([]model.SeasonSummary, error) {
	rows, err := db.conn.Query(`
		SELECT season, ingest_id, source, plays, roster_size, has_epa, has_season_type, ingested_at
		FROM seasons ORDER BY season DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SeasonSummary
	for rows.Next() {
		s, err := scanSeason(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// LatestSeason returns the most recent stored season, or ErrSeasonNotFound
// when the store is empty.
func (db *DB) LatestSeason() (int, error) {
	var season sql.NullInt64
	if err := db.conn.QueryRow("SELECT MAX(season) FROM seasons").Scan(&season); err != nil {
		return 0, err
	}
	if !season.Valid {
		return 0, ErrSeasonNotFound
	}
	return int(season.Int64), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSeason(sc scanner) (*model.SeasonSummary, error) {
	var (
		s                    model.SeasonSummary
		hasEPA, hasSeasonTyp int
		ingestedAt           string
	)
	if err := sc.Scan(&s.Season, &s.IngestID, &s.Source, &s.Plays, &s.RosterSize,
		&hasEPA, &hasSeasonTyp, &ingestedAt); err != nil {
		return nil, err
	}
	s.HasEPA = hasEPA != 0
	s.HasSeasonType = hasSeasonTyp != 0
	s.IngestedAt, _ = time.Parse(time.RFC3339, ingestedAt)
	return &s, nil
}

// LoadPlays reconstructs the play table for a season in ingest order.
func (db *DB) LoadPlays(season int) (*model.PlayTable, error) {
	sum, err := db.GetSeason(season)
	if err != nil {
		return nil, err
	}
	if sum == nil {
		return nil, fmt.Errorf("%w: %d", ErrSeasonNotFound, season)
	}

	rows, err := db.conn.Query(db.rebind(`
		SELECT posteam, play_type, season_type, epa,
		       is_pass, is_rush, touchdown, pass_touchdown, rush_touchdown,
		       complete_pass, interception, penalty, pass_attempt,
		       yards_gained, passing_yards, rushing_yards, receiving_yards,
		       passer_id, passer_name, rusher_id, rusher_name, receiver_id, receiver_name
		FROM plays WHERE season = ? ORDER BY seq`), season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t := &model.PlayTable{
		Season:        season,
		HasEPA:        sum.HasEPA,
		HasSeasonType: sum.HasSeasonType,
		Plays:         make([]model.Play, 0, sum.Plays),
	}
	for rows.Next() {
		var (
			p                                  model.Play
			playType, seasonType               string
			epa, passYds, rushYds, recYds      sql.NullFloat64
			isPass, isRush, td, passTD, rushTD int
			complete, intercept, pen, passAtt  int
		)
		if err := rows.Scan(&p.PosTeam, &playType, &seasonType, &epa,
			&isPass, &isRush, &td, &passTD, &rushTD,
			&complete, &intercept, &pen, &passAtt,
			&p.YardsGained, &passYds, &rushYds, &recYds,
			&p.Passer.ID, &p.Passer.Name, &p.Rusher.ID, &p.Rusher.Name,
			&p.Receiver.ID, &p.Receiver.Name); err != nil {
			return nil, err
		}
		p.PlayType = model.PlayType(playType)
		p.SeasonType = model.SeasonType(seasonType)
		p.EPA = floatPtr(epa)
		p.PassingYards = floatPtr(passYds)
		p.RushingYards = floatPtr(rushYds)
		p.ReceivingYards = floatPtr(recYds)
		p.IsPass = isPass != 0
		p.IsRush = isRush != 0
		p.Touchdown = td != 0
		p.PassTouchdown = passTD != 0
		p.RushTouchdown = rushTD != 0
		p.CompletePass = complete != 0
		p.Interception = intercept != 0
		p.Penalty = pen != 0
		p.PassAttempt = passAtt != 0
		t.Plays = append(t.Plays, p)
	}
	return t, rows.Err()
}

// LoadRoster returns the id -> position lookup stored for a season. A season
// ingested without a roster yields an empty, non-nil roster.
func (db *DB) LoadRoster(season int) (model.Roster, error) {
	rows, err := db.conn.Query(db.rebind(`
		SELECT player_id, name, position FROM rosters WHERE season = ?`), season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.RosterEntry
	for rows.Next() {
		var e model.RosterEntry
		var pos string
		if err := rows.Scan(&e.PlayerID, &e.Name, &pos); err != nil {
			return nil, err
		}
		e.Position = model.Position(pos)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return model.NewRoster(entries), nil
}

// DropSeason deletes a season and everything stored under it. It reports
// whether anything was removed.
func (db *DB) DropSeason(season int) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var removed int64
	for _, table := range []string{"plays", "rosters", "seasons"} {
		res, err := tx.Exec(db.rebind("DELETE FROM "+table+" WHERE season = ?"), season)
		if err != nil {
			return false, fmt.Errorf("drop %s for %d: %w", table, season, err)
		}
		if table == "seasons" {
			if removed, err = res.RowsAffected(); err != nil {
				return false, fmt.Errorf("drop season %d: rows affected: %w", season, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return removed > 0, nil
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
