package parser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pable/go-nfl-metrics/internal/model"
)

// ParseRoster reads a seasonal roster CSV. The id column may be named gsis_id
// or player_id. Rows without an id are dropped; when season > 0 and a season
// column is present, other seasons are skipped.
func ParseRoster(r io.Reader, season int) ([]model.RosterEntry, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	iID := h.idx("gsis_id", "player_id")
	if iID < 0 {
		return nil, fmt.Errorf("%w: gsis_id", ErrMissingColumn)
	}
	if err := h.require("position"); err != nil {
		return nil, err
	}
	iPos := h.idx("position")
	iName := h.idx("player_name", "full_name", "name")
	iSeason := h.idx("season")

	var out []model.RosterEntry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rw := row{rec: rec, line: line}

		if season > 0 && iSeason >= 0 {
			if s, err := strconv.Atoi(rw.str(iSeason)); err == nil && s != season {
				continue
			}
		}
		id := rw.str(iID)
		if id == "" {
			continue
		}
		out = append(out, model.RosterEntry{
			PlayerID: id,
			Name:     rw.str(iName),
			Position: model.ParsePosition(rw.str(iPos)),
		})
	}
	return out, nil
}

// ParseRosterFile opens path (compressed or not) and parses it.
func ParseRosterFile(path string, season int) ([]model.RosterEntry, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	entries, err := ParseRoster(rc, season)
	if err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	return entries, nil
}
