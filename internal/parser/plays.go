package parser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pable/go-nfl-metrics/internal/model"
)

// ParsePlays reads a play-by-play CSV. When season > 0 and the file has a
// season column, rows from other seasons are skipped; when season is 0 it is
// taken from the first row.
func ParsePlays(r io.Reader, season int) (*model.PlayTable, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	if err := h.require("posteam", "play_type"); err != nil {
		return nil, err
	}

	var (
		iSeason     = h.idx("season")
		iPosTeam    = h.idx("posteam")
		iPlayType   = h.idx("play_type")
		iSeasonType = h.idx("season_type")
		iEPA        = h.idx("epa")

		iPass          = h.idx("pass")
		iRush          = h.idx("rush")
		iTouchdown     = h.idx("touchdown")
		iPassTouchdown = h.idx("pass_touchdown")
		iRushTouchdown = h.idx("rush_touchdown")
		iComplete      = h.idx("complete_pass")
		iInterception  = h.idx("interception")
		iPenalty       = h.idx("penalty")
		iPassAttempt   = h.idx("pass_attempt")

		iYardsGained    = h.idx("yards_gained")
		iPassingYards   = h.idx("passing_yards")
		iRushingYards   = h.idx("rushing_yards")
		iReceivingYards = h.idx("receiving_yards")

		iPasserID     = h.idx("passer_player_id", "passer_id")
		iPasserName   = h.idx("passer_player_name", "passer")
		iRusherID     = h.idx("rusher_player_id", "rusher_id")
		iRusherName   = h.idx("rusher_player_name", "rusher")
		iReceiverID   = h.idx("receiver_player_id", "receiver_id")
		iReceiverName = h.idx("receiver_player_name", "receiver")
	)

	t := &model.PlayTable{
		Season:        season,
		HasEPA:        iEPA >= 0,
		HasSeasonType: iSeasonType >= 0,
		Plays:         make([]model.Play, 0, 50000),
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rw := row{rec: rec, line: line}

		if iSeason >= 0 {
			if s, err := strconv.Atoi(rw.str(iSeason)); err == nil {
				if t.Season == 0 {
					t.Season = s
				}
				if s != t.Season {
					continue
				}
			}
		}

		p := model.Play{
			PosTeam:    rw.str(iPosTeam),
			PlayType:   model.ParsePlayType(rw.str(iPlayType)),
			SeasonType: model.ParseSeasonType(rw.str(iSeasonType)),
			Passer:     model.Participant{ID: rw.str(iPasserID), Name: rw.str(iPasserName)},
			Rusher:     model.Participant{ID: rw.str(iRusherID), Name: rw.str(iRusherName)},
			Receiver:   model.Participant{ID: rw.str(iReceiverID), Name: rw.str(iReceiverName)},
		}

		floats := []struct {
			dst **float64
			idx int
			col string
		}{
			{&p.EPA, iEPA, "epa"},
			{&p.PassingYards, iPassingYards, "passing_yards"},
			{&p.RushingYards, iRushingYards, "rushing_yards"},
			{&p.ReceivingYards, iReceivingYards, "receiving_yards"},
		}
		for _, fl := range floats {
			if *fl.dst, err = rw.float(fl.idx, fl.col); err != nil {
				return nil, err
			}
		}

		flags := []struct {
			dst *bool
			idx int
			col string
		}{
			{&p.IsPass, iPass, "pass"},
			{&p.IsRush, iRush, "rush"},
			{&p.Touchdown, iTouchdown, "touchdown"},
			{&p.PassTouchdown, iPassTouchdown, "pass_touchdown"},
			{&p.RushTouchdown, iRushTouchdown, "rush_touchdown"},
			{&p.CompletePass, iComplete, "complete_pass"},
			{&p.Interception, iInterception, "interception"},
			{&p.Penalty, iPenalty, "penalty"},
			{&p.PassAttempt, iPassAttempt, "pass_attempt"},
		}
		for _, fl := range flags {
			if *fl.dst, err = rw.flag(fl.idx, fl.col); err != nil {
				return nil, err
			}
		}

		if p.YardsGained, err = rw.integer(iYardsGained, "yards_gained"); err != nil {
			return nil, err
		}
		t.Plays = append(t.Plays, p)
	}
	return t, nil
}

// ParsePlaysFile opens path (compressed or not) and parses it.
func ParsePlaysFile(path string, season int) (*model.PlayTable, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	t, err := ParsePlays(rc, season)
	if err != nil {
		return nil, fmt.Errorf("parse plays %s: %w", path, err)
	}
	return t, nil
}
