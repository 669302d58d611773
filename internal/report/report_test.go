package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pable/go-nfl-metrics/internal/model"
)

func f(v float64) *float64 { return &v }

func TestPrintTeamTableMarksFocus(t *testing.T) {
	var buf bytes.Buffer
	PrintTeamTable(&buf, []model.TeamStats{
		{Team: "BAL", EPAPerPlay: 0.21, Plays: 1000},
		{Team: "KC", EPAPerPlay: 0.12, Plays: 980},
	}, "kc")
	out := buf.String()
	assert.Contains(t, out, "BAL")
	assert.Contains(t, out, "+0.210")

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "KC") {
			assert.Contains(t, line, ">")
		}
		if strings.Contains(line, "BAL") {
			assert.NotContains(t, line, ">")
		}
	}
}

func TestPrintPlayerStatsFiltersPosition(t *testing.T) {
	ps := model.PlayerStats{
		QB: []model.QBStats{{Player: "J.Allen", Plays: 600, CompletionPct: f(65.2)}},
		RB: []model.RBStats{{Player: "D.Henry", Plays: 300}},
		TE: []model.ReceiverStats{{Player: "T.Kelce", Targets: 120}},
	}
	var buf bytes.Buffer
	PrintPlayerStats(&buf, ps, model.PosQB)
	out := buf.String()
	assert.Contains(t, out, "J.Allen")
	assert.Contains(t, out, "65.2")
	assert.NotContains(t, out, "D.Henry")

	buf.Reset()
	PrintPlayerStats(&buf, ps, "")
	out = buf.String()
	assert.Contains(t, out, "D.Henry")
	assert.Contains(t, out, "T.Kelce")
	assert.Contains(t, out, "Wide receivers")
}

func TestPrintTeamOffenseMissingMetrics(t *testing.T) {
	var buf bytes.Buffer
	PrintTeamOffense(&buf, model.TeamOffense{Team: "NYJ", RushAttempts: 3, RushYards: 7})
	out := buf.String()
	assert.Contains(t, out, "NYJ")
	assert.Contains(t, out, "—")
}

func TestPrintSeasons(t *testing.T) {
	var buf bytes.Buffer
	PrintSeasons(&buf, []model.SeasonSummary{{
		Season: 2024, IngestID: "0f8fad5b-d9cb-469f-a165-70867728950e", Plays: 49000,
		HasEPA: true, IngestedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC), Source: "pbp.csv.gz",
	}})
	out := buf.String()
	assert.Contains(t, out, "2024")
	assert.Contains(t, out, "0f8fad5b")
	assert.NotContains(t, out, "469f")
}

func TestPrintPlayerProfileSkipsMissingRoles(t *testing.T) {
	var buf bytes.Buffer
	PrintPlayerProfile(&buf, model.PlayerProfile{
		Player:    "I.Pacheco",
		Position:  model.PosRB,
		Rushing:   &model.RushingLine{Attempts: 12, Yards: 55, YardsPerCarry: f(4.58)},
		Receiving: &model.ReceivingLine{Targets: 3, Receptions: 2, CatchRate: f(66.7), YardsPerRec: 8.5},
	})
	out := buf.String()
	assert.Contains(t, out, "I.Pacheco  |  RB")
	assert.Contains(t, out, "RUSHING")
	assert.Contains(t, out, "4.58")
	assert.Contains(t, out, "RECEIVING")
	assert.Contains(t, out, "66.7")
	assert.NotContains(t, out, "PASSING")
}

func TestPrintRows(t *testing.T) {
	var buf bytes.Buffer
	PrintRows(&buf, []string{"posteam", "n"}, [][]string{{"KC", "2"}, {"BUF", "NULL"}})
	out := buf.String()
	assert.Contains(t, out, "BUF")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "(2 rows)")

	buf.Reset()
	PrintRows(&buf, []string{"x"}, nil)
	assert.Equal(t, "(no rows)\n", buf.String())
}
