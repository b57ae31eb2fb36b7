package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/DataKnight1/PostMatchReport/internal/match"
	"github.com/DataKnight1/PostMatchReport/internal/model"
	"github.com/DataKnight1/PostMatchReport/internal/storage"
)

func buildReport(t *testing.T) *match.Report {
	t.Helper()
	loc := func(ev model.RawEvent, x, y float64) model.RawEvent {
		ev.X, ev.Y, ev.HasLocation = x, y, true
		return ev
	}
	m := &model.Match{
		ID:   "r1",
		Hash: "0123456789abcdef0123",
		Home: model.TeamInfo{ID: 1, Name: "Reds"},
		Away: model.TeamInfo{ID: 2, Name: "Blues"},
		Roster: model.Roster{
			7:  {PlayerID: 7, TeamID: 1, Name: "Seven", ShirtNumber: 7, IsStarter: true},
			9:  {PlayerID: 9, TeamID: 1, Name: "Nine", ShirtNumber: 9, IsStarter: true},
			20: {PlayerID: 20, TeamID: 2, Name: "Twenty", ShirtNumber: 20, IsStarter: true},
		},
		Events: []model.RawEvent{
			{TeamID: 1, PlayerID: 7, Period: 1, Minute: 10, Type: model.EventPass, Outcome: model.OutcomeSuccessful,
				X: 60, Y: 30, HasLocation: true, EndX: 85, EndY: 34, HasEnd: true, Qualifiers: model.Qualifiers{model.QualKeyPass}},
			loc(model.RawEvent{TeamID: 1, PlayerID: 9, Period: 1, Minute: 10, Second: 2, Type: model.EventShot,
				Outcome: model.OutcomeGoal, Qualifiers: model.Qualifiers{model.QualHead}}, 85, 34),
			loc(model.RawEvent{TeamID: 2, PlayerID: 20, Period: 1, Minute: 30, Type: model.EventTackle,
				Outcome: model.OutcomeSuccessful}, 60, 40),
			{TeamID: 2, PlayerID: 20, Period: 2, Minute: 60, Type: model.EventCard, Outcome: model.OutcomeUnknown,
				Qualifiers: model.Qualifiers{model.QualRedCard}},
		},
	}
	c, err := match.New(m)
	require.NoError(t, err)
	rep, err := c.Report(context.Background())
	require.NoError(t, err)
	return rep
}

func TestFormatStat(t *testing.T) {
	assert.Equal(t, "75%", FormatStat(model.StatPassAccuracy, 0.75))
	assert.Equal(t, "55.5%", FormatStat(model.StatPossessionPct, 55.5))
	assert.Equal(t, "1.23", FormatStat(model.StatXG, 1.234))
	assert.Equal(t, "12", FormatStat(model.StatPasses, 12))
}

func TestMomentumBar(t *testing.T) {
	assert.Equal(t, "    |##  ", MomentumBar(1, 2, 4))
	assert.Equal(t, "  ##|    ", MomentumBar(-1, 2, 4))
	assert.Equal(t, "    |####", MomentumBar(5, 2, 4))
	assert.Equal(t, "    |    ", MomentumBar(0, 0, 4))
}

func TestWilsonCI(t *testing.T) {
	lo, hi := wilsonCI(0, 0)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	lo, hi = wilsonCI(80, 100)
	assert.InDelta(t, 0.711, lo, 1e-3)
	assert.InDelta(t, 0.866, hi, 1e-3)
	assert.Equal(t, "VERY_LOW", sampleFlag(3))
	assert.Equal(t, "OK", sampleFlag(30))
}

func TestPrinters(t *testing.T) {
	rep := buildReport(t)
	s := rep.Summary

	var buf bytes.Buffer
	PrintMatchHeader(&buf, s, rep.Hash)
	assert.Contains(t, buf.String(), "Reds 1 - 0 Blues")
	assert.Contains(t, buf.String(), "0123456789ab")
	assert.NotContains(t, buf.String(), "0123456789abc")

	buf.Reset()
	PrintSummary(&buf, s)
	out := buf.String()
	for _, sec := range model.StatSections {
		assert.Contains(t, out, sec.Name)
	}
	assert.Contains(t, out, "headed_shots")

	buf.Reset()
	PrintNetwork(&buf, rep.HomeNetwork, rep.Roster)
	assert.Contains(t, buf.String(), "Seven")
	assert.Contains(t, buf.String(), "Pass connections (1 edges)")

	buf.Reset()
	PrintShots(&buf, rep.Shots, rep.Roster, s)
	assert.Contains(t, buf.String(), "Nine")
	assert.Contains(t, buf.String(), "head")

	buf.Reset()
	PrintKeyMoments(&buf, rep.KeyMoments, rep.Roster, s)
	assert.Contains(t, buf.String(), "goal")
	assert.Contains(t, buf.String(), "red card")

	buf.Reset()
	PrintMomentum(&buf, rep.Momentum, rep.Goals, s, 5)
	assert.Contains(t, buf.String(), "Blues <- | -> Reds")

	buf.Reset()
	PrintZones(&buf, rep.Territory, s)
	assert.Contains(t, buf.String(), "Zonal control 6x7")

	buf.Reset()
	PrintPlayers(&buf, rep.HomePlayers, 9)
	assert.Contains(t, buf.String(), ">")

	buf.Reset()
	PrintMatchList(&buf, []model.MatchRecord{{Hash: "abcdef0123456789", MatchID: "r1", HomeName: "Reds", AwayName: "Blues", HomeScore: 1}})
	assert.Contains(t, buf.String(), "abcdef012345")
	assert.Contains(t, buf.String(), "1-0")

	buf.Reset()
	PrintTeamHistory(&buf, []storage.TeamMatchLine{
		{MatchID: "a", IsHome: true, OpponentName: "Blues", GoalsFor: 2, GoalsAgainst: 0, XGFor: 1.5, XGAgainst: 0.4},
		{MatchID: "b", OpponentName: "Greens", GoalsFor: 1, GoalsAgainst: 1},
	})
	assert.Contains(t, buf.String(), "+1.10")
	assert.Contains(t, buf.String(), "Greens")

	buf.Reset()
	PrintPlayerTotals(&buf, []storage.PlayerTotals{{Name: "Seven", Matches: 2, Passes: 40, PassesCompleted: 30, Goals: 1, XG: 0.4}})
	assert.Contains(t, buf.String(), "75%")
	assert.Contains(t, buf.String(), "+0.60")

	buf.Reset()
	PrintRaw(&buf, []string{"a", "b"}, [][]string{{"1", "x"}})
	assert.Contains(t, buf.String(), "x")
}

func TestEncodeJSON(t *testing.T) {
	rep := buildReport(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rep, "json"))

	var got Export
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "r1", got.MatchID)
	assert.Equal(t, 1, got.Home.Score)
	assert.Equal(t, "Reds", got.Home.Name)
	assert.Len(t, got.Home.Stats, len(model.AllStats))
	assert.Equal(t, 1.0, got.Home.Stats[string(model.StatHeadedShots)])
	assert.Len(t, got.Momentum, len(rep.Momentum))
	assert.Equal(t, 6, got.Territory.Rows)
	assert.Len(t, got.Territory.Labels, 6)
	require.Len(t, got.Shots, 1)
	assert.True(t, got.Shots[0].Estimated)
	require.Len(t, got.Goals, 1)
	assert.Equal(t, int64(1), got.Goals[0].TeamID)
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestEncodeYAML(t *testing.T) {
	rep := buildReport(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rep, "yaml"))

	var got Export
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Blues", got.Away.Name)
	assert.Equal(t, 4, got.Tactical.Rows)
	assert.Len(t, got.KeyMoments, 2)
	assert.Contains(t, buf.String(), "match_id: r1")
}

func TestEncode_UnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, buildReport(t), "xml")
	require.Error(t, err)
	assert.True(t, crerr.Is(err, ErrUnknownFormat))
}

func TestPrintBatch(t *testing.T) {
	rep := buildReport(t)
	results := []match.BatchResult{
		{Index: 0, MatchID: "r1", Report: rep},
		{Index: 1, MatchID: "bad", Err: crerr.New("boom")},
	}
	var buf bytes.Buffer
	PrintBatch(&buf, []string{"a.json", "b.json"}, results)
	out := buf.String()
	assert.Contains(t, out, "a.json")
	assert.Contains(t, out, "Reds 1-0 Blues")
	assert.Contains(t, out, "error: boom")
}
