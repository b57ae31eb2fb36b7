package parser

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataKnight1/PostMatchReport/internal/model"
)

func fp(v float64) *float64 { return &v }

func baseFeed() *Feed {
	return &Feed{
		MatchID: "m1",
		Home:    FeedTeam{TeamID: 1, Name: "Home FC"},
		Away:    FeedTeam{TeamID: 2, Name: "Away FC"},
		Roster: []FeedPlayer{
			{PlayerID: 10, TeamID: 1, Name: "Ten", ShirtNumber: 10, IsStarter: true},
			{PlayerID: 20, TeamID: 2, Name: "Twenty", ShirtNumber: 9, IsStarter: true},
		},
		Events: []FeedEvent{
			{TeamID: 1, PlayerID: 10, Period: 1, Minute: 1, Type: "Pass", Outcome: "Successful", X: fp(50), Y: fp(34), EndX: fp(60), EndY: fp(30)},
		},
	}
}

func TestParseFile_Sample(t *testing.T) {
	path := filepath.Join("testdata", "match.json")
	res, err := ParseFile(path)
	require.NoError(t, err)

	m := res.Match
	assert.Equal(t, "1729", m.ID)
	assert.Equal(t, int64(26), m.Home.ID)
	assert.Equal(t, "Northgate", m.Away.Name)
	assert.Len(t, m.Roster, 9)
	assert.Len(t, m.Events, 28)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%x", sha256.Sum256(data)), m.Hash)

	// The final event has an unknown type and an off-pitch location.
	last := m.Events[len(m.Events)-1]
	assert.Equal(t, model.EventUnknown, last.Type)
	assert.False(t, last.HasLocation)
	require.Len(t, res.Warnings, 2)
	for _, w := range res.Warnings {
		assert.Equal(t, 27, w.Index)
	}
}

func TestParse_Aliases(t *testing.T) {
	cases := []struct {
		raw     string
		outcome string
		typ     model.EventType
		want    model.Outcome
	}{
		{"Goal", "", model.EventShot, model.OutcomeGoal},
		{"SavedShot", "Successful", model.EventShot, model.OutcomeSavedShot},
		{"MissedShots", "", model.EventShot, model.OutcomeMissedShot},
		{"ShotOnPost", "", model.EventShot, model.OutcomePost},
		{"TakeOn", "Unsuccessful", model.EventDribble, model.OutcomeUnsuccessful},
		{"KeeperPickup", "", model.EventSave, model.OutcomeSuccessful},
		{"BlockedPass", "Successful", model.EventBlock, model.OutcomeSuccessful},
		{"Tackle", "", model.EventTackle, model.OutcomeUnknown},
	}
	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			feed := baseFeed()
			feed.Events[0].Type = c.raw
			feed.Events[0].Outcome = c.outcome
			res, err := Convert(feed)
			require.NoError(t, err)
			ev := res.Match.Events[0]
			assert.Equal(t, c.typ, ev.Type)
			assert.Equal(t, c.want, ev.Outcome)
			assert.Empty(t, res.Warnings)
		})
	}
}

func TestConvert_OptaScaling(t *testing.T) {
	feed := baseFeed()
	feed.CoordinateSystem = "opta"
	feed.Events[0].X, feed.Events[0].Y = fp(100), fp(100)
	feed.Events[0].EndX, feed.Events[0].EndY = fp(50), fp(50)

	res, err := Convert(feed)
	require.NoError(t, err)
	ev := res.Match.Events[0]
	require.True(t, ev.HasLocation)
	assert.InDelta(t, 105.0, ev.X, 1e-9)
	assert.InDelta(t, 68.0, ev.Y, 1e-9)
	assert.InDelta(t, 52.5, ev.EndX, 1e-9)
	assert.InDelta(t, 34.0, ev.EndY, 1e-9)
}

func TestConvert_EventDefectsBecomeWarnings(t *testing.T) {
	feed := baseFeed()
	feed.Events = append(feed.Events,
		FeedEvent{TeamID: 1, PlayerID: 10, Period: 1, Minute: 3, Type: "Pass", X: fp(120), Y: fp(30)},
		FeedEvent{TeamID: 1, PlayerID: 10, Period: 1, Minute: 4, Type: "Pass", X: fp(40), Y: fp(30), EndX: fp(40), EndY: fp(-3)},
		FeedEvent{TeamID: 9, Period: 7, Minute: 5, Second: 75, Type: "Wobble", Outcome: "Meh"},
		FeedEvent{TeamID: 1, PlayerID: 20, Period: 2, Minute: 50, Type: "Touch"},
		FeedEvent{TeamID: 1, PlayerID: 10, Period: 1, Minute: 6, Type: "Pass", XG: fp(0.3)},
		FeedEvent{TeamID: 1, PlayerID: 10, Period: 1, Minute: 7, Type: "Shot", Outcome: "MissedShot", XG: fp(1.4)},
		FeedEvent{TeamID: 1, PlayerID: 10, Period: 1, Minute: 8, Type: "Shot", Outcome: "Goal", XG: fp(0.42)},
	)

	res, err := Convert(feed)
	require.NoError(t, err)
	evs := res.Match.Events
	require.Len(t, evs, 8)

	assert.False(t, evs[1].HasLocation)
	assert.True(t, evs[2].HasLocation)
	assert.False(t, evs[2].HasEnd)
	assert.Equal(t, model.EventUnknown, evs[3].Type)
	assert.Equal(t, model.OutcomeUnknown, evs[3].Outcome)
	assert.Nil(t, evs[5].XG)
	assert.Nil(t, evs[6].XG)
	require.NotNil(t, evs[7].XG)
	assert.Equal(t, 0.42, *evs[7].XG)

	byIndex := map[int]int{}
	for _, w := range res.Warnings {
		byIndex[w.Index]++
	}
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 5, 4: 1, 5: 1, 6: 1}, byIndex)
	assert.Contains(t, res.Warnings[0].String(), "event 1:")
}

func TestConvert_QualifiersTrimmed(t *testing.T) {
	feed := baseFeed()
	feed.Events[0].Qualifiers = []string{" KeyPass ", "", "Cross"}
	res, err := Convert(feed)
	require.NoError(t, err)
	assert.Equal(t, model.Qualifiers{model.QualKeyPass, model.QualCross}, res.Match.Events[0].Qualifiers)
}

func TestConvert_MatchLevelErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Feed)
		target error
	}{
		{"same team ids", func(f *Feed) { f.Away.TeamID = f.Home.TeamID }, ErrInvalidMatch},
		{"missing match id", func(f *Feed) { f.MatchID = "" }, ErrInvalidMatch},
		{"missing home name", func(f *Feed) { f.Home.Name = "" }, ErrInvalidMatch},
		{"bad coordinate system", func(f *Feed) { f.CoordinateSystem = "yards" }, ErrInvalidMatch},
		{"bad colour", func(f *Feed) { f.Home.Color = "red" }, ErrInvalidMatch},
		{"player of a third team", func(f *Feed) { f.Roster[0].TeamID = 3 }, ErrInvalidMatch},
		{"duplicate player", func(f *Feed) { f.Roster = append(f.Roster, f.Roster[0]) }, ErrInvalidMatch},
		{"no events", func(f *Feed) { f.Events = nil }, ErrEmptyFeed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			feed := baseFeed()
			c.mutate(feed)
			_, err := Convert(feed)
			require.Error(t, err)
			assert.True(t, crerr.Is(err, c.target), "got %v", err)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"match_id": `))
	require.Error(t, err)
	assert.True(t, crerr.Is(err, ErrInvalidMatch))

	_, err = ParseFile(filepath.Join("testdata", "missing.json"))
	require.Error(t, err)
	assert.False(t, crerr.Is(err, ErrInvalidMatch))
}
