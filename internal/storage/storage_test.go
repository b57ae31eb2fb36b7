package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DataKnight1/PostMatchReport/internal/match"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var (
	home = model.TeamInfo{ID: 1, Name: "Home FC", Color: "#ff0000"}
	away = model.TeamInfo{ID: 2, Name: "Away FC", Color: "#0000ff"}
)

func makeReport(hash string, homeScore, awayScore int) *match.Report {
	return &match.Report{
		MatchID: "m-" + hash,
		Hash:    hash,
		Summary: model.Summary{
			MatchID: "m-" + hash, Home: home, Away: away,
			HomeScore: homeScore, AwayScore: awayScore,
			HomeXG: 1.25, AwayXG: 0.5, EventCount: 42,
			HomeStats: model.TeamStatRecord{model.StatShots: 7, model.StatPassAccuracy: 0.8},
			AwayStats: model.TeamStatRecord{model.StatShots: 3, model.StatPassAccuracy: 0.7},
		},
		HomeNetwork: match.Network{
			TeamID: home.ID,
			Positions: []model.PlayerPosition{
				{PlayerID: 10, Name: "Ten", ShirtNumber: 10, X: 60, Y: 30, TouchCount: 12},
				{PlayerID: 9, Name: "Nine", ShirtNumber: 9, X: 80, Y: 34, TouchCount: 8},
			},
			Connections: []model.PassConnection{
				{FromID: 10, ToID: 9, X: 60, Y: 30, EndX: 78, EndY: 33, PassCount: 4},
				{FromID: 9, ToID: 10, X: 80, Y: 34, EndX: 62, EndY: 31, PassCount: 1},
			},
		},
		AwayNetwork: match.Network{TeamID: away.ID},
		HomePlayers: []model.PlayerStats{
			{PlayerID: 10, TeamID: 1, Name: "Ten", ShirtNumber: 10, Events: 15, Passes: 10, PassesCompleted: 8, KeyPasses: 2, Goals: 1, XG: 0.4},
			{PlayerID: 9, TeamID: 1, Name: "Nine", ShirtNumber: 9, Events: 9, Shots: 3, Goals: 1, XG: 0.85},
		},
		AwayPlayers: []model.PlayerStats{
			{PlayerID: 20, TeamID: 2, Name: "Twenty", ShirtNumber: 4, Events: 11, Tackles: 3},
		},
		Momentum: []model.MomentumSample{
			{MinuteBin: 0, RawNet: 1, NetValue: 0.6},
			{MinuteBin: 1, RawNet: -2, NetValue: -0.4},
		},
	}
}

func TestSaveReportAndExists(t *testing.T) {
	db := openMemDB(t)

	runID, err := db.SaveReport(makeReport("abc123", 2, 1), time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if len(runID) != 36 {
		t.Errorf("expected a uuid run id, got %q", runID)
	}

	exists, err := db.MatchExists("abc123")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after save")
	}
	exists2, _ := db.MatchExists("nonexistent")
	if exists2 {
		t.Error("expected unknown hash to not exist")
	}
}

func TestSaveReport_RequiresHash(t *testing.T) {
	db := openMemDB(t)
	if _, err := db.SaveReport(makeReport("", 0, 0), time.Now()); !errors.Is(err, ErrNoHash) {
		t.Errorf("expected ErrNoHash, got %v", err)
	}
}

func TestSaveReport_Idempotent(t *testing.T) {
	db := openMemDB(t)
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first, err := db.SaveReport(makeReport("idem1", 1, 0), at)
	if err != nil {
		t.Fatalf("first SaveReport: %v", err)
	}
	rep := makeReport("idem1", 1, 0)
	rep.HomeNetwork.Connections = rep.HomeNetwork.Connections[:1]
	second, err := db.SaveReport(rep, at)
	if err != nil {
		t.Fatalf("second SaveReport should succeed: %v", err)
	}
	if first == second {
		t.Error("expected a fresh run id per save")
	}

	list, _ := db.ListMatches()
	if len(list) != 1 || list[0].RunID != second {
		t.Fatalf("expected one row carrying the latest run id, got %+v", list)
	}
	n, err := db.GetNetwork("idem1", home.ID)
	if err != nil {
		t.Fatalf("GetNetwork: %v", err)
	}
	if len(n.Connections) != 1 {
		t.Errorf("stale connections survived the re-save: %d", len(n.Connections))
	}
}

func TestListMatches(t *testing.T) {
	db := openMemDB(t)

	db.SaveReport(makeReport("h1", 0, 0), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	db.SaveReport(makeReport("h2", 3, 2), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))

	list, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(list))
	}
	// Newest analysis first.
	if list[0].Hash != "h2" {
		t.Errorf("expected h2 first, got %s", list[0].Hash)
	}
	if list[0].HomeScore != 3 || list[0].AwayScore != 2 || list[0].EventCount != 42 {
		t.Errorf("unexpected record %+v", list[0])
	}
	if list[0].HomeName != "Home FC" || list[0].AwayID != 2 {
		t.Errorf("team identities not stored: %+v", list[0])
	}
}

func TestGetMatchByPrefix(t *testing.T) {
	db := openMemDB(t)
	db.SaveReport(makeReport("deadbeef1234", 1, 1), time.Now())

	r, err := db.GetMatchByPrefix("deadb")
	if err != nil {
		t.Fatalf("GetMatchByPrefix: %v", err)
	}
	if r == nil || r.Hash != "deadbeef1234" {
		t.Fatalf("expected match for prefix 'deadb', got %+v", r)
	}

	r2, err := db.GetMatchByPrefix("ffffffff")
	if err != nil {
		t.Fatalf("GetMatchByPrefix no-match: %v", err)
	}
	if r2 != nil {
		t.Error("expected nil for unknown prefix")
	}
}

func TestDerivationsRoundTrip(t *testing.T) {
	db := openMemDB(t)
	db.SaveReport(makeReport("h1", 2, 1), time.Now())

	stats, err := db.GetTeamStats("h1", home.ID)
	if err != nil {
		t.Fatalf("GetTeamStats: %v", err)
	}
	if stats.Int(model.StatShots) != 7 || stats.Get(model.StatPassAccuracy) != 0.8 {
		t.Errorf("home stats mismatch: %v", stats)
	}

	n, err := db.GetNetwork("h1", home.ID)
	if err != nil {
		t.Fatalf("GetNetwork: %v", err)
	}
	if len(n.Positions) != 2 || n.Positions[0].ShirtNumber != 9 {
		t.Errorf("positions not ordered by shirt: %+v", n.Positions)
	}
	if len(n.Connections) != 2 || n.Connections[0].PassCount != 4 || n.Connections[0].EndX != 78 {
		t.Errorf("connections mismatch: %+v", n.Connections)
	}

	players, err := db.GetPlayerStats("h1", home.ID)
	if err != nil {
		t.Fatalf("GetPlayerStats: %v", err)
	}
	if len(players) != 2 || players[0].PlayerID != 10 || players[0].KeyPasses != 2 {
		t.Errorf("player stats mismatch: %+v", players)
	}

	mom, err := db.GetMomentum("h1")
	if err != nil {
		t.Fatalf("GetMomentum: %v", err)
	}
	if len(mom) != 2 || mom[1].NetValue != -0.4 {
		t.Errorf("momentum mismatch: %+v", mom)
	}

	sum, err := db.GetSummary("h1")
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if sum == nil || sum.HomeXG != 1.25 || sum.Away.Color != "#0000ff" || sum.AwayStats.Int(model.StatShots) != 3 {
		t.Errorf("summary mismatch: %+v", sum)
	}
	if missing, _ := db.GetSummary("nope"); missing != nil {
		t.Error("expected nil summary for unknown hash")
	}
}

func TestDeleteMatchCascades(t *testing.T) {
	db := openMemDB(t)
	db.SaveReport(makeReport("h1", 2, 1), time.Now())

	ok, err := db.DeleteMatch("h1")
	if err != nil || !ok {
		t.Fatalf("DeleteMatch: ok=%v err=%v", ok, err)
	}
	_, rows, err := db.QueryRaw("SELECT * FROM player_stats")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected child rows removed, got %d", len(rows))
	}
	if ok, _ := db.DeleteMatch("h1"); ok {
		t.Error("second delete should report no row")
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	db.SaveReport(makeReport("h1", 2, 1), time.Now())

	cols, rows, err := db.QueryRaw("SELECT match_id, home_xg, NULL AS nothing FROM matches")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 3 || cols[1] != "home_xg" {
		t.Errorf("unexpected columns %v", cols)
	}
	if len(rows) != 1 || rows[0][0] != "m-h1" || rows[0][1] != "1.25" || rows[0][2] != "NULL" {
		t.Errorf("unexpected rows %v", rows)
	}

	if _, _, err := db.QueryRaw("SELECT * FROM no_such_table"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestTeamHistoryAndPlayerTotals(t *testing.T) {
	db := openMemDB(t)
	db.SaveReport(makeReport("h1", 2, 1), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	db.SaveReport(makeReport("h2", 0, 0), time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC))

	hist, err := db.TeamHistory(away.ID)
	if err != nil {
		t.Fatalf("TeamHistory: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(hist))
	}
	first := hist[0]
	if first.IsHome || first.OpponentName != "Home FC" || first.GoalsFor != 1 || first.GoalsAgainst != 2 || first.XGFor != 0.5 {
		t.Errorf("away perspective mismatch: %+v", first)
	}
	if first.Points() != 0 || hist[1].Points() != 1 {
		t.Errorf("points: %d, %d", first.Points(), hist[1].Points())
	}

	totals, err := db.PlayerTotalsFor([]int64{9, 10}, nil)
	if err != nil {
		t.Fatalf("PlayerTotalsFor: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 players, got %d", len(totals))
	}
	for _, p := range totals {
		if p.Matches != 2 || p.Goals != 2 {
			t.Errorf("player %d: matches=%d goals=%d", p.PlayerID, p.Matches, p.Goals)
		}
	}

	only, err := db.PlayerTotalsFor([]int64{10}, []string{"h1"})
	if err != nil {
		t.Fatalf("PlayerTotalsFor filtered: %v", err)
	}
	if len(only) != 1 || only[0].Matches != 1 || only[0].PassAccuracy() != 80 {
		t.Errorf("filtered totals mismatch: %+v", only)
	}

	none, err := db.PlayerTotalsFor(nil, nil)
	if err != nil || none != nil {
		t.Errorf("expected nil for empty id list, got %v %v", none, err)
	}
}

func TestSaveReport_FromPipeline(t *testing.T) {
	m := &model.Match{
		ID:   "pipe",
		Hash: "feedface",
		Home: home,
		Away: away,
		Roster: model.Roster{
			10: {PlayerID: 10, TeamID: 1, Name: "Ten", ShirtNumber: 10, IsStarter: true},
			9:  {PlayerID: 9, TeamID: 1, Name: "Nine", ShirtNumber: 9, IsStarter: true},
		},
		Events: []model.RawEvent{
			{TeamID: 1, PlayerID: 10, Period: 1, Minute: 1, Type: model.EventPass, Outcome: model.OutcomeSuccessful, X: 50, Y: 30, HasLocation: true, EndX: 80, EndY: 34, HasEnd: true},
			{TeamID: 1, PlayerID: 9, Period: 1, Minute: 1, Second: 3, Type: model.EventShot, Outcome: model.OutcomeGoal, X: 80, Y: 34, HasLocation: true},
		},
	}
	c, err := match.New(m)
	if err != nil {
		t.Fatalf("match.New: %v", err)
	}
	rep, err := c.Report(context.Background())
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	db := openMemDB(t)
	if _, err := db.SaveReport(rep, time.Now()); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	sum, err := db.GetSummary("feedface")
	if err != nil || sum == nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if sum.HomeScore != 1 || sum.EventCount != 2 {
		t.Errorf("unexpected stored summary %+v", sum)
	}
	if len(sum.HomeStats) != len(model.AllStats) {
		t.Errorf("expected every stat stored, got %d", len(sum.HomeStats))
	}
	mom, _ := db.GetMomentum("feedface")
	if len(mom) != len(rep.Momentum) {
		t.Errorf("momentum bins: stored %d, built %d", len(mom), len(rep.Momentum))
	}
}

func TestOverviewAndTeamRecords(t *testing.T) {
	db := openMemDB(t)

	ov, err := db.GetOverview()
	if err != nil {
		t.Fatalf("GetOverview empty: %v", err)
	}
	if ov.TotalMatches != 0 || ov.FirstAnalyzed != "" {
		t.Errorf("expected empty overview, got %+v", ov)
	}

	db.SaveReport(makeReport("h1", 2, 1), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	db.SaveReport(makeReport("h2", 0, 0), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	ov, err = db.GetOverview()
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if ov.TotalMatches != 2 || ov.TotalGoals != 3 || ov.UniqueTeams != 2 || ov.UniquePlayers != 3 || ov.TotalEvents != 84 {
		t.Errorf("unexpected overview %+v", ov)
	}
	if ov.FirstAnalyzed != "2025-01-01T00:00:00Z" || ov.LastAnalyzed != "2025-03-01T00:00:00Z" {
		t.Errorf("unexpected date range %s .. %s", ov.FirstAnalyzed, ov.LastAnalyzed)
	}

	recs, err := db.TeamRecords()
	if err != nil {
		t.Fatalf("TeamRecords: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(recs))
	}
	h := recs[0]
	if h.TeamID != 1 || h.Wins != 1 || h.Draws != 1 || h.Losses != 0 || h.GoalsFor != 2 || h.GoalsAgainst != 1 {
		t.Errorf("home record mismatch: %+v", h)
	}
	if recs[1].Losses != 1 || recs[1].XGFor != 1.0 {
		t.Errorf("away record mismatch: %+v", recs[1])
	}
}
