package model

// ---- Aggregated metrics ----

// StatName is a member of the closed team statistic taxonomy.
type StatName string

const (
	StatShots               StatName = "shots"
	StatShotsOnTarget       StatName = "shots_on_target"
	StatShotsOffTarget      StatName = "shots_off_target"
	StatBlockedShots        StatName = "blocked_shots"
	StatShotsOnPost         StatName = "shots_on_post"
	StatGoals               StatName = "goals"
	StatXG                  StatName = "xg"
	StatXGPerShot           StatName = "xg_per_shot"
	StatBigChances          StatName = "big_chances"
	StatPasses              StatName = "passes"
	StatPassesCompleted     StatName = "passes_completed"
	StatPassAccuracy        StatName = "pass_accuracy"
	StatKeyPasses           StatName = "key_passes"
	StatAssists             StatName = "assists"
	StatProgressivePasses   StatName = "progressive_passes"
	StatShortPasses         StatName = "short_passes"
	StatLongPasses          StatName = "long_passes"
	StatCrosses             StatName = "crosses"
	StatFinalThirdPasses    StatName = "final_third_passes"
	StatDribbles            StatName = "dribbles"
	StatDribblesSuccessful  StatName = "dribbles_successful"
	StatTouches             StatName = "touches"
	StatTouchesInBox        StatName = "touches_in_box"
	StatPossessionPct       StatName = "possession_pct"
	StatDispossessed        StatName = "dispossessed"
	StatBadTouches          StatName = "bad_touches"
	StatTackles             StatName = "tackles"
	StatInterceptions       StatName = "interceptions"
	StatClearances          StatName = "clearances"
	StatBlocks              StatName = "blocks"
	StatAerialDuels         StatName = "aerial_duels"
	StatAerialDuelsWon      StatName = "aerial_duels_won"
	StatSaves               StatName = "saves"
	StatErrorsLeadingToShot StatName = "errors_leading_to_shot"
	StatErrorsLeadingToGoal StatName = "errors_leading_to_goal"
	StatFouls               StatName = "fouls"
	StatYellowCards         StatName = "yellow_cards"
	StatRedCards            StatName = "red_cards"
	StatOffsides            StatName = "offsides"
	StatPenaltyAreaShots    StatName = "penalty_area_shots"
	StatSixYardBoxShots     StatName = "six_yard_box_shots"
	StatOutsideBoxShots     StatName = "outside_box_shots"
	StatRightFootShots      StatName = "right_foot_shots"
	StatLeftFootShots       StatName = "left_foot_shots"
	StatHeadedShots         StatName = "headed_shots"
	StatOtherBodyPartShots  StatName = "other_body_part_shots"
	StatOpenPlayShots       StatName = "open_play_shots"
	StatSetPieceShots       StatName = "set_piece_shots"
	StatCounterAttackShots  StatName = "counter_attack_shots"
)

// StatSection groups statistics the way match reports lay them out.
type StatSection struct {
	Name  string
	Stats []StatName
}

// StatSections is the display grouping of the full taxonomy.
var StatSections = []StatSection{
	{Name: "Offense", Stats: []StatName{
		StatShots, StatShotsOnTarget, StatShotsOffTarget, StatBlockedShots, StatShotsOnPost,
		StatGoals, StatXG, StatXGPerShot, StatBigChances,
	}},
	{Name: "Passing", Stats: []StatName{
		StatPasses, StatPassesCompleted, StatPassAccuracy, StatKeyPasses, StatAssists,
		StatProgressivePasses, StatShortPasses, StatLongPasses, StatCrosses, StatFinalThirdPasses,
	}},
	{Name: "Possession", Stats: []StatName{
		StatTouches, StatTouchesInBox, StatPossessionPct, StatDribbles, StatDribblesSuccessful,
		StatDispossessed, StatBadTouches,
	}},
	{Name: "Defense", Stats: []StatName{
		StatTackles, StatInterceptions, StatClearances, StatBlocks, StatAerialDuels,
		StatAerialDuelsWon, StatSaves, StatErrorsLeadingToShot, StatErrorsLeadingToGoal,
	}},
	{Name: "Discipline", Stats: []StatName{
		StatFouls, StatYellowCards, StatRedCards, StatOffsides,
	}},
	{Name: "Shot zone", Stats: []StatName{
		StatSixYardBoxShots, StatPenaltyAreaShots, StatOutsideBoxShots,
	}},
	{Name: "Body part", Stats: []StatName{
		StatRightFootShots, StatLeftFootShots, StatHeadedShots, StatOtherBodyPartShots,
	}},
	{Name: "Situation", Stats: []StatName{
		StatOpenPlayShots, StatSetPieceShots, StatCounterAttackShots,
	}},
}

// AllStats lists every statistic in display order.
var AllStats = func() []StatName {
	var out []StatName
	for _, s := range StatSections {
		out = append(out, s.Stats...)
	}
	return out
}()

// IsStatName reports whether name belongs to the taxonomy.
func IsStatName(name string) bool {
	for _, s := range AllStats {
		if string(s) == name {
			return true
		}
	}
	return false
}

// TeamStatRecord maps every statistic to its value for one team in one match.
type TeamStatRecord map[StatName]float64

// Get returns the value of name, zero when absent.
func (r TeamStatRecord) Get(name StatName) float64 {
	if r == nil {
		return 0
	}
	return r[name]
}

// Int returns the value of name truncated to an integer count.
func (r TeamStatRecord) Int(name StatName) int {
	return int(r.Get(name))
}

// PlayerPosition is a player's mean location over their touches.
type PlayerPosition struct {
	PlayerID    int64
	Name        string
	ShirtNumber int
	X, Y        float64
	TouchCount  int
}

// PassConnection is a directed passing edge between two teammates.
type PassConnection struct {
	FromID, ToID int64
	X, Y         float64 // mean pass start
	EndX, EndY   float64 // mean pass end
	PassCount    int
}

// PlayerStats is one player's event-derived stat line for a match.
type PlayerStats struct {
	PlayerID    int64
	TeamID      int64
	Name        string
	ShirtNumber int

	Events            int
	Touches           int
	Passes            int
	PassesCompleted   int
	ProgressivePasses int
	KeyPasses         int
	Assists           int
	Shots             int
	Goals             int
	XG                float64
	Tackles           int
	Interceptions     int
	Clearances        int
	Dribbles          int
}

func (s *PlayerStats) PassAccuracy() float64 {
	if s.Passes == 0 {
		return 0
	}
	return float64(s.PassesCompleted) / float64(s.Passes) * 100
}

func (s *PlayerStats) DefensiveActions() int {
	return s.Tackles + s.Interceptions + s.Clearances
}

// MomentumSample is one smoothed one-minute bin; positive favours home.
type MomentumSample struct {
	MinuteBin int
	RawNet    float64
	NetValue  float64
}

// GoalMarker is a discrete goal overlay for the momentum series.
type GoalMarker struct {
	Minute   float64
	TeamID   int64 // scoring team
	PlayerID int64
	OwnGoal  bool
}

// ZoneLabel is the control verdict of one grid cell.
type ZoneLabel string

const (
	ZoneHome      ZoneLabel = "Home"
	ZoneAway      ZoneLabel = "Away"
	ZoneContested ZoneLabel = "Contested"
)

// ZoneCell is one pitch cell with its event counts and label.
type ZoneCell struct {
	Row, Col   int
	MinX, MaxX float64
	MinY, MaxY float64
	HomeCount  int
	AwayCount  int
	Label      ZoneLabel
}

// HomeShare returns the home fraction of events in the cell, 0 when empty.
func (c *ZoneCell) HomeShare() float64 {
	total := c.HomeCount + c.AwayCount
	if total == 0 {
		return 0
	}
	return float64(c.HomeCount) / float64(total)
}

// ZoneGrid is a rows x cols partition of the pitch. Cells[row][col].
type ZoneGrid struct {
	Rows, Cols int
	Cells      [][]ZoneCell
}

// Count returns how many cells carry label.
func (g *ZoneGrid) Count(label ZoneLabel) int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if c.Label == label {
				n++
			}
		}
	}
	return n
}

// Summary bundles team identities, score and the per-team stat records.
type Summary struct {
	MatchID    string
	Home       TeamInfo
	Away       TeamInfo
	HomeScore  int
	AwayScore  int
	HomeXG     float64
	AwayXG     float64
	EventCount int
	HomeStats  TeamStatRecord
	AwayStats  TeamStatRecord
}

// MatchRecord is a lightweight stored-match row for list/show commands.
type MatchRecord struct {
	Hash       string
	MatchID    string
	HomeID     int64
	HomeName   string
	AwayID     int64
	AwayName   string
	HomeScore  int
	AwayScore  int
	EventCount int
	AnalyzedAt string
	RunID      string
}
