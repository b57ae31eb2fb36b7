package events

import (
	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// Coordinate frames a feed can use.
const (
	// FrameAuto detects the frame from the shots in the feed.
	FrameAuto = "auto"
	// FrameShared puts both teams on one pitch; they attack opposite goals and
	// switch ends between paired periods.
	FrameShared = "shared"
	// FrameNormalized gives each team its own frame with the same direction
	// for both sides in every period.
	FrameNormalized = "normalized"
)

type dirKey struct {
	team   int64
	period model.Period
}

// directions records, per team and period, whether the team attacks towards x=105.
// Absent keys attack right.
type directions map[dirKey]bool

func (d directions) attacksRight(team int64, period model.Period) bool {
	right, ok := d[dirKey{team, period}]
	return !ok || right
}

// pairedPeriod is the other half of the same playing phase, zero when none.
func pairedPeriod(p model.Period) model.Period {
	switch p {
	case model.PeriodFirstHalf:
		return model.PeriodSecondHalf
	case model.PeriodSecondHalf:
		return model.PeriodFirstHalf
	case model.PeriodExtraFirstHalf:
		return model.PeriodExtraSecondHalf
	case model.PeriodExtraSecondHalf:
		return model.PeriodExtraFirstHalf
	}
	return 0
}

// voteDirections infers a side's direction from where it shoots: a team whose
// shots in a period average inside the left half is attacking the x=0 goal.
// Own goals are struck at the scorer's own goal and do not vote.
func voteDirections(raw []model.RawEvent) directions {
	type acc struct {
		sum float64
		n   int
	}
	shots := make(map[dirKey]*acc)
	for _, ev := range raw {
		if ev.Type != model.EventShot || !ev.HasLocation || ev.Qualifiers.Has(model.QualOwnGoal) {
			continue
		}
		k := dirKey{ev.TeamID, ev.Period}
		a := shots[k]
		if a == nil {
			a = &acc{}
			shots[k] = a
		}
		a.sum += ev.X
		a.n++
	}

	out := make(directions, len(shots))
	for k, a := range shots {
		out[k] = a.sum/float64(a.n) >= geometry.PitchLength/2
	}
	return out
}

// detectFrame weighs the evidence in the voted directions. Opponents resolved
// in one period, or one team resolved in both halves of a phase, point to a
// frame. With no evidence the shared frame is assumed.
func detectFrame(voted directions, teams TeamPair) string {
	shared, normalized := 0, 0
	for k, right := range voted {
		if k.team == teams.Home {
			if other, ok := voted[dirKey{teams.Away, k.period}]; ok {
				if other == right {
					normalized++
				} else {
					shared++
				}
			}
		}
		if k.team != teams.Home && k.team != teams.Away {
			continue
		}
		if p := pairedPeriod(k.period); p > k.period {
			if other, ok := voted[dirKey{k.team, p}]; ok {
				if other == right {
					normalized++
				} else {
					shared++
				}
			}
		}
	}
	if normalized > shared {
		return FrameNormalized
	}
	return FrameShared
}

// resolveDirections votes on every (team, period) that has shots, then fills
// the remaining keys of both teams from what is known: the opponent in the same
// period first, then the team's own paired period, then the opponent's paired
// period. A key with no evidence at all stays absent and attacks right.
func resolveDirections(raw []model.RawEvent, teams TeamPair, frame string) directions {
	voted := voteDirections(raw)
	if frame != FrameShared && frame != FrameNormalized {
		frame = detectFrame(voted, teams)
	}
	shared := frame == FrameShared

	periods := make(map[model.Period]bool)
	for _, ev := range raw {
		periods[ev.Period] = true
	}

	out := make(directions, len(voted))
	for k, v := range voted {
		out[k] = v
	}
	for p := range periods {
		for _, pair := range [][2]int64{{teams.Home, teams.Away}, {teams.Away, teams.Home}} {
			team, opp := pair[0], pair[1]
			k := dirKey{team, p}
			if _, ok := voted[k]; ok {
				continue
			}
			if right, ok := inferDirection(voted, team, opp, p, shared); ok {
				out[k] = right
			}
		}
	}
	return out
}

func inferDirection(voted directions, team, opp int64, p model.Period, shared bool) (bool, bool) {
	if right, ok := voted[dirKey{opp, p}]; ok {
		return right != shared, true
	}
	pp := pairedPeriod(p)
	if pp == 0 {
		return false, false
	}
	if right, ok := voted[dirKey{team, pp}]; ok {
		return right != shared, true
	}
	if right, ok := voted[dirKey{opp, pp}]; ok {
		return right, true
	}
	return false, false
}
