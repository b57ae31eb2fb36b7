package aggregator

import (
	"fmt"
	"sort"

	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// AggregatePlayers computes average positions and the directed pass network for
// one team. Coordinates are in the team's attacking frame.
func AggregatePlayers(teamEvents []model.AnnotatedEvent, roster model.Roster, cfg NetworkConfig) ([]model.PlayerPosition, []model.PassConnection) {
	return Positions(teamEvents, roster, cfg.StartersOnly), Connections(teamEvents, roster, cfg)
}

// Positions returns each player's mean touch location. Players without a located
// touch are left out.
func Positions(teamEvents []model.AnnotatedEvent, roster model.Roster, startersOnly bool) []model.PlayerPosition {
	type acc struct {
		sumX, sumY float64
		n          int
	}
	touches := make(map[int64]*acc)
	for i := range teamEvents {
		ev := &teamEvents[i]
		if ev.PlayerID == 0 || !ev.HasLocation || !ev.Type.IsTouch() {
			continue
		}
		if !included(roster, ev.PlayerID, startersOnly) {
			continue
		}
		a := touches[ev.PlayerID]
		if a == nil {
			a = &acc{}
			touches[ev.PlayerID] = a
		}
		a.sumX += ev.AX
		a.sumY += ev.AY
		a.n++
	}

	out := make([]model.PlayerPosition, 0, len(touches))
	for id, a := range touches {
		entry := roster[id]
		out = append(out, model.PlayerPosition{
			PlayerID:    id,
			Name:        entry.Name,
			ShirtNumber: entry.ShirtNumber,
			X:           a.sumX / float64(a.n),
			Y:           a.sumY / float64(a.n),
			TouchCount:  a.n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ShirtNumber != out[j].ShirtNumber {
			return out[i].ShirtNumber < out[j].ShirtNumber
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// PlayerStatsFor builds one stat line per player appearing in teamEvents.
// Lines are ordered by shirt number.
func PlayerStatsFor(teamEvents []model.AnnotatedEvent, roster model.Roster) []model.PlayerStats {
	byID := make(map[int64]*model.PlayerStats)
	for i := range teamEvents {
		ev := &teamEvents[i]
		if ev.PlayerID == 0 {
			continue
		}
		s := byID[ev.PlayerID]
		if s == nil {
			entry := roster[ev.PlayerID]
			s = &model.PlayerStats{
				PlayerID:    ev.PlayerID,
				TeamID:      ev.TeamID,
				Name:        entry.Name,
				ShirtNumber: entry.ShirtNumber,
			}
			byID[ev.PlayerID] = s
		}

		s.Events++
		if ev.Type.IsTouch() {
			s.Touches++
		}
		if ev.IsKeyPass {
			s.KeyPasses++
		}
		if ev.IsAssist {
			s.Assists++
		}

		switch ev.Type {
		case model.EventPass:
			s.Passes++
			if ev.IsSuccessful {
				s.PassesCompleted++
			}
			if ev.IsProgressive {
				s.ProgressivePasses++
			}
		case model.EventShot:
			s.Shots++
			s.XG += ev.XG
			if ev.IsGoal && !ev.IsOwnGoal {
				s.Goals++
			}
		case model.EventTackle:
			s.Tackles++
		case model.EventInterception:
			s.Interceptions++
		case model.EventClearance:
			s.Clearances++
		case model.EventDribble:
			s.Dribbles++
		}
	}

	out := make([]model.PlayerStats, 0, len(byID))
	for _, s := range byID {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ShirtNumber != out[j].ShirtNumber {
			return out[i].ShirtNumber < out[j].ShirtNumber
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// PlayerMetrics lists the metric names accepted by TopPerformers.
var PlayerMetrics = []string{
	"passes", "pass_accuracy", "progressive_passes", "key_passes", "assists",
	"shots", "goals", "xg", "touches", "tackles", "interceptions", "clearances",
	"dribbles", "defensive_actions",
}

func playerMetric(s *model.PlayerStats, metric string) (float64, bool) {
	switch metric {
	case "passes":
		return float64(s.Passes), true
	case "pass_accuracy":
		return s.PassAccuracy(), true
	case "progressive_passes":
		return float64(s.ProgressivePasses), true
	case "key_passes":
		return float64(s.KeyPasses), true
	case "assists":
		return float64(s.Assists), true
	case "shots":
		return float64(s.Shots), true
	case "goals":
		return float64(s.Goals), true
	case "xg":
		return s.XG, true
	case "touches":
		return float64(s.Touches), true
	case "tackles":
		return float64(s.Tackles), true
	case "interceptions":
		return float64(s.Interceptions), true
	case "clearances":
		return float64(s.Clearances), true
	case "dribbles":
		return float64(s.Dribbles), true
	case "defensive_actions":
		return float64(s.DefensiveActions()), true
	}
	return 0, false
}

// TopPerformers returns up to n stat lines ranked by metric, highest first.
func TopPerformers(stats []model.PlayerStats, metric string, n int) ([]model.PlayerStats, error) {
	if _, ok := playerMetric(&model.PlayerStats{}, metric); !ok {
		return nil, fmt.Errorf("unknown player metric %q", metric)
	}
	out := make([]model.PlayerStats, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := playerMetric(&out[i], metric)
		b, _ := playerMetric(&out[j], metric)
		return a > b
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}
