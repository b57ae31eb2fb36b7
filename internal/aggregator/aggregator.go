// Package aggregator reduces a team's annotated events to positions, passing
// connections, player stat lines and the team statistic record.
package aggregator

import (
	"sort"

	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// NetworkConfig tunes pass-network construction.
type NetworkConfig struct {
	// ReceiverWindow is how long after a pass, in seconds, a teammate touch still counts as receiving it.
	ReceiverWindow float64 `koanf:"receiver_window"`
	// ReceiverRadius is the maximum distance in metres between the pass end and the receiving touch.
	ReceiverRadius float64 `koanf:"receiver_radius"`
	// MinPasses drops edges with fewer completed passes.
	MinPasses int `koanf:"min_passes"`
	// StartersOnly restricts nodes and edges to the starting eleven.
	StartersOnly bool `koanf:"starters_only"`
}

func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		ReceiverWindow: 10,
		ReceiverRadius: 15,
		MinPasses:      1,
	}
}

// chronological returns a copy of evs ordered by match clock. Ties keep feed order.
func chronological(evs []model.AnnotatedEvent) []model.AnnotatedEvent {
	out := make([]model.AnnotatedEvent, len(evs))
	copy(out, evs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CumulativeMinute < out[j].CumulativeMinute
	})
	return out
}

// included reports whether playerID passes the starters filter.
func included(roster model.Roster, playerID int64, startersOnly bool) bool {
	if !startersOnly || len(roster) == 0 {
		return true
	}
	entry, ok := roster[playerID]
	return ok && entry.IsStarter
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
