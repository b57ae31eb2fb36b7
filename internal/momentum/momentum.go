// Package momentum turns the annotated event table into a smoothed per-minute
// signal of attacking pressure. Positive values favour the home side.
package momentum

import (
	"math"

	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// Config holds the event weights and smoothing width.
type Config struct {
	ShotBase     float64 `koanf:"shot_base"`
	ShotXGFactor float64 `koanf:"shot_xg_factor"`
	KeyPass      float64 `koanf:"key_pass"`
	FinalThird   float64 `koanf:"final_third"`
	// Sigma is the Gaussian standard deviation in one-minute bins.
	Sigma float64 `koanf:"sigma"`
}

func DefaultConfig() Config {
	return Config{
		ShotBase:     5,
		ShotXGFactor: 5,
		KeyPass:      2,
		FinalThird:   1,
		Sigma:        1,
	}
}

// Engine computes momentum series. It is stateless.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Weight is the pressure contributed by one event. The first matching rule wins:
// shots, then key passes, then any located action in the attacking third.
func (e *Engine) Weight(ev *model.AnnotatedEvent) float64 {
	switch {
	case ev.Type == model.EventShot:
		return e.cfg.ShotBase + e.cfg.ShotXGFactor*ev.XG
	case ev.IsKeyPass:
		return e.cfg.KeyPass
	case ev.HasLocation && geometry.InFinalThird(ev.AX):
		return e.cfg.FinalThird
	}
	return 0
}

// Compute bins weights by whole cumulative minute, 0 through the last event's
// minute, and smooths the home-minus-away series. Events of other teams are ignored.
// Own goals count for the opponent, as in Goals.
func (e *Engine) Compute(evs []model.AnnotatedEvent, homeID, awayID int64) []model.MomentumSample {
	if len(evs) == 0 {
		return []model.MomentumSample{}
	}

	last := 0.0
	for i := range evs {
		last = math.Max(last, evs[i].CumulativeMinute)
	}
	raw := make([]float64, int(math.Floor(last))+1)

	for i := range evs {
		ev := &evs[i]
		var sign float64
		switch ev.TeamID {
		case homeID:
			sign = 1
		case awayID:
			sign = -1
		default:
			continue
		}
		// An own goal is pressure for the side credited with it.
		if ev.IsOwnGoal {
			sign = -sign
		}
		bin := int(math.Floor(ev.CumulativeMinute))
		if bin < 0 {
			bin = 0
		}
		raw[bin] += sign * e.Weight(ev)
	}

	smooth := GaussianSmooth(raw, e.cfg.Sigma)
	out := make([]model.MomentumSample, len(raw))
	for i := range raw {
		out[i] = model.MomentumSample{MinuteBin: i, RawNet: raw[i], NetValue: smooth[i]}
	}
	return out
}

// Goals returns the goal markers in clock order. Own goals are credited to the
// opponent of the team that conceded.
func (e *Engine) Goals(evs []model.AnnotatedEvent, homeID, awayID int64) []model.GoalMarker {
	out := make([]model.GoalMarker, 0)
	for i := range evs {
		ev := &evs[i]
		if ev.TeamID != homeID && ev.TeamID != awayID {
			continue
		}
		switch {
		case ev.IsOwnGoal:
			scorer := homeID
			if ev.TeamID == homeID {
				scorer = awayID
			}
			out = append(out, model.GoalMarker{Minute: ev.CumulativeMinute, TeamID: scorer, PlayerID: ev.PlayerID, OwnGoal: true})
		case ev.IsGoal && ev.Type == model.EventShot:
			out = append(out, model.GoalMarker{Minute: ev.CumulativeMinute, TeamID: ev.TeamID, PlayerID: ev.PlayerID})
		}
	}
	sortMarkers(out)
	return out
}
