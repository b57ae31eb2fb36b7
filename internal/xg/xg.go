// Package xg estimates the goal probability of a shot when the provider did not
// supply one. The estimate is a fixed, ordered rule stack over the shot's
// annotated attributes.
package xg

import (
	"math"

	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// Band awards Bonus to shots taken closer than MaxDistance metres.
type Band struct {
	MaxDistance float64 `koanf:"max_distance"`
	Bonus       float64 `koanf:"bonus"`
}

// Config holds every constant of the rule stack.
type Config struct {
	Base                 float64 `koanf:"base"`
	PenaltyValue         float64 `koanf:"penalty_value"`
	PenaltySpotTolerance float64 `koanf:"penalty_spot_tolerance"`
	BoxBonus             float64 `koanf:"box_bonus"`
	FinalThirdBonus      float64 `koanf:"final_third_bonus"`
	// Bands are checked nearest first; only the first match applies.
	Bands            []Band  `koanf:"bands"`
	WideAngle        float64 `koanf:"wide_angle"`
	WideAngleBonus   float64 `koanf:"wide_angle_bonus"`
	NarrowAngle      float64 `koanf:"narrow_angle"`
	NarrowAngleBonus float64 `koanf:"narrow_angle_bonus"`
	HeadMultiplier   float64 `koanf:"head_multiplier"`
	OnFrameBonus     float64 `koanf:"on_frame_bonus"`
	MissPenalty      float64 `koanf:"miss_penalty"`
	Min              float64 `koanf:"min"`
	Max              float64 `koanf:"max"`
}

// DefaultConfig returns the standard rule constants.
func DefaultConfig() Config {
	return Config{
		Base:                 0.02,
		PenaltyValue:         0.76,
		PenaltySpotTolerance: 0.3,
		BoxBonus:             0.10,
		FinalThirdBonus:      0.05,
		Bands: []Band{
			{MaxDistance: 8, Bonus: 0.20},
			{MaxDistance: 12, Bonus: 0.12},
			{MaxDistance: 18, Bonus: 0.07},
			{MaxDistance: 25, Bonus: 0.03},
		},
		WideAngle:        0.35,
		WideAngleBonus:   0.05,
		NarrowAngle:      0.25,
		NarrowAngleBonus: 0.03,
		HeadMultiplier:   0.7,
		OnFrameBonus:     0.03,
		MissPenalty:      0.01,
		Min:              0.01,
		Max:              0.95,
	}
}

// Model is the heuristic estimator. It is stateless and safe for concurrent use.
type Model struct {
	cfg Config
}

// NewModel returns a Model using cfg.
func NewModel(cfg Config) *Model {
	return &Model{cfg: cfg}
}

// Estimate returns the heuristic xG of shot, clipped to [Min, Max].
// Positional rules are skipped for shots without a location.
func (m *Model) Estimate(shot model.AnnotatedEvent) float64 {
	c := m.cfg
	head := shot.Qualifiers.Has(model.QualHead)

	if m.isPenalty(shot) {
		v := c.PenaltyValue
		if head {
			v *= c.HeadMultiplier
		}
		return m.clip(v)
	}

	v := c.Base
	if shot.HasLocation {
		switch {
		case geometry.InPenaltyArea(shot.AX, shot.AY):
			v += c.BoxBonus
		case geometry.InFinalThird(shot.AX):
			v += c.FinalThirdBonus
		}

		for _, b := range c.Bands {
			if shot.DistanceToGoal < b.MaxDistance {
				v += b.Bonus
				break
			}
		}

		switch {
		case shot.AngleToGoal > c.WideAngle:
			v += c.WideAngleBonus
		case shot.AngleToGoal > c.NarrowAngle:
			v += c.NarrowAngleBonus
		}
	}

	if head {
		v *= c.HeadMultiplier
	}

	switch shot.Outcome {
	case model.OutcomeSavedShot, model.OutcomePost:
		v += c.OnFrameBonus
	case model.OutcomeMissedShot:
		v -= c.MissPenalty
	}
	return m.clip(v)
}

func (m *Model) isPenalty(shot model.AnnotatedEvent) bool {
	if shot.Qualifiers.Has(model.QualPenalty) {
		return true
	}
	if !shot.HasLocation {
		return false
	}
	d := geometry.Distance(shot.AX, shot.AY, geometry.PenaltySpotX, geometry.GoalCenterY)
	return d <= m.cfg.PenaltySpotTolerance
}

func (m *Model) clip(v float64) float64 {
	return math.Max(m.cfg.Min, math.Min(m.cfg.Max, v))
}
