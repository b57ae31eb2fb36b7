// Package events turns a match's raw event feed into the annotated event table
// every other component reads. Annotation happens once per match.
package events

import (
	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/logging"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

const (
	ClockPeriod = "period"
	ClockMatch  = "match"
)

// Config holds the annotation thresholds.
type Config struct {
	// ProgressiveDistance is the minimum forward advance in metres for a progressive pass or carry.
	ProgressiveDistance float64 `koanf:"progressive_distance"`
	// ClockMode is "period" when feed minutes restart each period, "match" when they run on.
	ClockMode string `koanf:"clock_mode"`
	// PeriodOffsets[p-1] is the minute at which period p starts.
	PeriodOffsets []float64 `koanf:"period_offsets"`
	// Frame is the feed's coordinate frame: auto, shared or normalized.
	Frame string `koanf:"frame"`
}

func DefaultConfig() Config {
	return Config{
		ProgressiveDistance: 10,
		ClockMode:           ClockPeriod,
		PeriodOffsets:       []float64{0, 45, 90, 105, 120},
		Frame:               FrameAuto,
	}
}

// Estimator supplies an xG value for shots the provider left unvalued.
type Estimator interface {
	Estimate(shot model.AnnotatedEvent) float64
}

// TeamPair names the two sides of a match.
type TeamPair struct {
	Home, Away int64
}

// Processor annotates raw events. It holds no per-match state and may be reused.
type Processor struct {
	cfg       Config
	estimator Estimator
	log       *logging.Logger
}

type Option func(*Processor)

// WithLogger attaches a logger for debug diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(p *Processor) {
		p.log = l
	}
}

// NewProcessor returns a Processor. A nil estimator leaves unvalued shots at zero.
// Own-goal shots are never estimated.
func NewProcessor(cfg Config, estimator Estimator, opts ...Option) *Processor {
	p := &Processor{cfg: cfg, estimator: estimator, log: logging.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process annotates raw in order. The result has exactly one entry per input event.
func (p *Processor) Process(teams TeamPair, raw []model.RawEvent) []model.AnnotatedEvent {
	dirs := resolveDirections(raw, teams, p.cfg.Frame)
	out := make([]model.AnnotatedEvent, len(raw))

	estimated := 0
	for i := range raw {
		ev := p.annotate(i, raw[i], dirs)
		if ev.XGEstimated {
			estimated++
		}
		out[i] = ev
	}

	p.log.Debug("events annotated",
		"home", teams.Home, "away", teams.Away,
		"events", len(out), "estimated_xg", estimated, "directions", len(dirs))
	return out
}

func (p *Processor) annotate(i int, raw model.RawEvent, dirs directions) model.AnnotatedEvent {
	ev := model.AnnotatedEvent{
		RawEvent:         raw,
		Index:            i,
		AttacksRight:     dirs.attacksRight(raw.TeamID, raw.Period),
		CumulativeMinute: p.cumulativeMinute(raw),
	}

	if raw.HasLocation {
		ev.AX, ev.AY = raw.X, raw.Y
		if !ev.AttacksRight {
			ev.AX, ev.AY = geometry.Mirror(raw.X, raw.Y)
		}
		ev.DistanceToGoal = geometry.DistanceToGoal(ev.AX, ev.AY)
		ev.AngleToGoal = geometry.AngleToGoal(ev.AX, ev.AY)

		if raw.HasEnd {
			ev.AEndX, ev.AEndY = raw.EndX, raw.EndY
			if !ev.AttacksRight {
				ev.AEndX, ev.AEndY = geometry.Mirror(raw.EndX, raw.EndY)
			}
			ev.Distance = geometry.Distance(raw.X, raw.Y, raw.EndX, raw.EndY)
		}
	}

	ev.IsSuccessful = raw.Outcome == model.OutcomeSuccessful || raw.Outcome == model.OutcomeGoal
	ev.IsKeyPass = raw.Qualifiers.Has(model.QualKeyPass)
	ev.IsAssist = raw.Qualifiers.Has(model.QualAssist)
	ev.IsOwnGoal = raw.Qualifiers.Has(model.QualOwnGoal)
	ev.IsGoal = raw.Outcome == model.OutcomeGoal || raw.Qualifiers.Has(model.QualGoal)
	ev.IsProgressive = p.isProgressive(&ev)

	// Own goals are not chances for the side that struck them.
	if raw.Type == model.EventShot {
		switch {
		case raw.XG != nil:
			ev.XG = *raw.XG
		case ev.IsOwnGoal:
		case p.estimator != nil:
			ev.XG = p.estimator.Estimate(ev)
			ev.XGEstimated = true
		}
	}
	return ev
}

func (p *Processor) isProgressive(ev *model.AnnotatedEvent) bool {
	if ev.Type != model.EventPass && ev.Type != model.EventCarry {
		return false
	}
	if !ev.IsSuccessful || !ev.HasLocation || !ev.HasEnd {
		return false
	}
	if ev.AEndX-ev.AX >= p.cfg.ProgressiveDistance {
		return true
	}
	return geometry.InPenaltyArea(ev.AEndX, ev.AEndY) && !geometry.InPenaltyArea(ev.AX, ev.AY)
}

func (p *Processor) cumulativeMinute(raw model.RawEvent) float64 {
	m := float64(raw.Minute) + float64(raw.Second)/60
	if p.cfg.ClockMode == ClockMatch {
		return m
	}
	idx := int(raw.Period) - 1
	if idx >= 0 && idx < len(p.cfg.PeriodOffsets) {
		m += p.cfg.PeriodOffsets[idx]
	}
	return m
}
