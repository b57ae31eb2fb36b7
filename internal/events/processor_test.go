package events

import (
	"math"
	"reflect"
	"testing"

	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/model"
	"github.com/DataKnight1/PostMatchReport/internal/xg"
)

const (
	home int64 = 10
	away int64 = 20
)

var teams = TeamPair{Home: home, Away: away}

type fixedEstimator float64

func (f fixedEstimator) Estimate(model.AnnotatedEvent) float64 { return float64(f) }

// makeEvent builds a located event for team in the first half.
func makeEvent(team int64, typ model.EventType, outcome model.Outcome, x, y float64) model.RawEvent {
	return model.RawEvent{
		TeamID: team, PlayerID: team*100 + 1, Period: model.PeriodFirstHalf,
		Type: typ, Outcome: outcome, X: x, Y: y, HasLocation: true,
	}
}

func makePass(team int64, x, y, endX, endY float64) model.RawEvent {
	ev := makeEvent(team, model.EventPass, model.OutcomeSuccessful, x, y)
	ev.EndX, ev.EndY, ev.HasEnd = endX, endY, true
	return ev
}

func newProcessor() *Processor {
	return NewProcessor(DefaultConfig(), xg.NewModel(xg.DefaultConfig()))
}

func TestProcess_OneToOneAndOrdered(t *testing.T) {
	raw := []model.RawEvent{
		makePass(home, 30, 30, 40, 30),
		makeEvent(away, model.EventTackle, model.OutcomeSuccessful, 60, 20),
		makeEvent(home, model.EventShot, model.OutcomeMissedShot, 90, 34),
		{TeamID: away, Type: model.EventFoul, Period: model.PeriodFirstHalf},
	}
	got := newProcessor().Process(teams, raw)
	if len(got) != len(raw) {
		t.Fatalf("len = %d, want %d", len(got), len(raw))
	}
	for i := range got {
		if got[i].Index != i {
			t.Errorf("event %d has index %d", i, got[i].Index)
		}
		if !reflect.DeepEqual(got[i].RawEvent, raw[i]) {
			t.Errorf("event %d raw fields changed", i)
		}
	}
}

func TestProcess_Idempotent(t *testing.T) {
	raw := []model.RawEvent{
		makePass(home, 30, 30, 45, 30),
		makeEvent(home, model.EventShot, model.OutcomeSavedShot, 95, 30),
		makeEvent(away, model.EventShot, model.OutcomeGoal, 12, 34),
	}
	p := newProcessor()
	a := p.Process(teams, raw)
	b := p.Process(teams, raw)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("processing the same events twice gave different tables")
	}
}

func TestProcess_MissingCoordinates(t *testing.T) {
	raw := []model.RawEvent{{
		TeamID: home, Period: model.PeriodFirstHalf, Minute: 10,
		Type: model.EventShot, Outcome: model.OutcomeMissedShot,
	}}
	got := NewProcessor(DefaultConfig(), fixedEstimator(0.07)).Process(teams, raw)[0]
	if got.Distance != 0 || got.DistanceToGoal != 0 || got.AngleToGoal != 0 {
		t.Errorf("expected zero spatial metrics, got %+v", got)
	}
	if got.IsProgressive || got.IsSuccessful || got.IsGoal {
		t.Errorf("expected false flags, got %+v", got)
	}
	if got.XG != 0.07 || !got.XGEstimated {
		t.Errorf("xg = %v estimated=%v, want heuristic 0.07", got.XG, got.XGEstimated)
	}
}

func TestProcess_ProviderXGKept(t *testing.T) {
	v := 0.41
	shot := makeEvent(home, model.EventShot, model.OutcomeGoal, 99, 34)
	shot.XG = &v
	got := NewProcessor(DefaultConfig(), fixedEstimator(0.9)).Process(teams, []model.RawEvent{shot})[0]
	if got.XG != 0.41 || got.XGEstimated {
		t.Errorf("xg = %v estimated=%v, want provider 0.41", got.XG, got.XGEstimated)
	}
	if !got.IsGoal || !got.IsSuccessful {
		t.Error("goal outcome should set IsGoal and IsSuccessful")
	}
}

func TestProcess_NonShotsHaveNoXG(t *testing.T) {
	got := NewProcessor(DefaultConfig(), fixedEstimator(0.5)).Process(teams, []model.RawEvent{makePass(home, 80, 34, 95, 34)})[0]
	if got.XG != 0 || got.XGEstimated {
		t.Errorf("pass got xg %v", got.XG)
	}
}

func TestProcess_CumulativeMinute(t *testing.T) {
	cases := []struct {
		name   string
		mode   string
		period model.Period
		minute int
		second int
		want   float64
	}{
		{"first half", ClockPeriod, model.PeriodFirstHalf, 12, 30, 12.5},
		{"second half offset", ClockPeriod, model.PeriodSecondHalf, 3, 30, 48.5},
		{"extra time", ClockPeriod, model.PeriodExtraSecondHalf, 2, 0, 107},
		{"running clock", ClockMatch, model.PeriodSecondHalf, 48, 30, 48.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ClockMode = c.mode
			raw := []model.RawEvent{{TeamID: home, Period: c.period, Minute: c.minute, Second: c.second, Type: model.EventTouch}}
			got := NewProcessor(cfg, nil).Process(teams, raw)[0].CumulativeMinute
			if math.Abs(got-c.want) > 1e-9 {
				t.Errorf("cumulative minute = %v, want %v", got, c.want)
			}
		})
	}
}

func TestProcess_Progressive(t *testing.T) {
	unsuccessful := makePass(home, 40, 34, 60, 34)
	unsuccessful.Outcome = model.OutcomeUnsuccessful
	carry := makePass(home, 20, 10, 31, 10)
	carry.Type = model.EventCarry
	noEnd := makeEvent(home, model.EventPass, model.OutcomeSuccessful, 40, 34)

	cases := []struct {
		name string
		ev   model.RawEvent
		want bool
	}{
		{"advances exactly the threshold", makePass(home, 50, 34, 60, 34), true},
		{"advances too little", makePass(home, 50, 34, 59, 20), false},
		{"backwards", makePass(home, 60, 34, 40, 34), false},
		{"short entry into the box", makePass(home, 85, 34, 90, 34), true},
		{"inside the box already", makePass(home, 90, 30, 95, 34), false},
		{"unsuccessful", unsuccessful, false},
		{"carry", carry, true},
		{"no end point", noEnd, false},
	}
	p := newProcessor()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := p.Process(teams, []model.RawEvent{c.ev})[0]
			if got.IsProgressive != c.want {
				t.Errorf("IsProgressive = %v, want %v", got.IsProgressive, c.want)
			}
		})
	}
}

func TestProcess_AttackDirectionPerPeriod(t *testing.T) {
	secondHalf := func(ev model.RawEvent) model.RawEvent {
		ev.Period = model.PeriodSecondHalf
		return ev
	}
	raw := []model.RawEvent{
		makeEvent(home, model.EventShot, model.OutcomeMissedShot, 92, 30),
		secondHalf(makeEvent(home, model.EventShot, model.OutcomeSavedShot, 8, 36)),
		secondHalf(makePass(home, 60, 34, 48, 34)),
		makePass(home, 60, 34, 48, 34),
	}
	got := newProcessor().Process(teams, raw)

	if !got[0].AttacksRight || got[1].AttacksRight {
		t.Fatalf("directions = %v/%v, want right then left", got[0].AttacksRight, got[1].AttacksRight)
	}
	if math.Abs(got[1].DistanceToGoal-geometry.DistanceToGoal(97, 32)) > 1e-9 {
		t.Errorf("second-half shot distance = %v, want mirrored", got[1].DistanceToGoal)
	}
	if !got[2].IsProgressive {
		t.Error("second-half pass towards x=0 should be progressive")
	}
	if got[3].IsProgressive {
		t.Error("first-half pass towards x=0 should not be progressive")
	}
	if got[2].AX != 45 || got[2].AEndX != 57 {
		t.Errorf("attacking frame = (%v -> %v), want (45 -> 57)", got[2].AX, got[2].AEndX)
	}
}

func TestProcess_Flags(t *testing.T) {
	ev := makePass(home, 80, 34, 95, 34)
	ev.Qualifiers = model.Qualifiers{model.QualKeyPass, model.QualAssist}
	og := makeEvent(away, model.EventClearance, model.OutcomeUnsuccessful, 3, 34)
	og.Qualifiers = model.Qualifiers{model.QualOwnGoal}

	got := newProcessor().Process(teams, []model.RawEvent{ev, og})
	if !got[0].IsKeyPass || !got[0].IsAssist {
		t.Error("expected key pass and assist")
	}
	if !got[1].IsOwnGoal || got[1].IsGoal {
		t.Error("own goal qualifier should set IsOwnGoal only")
	}
}

func TestProcess_OwnGoalDoesNotVoteOnDirection(t *testing.T) {
	og := makeEvent(home, model.EventShot, model.OutcomeGoal, 3, 34)
	og.Qualifiers = model.Qualifiers{model.QualOwnGoal}
	raw := []model.RawEvent{
		makeEvent(home, model.EventShot, model.OutcomeMissedShot, 80, 34),
		og,
		makePass(home, 50, 34, 65, 34),
	}
	got := NewProcessor(DefaultConfig(), fixedEstimator(0.2)).Process(teams, raw)

	if !got[0].AttacksRight {
		t.Fatal("home should attack right, the own goal must not flip the vote")
	}
	if !got[2].IsProgressive {
		t.Error("forward pass should be progressive")
	}
	if math.Abs(got[0].DistanceToGoal-25) > 1e-9 {
		t.Errorf("shot distance = %v, want 25", got[0].DistanceToGoal)
	}
	if got[1].XG != 0 || got[1].XGEstimated {
		t.Errorf("own goal xg = %v estimated=%v, want none", got[1].XG, got[1].XGEstimated)
	}
}

func TestProcess_DirectionFromOpponent(t *testing.T) {
	raw := []model.RawEvent{
		makeEvent(home, model.EventShot, model.OutcomeSavedShot, 95, 34),
		makePass(away, 60, 34, 40, 34),
		makePass(away, 40, 34, 60, 34),
	}
	got := newProcessor().Process(teams, raw)

	if !got[0].AttacksRight || got[1].AttacksRight {
		t.Fatalf("directions home=%v away=%v, want opposite ends", got[0].AttacksRight, got[1].AttacksRight)
	}
	if !got[1].IsProgressive {
		t.Error("away pass towards x=0 should be progressive")
	}
	if got[2].IsProgressive {
		t.Error("away pass towards x=105 should not be progressive")
	}
}

func TestProcess_DirectionFromPairedPeriod(t *testing.T) {
	secondHalf := func(ev model.RawEvent) model.RawEvent {
		ev.Period = model.PeriodSecondHalf
		return ev
	}
	raw := []model.RawEvent{
		// Both sides shoot in the first half, so the feed is a shared frame.
		makeEvent(home, model.EventShot, model.OutcomeMissedShot, 90, 34),
		makeEvent(away, model.EventShot, model.OutcomeMissedShot, 14, 34),
		// Only home shoots after the break; away switches ends too.
		secondHalf(makeEvent(home, model.EventShot, model.OutcomeMissedShot, 12, 34)),
		secondHalf(makePass(away, 50, 34, 65, 34)),
		// Neither side shoots in extra time.
		{TeamID: away, Period: model.PeriodExtraFirstHalf, Type: model.EventTouch, X: 50, Y: 34, HasLocation: true},
	}
	got := newProcessor().Process(teams, raw)

	if !got[3].AttacksRight {
		t.Error("away should attack right after half-time")
	}
	if !got[3].IsProgressive {
		t.Error("second-half away pass towards x=105 should be progressive")
	}
	if !got[4].AttacksRight {
		t.Error("a period with no evidence should default to attacking right")
	}
}

func TestProcess_NormalizedFrame(t *testing.T) {
	raw := []model.RawEvent{
		makeEvent(home, model.EventShot, model.OutcomeSavedShot, 95, 34),
		makePass(away, 40, 34, 60, 34),
	}

	cfg := DefaultConfig()
	cfg.Frame = FrameNormalized
	got := NewProcessor(cfg, nil).Process(teams, raw)
	if !got[1].AttacksRight || !got[1].IsProgressive {
		t.Errorf("normalized frame: away attacksRight=%v progressive=%v, want both true",
			got[1].AttacksRight, got[1].IsProgressive)
	}

	// Both teams shooting at x=105 in one period reveals a normalized feed.
	auto := append(raw, makeEvent(away, model.EventShot, model.OutcomeMissedShot, 90, 30))
	auto[1].Period = model.PeriodSecondHalf
	got = newProcessor().Process(teams, auto)
	if !got[1].AttacksRight {
		t.Error("detected normalized frame should keep away attacking right in the second half")
	}
}
