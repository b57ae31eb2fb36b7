package events

import (
	"testing"

	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

func TestQueries(t *testing.T) {
	failed := makePass(home, 30, 30, 40, 30)
	failed.Outcome = model.OutcomeUnsuccessful
	red := makeEvent(away, model.EventCard, model.OutcomeUnknown, 50, 30)
	red.Qualifiers = model.Qualifiers{model.QualRedCard}
	red.Minute = 70
	goal := makeEvent(home, model.EventShot, model.OutcomeGoal, 100, 34)
	goal.Minute = 20

	raw := []model.RawEvent{
		makePass(home, 30, 30, 40, 30),
		failed,
		red,
		goal,
		makeEvent(away, model.EventTackle, model.OutcomeSuccessful, 80, 34),
		makeEvent(away, model.EventInterception, model.OutcomeSuccessful, 20, 34),
	}
	evs := newProcessor().Process(teams, raw)

	if n := len(Passes(evs, home, false)); n != 2 {
		t.Errorf("passes = %d, want 2", n)
	}
	if n := len(Passes(evs, home, true)); n != 1 {
		t.Errorf("completed passes = %d, want 1", n)
	}
	if n := len(Shots(evs, 0)); n != 1 {
		t.Errorf("shots = %d, want 1", n)
	}
	if n := len(DefensiveActions(evs, away)); n != 2 {
		t.Errorf("defensive actions = %d, want 2", n)
	}
	if n := len(Carries(evs, home)); n != 0 {
		t.Errorf("carries = %d, want 0", n)
	}

	km := KeyMoments(evs)
	if len(km) != 2 || km[0].Index != 3 || km[1].Index != 2 {
		t.Fatalf("key moments = %+v, want goal then red card", km)
	}

	box := Filter(evs, InZone(geometry.ZonePenaltyBox))
	if len(box) != 1 || box[0].Type != model.EventShot {
		t.Errorf("penalty box events = %d, want the goal only", len(box))
	}

	out := Shots(evs, home)
	out[0].XG = 99
	if evs[3].XG == 99 {
		t.Error("query result aliases the event table")
	}
}
