package events

import (
	"sort"

	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// Predicate selects annotated events.
type Predicate func(ev *model.AnnotatedEvent) bool

// Filter returns a new slice holding the events that satisfy every predicate.
func Filter(evs []model.AnnotatedEvent, preds ...Predicate) []model.AnnotatedEvent {
	out := make([]model.AnnotatedEvent, 0)
	for i := range evs {
		if matchAll(&evs[i], preds) {
			out = append(out, evs[i])
		}
	}
	return out
}

func matchAll(ev *model.AnnotatedEvent, preds []Predicate) bool {
	for _, p := range preds {
		if !p(ev) {
			return false
		}
	}
	return true
}

// ByTeam keeps events of teamID. Zero keeps every team.
func ByTeam(teamID int64) Predicate {
	return func(ev *model.AnnotatedEvent) bool {
		return teamID == 0 || ev.TeamID == teamID
	}
}

func OfType(types ...model.EventType) Predicate {
	return func(ev *model.AnnotatedEvent) bool {
		for _, t := range types {
			if ev.Type == t {
				return true
			}
		}
		return false
	}
}

func Successful(ev *model.AnnotatedEvent) bool { return ev.IsSuccessful }

func Located(ev *model.AnnotatedEvent) bool { return ev.HasLocation }

// InZone keeps located events whose attacking-frame position lies in z.
func InZone(z geometry.Zone) Predicate {
	return func(ev *model.AnnotatedEvent) bool {
		return ev.HasLocation && z.Contains(ev.AX, ev.AY)
	}
}

func ByTeamAndType(evs []model.AnnotatedEvent, teamID int64, types ...model.EventType) []model.AnnotatedEvent {
	return Filter(evs, ByTeam(teamID), OfType(types...))
}

func Shots(evs []model.AnnotatedEvent, teamID int64) []model.AnnotatedEvent {
	return Filter(evs, ByTeam(teamID), OfType(model.EventShot))
}

func Passes(evs []model.AnnotatedEvent, teamID int64, successfulOnly bool) []model.AnnotatedEvent {
	preds := []Predicate{ByTeam(teamID), OfType(model.EventPass)}
	if successfulOnly {
		preds = append(preds, Successful)
	}
	return Filter(evs, preds...)
}

func DefensiveActions(evs []model.AnnotatedEvent, teamID int64) []model.AnnotatedEvent {
	return Filter(evs, ByTeam(teamID), func(ev *model.AnnotatedEvent) bool {
		return ev.Type.IsDefensive()
	})
}

func Carries(evs []model.AnnotatedEvent, teamID int64) []model.AnnotatedEvent {
	return Filter(evs, ByTeam(teamID), OfType(model.EventCarry))
}

// IsKeyMoment reports goals, own goals, sendings off, penalties and big chances.
func IsKeyMoment(ev *model.AnnotatedEvent) bool {
	if ev.IsGoal || ev.IsOwnGoal {
		return true
	}
	if ev.Qualifiers.HasAny(model.QualRedCard, model.QualSecondYellow) {
		return true
	}
	return ev.Type == model.EventShot && ev.Qualifiers.HasAny(model.QualPenalty, model.QualBigChance)
}

// KeyMoments returns the match's decisive events in clock order.
func KeyMoments(evs []model.AnnotatedEvent) []model.AnnotatedEvent {
	out := Filter(evs, IsKeyMoment)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CumulativeMinute < out[j].CumulativeMinute
	})
	return out
}
