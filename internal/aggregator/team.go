package aggregator

import (
	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

const (
	shortPassMax = 15.0
	longPassMin  = 25.0
)

// AggregateTeam computes the full statistic record for one team's events.
// Every taxonomy name is present; possession_pct needs the opponent and is left
// at zero (see AggregatePair).
func AggregateTeam(teamEvents []model.AnnotatedEvent) model.TeamStatRecord {
	r := make(model.TeamStatRecord, len(model.AllStats))
	for _, name := range model.AllStats {
		r[name] = 0
	}

	for i := range teamEvents {
		ev := &teamEvents[i]

		if ev.Type.IsTouch() {
			r[model.StatTouches]++
			if ev.HasLocation && geometry.InPenaltyArea(ev.AX, ev.AY) {
				r[model.StatTouchesInBox]++
			}
		}
		if ev.IsKeyPass {
			r[model.StatKeyPasses]++
		}
		if ev.IsAssist {
			r[model.StatAssists]++
		}
		if ev.Qualifiers.Has(model.QualBadTouch) {
			r[model.StatBadTouches]++
		}

		switch ev.Type {
		case model.EventShot:
			addShot(r, ev)
		case model.EventPass:
			addPass(r, ev)
		case model.EventDribble:
			r[model.StatDribbles]++
			if ev.IsSuccessful {
				r[model.StatDribblesSuccessful]++
			}
		case model.EventDispossessed:
			r[model.StatDispossessed]++
		case model.EventTackle:
			r[model.StatTackles]++
		case model.EventInterception:
			r[model.StatInterceptions]++
		case model.EventClearance:
			r[model.StatClearances]++
		case model.EventBlock:
			r[model.StatBlocks]++
		case model.EventAerial:
			r[model.StatAerialDuels]++
			if ev.IsSuccessful {
				r[model.StatAerialDuelsWon]++
			}
		case model.EventSave:
			r[model.StatSaves]++
		case model.EventError:
			if ev.Qualifiers.Has(model.QualLeadToShot) {
				r[model.StatErrorsLeadingToShot]++
			}
			if ev.Qualifiers.Has(model.QualLeadToGoal) {
				r[model.StatErrorsLeadingToGoal]++
			}
		case model.EventFoul:
			// Feeds log a foul for both sides; the successful one is the foul won.
			if ev.Outcome != model.OutcomeSuccessful {
				r[model.StatFouls]++
			}
		case model.EventCard:
			switch {
			case ev.Qualifiers.HasAny(model.QualRedCard, model.QualSecondYellow):
				r[model.StatRedCards]++
			case ev.Qualifiers.Has(model.QualYellowCard):
				r[model.StatYellowCards]++
			}
		case model.EventOffside:
			r[model.StatOffsides]++
		}
	}

	r[model.StatPassAccuracy] = ratio(r[model.StatPassesCompleted], r[model.StatPasses])
	r[model.StatXGPerShot] = ratio(r[model.StatXG], r[model.StatShots])
	return r
}

func addPass(r model.TeamStatRecord, pass *model.AnnotatedEvent) {
	r[model.StatPasses]++
	if pass.IsSuccessful {
		r[model.StatPassesCompleted]++
		if pass.HasEnd && geometry.InFinalThird(pass.AEndX) {
			r[model.StatFinalThirdPasses]++
		}
	}
	if pass.IsProgressive {
		r[model.StatProgressivePasses]++
	}
	if pass.Qualifiers.Has(model.QualCross) {
		r[model.StatCrosses]++
	}

	switch {
	case pass.HasLocation && pass.HasEnd:
		if pass.Distance < shortPassMax {
			r[model.StatShortPasses]++
		} else if pass.Distance >= longPassMin {
			r[model.StatLongPasses]++
		}
	case pass.Qualifiers.Has(model.QualLongBall):
		r[model.StatLongPasses]++
	}
}

// AggregatePair aggregates both teams and fills the comparative possession share
// from their touch counts.
func AggregatePair(home, away []model.AnnotatedEvent) (model.TeamStatRecord, model.TeamStatRecord) {
	h := AggregateTeam(home)
	a := AggregateTeam(away)
	total := h[model.StatTouches] + a[model.StatTouches]
	h[model.StatPossessionPct] = ratio(h[model.StatTouches], total) * 100
	a[model.StatPossessionPct] = ratio(a[model.StatTouches], total) * 100
	return h, a
}

// OwnGoals counts own goals conceded by the team that produced teamEvents.
func OwnGoals(teamEvents []model.AnnotatedEvent) int {
	n := 0
	for i := range teamEvents {
		if teamEvents[i].IsOwnGoal {
			n++
		}
	}
	return n
}
