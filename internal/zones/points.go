package zones

import (
	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// Points projects a team's located events into the home frame, where the home
// side attacks towards x=105 and the away side towards x=0.
func Points(evs []model.AnnotatedEvent, teamID int64, isHome, successfulOnly bool) []geometry.Point {
	out := make([]geometry.Point, 0)
	for i := range evs {
		ev := &evs[i]
		if ev.TeamID != teamID || !ev.HasLocation || !ev.Type.IsTouch() {
			continue
		}
		if successfulOnly && !ev.IsSuccessful {
			continue
		}
		x, y := ev.AX, ev.AY
		if !isHome {
			x, y = geometry.Mirror(x, y)
		}
		out = append(out, geometry.Point{X: x, Y: y})
	}
	return out
}

// ClassifyEvents builds the grid for preset from a match's annotated events.
func ClassifyEvents(evs []model.AnnotatedEvent, homeID, awayID int64, preset Preset, threshold float64) model.ZoneGrid {
	home := Points(evs, homeID, true, preset.SuccessfulOnly)
	away := Points(evs, awayID, false, preset.SuccessfulOnly)
	return Classify(home, away, preset.Rows, preset.Cols, threshold)
}
