// Package zones labels a rows x cols partition of the pitch by which side had
// the majority of the ball there.
package zones

import (
	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// Preset is a named grid resolution with its event subset.
type Preset struct {
	Name string `koanf:"name"`
	Rows int    `koanf:"rows"`
	Cols int    `koanf:"cols"`
	// SuccessfulOnly restricts the input to successful on-ball actions.
	SuccessfulOnly bool `koanf:"successful_only"`
}

// Config holds the majority threshold and the two standard resolutions.
type Config struct {
	Threshold float64 `koanf:"threshold"`
	Territory Preset  `koanf:"territory"`
	Tactical  Preset  `koanf:"tactical"`
}

func DefaultConfig() Config {
	return Config{
		Threshold: 0.6,
		Territory: Preset{Name: "territory", Rows: 6, Cols: 7},
		Tactical:  Preset{Name: "tactical", Rows: 4, Cols: 6, SuccessfulOnly: true},
	}
}

// Classify counts points per cell and labels each cell. Columns run along the
// pitch length, rows across it. A share of at least threshold wins the cell;
// empty and evenly split cells are contested.
func Classify(home, away []geometry.Point, rows, cols int, threshold float64) model.ZoneGrid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	cellW := geometry.PitchLength / float64(cols)
	cellH := geometry.PitchWidth / float64(rows)

	g := model.ZoneGrid{Rows: rows, Cols: cols, Cells: make([][]model.ZoneCell, rows)}
	for r := 0; r < rows; r++ {
		g.Cells[r] = make([]model.ZoneCell, cols)
		for c := 0; c < cols; c++ {
			g.Cells[r][c] = model.ZoneCell{
				Row: r, Col: c,
				MinX: float64(c) * cellW, MaxX: float64(c+1) * cellW,
				MinY: float64(r) * cellH, MaxY: float64(r+1) * cellH,
			}
		}
	}

	for _, p := range home {
		r, c := cellOf(p, rows, cols, cellW, cellH)
		g.Cells[r][c].HomeCount++
	}
	for _, p := range away {
		r, c := cellOf(p, rows, cols, cellW, cellH)
		g.Cells[r][c].AwayCount++
	}

	for r := range g.Cells {
		for c := range g.Cells[r] {
			cell := &g.Cells[r][c]
			cell.Label = label(cell, threshold)
		}
	}
	return g
}

func label(cell *model.ZoneCell, threshold float64) model.ZoneLabel {
	total := cell.HomeCount + cell.AwayCount
	if total == 0 {
		return model.ZoneContested
	}
	home := float64(cell.HomeCount) / float64(total)
	away := float64(cell.AwayCount) / float64(total)
	switch {
	case home >= threshold && home > away:
		return model.ZoneHome
	case away >= threshold && away > home:
		return model.ZoneAway
	}
	return model.ZoneContested
}

// cellOf clamps p onto the pitch; the far touchline and goal line belong to the last cell.
func cellOf(p geometry.Point, rows, cols int, cellW, cellH float64) (int, int) {
	x := geometry.Clamp(p.X, 0, geometry.PitchLength)
	y := geometry.Clamp(p.Y, 0, geometry.PitchWidth)
	c := int(x / cellW)
	r := int(y / cellH)
	if c >= cols {
		c = cols - 1
	}
	if r >= rows {
		r = rows - 1
	}
	return r, c
}
