package report

import (
	"io"
	"math"
	"sort"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/DataKnight1/PostMatchReport/internal/match"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// ErrUnknownFormat is returned for an export format other than json or yaml.
var ErrUnknownFormat = crerr.New("unknown export format")

// Export is the serialisable view of a match report.
type Export struct {
	MatchID        string            `json:"match_id" yaml:"match_id"`
	Hash           string            `json:"hash,omitempty" yaml:"hash,omitempty"`
	Home           ExportTeam        `json:"home" yaml:"home"`
	Away           ExportTeam        `json:"away" yaml:"away"`
	EventCount     int               `json:"event_count" yaml:"event_count"`
	EstimatedShots int               `json:"estimated_shots" yaml:"estimated_shots"`
	Momentum       []ExportMomentum  `json:"momentum" yaml:"momentum"`
	Goals          []ExportGoal      `json:"goals" yaml:"goals"`
	Territory      ExportGrid        `json:"territory" yaml:"territory"`
	Tactical       ExportGrid        `json:"tactical" yaml:"tactical"`
	Shots          []ExportShot      `json:"shots" yaml:"shots"`
	KeyMoments     []ExportKeyMoment `json:"key_moments" yaml:"key_moments"`
}

type ExportTeam struct {
	ID          int64              `json:"id" yaml:"id"`
	Name        string             `json:"name" yaml:"name"`
	Color       string             `json:"color,omitempty" yaml:"color,omitempty"`
	Score       int                `json:"score" yaml:"score"`
	XG          float64            `json:"xg" yaml:"xg"`
	Stats       map[string]float64 `json:"stats" yaml:"stats"`
	Positions   []ExportPosition   `json:"positions" yaml:"positions"`
	Connections []ExportConnection `json:"connections" yaml:"connections"`
	Players     []ExportPlayer     `json:"players" yaml:"players"`
}

type ExportPosition struct {
	PlayerID    int64   `json:"player_id" yaml:"player_id"`
	Name        string  `json:"name" yaml:"name"`
	ShirtNumber int     `json:"shirt_number" yaml:"shirt_number"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	Touches     int     `json:"touches" yaml:"touches"`
}

type ExportConnection struct {
	From   int64   `json:"from" yaml:"from"`
	To     int64   `json:"to" yaml:"to"`
	Passes int     `json:"passes" yaml:"passes"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	EndX   float64 `json:"end_x" yaml:"end_x"`
	EndY   float64 `json:"end_y" yaml:"end_y"`
}

type ExportPlayer struct {
	PlayerID          int64   `json:"player_id" yaml:"player_id"`
	Name              string  `json:"name" yaml:"name"`
	ShirtNumber       int     `json:"shirt_number" yaml:"shirt_number"`
	Events            int     `json:"events" yaml:"events"`
	Touches           int     `json:"touches" yaml:"touches"`
	Passes            int     `json:"passes" yaml:"passes"`
	PassesCompleted   int     `json:"passes_completed" yaml:"passes_completed"`
	ProgressivePasses int     `json:"progressive_passes" yaml:"progressive_passes"`
	KeyPasses         int     `json:"key_passes" yaml:"key_passes"`
	Assists           int     `json:"assists" yaml:"assists"`
	Shots             int     `json:"shots" yaml:"shots"`
	Goals             int     `json:"goals" yaml:"goals"`
	XG                float64 `json:"xg" yaml:"xg"`
	Tackles           int     `json:"tackles" yaml:"tackles"`
	Interceptions     int     `json:"interceptions" yaml:"interceptions"`
	Clearances        int     `json:"clearances" yaml:"clearances"`
	Dribbles          int     `json:"dribbles" yaml:"dribbles"`
}

type ExportMomentum struct {
	Minute int     `json:"minute" yaml:"minute"`
	Raw    float64 `json:"raw" yaml:"raw"`
	Net    float64 `json:"net" yaml:"net"`
}

type ExportGoal struct {
	Minute   float64 `json:"minute" yaml:"minute"`
	TeamID   int64   `json:"team_id" yaml:"team_id"`
	PlayerID int64   `json:"player_id,omitempty" yaml:"player_id,omitempty"`
	OwnGoal  bool    `json:"own_goal,omitempty" yaml:"own_goal,omitempty"`
}

// ExportGrid lists labels row by row, row 0 at y=0.
type ExportGrid struct {
	Rows   int        `json:"rows" yaml:"rows"`
	Cols   int        `json:"cols" yaml:"cols"`
	Labels [][]string `json:"labels" yaml:"labels"`
	Home   [][]int    `json:"home_counts" yaml:"home_counts"`
	Away   [][]int    `json:"away_counts" yaml:"away_counts"`
}

type ExportShot struct {
	Minute      float64 `json:"minute" yaml:"minute"`
	TeamID      int64   `json:"team_id" yaml:"team_id"`
	PlayerID    int64   `json:"player_id,omitempty" yaml:"player_id,omitempty"`
	Outcome     string  `json:"outcome" yaml:"outcome"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	HasLocation bool    `json:"has_location" yaml:"has_location"`
	XG          float64 `json:"xg" yaml:"xg"`
	Estimated   bool    `json:"xg_estimated" yaml:"xg_estimated"`
}

type ExportKeyMoment struct {
	Minute      float64 `json:"minute" yaml:"minute"`
	Period      string  `json:"period" yaml:"period"`
	TeamID      int64   `json:"team_id" yaml:"team_id"`
	PlayerID    int64   `json:"player_id,omitempty" yaml:"player_id,omitempty"`
	Description string  `json:"description" yaml:"description"`
}

// NewExport flattens rep. Floats are rounded to four decimals.
func NewExport(rep *match.Report) *Export {
	s := rep.Summary
	e := &Export{
		MatchID:        rep.MatchID,
		Hash:           rep.Hash,
		Home:           exportTeam(s.Home, s.HomeScore, s.HomeXG, s.HomeStats, rep.HomeNetwork, rep.HomePlayers),
		Away:           exportTeam(s.Away, s.AwayScore, s.AwayXG, s.AwayStats, rep.AwayNetwork, rep.AwayPlayers),
		EventCount:     s.EventCount,
		EstimatedShots: rep.EstimatedShots,
		Momentum:       make([]ExportMomentum, 0, len(rep.Momentum)),
		Goals:          make([]ExportGoal, 0, len(rep.Goals)),
		Territory:      exportGrid(rep.Territory),
		Tactical:       exportGrid(rep.Tactical),
		Shots:          make([]ExportShot, 0, len(rep.Shots)),
		KeyMoments:     make([]ExportKeyMoment, 0, len(rep.KeyMoments)),
	}
	for _, m := range rep.Momentum {
		e.Momentum = append(e.Momentum, ExportMomentum{Minute: m.MinuteBin, Raw: round4(m.RawNet), Net: round4(m.NetValue)})
	}
	for _, g := range rep.Goals {
		e.Goals = append(e.Goals, ExportGoal{Minute: round4(g.Minute), TeamID: g.TeamID, PlayerID: g.PlayerID, OwnGoal: g.OwnGoal})
	}
	for i := range rep.Shots {
		sh := &rep.Shots[i]
		e.Shots = append(e.Shots, ExportShot{
			Minute:      round4(sh.CumulativeMinute),
			TeamID:      sh.TeamID,
			PlayerID:    sh.PlayerID,
			Outcome:     string(sh.Outcome),
			X:           round4(sh.X),
			Y:           round4(sh.Y),
			HasLocation: sh.HasLocation,
			XG:          round4(sh.XG),
			Estimated:   sh.XGEstimated,
		})
	}
	for i := range rep.KeyMoments {
		ev := &rep.KeyMoments[i]
		e.KeyMoments = append(e.KeyMoments, ExportKeyMoment{
			Minute:      round4(ev.CumulativeMinute),
			Period:      ev.Period.String(),
			TeamID:      ev.TeamID,
			PlayerID:    ev.PlayerID,
			Description: describeMoment(ev),
		})
	}
	return e
}

func exportTeam(t model.TeamInfo, score int, xg float64, stats model.TeamStatRecord, n match.Network, players []model.PlayerStats) ExportTeam {
	et := ExportTeam{
		ID:          t.ID,
		Name:        t.Name,
		Color:       t.Color,
		Score:       score,
		XG:          round4(xg),
		Stats:       make(map[string]float64, len(stats)),
		Positions:   make([]ExportPosition, 0, len(n.Positions)),
		Connections: make([]ExportConnection, 0, len(n.Connections)),
		Players:     make([]ExportPlayer, 0, len(players)),
	}
	for k, v := range stats {
		et.Stats[string(k)] = round4(v)
	}
	for _, p := range n.Positions {
		et.Positions = append(et.Positions, ExportPosition{
			PlayerID: p.PlayerID, Name: p.Name, ShirtNumber: p.ShirtNumber,
			X: round4(p.X), Y: round4(p.Y), Touches: p.TouchCount,
		})
	}
	for _, c := range n.Connections {
		et.Connections = append(et.Connections, ExportConnection{
			From: c.FromID, To: c.ToID, Passes: c.PassCount,
			X: round4(c.X), Y: round4(c.Y), EndX: round4(c.EndX), EndY: round4(c.EndY),
		})
	}
	sorted := append([]model.PlayerStats(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ShirtNumber < sorted[j].ShirtNumber })
	for _, p := range sorted {
		et.Players = append(et.Players, ExportPlayer{
			PlayerID: p.PlayerID, Name: p.Name, ShirtNumber: p.ShirtNumber,
			Events: p.Events, Touches: p.Touches, Passes: p.Passes, PassesCompleted: p.PassesCompleted,
			ProgressivePasses: p.ProgressivePasses, KeyPasses: p.KeyPasses, Assists: p.Assists,
			Shots: p.Shots, Goals: p.Goals, XG: round4(p.XG),
			Tackles: p.Tackles, Interceptions: p.Interceptions, Clearances: p.Clearances, Dribbles: p.Dribbles,
		})
	}
	return et
}

func exportGrid(g model.ZoneGrid) ExportGrid {
	eg := ExportGrid{
		Rows:   g.Rows,
		Cols:   g.Cols,
		Labels: make([][]string, len(g.Cells)),
		Home:   make([][]int, len(g.Cells)),
		Away:   make([][]int, len(g.Cells)),
	}
	for r, row := range g.Cells {
		eg.Labels[r] = make([]string, len(row))
		eg.Home[r] = make([]int, len(row))
		eg.Away[r] = make([]int, len(row))
		for c, cell := range row {
			eg.Labels[r][c] = string(cell.Label)
			eg.Home[r][c] = cell.HomeCount
			eg.Away[r][c] = cell.AwayCount
		}
	}
	return eg
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// Encode writes rep to w as "json" or "yaml".
func Encode(w io.Writer, rep *match.Report, format string) error {
	switch format {
	case "json":
		return EncodeJSON(w, rep)
	case "yaml", "yml":
		return EncodeYAML(w, rep)
	}
	return crerr.Wrapf(ErrUnknownFormat, "%q", format)
}

// EncodeJSON writes rep as indented JSON with sorted map keys.
func EncodeJSON(w io.Writer, rep *match.Report) error {
	data, err := sonic.ConfigStd.MarshalIndent(NewExport(rep), "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode json")
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return crerr.Wrap(err, "write json")
	}
	return nil
}

// EncodeYAML writes rep as YAML.
func EncodeYAML(w io.Writer, rep *match.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewExport(rep)); err != nil {
		return crerr.Wrap(err, "encode yaml")
	}
	return crerr.Wrap(enc.Close(), "close yaml encoder")
}
