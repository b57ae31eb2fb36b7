// Package report renders match analyses as terminal tables and exports them
// as JSON or YAML.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/DataKnight1/PostMatchReport/internal/aggregator"
	"github.com/DataKnight1/PostMatchReport/internal/match"
	"github.com/DataKnight1/PostMatchReport/internal/model"
	"github.com/DataKnight1/PostMatchReport/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintMatchHeader prints a one-line summary header for the match.
func PrintMatchHeader(w io.Writer, s model.Summary, hash string) {
	if len(hash) > 12 {
		hash = hash[:12]
	}
	fmt.Fprintf(w, "\nMatch: %s  |  %s %d - %d %s  |  xG %.2f - %.2f  |  Events: %d  |  Hash: %s\n\n",
		s.MatchID, s.Home.Name, s.HomeScore, s.AwayScore, s.Away.Name,
		s.HomeXG, s.AwayXG, s.EventCount, hash)
}

// FormatStat renders a statistic value with the unit its name implies.
func FormatStat(name model.StatName, v float64) string {
	switch name {
	case model.StatPassAccuracy:
		return fmt.Sprintf("%.0f%%", v*100)
	case model.StatPossessionPct:
		return fmt.Sprintf("%.1f%%", v)
	case model.StatXG, model.StatXGPerShot:
		return fmt.Sprintf("%.2f", v)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// PrintSummary prints the home-versus-away stat table, one block per section.
func PrintSummary(w io.Writer, s model.Summary) {
	table := newTable(w)
	table.Header("SECTION", "STAT", s.Home.Name, s.Away.Name)

	for _, sec := range model.StatSections {
		for i, name := range sec.Stats {
			label := ""
			if i == 0 {
				label = sec.Name
			}
			table.Append(
				label,
				string(name),
				FormatStat(name, s.HomeStats.Get(name)),
				FormatStat(name, s.AwayStats.Get(name)),
			)
		}
	}
	table.Render()
}

func playerName(roster model.Roster, id int64) string {
	if id == 0 {
		return "-"
	}
	if e, ok := roster[id]; ok && e.Name != "" {
		return e.Name
	}
	return strconv.FormatInt(id, 10)
}

// PrintNetwork prints average positions and the passing edges of one team.
func PrintNetwork(w io.Writer, n match.Network, roster model.Roster) {
	fmt.Fprintf(w, "Average positions (%d players)\n", len(n.Positions))
	table := newTable(w)
	table.Header("#", "PLAYER", "X", "Y", "TOUCHES")
	for _, p := range n.Positions {
		name := p.Name
		if name == "" {
			name = playerName(roster, p.PlayerID)
		}
		table.Append(
			strconv.Itoa(p.ShirtNumber),
			name,
			fmt.Sprintf("%.1f", p.X),
			fmt.Sprintf("%.1f", p.Y),
			strconv.Itoa(p.TouchCount),
		)
	}
	table.Render()

	fmt.Fprintf(w, "\nPass connections (%d edges)\n", len(n.Connections))
	table = newTable(w)
	table.Header("FROM", "TO", "PASSES", "START", "END")
	for _, c := range n.Connections {
		table.Append(
			playerName(roster, c.FromID),
			playerName(roster, c.ToID),
			strconv.Itoa(c.PassCount),
			fmt.Sprintf("(%.1f, %.1f)", c.X, c.Y),
			fmt.Sprintf("(%.1f, %.1f)", c.EndX, c.EndY),
		)
	}
	table.Render()
}

// MomentumBar draws v as a bar centred on "|"; home pushes right, away left.
func MomentumBar(v, scale float64, width int) string {
	if scale <= 0 || width <= 0 {
		return strings.Repeat(" ", width) + "|" + strings.Repeat(" ", width)
	}
	n := int(math.Round(math.Min(math.Abs(v)/scale, 1) * float64(width)))
	left, right := strings.Repeat(" ", width), strings.Repeat(" ", width)
	if v > 0 {
		right = strings.Repeat("#", n) + strings.Repeat(" ", width-n)
	} else if v < 0 {
		left = strings.Repeat(" ", width-n) + strings.Repeat("#", n)
	}
	return left + "|" + right
}

// PrintMomentum prints the smoothed series every step minutes with goal markers.
func PrintMomentum(w io.Writer, samples []model.MomentumSample, goals []model.GoalMarker, s model.Summary, step int) {
	if step <= 0 {
		step = 1
	}
	scale := 0.0
	for _, m := range samples {
		scale = math.Max(scale, math.Abs(m.NetValue))
	}

	goalsAt := make(map[int][]string)
	for _, g := range goals {
		team := s.Home.Name
		if g.TeamID == s.Away.ID {
			team = s.Away.Name
		}
		if g.OwnGoal {
			team += " (og)"
		}
		bin := int(g.Minute) / step * step
		goalsAt[bin] = append(goalsAt[bin], team)
	}

	fmt.Fprintf(w, "Momentum: %s <- | -> %s\n", s.Away.Name, s.Home.Name)
	table := newTable(w)
	table.Header("MIN", "NET", "FLOW", "GOAL")
	for _, m := range samples {
		if m.MinuteBin%step != 0 {
			continue
		}
		table.Append(
			strconv.Itoa(m.MinuteBin),
			fmt.Sprintf("%+.2f", m.NetValue),
			MomentumBar(m.NetValue, scale, 12),
			strings.Join(goalsAt[m.MinuteBin], ", "),
		)
	}
	table.Render()
}

var zoneGlyph = map[model.ZoneLabel]string{
	model.ZoneHome:      "H",
	model.ZoneAway:      "A",
	model.ZoneContested: ".",
}

// PrintZones prints the control grid with the home side attacking to the right.
func PrintZones(w io.Writer, g model.ZoneGrid, s model.Summary) {
	fmt.Fprintf(w, "Zonal control %dx%d  H=%s (%d)  A=%s (%d)  .=contested (%d)\n",
		g.Rows, g.Cols, s.Home.Name, g.Count(model.ZoneHome), s.Away.Name, g.Count(model.ZoneAway),
		g.Count(model.ZoneContested))

	header := make([]any, 0, g.Cols+1)
	header = append(header, "ROW")
	for c := 0; c < g.Cols; c++ {
		header = append(header, strconv.Itoa(c))
	}
	table := newTable(w)
	table.Header(header...)
	// Highest y first so the grid reads like a pitch diagram.
	for r := g.Rows - 1; r >= 0; r-- {
		row := make([]any, 0, g.Cols+1)
		row = append(row, strconv.Itoa(r))
		for _, cell := range g.Cells[r] {
			row = append(row, fmt.Sprintf("%s %d:%d", zoneGlyph[cell.Label], cell.HomeCount, cell.AwayCount))
		}
		table.Append(row...)
	}
	table.Render()
}

// PrintShots prints every shot with its classification and value.
// Heuristic values are marked with "*".
func PrintShots(w io.Writer, shots []model.AnnotatedEvent, roster model.Roster, s model.Summary) {
	table := newTable(w)
	table.Header("MIN", "TEAM", "PLAYER", "OUTCOME", "ZONE", "BODY", "SITUATION", "DIST", "XG")
	for i := range shots {
		sh := &shots[i]
		team := s.Home.Name
		if sh.TeamID == s.Away.ID {
			team = s.Away.Name
		}
		dist := "-"
		if sh.HasLocation {
			dist = fmt.Sprintf("%.1fm", sh.DistanceToGoal)
		}
		xg := fmt.Sprintf("%.2f", sh.XG)
		if sh.XGEstimated {
			xg += "*"
		}
		table.Append(
			fmt.Sprintf("%.0f'", math.Floor(sh.CumulativeMinute)),
			team,
			playerName(roster, sh.PlayerID),
			string(sh.Outcome),
			string(aggregator.ClassifyZone(sh)),
			string(aggregator.ClassifyBodyPart(sh)),
			string(aggregator.ClassifySituation(sh)),
			dist,
			xg,
		)
	}
	table.Render()
}

// PrintKeyMoments prints goals, cards, penalties and big chances in match order.
func PrintKeyMoments(w io.Writer, evs []model.AnnotatedEvent, roster model.Roster, s model.Summary) {
	table := newTable(w)
	table.Header("MIN", "PERIOD", "TEAM", "PLAYER", "EVENT")
	for i := range evs {
		ev := &evs[i]
		team := s.Home.Name
		if ev.TeamID == s.Away.ID {
			team = s.Away.Name
		}
		table.Append(
			fmt.Sprintf("%d:%02d", ev.Minute, ev.Second),
			ev.Period.String(),
			team,
			playerName(roster, ev.PlayerID),
			describeMoment(ev),
		)
	}
	table.Render()
}

func describeMoment(ev *model.AnnotatedEvent) string {
	switch {
	case ev.IsOwnGoal:
		return "own goal"
	case ev.IsGoal:
		return "goal"
	case ev.Qualifiers.HasAny(model.QualRedCard, model.QualSecondYellow):
		return "red card"
	case ev.Type == model.EventShot && ev.Qualifiers.Has(model.QualPenalty):
		return "penalty " + strings.ToLower(string(ev.Outcome))
	case ev.Type == model.EventShot:
		return "big chance " + strings.ToLower(string(ev.Outcome))
	default:
		return string(ev.Type)
	}
}

func sampleFlag(n int) string {
	switch {
	case n >= 30:
		return "OK"
	case n >= 10:
		return "LOW"
	default:
		return "VERY_LOW"
	}
}

// wilsonCI computes the 95% Wilson score confidence interval for a proportion.
// Returns (lo, hi) as fractions in [0, 1].
func wilsonCI(hits, n int) (lo, hi float64) {
	if n == 0 {
		return 0, 1
	}
	z := 1.96
	p := float64(hits) / float64(n)
	nf := float64(n)
	denom := 1 + z*z/nf
	center := (p + z*z/(2*nf)) / denom
	half := z * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf)) / denom
	return math.Max(0, center-half), math.Min(1, center+half)
}

// PrintPlayers prints the player stat table. If focus is non-zero, that
// player's row is marked with ">".
func PrintPlayers(w io.Writer, stats []model.PlayerStats, focus int64) {
	table := newTable(w)
	table.Header(" ", "#", "PLAYER", "EV", "TOUCH", "PASS", "ACC%", "PROG", "KP", "A",
		"SH", "G", "XG", "TKL", "INT", "CLR", "DRB")

	for i := range stats {
		s := &stats[i]
		marker := " "
		if focus != 0 && s.PlayerID == focus {
			marker = ">"
		}
		acc := "—"
		if s.Passes > 0 {
			acc = fmt.Sprintf("%.0f%%", s.PassAccuracy())
		}
		table.Append(
			marker,
			strconv.Itoa(s.ShirtNumber),
			s.Name,
			strconv.Itoa(s.Events),
			strconv.Itoa(s.Touches),
			strconv.Itoa(s.Passes),
			acc,
			strconv.Itoa(s.ProgressivePasses),
			strconv.Itoa(s.KeyPasses),
			strconv.Itoa(s.Assists),
			strconv.Itoa(s.Shots),
			strconv.Itoa(s.Goals),
			fmt.Sprintf("%.2f", s.XG),
			strconv.Itoa(s.Tackles),
			strconv.Itoa(s.Interceptions),
			strconv.Itoa(s.Clearances),
			strconv.Itoa(s.Dribbles),
		)
	}
	table.Render()
}

// PrintMatchList prints stored analyses, one per row.
func PrintMatchList(w io.Writer, recs []model.MatchRecord) {
	table := newTable(w)
	table.Header("HASH", "MATCH", "HOME", "SCORE", "AWAY", "EVENTS", "ANALYZED")
	for _, r := range recs {
		hash := r.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		table.Append(
			hash,
			r.MatchID,
			r.HomeName,
			fmt.Sprintf("%d-%d", r.HomeScore, r.AwayScore),
			r.AwayName,
			strconv.Itoa(r.EventCount),
			r.AnalyzedAt,
		)
	}
	table.Render()
}

// PrintTeamHistory prints a team's stored matches with a running points total.
func PrintTeamHistory(w io.Writer, lines []storage.TeamMatchLine) {
	table := newTable(w)
	table.Header("MATCH", "VENUE", "OPPONENT", "SCORE", "XG", "XGA", "XG_DIFF", "PTS", "TOTAL")
	total := 0
	for _, l := range lines {
		total += l.Points()
		venue := "A"
		if l.IsHome {
			venue = "H"
		}
		table.Append(
			l.MatchID,
			venue,
			l.OpponentName,
			fmt.Sprintf("%d-%d", l.GoalsFor, l.GoalsAgainst),
			fmt.Sprintf("%.2f", l.XGFor),
			fmt.Sprintf("%.2f", l.XGAgainst),
			fmt.Sprintf("%+.2f", l.XGFor-l.XGAgainst),
			strconv.Itoa(l.Points()),
			strconv.Itoa(total),
		)
	}
	table.Render()
}

// PrintPlayerTotals prints per-player sums across stored matches. Pass
// accuracy carries a 95% Wilson interval and a sample-size flag.
func PrintPlayerTotals(w io.Writer, totals []storage.PlayerTotals) {
	table := newTable(w)
	table.Header("PLAYER", "MATCHES", "PASS", "ACC%", "ACC_95CI", "SAMPLE", "PROG", "KP", "A",
		"SH", "G", "XG", "G-XG", "TKL", "INT")
	for _, p := range totals {
		lo, hi := wilsonCI(p.PassesCompleted, p.Passes)
		table.Append(
			p.Name,
			strconv.Itoa(p.Matches),
			strconv.Itoa(p.Passes),
			fmt.Sprintf("%.0f%%", p.PassAccuracy()),
			fmt.Sprintf("%.0f-%.0f%%", lo*100, hi*100),
			sampleFlag(p.Passes),
			strconv.Itoa(p.ProgressivePasses),
			strconv.Itoa(p.KeyPasses),
			strconv.Itoa(p.Assists),
			strconv.Itoa(p.Shots),
			strconv.Itoa(p.Goals),
			fmt.Sprintf("%.2f", p.XG),
			fmt.Sprintf("%+.2f", float64(p.Goals)-p.XG),
			strconv.Itoa(p.Tackles),
			strconv.Itoa(p.Interceptions),
		)
	}
	table.Render()
}

// PrintRaw prints the result of an arbitrary query.
func PrintRaw(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
}

// PrintBatch prints one row per batch input with its outcome.
func PrintBatch(w io.Writer, files []string, results []match.BatchResult) {
	table := newTable(w)
	table.Header("FILE", "MATCH", "SCORE", "XG", "EVENTS", "STATUS")
	for i, r := range results {
		file := ""
		if i < len(files) {
			file = files[i]
		}
		if r.Err != nil {
			table.Append(file, r.MatchID, "-", "-", "-", "error: "+r.Err.Error())
			continue
		}
		s := r.Report.Summary
		table.Append(
			file,
			r.MatchID,
			fmt.Sprintf("%s %d-%d %s", s.Home.Name, s.HomeScore, s.AwayScore, s.Away.Name),
			fmt.Sprintf("%.2f-%.2f", s.HomeXG, s.AwayXG),
			strconv.Itoa(s.EventCount),
			"ok",
		)
	}
	table.Render()
}
