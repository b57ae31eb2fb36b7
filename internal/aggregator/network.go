package aggregator

import (
	"sort"

	"github.com/DataKnight1/PostMatchReport/internal/geometry"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

type edgeKey struct{ from, to int64 }

type edgeAcc struct {
	count            int
	sumX, sumY       float64
	located          int
	sumEndX, sumEndY float64
	ended            int
}

func (a *edgeAcc) add(ev *model.AnnotatedEvent) {
	a.count++
	if ev.HasLocation {
		a.sumX += ev.AX
		a.sumY += ev.AY
		a.located++
		if ev.HasEnd {
			a.sumEndX += ev.AEndX
			a.sumEndY += ev.AEndY
			a.ended++
		}
	}
}

func (a *edgeAcc) connection(k edgeKey) model.PassConnection {
	c := model.PassConnection{FromID: k.from, ToID: k.to, PassCount: a.count}
	if a.located > 0 {
		c.X = a.sumX / float64(a.located)
		c.Y = a.sumY / float64(a.located)
	}
	if a.ended > 0 {
		c.EndX = a.sumEndX / float64(a.ended)
		c.EndY = a.sumEndY / float64(a.ended)
	}
	return c
}

// Connections builds the directed passer->receiver graph of completed passes.
// Passes with no receiver in the window still count in team totals but form no edge.
func Connections(teamEvents []model.AnnotatedEvent, roster model.Roster, cfg NetworkConfig) []model.PassConnection {
	evs := chronological(teamEvents)
	edges := make(map[edgeKey]*edgeAcc)

	for i := range evs {
		pass := &evs[i]
		if pass.Type != model.EventPass || !pass.IsSuccessful || pass.PlayerID == 0 {
			continue
		}
		receiver, ok := findReceiver(evs, i, cfg)
		if !ok {
			continue
		}
		if !included(roster, pass.PlayerID, cfg.StartersOnly) || !included(roster, receiver, cfg.StartersOnly) {
			continue
		}
		k := edgeKey{pass.PlayerID, receiver}
		a := edges[k]
		if a == nil {
			a = &edgeAcc{}
			edges[k] = a
		}
		a.add(pass)
	}

	out := make([]model.PassConnection, 0, len(edges))
	for k, a := range edges {
		if a.count < cfg.MinPasses {
			continue
		}
		out = append(out, a.connection(k))
	}
	sortConnections(out)
	return out
}

// findReceiver resolves the receiver of evs[i] as the first later touch by a
// different teammate inside the time window. A touch too far from the pass end
// point leaves the pass unresolved.
func findReceiver(evs []model.AnnotatedEvent, i int, cfg NetworkConfig) (int64, bool) {
	pass := &evs[i]
	start := pass.ClockSeconds()
	for j := i + 1; j < len(evs); j++ {
		next := &evs[j]
		if next.ClockSeconds()-start > cfg.ReceiverWindow {
			return 0, false
		}
		if next.TeamID != pass.TeamID || next.PlayerID == 0 || next.PlayerID == pass.PlayerID {
			continue
		}
		if !next.Type.IsTouch() {
			continue
		}
		if pass.HasEnd && next.HasLocation {
			if geometry.Distance(pass.AEndX, pass.AEndY, next.AX, next.AY) > cfg.ReceiverRadius {
				return 0, false
			}
		}
		return next.PlayerID, true
	}
	return 0, false
}

// Undirected merges A->B and B->A into one edge keyed by the lower player id.
// Coordinates are pass-count weighted means of both directions.
func Undirected(conns []model.PassConnection) []model.PassConnection {
	type acc struct {
		count      int
		sumX, sumY float64
		sumEX      float64
		sumEY      float64
	}
	merged := make(map[edgeKey]*acc)
	for _, c := range conns {
		k := edgeKey{c.FromID, c.ToID}
		if k.to < k.from {
			k = edgeKey{c.ToID, c.FromID}
		}
		a := merged[k]
		if a == nil {
			a = &acc{}
			merged[k] = a
		}
		w := float64(c.PassCount)
		a.count += c.PassCount
		a.sumX += c.X * w
		a.sumY += c.Y * w
		a.sumEX += c.EndX * w
		a.sumEY += c.EndY * w
	}

	out := make([]model.PassConnection, 0, len(merged))
	for k, a := range merged {
		n := float64(a.count)
		out = append(out, model.PassConnection{
			FromID:    k.from,
			ToID:      k.to,
			X:         ratio(a.sumX, n),
			Y:         ratio(a.sumY, n),
			EndX:      ratio(a.sumEX, n),
			EndY:      ratio(a.sumEY, n),
			PassCount: a.count,
		})
	}
	sortConnections(out)
	return out
}

func sortConnections(conns []model.PassConnection) {
	sort.Slice(conns, func(i, j int) bool {
		if conns[i].PassCount != conns[j].PassCount {
			return conns[i].PassCount > conns[j].PassCount
		}
		if conns[i].FromID != conns[j].FromID {
			return conns[i].FromID < conns[j].FromID
		}
		return conns[i].ToID < conns[j].ToID
	})
}
