package match

import (
	"context"

	"github.com/sourcegraph/conc"

	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// Report bundles every derivation of one match.
type Report struct {
	MatchID     string
	Hash        string
	Summary     model.Summary
	Roster      model.Roster
	HomeNetwork Network
	AwayNetwork Network
	HomePlayers []model.PlayerStats
	AwayPlayers []model.PlayerStats
	Momentum    []model.MomentumSample
	Goals       []model.GoalMarker
	Territory   model.ZoneGrid
	Tactical    model.ZoneGrid
	KeyMoments  []model.AnnotatedEvent
	Shots       []model.AnnotatedEvent

	// EstimatedShots counts shots valued by the heuristic xG model.
	EstimatedShots int
}

// Report runs the independent derivations concurrently. They only read the
// annotated table, so no locking is needed.
func (c *Coordinator) Report(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := &Report{MatchID: c.id, Hash: c.hash, Roster: c.Roster()}
	var (
		wg                       conc.WaitGroup
		homeNetErr, awayNetErr   error
		homeStatErr, awayStatErr error
	)
	wg.Go(func() { r.Summary = c.Summary() })
	wg.Go(func() { r.HomeNetwork, homeNetErr = c.PassNetwork(c.home.ID) })
	wg.Go(func() { r.AwayNetwork, awayNetErr = c.PassNetwork(c.away.ID) })
	wg.Go(func() { r.HomePlayers, homeStatErr = c.PlayerStats(c.home.ID) })
	wg.Go(func() { r.AwayPlayers, awayStatErr = c.PlayerStats(c.away.ID) })
	wg.Go(func() { r.Momentum = c.Momentum() })
	wg.Go(func() { r.Goals = c.Goals() })
	wg.Go(func() { r.Territory = c.Territory() })
	wg.Go(func() { r.Tactical = c.TacticalControl() })
	wg.Go(func() { r.KeyMoments = c.KeyMoments() })
	wg.Go(func() {
		r.Shots = c.Shots(0)
		r.EstimatedShots = c.EstimatedShots()
	})
	wg.Wait()

	for _, err := range []error{homeNetErr, awayNetErr, homeStatErr, awayStatErr} {
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.log.DebugContext(ctx, "report built",
		"match_id", c.id, "events", len(c.table), "momentum_bins", len(r.Momentum))
	return r, nil
}
