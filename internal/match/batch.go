package match

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/DataKnight1/PostMatchReport/internal/logging"
	"github.com/DataKnight1/PostMatchReport/internal/metrics"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Workers int
	Metrics *metrics.Manager
	Logger  *logging.Logger
	// Options are applied to every Coordinator.
	Options []Option
}

// BatchResult is the outcome of one match in a batch.
type BatchResult struct {
	Index   int
	MatchID string
	Report  *Report
	Err     error
}

// RunBatch analyzes each match on its own pipeline instance using a bounded
// worker pool. Results keep the input order. A failing match is reported in its
// result and does not stop the others; cancelling ctx fails the matches not yet
// started.
func RunBatch(ctx context.Context, matches []*model.Match, opts BatchOptions) ([]BatchResult, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	results := make([]BatchResult, len(matches))
	if len(matches) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()
	opts.Metrics.SetWorkers(workers)

	var wg sync.WaitGroup
	for i, m := range matches {
		i, m := i, m
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i] = analyzeOne(ctx, i, m, opts, log)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, errors.Wrap(err, "submit match to worker pool")
		}
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.InfoContext(ctx, "batch finished", "matches", len(matches), "failed", failed, "workers", workers)
	return results, nil
}

func analyzeOne(ctx context.Context, i int, m *model.Match, opts BatchOptions, log *logging.Logger) BatchResult {
	res := BatchResult{Index: i}
	if m != nil {
		res.MatchID = m.ID
		ctx = logging.WithMatchID(ctx, m.ID)
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		opts.Metrics.ObserveFailure()
		return res
	}

	start := time.Now()
	c, err := New(m, opts.Options...)
	if err == nil {
		res.Report, err = c.Report(ctx)
	}
	if err != nil {
		res.Err = err
		opts.Metrics.ObserveFailure()
		log.WarnContext(ctx, "match failed", "index", i, "err", err)
		return res
	}

	opts.Metrics.ObserveMatch(len(m.Events), res.Report.EstimatedShots, time.Since(start))
	log.DebugContext(ctx, "match analyzed", "index", i, "took", time.Since(start))
	return res
}
