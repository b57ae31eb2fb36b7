package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/match"
	"github.com/DataKnight1/PostMatchReport/internal/metrics"
	"github.com/DataKnight1/PostMatchReport/internal/model"
	"github.com/DataKnight1/PostMatchReport/internal/parser"
	"github.com/DataKnight1/PostMatchReport/internal/report"
)

var (
	batchWorkers     int
	batchMetricsFile string
	batchNoStore     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <feed.json>...",
	Short: "Analyse many feeds in parallel and store the results",
	Long: `Analyse many feeds on a bounded worker pool. Each feed gets its own
pipeline; a failing feed is reported and does not stop the rest. Feeds that
fail to parse are reported before the pool starts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "worker pool size (default from config)")
	batchCmd.Flags().StringVar(&batchMetricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	batchCmd.Flags().BoolVar(&batchNoStore, "no-store", false, "do not write results to the database")
}

func runBatch(cmd *cobra.Command, args []string) error {
	var (
		files   []string
		matches []*model.Match
	)
	for _, path := range args {
		res, err := parser.ParseFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", path, err)
			continue
		}
		if len(res.Warnings) > 0 {
			logger.Warn("feed events degraded", "file", path, "warnings", len(res.Warnings))
		}
		files = append(files, filepath.Base(path))
		matches = append(matches, res.Match)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no parsable feeds among %d file(s)", len(args))
	}

	workers := cfg.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}
	metricsFile := cfg.MetricsFile
	if batchMetricsFile != "" {
		metricsFile = batchMetricsFile
	}

	mgr := metrics.NewManager()
	start := time.Now()
	results, err := match.RunBatch(cmd.Context(), matches, match.BatchOptions{
		Workers: workers,
		Metrics: mgr,
		Logger:  logger,
		Options: []match.Option{match.WithConfig(cfg.Config), match.WithLogger(logger)},
	})
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	logger.Info("batch analysed", "matches", len(matches), "took", time.Since(start))

	if !batchNoStore {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		now := time.Now()
		for i, r := range results {
			if r.Err != nil {
				continue
			}
			if _, err := db.SaveReport(r.Report, now); err != nil {
				results[i].Err = fmt.Errorf("store: %w", err)
			}
		}
	}

	report.PrintBatch(os.Stdout, files, results)

	if metricsFile != "" {
		if err := mgr.WriteTextfile(metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.Info("metrics written", "path", metricsFile)
	}

	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("one or more feeds failed")
		}
	}
	return nil
}
