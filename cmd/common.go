package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DataKnight1/PostMatchReport/internal/match"
	"github.com/DataKnight1/PostMatchReport/internal/parser"
	"github.com/DataKnight1/PostMatchReport/internal/storage"
)

// loadMatch parses a feed file and builds its coordinator, logging tolerated
// event defects.
func loadMatch(path string) (*match.Coordinator, error) {
	res, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	for _, w := range res.Warnings {
		logger.Warn("feed event degraded", "file", path, "index", w.Index, "reason", w.Message)
	}
	c, err := match.New(res.Match, match.WithConfig(cfg.Config), match.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("build match: %w", err)
	}
	logger.Debug("match loaded", "match_id", c.ID(), "events", len(c.Events()), "warnings", len(res.Warnings))
	return c, nil
}

// resolveTeam maps 0 to the home side.
func resolveTeam(c *match.Coordinator, teamID int64) (int64, error) {
	if teamID == 0 {
		return c.Home().ID, nil
	}
	if _, err := c.Team(teamID); err != nil {
		return 0, fmt.Errorf("team %d: %w", teamID, err)
	}
	return teamID, nil
}

func openDB() (*storage.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
