package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/logging"
	"github.com/DataKnight1/PostMatchReport/internal/match"
	"github.com/DataKnight1/PostMatchReport/internal/report"
	"github.com/DataKnight1/PostMatchReport/internal/storage"
)

var (
	analyzeNoStore bool
	analyzeForce   bool
	analyzeTeam    int64
	analyzePlayer  int64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <feed.json>",
	Short: "Analyse a match feed and store the results",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeNoStore, "no-store", false, "print the analysis without writing to the database")
	analyzeCmd.Flags().BoolVar(&analyzeForce, "force", false, "re-analyse a feed that is already stored")
	analyzeCmd.Flags().Int64Var(&analyzeTeam, "team", 0, "only print player tables for this team id")
	analyzeCmd.Flags().Int64Var(&analyzePlayer, "player", 0, "highlight player id")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	feedPath := args[0]

	c, err := loadMatch(feedPath)
	if err != nil {
		return err
	}

	var db *storage.DB
	if !analyzeNoStore {
		db, err = openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		exists, err := db.MatchExists(c.Hash())
		if err != nil {
			return fmt.Errorf("check match: %w", err)
		}
		if exists && !analyzeForce {
			fmt.Fprintf(os.Stdout, "Match %s already stored, showing cached results (use --force to re-analyse).\n", shortHash(c.Hash()))
			return showByHash(db, c.Hash(), analyzePlayer)
		}
	}

	ctx := logging.WithMatchID(cmd.Context(), c.ID())
	rep, err := c.Report(ctx)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if db != nil {
		runID, err := db.SaveReport(rep, time.Now())
		if err != nil {
			return fmt.Errorf("store report: %w", err)
		}
		logger.InfoContext(logging.WithRunID(ctx, runID), "analysis stored", "hash", rep.Hash)
	}

	printReport(rep, analyzeTeam, analyzePlayer)
	return nil
}

func printReport(rep *match.Report, teamID, focus int64) {
	s := rep.Summary
	report.PrintMatchHeader(os.Stdout, s, rep.Hash)
	report.PrintSummary(os.Stdout, s)

	if len(rep.KeyMoments) > 0 {
		fmt.Fprintf(os.Stdout, "\n--- Key moments ---\n\n")
		report.PrintKeyMoments(os.Stdout, rep.KeyMoments, rep.Roster, s)
	}
	if teamID == 0 || teamID == s.Home.ID {
		fmt.Fprintf(os.Stdout, "\n--- %s players ---\n\n", s.Home.Name)
		report.PrintPlayers(os.Stdout, rep.HomePlayers, focus)
	}
	if teamID == 0 || teamID == s.Away.ID {
		fmt.Fprintf(os.Stdout, "\n--- %s players ---\n\n", s.Away.Name)
		report.PrintPlayers(os.Stdout, rep.AwayPlayers, focus)
	}
	if rep.EstimatedShots > 0 {
		fmt.Fprintf(os.Stdout, "\n%d shot(s) valued by the heuristic xG model.\n", rep.EstimatedShots)
	}
}
