package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend <team-id>",
	Short: "Chronological match-by-match trend for a team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	teamID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid team id: %w", err)
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	lines, err := db.TeamHistory(teamID)
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}
	if len(lines) == 0 {
		fmt.Println("no matches found")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n%s: %d match(es)\n\n", lines[0].TeamName, len(lines))
	report.PrintTeamHistory(os.Stdout, lines)
	return nil
}
