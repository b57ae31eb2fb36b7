package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/report"
)

var shotsTeam int64

var shotsCmd = &cobra.Command{
	Use:   "shots <feed.json>",
	Short: "List every shot with zone, body part, situation and xG",
	Args:  cobra.ExactArgs(1),
	RunE:  runShots,
}

func init() {
	shotsCmd.Flags().Int64Var(&shotsTeam, "team", 0, "team id (default both)")
}

func runShots(cmd *cobra.Command, args []string) error {
	c, err := loadMatch(args[0])
	if err != nil {
		return err
	}
	if shotsTeam != 0 {
		if _, err := c.Team(shotsTeam); err != nil {
			return fmt.Errorf("team %d: %w", shotsTeam, err)
		}
	}

	shots := c.Shots(shotsTeam)
	s := c.Summary()
	report.PrintMatchHeader(os.Stdout, s, c.Hash())
	if len(shots) == 0 {
		fmt.Fprintln(os.Stdout, "No shots.")
		return nil
	}
	report.PrintShots(os.Stdout, shots, c.Roster(), s)
	if n := c.EstimatedShots(); n > 0 {
		fmt.Fprintf(os.Stdout, "\n* %d shot(s) valued by the heuristic xG model.\n", n)
	}
	return nil
}
