package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/aggregator"
	"github.com/DataKnight1/PostMatchReport/internal/report"
)

var (
	networkTeam       int64
	networkMinPasses  int
	networkStarters   bool
	networkUndirected bool
)

var networkCmd = &cobra.Command{
	Use:   "network <feed.json>",
	Short: "Print a team's average positions and pass connections",
	Args:  cobra.ExactArgs(1),
	RunE:  runNetwork,
}

func init() {
	networkCmd.Flags().Int64Var(&networkTeam, "team", 0, "team id (default home)")
	networkCmd.Flags().IntVar(&networkMinPasses, "min-passes", 0, "hide edges with fewer passes (default from config)")
	networkCmd.Flags().BoolVar(&networkStarters, "starters", false, "only include starting players")
	networkCmd.Flags().BoolVar(&networkUndirected, "undirected", false, "merge A→B and B→A into one edge")
}

func runNetwork(cmd *cobra.Command, args []string) error {
	c, err := loadMatch(args[0])
	if err != nil {
		return err
	}
	teamID, err := resolveTeam(c, networkTeam)
	if err != nil {
		return err
	}

	ncfg := c.Config().Network
	if networkMinPasses > 0 {
		ncfg.MinPasses = networkMinPasses
	}
	if networkStarters {
		ncfg.StartersOnly = true
	}
	n, err := c.PassNetworkWith(teamID, ncfg)
	if err != nil {
		return fmt.Errorf("pass network: %w", err)
	}
	if networkUndirected {
		n.Connections = aggregator.Undirected(n.Connections)
	}

	team, _ := c.Team(teamID)
	fmt.Fprintf(os.Stdout, "\n%s pass network (min passes %d, starters only %v)\n\n", team.Name, ncfg.MinPasses, ncfg.StartersOnly)
	report.PrintNetwork(os.Stdout, n, c.Roster())
	return nil
}
