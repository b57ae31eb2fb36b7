package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/aggregator"
	"github.com/DataKnight1/PostMatchReport/internal/report"
)

var (
	playersTeam   int64
	playersTop    int
	playersMetric string
	playersFocus  int64
)

var playersCmd = &cobra.Command{
	Use:   "players <feed.json>",
	Short: "Print one team's player stat lines",
	Long: fmt.Sprintf(`Print one team's player stat lines. With --top, only the N best players by
--metric are shown. Metrics: %s.`, strings.Join(aggregator.PlayerMetrics, ", ")),
	Args: cobra.ExactArgs(1),
	RunE: runPlayers,
}

func init() {
	playersCmd.Flags().Int64Var(&playersTeam, "team", 0, "team id (default home)")
	playersCmd.Flags().IntVar(&playersTop, "top", 0, "only show the top N players")
	playersCmd.Flags().StringVar(&playersMetric, "metric", "xg", "ranking metric for --top")
	playersCmd.Flags().Int64Var(&playersFocus, "player", 0, "highlight player id")
}

func runPlayers(cmd *cobra.Command, args []string) error {
	c, err := loadMatch(args[0])
	if err != nil {
		return err
	}
	teamID, err := resolveTeam(c, playersTeam)
	if err != nil {
		return err
	}
	stats, err := c.PlayerStats(teamID)
	if err != nil {
		return fmt.Errorf("player stats: %w", err)
	}
	if playersTop > 0 {
		stats, err = aggregator.TopPerformers(stats, playersMetric, playersTop)
		if err != nil {
			return fmt.Errorf("top performers: %w", err)
		}
	}

	team, _ := c.Team(teamID)
	fmt.Fprintf(os.Stdout, "\n%s players\n\n", team.Name)
	report.PrintPlayers(os.Stdout, stats, playersFocus)
	return nil
}
