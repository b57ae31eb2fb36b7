package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the analysis database",
	Long: `Run an arbitrary SQL query against the analysis database and print results as a table.

Schema overview:
  matches(hash, match_id, home_id, home_name, home_color, away_id, away_name, away_color,
    home_score, away_score, home_xg, away_xg, event_count, analyzed_at, run_id)
  team_stats(match_hash, team_id, stat, value)
  player_positions(match_hash, team_id, player_id, name, shirt_number, x, y, touch_count)
  pass_connections(match_hash, team_id, from_id, to_id, x, y, end_x, end_y, pass_count)
  player_stats(match_hash, team_id, player_id, name, shirt_number, events, touches,
    passes, passes_completed, progressive_passes, key_passes, assists, shots, goals, xg,
    tackles, interceptions, clearances, dribbles)
  momentum(match_hash, minute_bin, raw_net, net_value)

Example: postmatch sql "SELECT stat, value FROM team_stats WHERE stat = 'xg'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintRaw(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
