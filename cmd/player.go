package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/report"
	"github.com/DataKnight1/PostMatchReport/internal/storage"
)

var playerMatches []string

// playerCmd is the cobra command for cross-match totals of one or more players.
var playerCmd = &cobra.Command{
	Use:   "player <player-id> [<player-id>...]",
	Short: "Cross-match totals for one or more players",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayer,
}

func init() {
	playerCmd.Flags().StringSliceVar(&playerMatches, "match", nil, "restrict to these match hash prefixes")
}

// runPlayer sums every stored stat line of the given players and prints one
// row per player.
func runPlayer(cmd *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid player id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	hashes, err := resolveHashes(db, playerMatches)
	if err != nil {
		return err
	}
	totals, err := db.PlayerTotalsFor(ids, hashes)
	if err != nil {
		return fmt.Errorf("query totals: %w", err)
	}

	found := make(map[int64]bool, len(totals))
	for _, t := range totals {
		found[t.PlayerID] = true
	}
	for _, id := range ids {
		if !found[id] {
			fmt.Fprintf(os.Stderr, "No data found for player %d\n", id)
		}
	}
	if len(totals) == 0 {
		return nil
	}

	report.PrintPlayerTotals(os.Stdout, totals)
	return nil
}

// resolveHashes expands hash prefixes to full hashes.
func resolveHashes(db *storage.DB, prefixes []string) ([]string, error) {
	hashes := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		rec, err := db.GetMatchByPrefix(p)
		if err != nil {
			return nil, fmt.Errorf("look up match %q: %w", p, err)
		}
		if rec == nil {
			return nil, fmt.Errorf("no stored match with hash prefix %q", p)
		}
		hashes = append(hashes, rec.Hash)
	}
	return hashes, nil
}
