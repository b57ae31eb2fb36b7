package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/report"
	"github.com/DataKnight1/PostMatchReport/internal/storage"
)

var showPlayerID int64

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show a stored analysis by hash prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Int64Var(&showPlayerID, "player", 0, "highlight player id")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "No match found with hash prefix %q\n", prefix)
		return nil
	}
	return showByHash(db, rec.Hash, showPlayerID)
}

// showByHash prints a stored analysis: summary, both player tables, both networks
// and a coarse momentum trace.
func showByHash(db *storage.DB, hash string, focus int64) error {
	s, err := db.GetSummary(hash)
	if err != nil {
		return fmt.Errorf("get summary: %w", err)
	}
	if s == nil {
		return fmt.Errorf("match not found: %s", hash)
	}

	report.PrintMatchHeader(os.Stdout, *s, hash)
	report.PrintSummary(os.Stdout, *s)

	for _, team := range []struct {
		id   int64
		name string
	}{{s.Home.ID, s.Home.Name}, {s.Away.ID, s.Away.Name}} {
		players, err := db.GetPlayerStats(hash, team.id)
		if err != nil {
			return fmt.Errorf("get player stats: %w", err)
		}
		fmt.Fprintf(os.Stdout, "\n--- %s players ---\n\n", team.name)
		report.PrintPlayers(os.Stdout, players, focus)

		n, err := db.GetNetwork(hash, team.id)
		if err != nil {
			return fmt.Errorf("get network: %w", err)
		}
		fmt.Fprintf(os.Stdout, "\n--- %s pass network ---\n\n", team.name)
		report.PrintNetwork(os.Stdout, n, nil)
	}

	mom, err := db.GetMomentum(hash)
	if err != nil {
		return fmt.Errorf("get momentum: %w", err)
	}
	fmt.Fprintln(os.Stdout)
	report.PrintMomentum(os.Stdout, mom, nil, *s, 5)
	return nil
}
