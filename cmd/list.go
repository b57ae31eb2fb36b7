package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored analyses",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	recs, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(recs) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'postmatch analyze <feed.json>' to add one.")
		return nil
	}
	report.PrintMatchList(os.Stdout, recs)
	return nil
}
