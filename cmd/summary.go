package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about all matches stored in the database:
total match count, analysis date range, goals and xG per match, and a
results table for every team seen.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.TotalMatches == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'postmatch analyze <feed.json>' to add one.")
		return nil
	}

	n := float64(ov.TotalMatches)
	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Matches stored : %d\n", ov.TotalMatches)
	fmt.Fprintf(os.Stdout, "  Analysed       : %s → %s\n", ov.FirstAnalyzed, ov.LastAnalyzed)
	fmt.Fprintf(os.Stdout, "  Teams seen     : %d\n", ov.UniqueTeams)
	fmt.Fprintf(os.Stdout, "  Players seen   : %d\n", ov.UniquePlayers)
	fmt.Fprintf(os.Stdout, "  Events         : %d\n", ov.TotalEvents)
	fmt.Fprintf(os.Stdout, "  Goals / match  : %.2f\n", float64(ov.TotalGoals)/n)
	fmt.Fprintf(os.Stdout, "  xG / match     : %.2f\n", ov.TotalXG/n)

	teams, err := db.TeamRecords()
	if err != nil {
		return fmt.Errorf("get team records: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\n--- Teams ---\n\n")
	tt := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	tt.Header("TEAM", "ID", "P", "W", "D", "L", "GF", "GA", "XG", "XGA", "PTS")
	for _, t := range teams {
		tt.Append(
			t.Name,
			fmt.Sprintf("%d", t.TeamID),
			fmt.Sprintf("%d", t.Matches),
			fmt.Sprintf("%d", t.Wins),
			fmt.Sprintf("%d", t.Draws),
			fmt.Sprintf("%d", t.Losses),
			fmt.Sprintf("%d", t.GoalsFor),
			fmt.Sprintf("%d", t.GoalsAgainst),
			fmt.Sprintf("%.2f", t.XGFor),
			fmt.Sprintf("%.2f", t.XGAgainst),
			fmt.Sprintf("%d", 3*t.Wins+t.Draws),
		)
	}
	tt.Render()
	return nil
}
