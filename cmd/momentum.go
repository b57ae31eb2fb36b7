package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/report"
)

var momentumStep int

var momentumCmd = &cobra.Command{
	Use:   "momentum <feed.json>",
	Short: "Print the smoothed match momentum with goal markers",
	Args:  cobra.ExactArgs(1),
	RunE:  runMomentum,
}

func init() {
	momentumCmd.Flags().IntVar(&momentumStep, "step", 1, "print every N minutes")
}

func runMomentum(cmd *cobra.Command, args []string) error {
	c, err := loadMatch(args[0])
	if err != nil {
		return err
	}
	samples := c.Momentum()
	if len(samples) == 0 {
		fmt.Fprintln(os.Stdout, "No events, no momentum.")
		return nil
	}
	s := c.Summary()
	report.PrintMatchHeader(os.Stdout, s, c.Hash())
	report.PrintMomentum(os.Stdout, samples, c.Goals(), s, momentumStep)
	return nil
}
