package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/logging"
	"github.com/DataKnight1/PostMatchReport/internal/report"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export <feed.json>",
	Short: "Export the full match analysis as JSON or YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "json or yaml")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	c, err := loadMatch(args[0])
	if err != nil {
		return err
	}
	rep, err := c.Report(logging.WithMatchID(cmd.Context(), c.ID()))
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := report.Encode(w, rep, exportFormat); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if exportOut != "" {
		logger.Info("export written", "path", exportOut, "format", exportFormat)
	}
	return nil
}
