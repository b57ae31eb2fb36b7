package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/model"
	"github.com/DataKnight1/PostMatchReport/internal/report"
)

var (
	zonesPreset string
	zonesRows   int
	zonesCols   int
)

var zonesCmd = &cobra.Command{
	Use:   "zones <feed.json>",
	Short: "Print zonal control of the pitch",
	Long: `Split the pitch into a grid and label each cell by the side that dominates
it. Presets: territory (6x7, every touch) and tactical (4x6, successful actions).
--rows and --cols override the preset with a custom grid over every touch.`,
	Args: cobra.ExactArgs(1),
	RunE: runZones,
}

func init() {
	zonesCmd.Flags().StringVar(&zonesPreset, "preset", "territory", "territory or tactical")
	zonesCmd.Flags().IntVar(&zonesRows, "rows", 0, "custom grid rows")
	zonesCmd.Flags().IntVar(&zonesCols, "cols", 0, "custom grid columns")
}

func runZones(cmd *cobra.Command, args []string) error {
	c, err := loadMatch(args[0])
	if err != nil {
		return err
	}

	var g model.ZoneGrid
	switch {
	case zonesRows != 0 || zonesCols != 0:
		g, err = c.ZonalControl(zonesRows, zonesCols)
		if err != nil {
			return fmt.Errorf("zonal control: %w", err)
		}
	case zonesPreset == "territory":
		g = c.Territory()
	case zonesPreset == "tactical":
		g = c.TacticalControl()
	default:
		return fmt.Errorf("unknown preset %q: want territory or tactical", zonesPreset)
	}

	s := c.Summary()
	report.PrintMatchHeader(os.Stdout, s, c.Hash())
	report.PrintZones(os.Stdout, g, s)
	return nil
}
