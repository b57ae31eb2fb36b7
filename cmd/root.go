package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/config"
	"github.com/DataKnight1/PostMatchReport/internal/logging"
)

var (
	dbPath     string
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "postmatch",
	Short: "Post-match football analytics",
	Long: `Analyse a normalised match event feed: team statistics, pass networks,
momentum, zonal control and shot maps. Results can be stored in SQLite and
compared across matches.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dbPath, "db", "", "path to SQLite database (default from config, postmatch.db)")
	pf.StringVar(&configPath, "config", "", "YAML config file (default $POSTMATCH_CONFIG)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&logFormat, "log-format", "", "console or json")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(momentumCmd)
	rootCmd.AddCommand(zonesCmd)
	rootCmd.AddCommand(shotsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
}

// setup loads .env, then the layered config, then applies flag overrides.
func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if logFormat != "" {
		c.LogFormat = logFormat
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg = c
	dbPath = c.DBPath

	logger = logging.New(c.LogFormat, logging.ParseLevel(c.LogLevel))
	logging.SetDefault(logger)
	logger.Debug("config loaded", "db", c.DBPath, "workers", c.Workers)
	return nil
}
