package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dropForce bool
	dropMatch string
)

// dropCmd deletes the analysis database file, or one stored match.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the analysis database or one stored match",
	Long: `Permanently delete the SQLite analysis database. All stored analyses will be lost.
Re-analyse your feeds afterwards to rebuild. With --match, only the analysis whose
hash starts with the given prefix is removed.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().StringVar(&dropMatch, "match", "", "delete only the match with this hash prefix")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dropMatch != "" {
		return dropOne(dropMatch)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	removed := false
	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("remove database: %w", err)
		}
		removed = true
	}
	if !removed {
		fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

func dropOne(prefix string) error {
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
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will delete %s (%s vs %s).\n", shortHash(rec.Hash), rec.HomeName, rec.AwayName)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if _, err := db.DeleteMatch(rec.Hash); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	logger.Info("match deleted", "hash", rec.Hash)
	fmt.Fprintf(os.Stdout, "Deleted match %s\n", shortHash(rec.Hash))
	return nil
}
