package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DataKnight1/PostMatchReport/internal/logging"
	"github.com/DataKnight1/PostMatchReport/internal/report"
	"github.com/DataKnight1/PostMatchReport/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cGreeting.Println("postmatch shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("postmatch")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "analyze":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: analyze <feed.json>")
				continue
			}
			shellAnalyze(cmd, db, args[0])
		case "show":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: show <hash-prefix> [--player <id>]")
				continue
			}
			var playerID int64
			for i := 1; i+1 < len(args); i++ {
				if args[i] == "--player" {
					playerID, _ = strconv.ParseInt(args[i+1], 10, 64)
				}
			}
			shellShow(db, args[0], playerID)
		case "trend":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: trend <team-id>")
				continue
			}
			shellTrend(db, args[0])
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <player-id> [<player-id>...]")
				continue
			}
			shellPlayer(db, args)
		case "sql":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: sql <query>")
				continue
			}
			shellSQL(db, strings.Join(args, " "))
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored matches"},
		{"analyze <feed.json>", "analyse and store a feed"},
		{"show <hash-prefix>", "show a stored match"},
		{"show <hash-prefix> --player <id>", "same, highlighting one player"},
		{"trend <team-id>", "match-by-match trend for a team"},
		{"player <player-id> [...]", "cross-match totals for one or more players"},
		{"sql <query>", "run a raw SQL query"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-38s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	recs, err := db.ListMatches()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(recs) == 0 {
		cMuted.Println("No matches stored yet.")
		return
	}
	cHeader.Fprintf(os.Stdout, "%-14s  %-10s  %-20s  %5s  %-20s  %s\n",
		"HASH", "MATCH", "HOME", "SCORE", "AWAY", "ANALYZED")
	cMuted.Fprintf(os.Stdout, "%-14s  %-10s  %-20s  %5s  %-20s  %s\n",
		"──────────────", "──────────", "────────────────────", "─────", "────────────────────", "────────")
	for _, r := range recs {
		score := fmt.Sprintf("%d-%d", r.HomeScore, r.AwayScore)
		fmt.Fprintf(os.Stdout, "%-14s  %-10s  %-20s  %5s  %-20s  %s\n",
			shortHash(r.Hash), r.MatchID, r.HomeName, score, r.AwayName, r.AnalyzedAt)
	}
}

func shellAnalyze(cmd *cobra.Command, db *storage.DB, path string) {
	c, err := loadMatch(path)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	ctx := logging.WithMatchID(cmd.Context(), c.ID())
	rep, err := c.Report(ctx)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if _, err := db.SaveReport(rep, time.Now()); err != nil {
		cError.Fprintf(os.Stderr, "store: %v\n", err)
		return
	}
	cMuted.Printf("stored %s\n", shortHash(rep.Hash))
	printReport(rep, 0, 0)
}

func shellShow(db *storage.DB, prefix string, playerID int64) {
	rec, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if rec == nil {
		cWarn.Fprintf(os.Stderr, "no match found with prefix %q\n", prefix)
		return
	}
	if err := showByHash(db, rec.Hash, playerID); err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

func shellTrend(db *storage.DB, arg string) {
	teamID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		cError.Fprintf(os.Stderr, "invalid team id %q\n", arg)
		return
	}
	lines, err := db.TeamHistory(teamID)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(lines) == 0 {
		cMuted.Println("no matches found")
		return
	}
	cHeader.Fprintf(os.Stdout, "\n--- %s ---\n", lines[0].TeamName)
	report.PrintTeamHistory(os.Stdout, lines)
}

func shellPlayer(db *storage.DB, args []string) {
	var ids []int64
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			cError.Fprintf(os.Stderr, "invalid player id %q: %v\n", arg, err)
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return
	}
	totals, err := db.PlayerTotalsFor(ids, nil)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(totals) == 0 {
		cMuted.Println("no data for those players")
		return
	}
	fmt.Fprintln(os.Stdout)
	report.PrintPlayerTotals(os.Stdout, totals)
}

func shellSQL(db *storage.DB, query string) {
	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(rows) == 0 {
		cMuted.Println("(no rows)")
		return
	}
	report.PrintRaw(os.Stdout, cols, rows)
	cMuted.Printf("(%d rows)\n", len(rows))
}
