package storage

import (
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// TeamMatchLine is one stored match seen from a single team's side.
type TeamMatchLine struct {
	Hash         string
	MatchID      string
	AnalyzedAt   string
	IsHome       bool
	TeamName     string
	OpponentID   int64
	OpponentName string
	GoalsFor     int
	GoalsAgainst int
	XGFor        float64
	XGAgainst    float64
}

// Points is 3 for a win, 1 for a draw.
func (l TeamMatchLine) Points() int {
	switch {
	case l.GoalsFor > l.GoalsAgainst:
		return 3
	case l.GoalsFor == l.GoalsAgainst:
		return 1
	}
	return 0
}

// TeamHistory returns every stored match of teamID, oldest first.
func (db *DB) TeamHistory(teamID int64) ([]TeamMatchLine, error) {
	rows, err := db.conn.Query(`
		SELECT hash, match_id, analyzed_at, home_id, home_name, away_id, away_name,
		       home_score, away_score, home_xg, away_xg
		FROM matches WHERE home_id = ? OR away_id = ?
		ORDER BY analyzed_at, hash`, teamID, teamID)
	if err != nil {
		return nil, crerr.Wrap(err, "team history")
	}
	defer rows.Close()

	var out []TeamMatchLine
	for rows.Next() {
		var (
			l                  TeamMatchLine
			homeID, awayID     int64
			homeName, awayName string
			hs, as             int
			hxg, axg           float64
		)
		if err := rows.Scan(&l.Hash, &l.MatchID, &l.AnalyzedAt, &homeID, &homeName, &awayID, &awayName,
			&hs, &as, &hxg, &axg); err != nil {
			return nil, crerr.Wrap(err, "scan team history")
		}
		if homeID == teamID {
			l.IsHome = true
			l.TeamName = homeName
			l.OpponentID, l.OpponentName = awayID, awayName
			l.GoalsFor, l.GoalsAgainst, l.XGFor, l.XGAgainst = hs, as, hxg, axg
		} else {
			l.TeamName = awayName
			l.OpponentID, l.OpponentName = homeID, homeName
			l.GoalsFor, l.GoalsAgainst, l.XGFor, l.XGAgainst = as, hs, axg, hxg
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// PlayerTotals holds summed stats for one player across multiple matches.
type PlayerTotals struct {
	PlayerID          int64
	Name              string
	Matches           int
	Passes            int
	PassesCompleted   int
	ProgressivePasses int
	KeyPasses         int
	Assists           int
	Shots             int
	Goals             int
	XG                float64
	Tackles           int
	Interceptions     int
}

// PassAccuracy is a percentage, 0 with no passes.
func (p PlayerTotals) PassAccuracy() float64 {
	if p.Passes == 0 {
		return 0
	}
	return float64(p.PassesCompleted) / float64(p.Passes) * 100
}

// PlayerTotalsFor sums the stored lines of the given players, optionally
// restricted to matchHashes. Players are ordered by matches played, then goals.
func (db *DB) PlayerTotalsFor(playerIDs []int64, matchHashes []string) ([]PlayerTotals, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(playerIDs)+len(matchHashes))
	for _, id := range playerIDs {
		args = append(args, id)
	}
	where := fmt.Sprintf("player_id IN (%s)", placeholders(len(playerIDs)))
	if len(matchHashes) > 0 {
		where += fmt.Sprintf(" AND match_hash IN (%s)", placeholders(len(matchHashes)))
		for _, h := range matchHashes {
			args = append(args, h)
		}
	}

	query := fmt.Sprintf(`
		SELECT player_id, MAX(name), COUNT(DISTINCT match_hash),
		       SUM(passes), SUM(passes_completed), SUM(progressive_passes),
		       SUM(key_passes), SUM(assists), SUM(shots), SUM(goals), SUM(xg),
		       SUM(tackles), SUM(interceptions)
		FROM player_stats
		WHERE %s
		GROUP BY player_id
		ORDER BY COUNT(DISTINCT match_hash) DESC, SUM(goals) DESC, player_id`, where)

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, crerr.Wrap(err, "player totals")
	}
	defer rows.Close()

	var out []PlayerTotals
	for rows.Next() {
		var p PlayerTotals
		if err := rows.Scan(
			&p.PlayerID, &p.Name, &p.Matches,
			&p.Passes, &p.PassesCompleted, &p.ProgressivePasses,
			&p.KeyPasses, &p.Assists, &p.Shots, &p.Goals, &p.XG,
			&p.Tackles, &p.Interceptions,
		); err != nil {
			return nil, crerr.Wrap(err, "scan player totals")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// Overview holds database-wide counts for the summary command.
type Overview struct {
	TotalMatches  int
	FirstAnalyzed string
	LastAnalyzed  string
	UniqueTeams   int
	UniquePlayers int
	TotalEvents   int
	TotalGoals    int
	TotalXG       float64
}

// GetOverview returns database-wide counts. Dates are empty when no match is stored.
func (db *DB) GetOverview() (Overview, error) {
	var ov Overview
	err := db.conn.QueryRow(`
		SELECT COUNT(1), COALESCE(MIN(analyzed_at), ''), COALESCE(MAX(analyzed_at), ''),
		       COALESCE(SUM(event_count), 0), COALESCE(SUM(home_score + away_score), 0),
		       COALESCE(SUM(home_xg + away_xg), 0)
		FROM matches`).
		Scan(&ov.TotalMatches, &ov.FirstAnalyzed, &ov.LastAnalyzed, &ov.TotalEvents, &ov.TotalGoals, &ov.TotalXG)
	if err != nil {
		return ov, crerr.Wrap(err, "overview")
	}
	err = db.conn.QueryRow(`
		SELECT COUNT(DISTINCT team_id) FROM (
			SELECT home_id AS team_id FROM matches UNION SELECT away_id FROM matches
		)`).Scan(&ov.UniqueTeams)
	if err != nil {
		return ov, crerr.Wrap(err, "overview teams")
	}
	if err := db.conn.QueryRow(`SELECT COUNT(DISTINCT player_id) FROM player_stats`).Scan(&ov.UniquePlayers); err != nil {
		return ov, crerr.Wrap(err, "overview players")
	}
	return ov, nil
}

// TeamRecord is one team's aggregate over every stored match.
type TeamRecord struct {
	TeamID       int64
	Name         string
	Matches      int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	XGFor        float64
	XGAgainst    float64
}

// TeamRecords returns every team seen, busiest first.
func (db *DB) TeamRecords() ([]TeamRecord, error) {
	rows, err := db.conn.Query(`
		WITH sides AS (
			SELECT home_id AS team_id, home_name AS name, home_score AS gf, away_score AS ga,
			       home_xg AS xgf, away_xg AS xga FROM matches
			UNION ALL
			SELECT away_id, away_name, away_score, home_score, away_xg, home_xg FROM matches
		)
		SELECT team_id, MAX(name), COUNT(1),
		       SUM(CASE WHEN gf > ga THEN 1 ELSE 0 END),
		       SUM(CASE WHEN gf = ga THEN 1 ELSE 0 END),
		       SUM(CASE WHEN gf < ga THEN 1 ELSE 0 END),
		       SUM(gf), SUM(ga), SUM(xgf), SUM(xga)
		FROM sides
		GROUP BY team_id
		ORDER BY COUNT(1) DESC, team_id`)
	if err != nil {
		return nil, crerr.Wrap(err, "team records")
	}
	defer rows.Close()

	var out []TeamRecord
	for rows.Next() {
		var r TeamRecord
		if err := rows.Scan(&r.TeamID, &r.Name, &r.Matches, &r.Wins, &r.Draws, &r.Losses,
			&r.GoalsFor, &r.GoalsAgainst, &r.XGFor, &r.XGAgainst); err != nil {
			return nil, crerr.Wrap(err, "scan team record")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
