package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/DataKnight1/PostMatchReport/internal/match"
	"github.com/DataKnight1/PostMatchReport/internal/model"
)

// ErrNoHash is returned when a report without a source hash is saved.
var ErrNoHash = crerr.New("report has no source hash")

const timeLayout = time.RFC3339

// MatchExists returns true if an analysis for the given hash is already stored.
func (db *DB) MatchExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, crerr.Wrap(err, "match exists")
	}
	return count > 0, nil
}

// SaveReport stores every persisted derivation of rep in one transaction and
// returns the run id assigned to this analysis. Re-saving a hash replaces the
// previous analysis.
func (db *DB) SaveReport(rep *match.Report, analyzedAt time.Time) (string, error) {
	if rep.Hash == "" {
		return "", ErrNoHash
	}
	runID := uuid.NewString()

	tx, err := db.conn.Begin()
	if err != nil {
		return "", crerr.Wrap(err, "begin")
	}
	defer tx.Rollback()

	// Child rows cascade.
	if _, err := tx.Exec("DELETE FROM matches WHERE hash = ?", rep.Hash); err != nil {
		return "", crerr.Wrap(err, "clear previous analysis")
	}

	s := rep.Summary
	_, err = tx.Exec(`
		INSERT INTO matches(hash, match_id, home_id, home_name, home_color, away_id, away_name, away_color,
			home_score, away_score, home_xg, away_xg, event_count, analyzed_at, run_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.Hash, rep.MatchID, s.Home.ID, s.Home.Name, s.Home.Color, s.Away.ID, s.Away.Name, s.Away.Color,
		s.HomeScore, s.AwayScore, s.HomeXG, s.AwayXG, s.EventCount,
		analyzedAt.UTC().Format(timeLayout), runID,
	)
	if err != nil {
		return "", crerr.Wrap(err, "insert match")
	}

	if err := insertTeamStats(tx, rep.Hash, s.Home.ID, s.HomeStats); err != nil {
		return "", err
	}
	if err := insertTeamStats(tx, rep.Hash, s.Away.ID, s.AwayStats); err != nil {
		return "", err
	}
	for _, n := range []match.Network{rep.HomeNetwork, rep.AwayNetwork} {
		if err := insertNetwork(tx, rep.Hash, n); err != nil {
			return "", err
		}
	}
	if err := insertPlayerStats(tx, rep.Hash, append(append([]model.PlayerStats{}, rep.HomePlayers...), rep.AwayPlayers...)); err != nil {
		return "", err
	}
	if err := insertMomentum(tx, rep.Hash, rep.Momentum); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", crerr.Wrap(err, "commit")
	}
	return runID, nil
}

func insertTeamStats(tx *sql.Tx, hash string, teamID int64, rec model.TeamStatRecord) error {
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO team_stats(match_hash, team_id, stat, value) VALUES (?,?,?,?)`)
	if err != nil {
		return crerr.Wrap(err, "prepare team_stats")
	}
	defer stmt.Close()

	for name, v := range rec {
		if _, err := stmt.Exec(hash, teamID, string(name), v); err != nil {
			return crerr.Wrapf(err, "insert team_stats %d/%s", teamID, name)
		}
	}
	return nil
}

func insertNetwork(tx *sql.Tx, hash string, n match.Network) error {
	posStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO player_positions(match_hash, team_id, player_id, name, shirt_number, x, y, touch_count)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return crerr.Wrap(err, "prepare player_positions")
	}
	defer posStmt.Close()

	for _, p := range n.Positions {
		if _, err := posStmt.Exec(hash, n.TeamID, p.PlayerID, p.Name, p.ShirtNumber, p.X, p.Y, p.TouchCount); err != nil {
			return crerr.Wrapf(err, "insert player_positions for %d", p.PlayerID)
		}
	}

	connStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO pass_connections(match_hash, team_id, from_id, to_id, x, y, end_x, end_y, pass_count)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return crerr.Wrap(err, "prepare pass_connections")
	}
	defer connStmt.Close()

	for _, c := range n.Connections {
		if _, err := connStmt.Exec(hash, n.TeamID, c.FromID, c.ToID, c.X, c.Y, c.EndX, c.EndY, c.PassCount); err != nil {
			return crerr.Wrapf(err, "insert pass_connections %d->%d", c.FromID, c.ToID)
		}
	}
	return nil
}

func insertPlayerStats(tx *sql.Tx, hash string, stats []model.PlayerStats) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO player_stats(
			match_hash, team_id, player_id, name, shirt_number,
			events, touches, passes, passes_completed, progressive_passes,
			key_passes, assists, shots, goals, xg,
			tackles, interceptions, clearances, dribbles
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return crerr.Wrap(err, "prepare player_stats")
	}
	defer stmt.Close()

	for _, s := range stats {
		_, err = stmt.Exec(
			hash, s.TeamID, s.PlayerID, s.Name, s.ShirtNumber,
			s.Events, s.Touches, s.Passes, s.PassesCompleted, s.ProgressivePasses,
			s.KeyPasses, s.Assists, s.Shots, s.Goals, s.XG,
			s.Tackles, s.Interceptions, s.Clearances, s.Dribbles,
		)
		if err != nil {
			return crerr.Wrapf(err, "insert player_stats for %d", s.PlayerID)
		}
	}
	return nil
}

func insertMomentum(tx *sql.Tx, hash string, samples []model.MomentumSample) error {
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO momentum(match_hash, minute_bin, raw_net, net_value) VALUES (?,?,?,?)`)
	if err != nil {
		return crerr.Wrap(err, "prepare momentum")
	}
	defer stmt.Close()

	for _, m := range samples {
		if _, err := stmt.Exec(hash, m.MinuteBin, m.RawNet, m.NetValue); err != nil {
			return crerr.Wrapf(err, "insert momentum bin %d", m.MinuteBin)
		}
	}
	return nil
}

const matchColumns = `hash, match_id, home_id, home_name, away_id, away_name,
	home_score, away_score, event_count, analyzed_at, run_id`

func scanMatch(sc interface{ Scan(...any) error }) (model.MatchRecord, error) {
	var r model.MatchRecord
	err := sc.Scan(&r.Hash, &r.MatchID, &r.HomeID, &r.HomeName, &r.AwayID, &r.AwayName,
		&r.HomeScore, &r.AwayScore, &r.EventCount, &r.AnalyzedAt, &r.RunID)
	return r, err
}

// ListMatches returns all stored analyses, newest first.
func (db *DB) ListMatches() ([]model.MatchRecord, error) {
	rows, err := db.conn.Query(`SELECT ` + matchColumns + ` FROM matches ORDER BY analyzed_at DESC, hash`)
	if err != nil {
		return nil, crerr.Wrap(err, "list matches")
	}
	defer rows.Close()

	var out []model.MatchRecord
	for rows.Next() {
		r, err := scanMatch(rows)
		if err != nil {
			return nil, crerr.Wrap(err, "scan match")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetMatchByPrefix finds the first match whose hash starts with the given
// prefix. It returns nil, nil when nothing matches.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchRecord, error) {
	row := db.conn.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE hash LIKE ? ORDER BY hash LIMIT 1`, prefix+"%")
	r, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, crerr.Wrapf(err, "match by prefix %q", prefix)
	}
	return &r, nil
}

// GetTeamStats returns the stored stat record of one team in a match.
func (db *DB) GetTeamStats(hash string, teamID int64) (model.TeamStatRecord, error) {
	rows, err := db.conn.Query(`SELECT stat, value FROM team_stats WHERE match_hash = ? AND team_id = ?`, hash, teamID)
	if err != nil {
		return nil, crerr.Wrap(err, "team stats")
	}
	defer rows.Close()

	rec := model.TeamStatRecord{}
	for rows.Next() {
		var name string
		var v float64
		if err := rows.Scan(&name, &v); err != nil {
			return nil, crerr.Wrap(err, "scan team stat")
		}
		rec[model.StatName(name)] = v
	}
	return rec, rows.Err()
}

// GetNetwork returns the stored positions and connections of one team.
func (db *DB) GetNetwork(hash string, teamID int64) (match.Network, error) {
	n := match.Network{TeamID: teamID}

	rows, err := db.conn.Query(`
		SELECT player_id, name, shirt_number, x, y, touch_count
		FROM player_positions WHERE match_hash = ? AND team_id = ?
		ORDER BY shirt_number, player_id`, hash, teamID)
	if err != nil {
		return n, crerr.Wrap(err, "player positions")
	}
	for rows.Next() {
		var p model.PlayerPosition
		if err := rows.Scan(&p.PlayerID, &p.Name, &p.ShirtNumber, &p.X, &p.Y, &p.TouchCount); err != nil {
			rows.Close()
			return n, crerr.Wrap(err, "scan player position")
		}
		n.Positions = append(n.Positions, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return n, err
	}

	rows, err = db.conn.Query(`
		SELECT from_id, to_id, x, y, end_x, end_y, pass_count
		FROM pass_connections WHERE match_hash = ? AND team_id = ?
		ORDER BY pass_count DESC, from_id, to_id`, hash, teamID)
	if err != nil {
		return n, crerr.Wrap(err, "pass connections")
	}
	defer rows.Close()
	for rows.Next() {
		var c model.PassConnection
		if err := rows.Scan(&c.FromID, &c.ToID, &c.X, &c.Y, &c.EndX, &c.EndY, &c.PassCount); err != nil {
			return n, crerr.Wrap(err, "scan pass connection")
		}
		n.Connections = append(n.Connections, c)
	}
	return n, rows.Err()
}

// GetPlayerStats returns the stored player lines of one team, busiest first.
func (db *DB) GetPlayerStats(hash string, teamID int64) ([]model.PlayerStats, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, team_id, name, shirt_number,
		       events, touches, passes, passes_completed, progressive_passes,
		       key_passes, assists, shots, goals, xg,
		       tackles, interceptions, clearances, dribbles
		FROM player_stats WHERE match_hash = ? AND team_id = ?
		ORDER BY events DESC, player_id`, hash, teamID)
	if err != nil {
		return nil, crerr.Wrap(err, "player stats")
	}
	defer rows.Close()

	var out []model.PlayerStats
	for rows.Next() {
		var s model.PlayerStats
		if err := rows.Scan(
			&s.PlayerID, &s.TeamID, &s.Name, &s.ShirtNumber,
			&s.Events, &s.Touches, &s.Passes, &s.PassesCompleted, &s.ProgressivePasses,
			&s.KeyPasses, &s.Assists, &s.Shots, &s.Goals, &s.XG,
			&s.Tackles, &s.Interceptions, &s.Clearances, &s.Dribbles,
		); err != nil {
			return nil, crerr.Wrap(err, "scan player stats")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMomentum returns the stored momentum series in minute order.
func (db *DB) GetMomentum(hash string) ([]model.MomentumSample, error) {
	rows, err := db.conn.Query(`
		SELECT minute_bin, raw_net, net_value FROM momentum
		WHERE match_hash = ? ORDER BY minute_bin`, hash)
	if err != nil {
		return nil, crerr.Wrap(err, "momentum")
	}
	defer rows.Close()

	var out []model.MomentumSample
	for rows.Next() {
		var m model.MomentumSample
		if err := rows.Scan(&m.MinuteBin, &m.RawNet, &m.NetValue); err != nil {
			return nil, crerr.Wrap(err, "scan momentum")
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetSummary rebuilds the summary of a stored match.
func (db *DB) GetSummary(hash string) (*model.Summary, error) {
	var s model.Summary
	err := db.conn.QueryRow(`
		SELECT match_id, home_id, home_name, home_color, away_id, away_name, away_color,
		       home_score, away_score, home_xg, away_xg, event_count
		FROM matches WHERE hash = ?`, hash).
		Scan(&s.MatchID, &s.Home.ID, &s.Home.Name, &s.Home.Color, &s.Away.ID, &s.Away.Name, &s.Away.Color,
			&s.HomeScore, &s.AwayScore, &s.HomeXG, &s.AwayXG, &s.EventCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, crerr.Wrap(err, "summary")
	}
	if s.HomeStats, err = db.GetTeamStats(hash, s.Home.ID); err != nil {
		return nil, err
	}
	if s.AwayStats, err = db.GetTeamStats(hash, s.Away.ID); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteMatch removes one stored analysis. It reports whether a row existed.
func (db *DB) DeleteMatch(hash string) (bool, error) {
	res, err := db.conn.Exec("DELETE FROM matches WHERE hash = ?", hash)
	if err != nil {
		return false, crerr.Wrap(err, "delete match")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, crerr.Wrap(err, "delete match")
	}
	return n > 0, nil
}

// QueryRaw runs an arbitrary read query and returns every value rendered as text.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, crerr.Wrap(err, "query")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, crerr.Wrap(err, "columns")
	}

	var out [][]string
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, crerr.Wrap(err, "scan row")
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = formatValue(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(timeLayout)
	default:
		return fmt.Sprint(x)
	}
}
