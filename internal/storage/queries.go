package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pable/go-shotcharts/internal/model"
)

// InsertDataset stores a dataset with its shots (in order) and optional
// league averages in a single transaction. Uses INSERT OR REPLACE so
// re-importing the same id is idempotent. A nil league means the source had
// no averages; an empty non-nil one is kept as such.
func (db *DB) InsertDataset(ds model.Dataset, shots []model.Shot, league model.LeagueAverage) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM shots WHERE dataset_id = ?`, ds.ID); err != nil {
		return fmt.Errorf("clear shots: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM league_averages WHERE dataset_id = ?`, ds.ID); err != nil {
		return fmt.Errorf("clear league averages: %w", err)
	}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO datasets(id, player_id, player_name, season, season_type, source, imported_at, has_league)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ds.ID, ds.PlayerID, ds.PlayerName, ds.Season, ds.SeasonType, ds.Source,
		ds.ImportedAt.UTC().Format(time.RFC3339), boolInt(league != nil),
	)
	if err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}

	shotStmt, err := tx.Prepare(`
		INSERT INTO shots(dataset_id, seq, loc_x, loc_y, made, zone_basic, zone_area, zone_range)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer shotStmt.Close()

	for i, s := range shots {
		_, err = shotStmt.Exec(ds.ID, i, s.LocX, s.LocY, boolInt(s.Made),
			s.Zone.Basic, s.Zone.Area, s.Zone.Range)
		if err != nil {
			return fmt.Errorf("insert shot %d: %w", i, err)
		}
	}

	if len(league) > 0 {
		leagueStmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO league_averages(dataset_id, zone_basic, zone_area, zone_range, fg_pct)
			VALUES (?,?,?,?,?)`)
		if err != nil {
			return err
		}
		defer leagueStmt.Close()

		for z, pct := range league {
			if _, err := leagueStmt.Exec(ds.ID, z.Basic, z.Area, z.Range, pct); err != nil {
				return fmt.Errorf("insert league average %s: %w", z, err)
			}
		}
	}
	return tx.Commit()
}

// ListDatasets returns all stored datasets, newest import first.
func (db *DB) ListDatasets() ([]model.Dataset, error) {
	rows, err := db.conn.Query(`
		SELECT d.id, d.player_id, d.player_name, d.season, d.season_type, d.source, d.imported_at,
		       (SELECT COUNT(1) FROM shots s WHERE s.dataset_id = d.id)
		FROM datasets d ORDER BY d.imported_at DESC, d.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Dataset
	for rows.Next() {
		var d model.Dataset
		var importedAt string
		if err := rows.Scan(&d.ID, &d.PlayerID, &d.PlayerName, &d.Season, &d.SeasonType,
			&d.Source, &importedAt, &d.ShotCount); err != nil {
			return nil, err
		}
		d.ImportedAt = parseTime(importedAt)
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDatasetByPrefix finds the first dataset whose id starts with the given
// prefix. Returns nil, nil if there is none.
func (db *DB) GetDatasetByPrefix(prefix string) (*model.Dataset, error) {
	var d model.Dataset
	var importedAt string
	err := db.conn.QueryRow(`
		SELECT d.id, d.player_id, d.player_name, d.season, d.season_type, d.source, d.imported_at,
		       (SELECT COUNT(1) FROM shots s WHERE s.dataset_id = d.id)
		FROM datasets d WHERE substr(d.id, 1, length(?)) = ? ORDER BY d.id LIMIT 1`, prefix, prefix).
		Scan(&d.ID, &d.PlayerID, &d.PlayerName, &d.Season, &d.SeasonType,
			&d.Source, &importedAt, &d.ShotCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d.ImportedAt = parseTime(importedAt)
	return &d, nil
}

// GetShots returns a dataset's shots in their original order.
func (db *DB) GetShots(datasetID string) ([]model.Shot, error) {
	rows, err := db.conn.Query(`
		SELECT loc_x, loc_y, made, zone_basic, zone_area, zone_range
		FROM shots WHERE dataset_id = ? ORDER BY seq`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Shot
	for rows.Next() {
		var s model.Shot
		var made int
		if err := rows.Scan(&s.LocX, &s.LocY, &made, &s.Zone.Basic, &s.Zone.Area, &s.Zone.Range); err != nil {
			return nil, err
		}
		s.Made = made != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetLeagueAverage returns the league averages stored with a dataset. It
// returns nil if the dataset was imported without averages, and an empty map
// if it was imported with an empty table.
func (db *DB) GetLeagueAverage(datasetID string) (model.LeagueAverage, error) {
	var hasLeague int
	err := db.conn.QueryRow(`SELECT has_league FROM datasets WHERE id = ?`, datasetID).Scan(&hasLeague)
	if err == sql.ErrNoRows || (err == nil && hasLeague == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(`
		SELECT zone_basic, zone_area, zone_range, fg_pct
		FROM league_averages WHERE dataset_id = ?`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(model.LeagueAverage)
	for rows.Next() {
		var z model.ZoneKey
		var pct float64
		if err := rows.Scan(&z.Basic, &z.Area, &z.Range, &pct); err != nil {
			return nil, err
		}
		out[z] = pct
	}
	return out, rows.Err()
}

// DeleteDataset removes a dataset and everything stored with it. Reports
// whether a dataset was deleted.
func (db *DB) DeleteDataset(id string) (bool, error) {
	res, err := db.conn.Exec(`DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// QueryRaw runs an arbitrary query and returns column names and rows
// rendered as strings. NULLs render as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch t := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(t)
			default:
				row[i] = fmt.Sprint(t)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
