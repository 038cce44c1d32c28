// Package storage keeps imported shot datasets in a local SQLite file.
package storage

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DB is the shot store.
type DB struct {
	conn *sql.DB
}

// Open opens the database at path, creating it if needed, and brings the
// schema up to date.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection, so ":memory:" stays a single database.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// migrate applies the schema and upgrades files written before
// datasets.has_league existed.
func (db *DB) migrate() error {
	if _, err := db.conn.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	ok, err := db.hasColumn("datasets", "has_league")
	if err != nil {
		return fmt.Errorf("inspect schema: %w", err)
	}
	if ok {
		return nil
	}
	stmts := []string{
		`ALTER TABLE datasets ADD COLUMN has_league INTEGER NOT NULL DEFAULT 0`,
		`UPDATE datasets SET has_league = 1 WHERE id IN (SELECT dataset_id FROM league_averages)`,
	}
	for _, s := range stmts {
		if _, err := db.conn.Exec(s); err != nil {
			return fmt.Errorf("migrate has_league: %w", err)
		}
	}
	return nil
}

func (db *DB) hasColumn(table, column string) (bool, error) {
	var n int
	err := db.conn.QueryRow(`SELECT COUNT(1) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&n)
	return n > 0, err
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
