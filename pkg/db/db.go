// Package db is the pipeline's run ledger: which transcripts were
// processed, what each backend scored them, and the signals derived.
// Content (cleaned text, per-sentence CSVs) stays on disk; the database
// holds metadata.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection.
type DB struct {
	*sql.DB
	path string
}

// Open opens (or creates) the ledger at path and initializes the schema.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database dir: %w", err)
		}
	}

	conn, err := openDB(path)
	if err != nil {
		return nil, err
	}

	database := &DB{DB: conn, path: path}
	if err := database.InitSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return database, nil
}

func openDB(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

// InitSchema creates tables and indexes if they do not exist.
func (db *DB) InitSchema() error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
