// Package storage persists scan results in a SQLite database under the
// workspace's .elavonx directory, so repeated scans of an unchanged tree
// survive process restarts.
package storage

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	elxerrors "elavonx/internal/errors"
)

// DB wraps the SQLite connection for the scan cache.
type DB struct {
	conn   *sql.DB
	logger *slog.Logger
	dbPath string
}

// Open opens or creates the cache database at <root>/.elavonx/elavonx.db.
func Open(root string, logger *slog.Logger) (*DB, error) {
	dir := filepath.Join(root, ".elavonx")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, elxerrors.Wrap(elxerrors.FileAccess, "failed to create .elavonx directory", err)
	}

	dbPath := filepath.Join(dir, "elavonx.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, elxerrors.Wrap(elxerrors.InternalError, "failed to open cache database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, elxerrors.Wrap(elxerrors.InternalError, "failed to set pragma", err)
		}
	}

	db := &DB{conn: conn, logger: logger, dbPath: dbPath}
	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Debug("cache database ready", "path", dbPath)
	return db, nil
}

func (db *DB) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scan_cache (
		path       TEXT PRIMARY KEY,
		digest     TEXT NOT NULL,
		records    BLOB NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_scan_cache_digest ON scan_cache(digest);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return elxerrors.Wrap(elxerrors.InternalError, "failed to initialize schema", err)
	}
	return nil
}

// Path returns the database file location.
func (db *DB) Path() string {
	return db.dbPath
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
