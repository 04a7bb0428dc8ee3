// Package store keeps the history of scenario runs in a SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory history.
const MemoryPath = ":memory:"

// connPragmas run on every pooled connection.
var connPragmas = []string{
	"busy_timeout(5000)",
	"foreign_keys(1)",
}

// DB is the run history database.
type DB struct {
	*sql.DB
	path string
}

// DefaultDBPath returns $XDG_DATA_HOME/a11y-conform/history.db, falling back
// to ~/.local/share.
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "a11y-conform", "history.db"), nil
}

// dsn builds the modernc.org/sqlite data source name for path. File
// databases use write-ahead logging.
func dsn(path string) string {
	params := make([]string, 0, len(connPragmas)+1)
	if path != MemoryPath {
		params = append(params, "_pragma=journal_mode(WAL)")
	}
	for _, p := range connPragmas {
		params = append(params, "_pragma="+p)
	}
	return "file:" + path + "?" + strings.Join(params, "&")
}

// Open opens the history at path, creating the file and its directory as
// needed, and brings the schema up to date. An empty path means
// DefaultDBPath.
func Open(path string) (*DB, error) {
	if path == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("history directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	if path == MemoryPath {
		// Every connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	}

	db := &DB{DB: sqlDB, path: path}
	if err := db.init(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	return db, nil
}

func (db *DB) init() error {
	if err := db.Ping(); err != nil {
		return err
	}
	return db.migrate()
}

// Path returns the database file path, or MemoryPath.
func (db *DB) Path() string {
	return db.path
}
