package store

import (
	"fmt"
)

type migration struct {
	version int
	name    string
	up      string
}

// migrations are applied in order; append new ones to the end.
var migrations = []migration{
	{
		version: 1,
		name:    "create_runs_table",
		up: `
CREATE TABLE runs (
    id            TEXT PRIMARY KEY,
    scenario      TEXT NOT NULL,
    control       TEXT,
    sample        TEXT,
    pass          INTEGER NOT NULL,
    error         TEXT,
    steps         INTEGER NOT NULL,
    discrepancies TEXT NOT NULL DEFAULT '[]',
    comments      TEXT NOT NULL DEFAULT '[]',
    started_at    TEXT NOT NULL,
    duration_ns   INTEGER NOT NULL
);

CREATE INDEX idx_runs_scenario ON runs(scenario);
CREATE INDEX idx_runs_started_at ON runs(started_at);
`,
	},
	{
		version: 2,
		name:    "add_runs_fixture",
		up:      `ALTER TABLE runs ADD COLUMN fixture TEXT;`,
	},
}

func (db *DB) migrate() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	current, err := db.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := db.runMigration(m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
	}
	return nil
}

func (db *DB) runMigration(m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.up); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.version, m.name); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return tx.Commit()
}

// SchemaVersion returns the current schema version, or 0 if no migrations have been applied.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}
