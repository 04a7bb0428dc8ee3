package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/a11y-conform/internal/scenario"
)

// Run is a stored scenario result together with the fixture it ran against.
type Run struct {
	scenario.Result `yaml:",inline"`
	Fixture         string `yaml:"fixture,omitempty" json:"fixture,omitempty"`
}

// ErrRunNotFound is returned when no run has the given ID.
var ErrRunNotFound = errors.New("run not found")

// timeLayout is fixed width so started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SaveRun inserts a run.
func (db *DB) SaveRun(run *Run) error {
	if run.ID == "" {
		return errors.New("run has no id")
	}
	discrepancies, err := json.Marshal(nonNil(run.Discrepancies))
	if err != nil {
		return fmt.Errorf("failed to encode discrepancies: %w", err)
	}
	comments, err := json.Marshal(nonNil(run.Comments))
	if err != nil {
		return fmt.Errorf("failed to encode comments: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO runs (
			id, scenario, control, sample, pass, error, steps,
			discrepancies, comments, started_at, duration_ns, fixture
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Scenario,
		nullString(run.Control),
		nullString(run.Sample),
		run.Pass,
		nullString(run.Error),
		run.Steps,
		string(discrepancies),
		string(comments),
		run.StartedAt.UTC().Format(timeLayout),
		int64(run.Duration),
		nullString(run.Fixture),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

const runColumns = `id, scenario, control, sample, pass, error, steps,
	discrepancies, comments, started_at, duration_ns, fixture`

// GetRun retrieves a run by ID.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListOptions specifies filters for listing runs.
type ListOptions struct {
	Scenario string    // exact scenario name
	Control  string    // exact automation id
	Pass     *bool     // only passing or only failing runs
	Since    time.Time // runs started at or after this time
	Limit    int       // 0 means no limit
}

func (opts ListOptions) where() (string, []any) {
	var conditions []string
	var args []any

	if opts.Scenario != "" {
		conditions = append(conditions, "scenario = ?")
		args = append(args, opts.Scenario)
	}
	if opts.Control != "" {
		conditions = append(conditions, "control = ?")
		args = append(args, opts.Control)
	}
	if opts.Pass != nil {
		conditions = append(conditions, "pass = ?")
		args = append(args, *opts.Pass)
	}
	if !opts.Since.IsZero() {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, opts.Since.UTC().Format(timeLayout))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// ListRuns returns the runs matching opts, newest first.
func (db *DB) ListRuns(opts ListOptions) ([]*Run, error) {
	where, args := opts.where()
	query := "SELECT " + runColumns + " FROM runs" + where + " ORDER BY started_at DESC, id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// CountRuns returns the number of runs matching opts. Limit is ignored.
func (db *DB) CountRuns(opts ListOptions) (int, error) {
	where, args := opts.where()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM runs"+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// PruneRuns deletes runs started before the given time and returns how many were removed.
func (db *DB) PruneRuns(before time.Time) (int64, error) {
	result, err := db.Exec("DELETE FROM runs WHERE started_at < ?", before.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var run Run
	var control, sample, runErr, fixture sql.NullString
	var discrepancies, comments, startedAt string
	var duration int64

	err := s.Scan(
		&run.ID,
		&run.Scenario,
		&control,
		&sample,
		&run.Pass,
		&runErr,
		&run.Steps,
		&discrepancies,
		&comments,
		&startedAt,
		&duration,
		&fixture,
	)
	if err != nil {
		return nil, err
	}

	run.Control = control.String
	run.Sample = sample.String
	run.Error = runErr.String
	run.Fixture = fixture.String
	run.Duration = time.Duration(duration)

	if err := json.Unmarshal([]byte(discrepancies), &run.Discrepancies); err != nil {
		return nil, fmt.Errorf("failed to decode discrepancies: %w", err)
	}
	if err := json.Unmarshal([]byte(comments), &run.Comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	if len(run.Discrepancies) == 0 {
		run.Discrepancies = nil
	}
	if len(run.Comments) == 0 {
		run.Comments = nil
	}

	run.StartedAt, err = time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	return &run, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
