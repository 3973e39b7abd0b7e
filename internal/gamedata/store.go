// Package gamedata provides SQLite-backed persistence for completed search
// runs, so a prior run's top results can be browsed or compared without
// re-running the search (C1's static-table role extended to cover the
// engine's own history).
package gamedata

import (
	"database/sql"
	"encoding/json"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pable/go-cs-metrics/internal/character"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a sql.DB for the run-history store.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at path and applies the
// schema, mirroring the teacher's storage.Open.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// RunRecord summarizes one completed search, written by SaveRun.
type RunRecord struct {
	ID              string
	CreatedAt       time.Time
	SettingsPath    string
	RankBy          string
	CalculationRuns uint64
	Duration        time.Duration
}

// SaveRun persists a run's metadata and its top N candidates in a single
// transaction.
func (db *DB) SaveRun(run RunRecord, top []*character.Character) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO runs(id, created_at, settings_path, rankby, calculation_runs, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339), run.SettingsPath, run.RankBy,
		int64(run.CalculationRuns), run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO run_results(run_id, rank, character_id, value, gear, infusions)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare run_results insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range top {
		gearJSON, err := json.Marshal(c.Gear)
		if err != nil {
			return fmt.Errorf("marshal gear: %w", err)
		}
		infusionsJSON, err := json.Marshal(c.Infusions)
		if err != nil {
			return fmt.Errorf("marshal infusions: %w", err)
		}
		value := 0.0
		if c.Results != nil {
			value = c.Results.Value
		}
		if _, err := stmt.Exec(run.ID, i, c.ID, value, string(gearJSON), string(infusionsJSON)); err != nil {
			return fmt.Errorf("insert run_result %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// StoredResult is one row of a persisted run's results.
type StoredResult struct {
	Rank        int
	CharacterID string
	Value       float64
	Gear        []int
	Infusions   map[string]int
}

// LoadRun returns a run's metadata and its stored results, ordered by rank.
func (db *DB) LoadRun(id string) (RunRecord, []StoredResult, error) {
	var run RunRecord
	var createdAt string
	row := db.conn.QueryRow(`SELECT id, created_at, settings_path, rankby, calculation_runs, duration_ms FROM runs WHERE id = ?`, id)
	var durationMs, calcRuns int64
	if err := row.Scan(&run.ID, &createdAt, &run.SettingsPath, &run.RankBy, &calcRuns, &durationMs); err != nil {
		return RunRecord{}, nil, fmt.Errorf("load run %s: %w", id, err)
	}
	run.CalculationRuns = uint64(calcRuns)
	run.Duration = time.Duration(durationMs) * time.Millisecond
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		run.CreatedAt = t
	}

	rows, err := db.conn.Query(`
		SELECT rank, character_id, value, gear, infusions FROM run_results
		WHERE run_id = ? ORDER BY rank ASC`, id)
	if err != nil {
		return run, nil, fmt.Errorf("load run_results %s: %w", id, err)
	}
	defer rows.Close()

	var out []StoredResult
	for rows.Next() {
		var r StoredResult
		var gearJSON, infusionsJSON string
		if err := rows.Scan(&r.Rank, &r.CharacterID, &r.Value, &gearJSON, &infusionsJSON); err != nil {
			return run, nil, fmt.Errorf("scan run_result: %w", err)
		}
		if err := json.Unmarshal([]byte(gearJSON), &r.Gear); err != nil {
			return run, nil, fmt.Errorf("unmarshal gear: %w", err)
		}
		if err := json.Unmarshal([]byte(infusionsJSON), &r.Infusions); err != nil {
			return run, nil, fmt.Errorf("unmarshal infusions: %w", err)
		}
		out = append(out, r)
	}
	return run, out, rows.Err()
}

// ListRuns returns every stored run's metadata, most recent first.
func (db *DB) ListRuns() ([]RunRecord, error) {
	rows, err := db.conn.Query(`SELECT id, created_at, settings_path, rankby, calculation_runs, duration_ms FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var run RunRecord
		var createdAt string
		var durationMs, calcRuns int64
		if err := rows.Scan(&run.ID, &createdAt, &run.SettingsPath, &run.RankBy, &calcRuns, &durationMs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CalculationRuns = uint64(calcRuns)
		run.Duration = time.Duration(durationMs) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
