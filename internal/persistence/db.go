// Package persistence provides SQLite-based trajectory recording: sampled
// agent positions, behavior transitions, and layout metadata, for replay
// and offline inspection of simulation runs.
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/alttabdlt/ai-arena-sub001/internal/sim"
)

// DB wraps a SQLite connection for run recording.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		agent_id TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		heading_x REAL NOT NULL,
		heading_y REAL NOT NULL,
		state TEXT NOT NULL,
		state_timer REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transitions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		agent_id TEXT NOT NULL,
		from_state TEXT NOT NULL,
		to_state TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_samples_tick ON samples(tick);
	CREATE INDEX IF NOT EXISTS idx_samples_agent ON samples(agent_id);
	CREATE INDEX IF NOT EXISTS idx_transitions_tick ON transitions(tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SampleAgents appends one position sample per agent at the given tick.
func (db *DB) SampleAgents(tick uint64, views []sim.AgentView) error {
	if len(views) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO samples
		(tick, agent_id, x, y, heading_x, heading_y, state, state_timer)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, v := range views {
		_, err := stmt.Exec(
			tick, v.ID, v.Pos.X, v.Pos.Y,
			v.Heading.X, v.Heading.Y,
			v.State.String(), v.StateTimer,
		)
		if err != nil {
			return fmt.Errorf("insert sample for %s: %w", v.ID, err)
		}
	}

	return tx.Commit()
}

// SaveTransitions appends behavior transitions to the database.
func (db *DB) SaveTransitions(transitions []sim.Transition) error {
	if len(transitions) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range transitions {
		_, err := tx.Exec(
			"INSERT INTO transitions (tick, agent_id, from_state, to_state) VALUES (?, ?, ?, ?)",
			t.Tick, t.AgentID, t.From.String(), t.To.String(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in run metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// TransitionRow is one recorded transition, for inspection queries.
type TransitionRow struct {
	Tick      uint64 `db:"tick"`
	AgentID   string `db:"agent_id"`
	FromState string `db:"from_state"`
	ToState   string `db:"to_state"`
}

// RecentTransitions returns the most recent N behavior transitions.
func (db *DB) RecentTransitions(limit int) ([]TransitionRow, error) {
	var rows []TransitionRow
	err := db.conn.Select(&rows,
		"SELECT tick, agent_id, from_state, to_state FROM transitions ORDER BY id DESC LIMIT ?",
		limit,
	)
	return rows, err
}

// RecordTick flushes one tick's worth of simulation output: position
// samples plus any transitions drained since the last flush.
func (db *DB) RecordTick(s *sim.Simulation) error {
	if err := db.SampleAgents(s.Tick(), s.Views()); err != nil {
		return fmt.Errorf("sample agents: %w", err)
	}
	if err := db.SaveTransitions(s.DrainTransitions()); err != nil {
		return fmt.Errorf("save transitions: %w", err)
	}
	return nil
}

// SampleCount returns the number of recorded position samples.
func (db *DB) SampleCount() (int64, error) {
	var n int64
	err := db.conn.Get(&n, "SELECT COUNT(*) FROM samples")
	return n, err
}

// LogSummary writes a recording summary to the log.
func (db *DB) LogSummary() {
	n, err := db.SampleCount()
	if err != nil {
		slog.Warn("sample count failed", "error", err)
		return
	}
	slog.Info("recording summary", "samples", n)
}
