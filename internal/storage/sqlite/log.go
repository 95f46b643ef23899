// Package sqlite provides the SQLite-backed session log.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"deepwork/internal/core/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Log stores completed sessions in a SQLite database.
type Log struct {
	db *sql.DB
}

// Open creates the database at dbPath if needed and runs migrations.
func Open(dbPath string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	log := &Log{db: db}
	if err := log.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return log, nil
}

func (log *Log) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		completed_at TEXT NOT NULL,
		phase TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_completed_at ON sessions(completed_at);
	`
	_, err := log.db.Exec(schema)
	return err
}

// Append inserts one completed session. Records without an ID get a new UUID.
func (log *Log) Append(ctx context.Context, record model.SessionRecord) error {
	id := record.ID
	if id == "" {
		id = uuid.New().String()
	}

	_, err := log.db.ExecContext(ctx,
		`INSERT INTO sessions (id, completed_at, phase, duration_minutes, duration_seconds)
		 VALUES (?, ?, ?, ?, ?)`,
		id, record.Timestamp.UTC().Format(time.RFC3339Nano), string(record.Phase),
		record.DurationMinutes, record.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Records lists every session by completion time, oldest first.
func (log *Log) Records(ctx context.Context) ([]model.SessionRecord, error) {
	rows, err := log.db.QueryContext(ctx,
		`SELECT id, completed_at, phase, duration_minutes, duration_seconds
		 FROM sessions ORDER BY completed_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []model.SessionRecord
	for rows.Next() {
		var (
			record      model.SessionRecord
			completedAt string
			phase       string
		)
		if err := rows.Scan(&record.ID, &completedAt, &phase, &record.DurationMinutes, &record.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		record.Timestamp, err = time.Parse(time.RFC3339Nano, completedAt)
		if err != nil {
			return nil, fmt.Errorf("parse completed_at for %s: %w", record.ID, err)
		}
		record.Phase, err = model.ParsePhase(phase)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", record.ID, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Close closes the database connection.
func (log *Log) Close() error {
	return log.db.Close()
}
