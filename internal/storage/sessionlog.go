package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"deepwork/internal/core/model"
	"deepwork/internal/storage/sqlite"
)

const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"

	CSVLogFileName    = "deepwork_log.csv"
	SQLiteLogFileName = "deepwork_log.db"
)

// SessionLog is the append-only history of completed phases.
type SessionLog interface {
	Append(ctx context.Context, record model.SessionRecord) error
	Records(ctx context.Context) ([]model.SessionRecord, error)
	Close() error
}

// OpenSessionLog opens the session log for the given backend inside dataDir.
// An empty backend selects CSV.
func OpenSessionLog(backend, dataDir string) (SessionLog, error) {
	switch backend {
	case "", BackendCSV:
		return NewCSVLog(filepath.Join(dataDir, CSVLogFileName)), nil
	case BackendSQLite:
		log, err := sqlite.Open(filepath.Join(dataDir, SQLiteLogFileName))
		if err != nil {
			return nil, err
		}
		return log, nil
	default:
		return nil, fmt.Errorf("unknown session log backend %q", backend)
	}
}
