package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deepwork/internal/storage"
)

func logWithRows(t *testing.T, content string) storage.SessionLog {
	t.Helper()
	path := filepath.Join(t.TempDir(), storage.CSVLogFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return storage.NewCSVLog(path)
}

func TestExportToUnsupportedFileRemovesIt(t *testing.T) {
	log := logWithRows(t, "2024-01-01 10:00:00,Work,25\n")

	// The save dialog creates the file before the export runs.
	target := filepath.Join(t.TempDir(), "sessions.txt")
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		t.Fatalf("create target: %v", err)
	}

	err := exportToChosenFile(context.Background(), log, target)
	if !errors.Is(err, storage.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, statErr := os.Stat(target); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected the empty file to be removed, stat gave %v", statErr)
	}
}

func TestExportToChosenJSONFile(t *testing.T) {
	log := logWithRows(t, "2024-01-01 10:00:00,Work,25\n")

	target := filepath.Join(t.TempDir(), "sessions.json")
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		t.Fatalf("create target: %v", err)
	}

	if err := exportToChosenFile(context.Background(), log, target); err != nil {
		t.Fatalf("export: %v", err)
	}
	exported, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(exported), `"duration": 25`) {
		t.Fatalf("unexpected export:\n%s", exported)
	}
}
