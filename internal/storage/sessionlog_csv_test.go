package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"deepwork/internal/core/model"
)

func workRecord(at time.Time, minutes int) model.SessionRecord {
	return model.SessionRecord{Timestamp: at, Phase: model.PhaseWork, DurationMinutes: minutes, DurationSeconds: minutes * 60}
}

func TestCSVLogMissingFileIsEmpty(t *testing.T) {
	log := NewCSVLog(filepath.Join(t.TempDir(), CSVLogFileName))
	records, err := log.Records(context.Background())
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty log, got %d records", len(records))
	}

	var buffer bytes.Buffer
	if err := log.CopyTo(&buffer); err != nil || buffer.Len() != 0 {
		t.Fatalf("expected empty copy, got %q / %v", buffer.String(), err)
	}
}

func TestCSVLogAppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", CSVLogFileName)
	log := NewCSVLog(path)
	ctx := context.Background()
	at := time.Date(2024, 3, 4, 9, 25, 0, 0, time.Local)

	if err := log.Append(ctx, workRecord(at, 25)); err != nil {
		t.Fatalf("append work: %v", err)
	}
	rest := model.SessionRecord{Timestamp: at.Add(5 * time.Minute), Phase: model.PhaseBreak, DurationMinutes: 5, DurationSeconds: 300}
	if err := log.Append(ctx, rest); err != nil {
		t.Fatalf("append break: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	want := "2024-03-04 09:25:00,Work,25\n2024-03-04 09:30:00,Break,5\n"
	if string(raw) != want {
		t.Fatalf("unexpected file content:\n%s", raw)
	}

	records, err := log.Records(ctx)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 2 || records[1].Phase != model.PhaseBreak || !records[0].Timestamp.Equal(at) {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestCSVLogReadsLegacyLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), CSVLogFileName)
	writeFile(t, path, "2024-01-01 10:00:00,Travail,50\n2024-01-01 10:50:00,Repos,10\n")

	records, err := NewCSVLog(path).Records(context.Background())
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 2 || records[0].Phase != model.PhaseWork || records[1].Phase != model.PhaseBreak {
		t.Fatalf("unexpected records %+v", records)
	}
	if records[0].DurationMinutes != 50 {
		t.Fatalf("expected 50 minutes, got %d", records[0].DurationMinutes)
	}
}

func TestCSVLogMalformedRowNamesLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), CSVLogFileName)
	writeFile(t, path, "2024-01-01 10:00:00,Work,25\nnot a row\n")

	_, err := NewCSVLog(path).Records(context.Background())
	if err == nil {
		t.Fatal("expected malformed row error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected error naming line 2, got %v", err)
	}
}
