package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"deepwork/internal/core/model"
)

// CSVTimestampLayout is the timestamp format of the first column.
const CSVTimestampLayout = "2006-01-02 15:04:05"

// CSVLog stores one row per completed phase: timestamp, phase label, minutes.
type CSVLog struct {
	path string
	mu   sync.Mutex
}

// NewCSVLog creates a log backed by the file at path. The file is created on first append.
func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

// Path returns the log file location.
func (log *CSVLog) Path() string {
	return log.path
}

// Append writes one row at the end of the file.
func (log *CSVLog) Append(ctx context.Context, record model.SessionRecord) error {
	log.mu.Lock()
	defer log.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(log.path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(log.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}

	writer := csv.NewWriter(file)
	writeErr := writer.Write(formatCSVRow(record))
	if writeErr == nil {
		writer.Flush()
		writeErr = writer.Error()
	}
	closeErr := file.Close()

	if writeErr != nil {
		return fmt.Errorf("append session log: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close session log: %w", closeErr)
	}
	return nil
}

// Records reads every row in file order. A missing file is an empty log.
func (log *CSVLog) Records(ctx context.Context) ([]model.SessionRecord, error) {
	log.mu.Lock()
	defer log.mu.Unlock()

	file, err := os.Open(log.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open session log: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var records []model.SessionRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read session log %s: %w", log.path, err)
		}
		line, _ := reader.FieldPos(0)

		record, err := parseCSVRow(row)
		if err != nil {
			return nil, fmt.Errorf("session log %s line %d: %w", log.path, line, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// CopyTo writes the raw log file to writer.
func (log *CSVLog) CopyTo(writer io.Writer) error {
	log.mu.Lock()
	defer log.mu.Unlock()

	file, err := os.Open(log.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open session log: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(writer, file); err != nil {
		return fmt.Errorf("copy session log: %w", err)
	}
	return nil
}

// Close is a no-op; the file is opened per operation.
func (log *CSVLog) Close() error {
	return nil
}

func formatCSVRow(record model.SessionRecord) []string {
	return []string{
		record.Timestamp.Local().Format(CSVTimestampLayout),
		record.PhaseLabel(),
		strconv.Itoa(record.DurationMinutes),
	}
}

func parseCSVRow(row []string) (model.SessionRecord, error) {
	if len(row) != 3 {
		return model.SessionRecord{}, fmt.Errorf("expected 3 fields, got %d", len(row))
	}

	timestamp, err := time.ParseInLocation(CSVTimestampLayout, strings.TrimSpace(row[0]), time.Local)
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("parse timestamp: %w", err)
	}
	phase, err := model.ParsePhase(row[1])
	if err != nil {
		return model.SessionRecord{}, err
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("parse duration: %w", err)
	}

	return model.SessionRecord{
		Timestamp:       timestamp,
		Phase:           phase,
		DurationMinutes: minutes,
		DurationSeconds: minutes * 60,
		Label:           strings.TrimSpace(row[1]),
	}, nil
}
