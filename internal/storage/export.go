package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for export paths that are neither .csv nor .json.
var ErrUnsupportedFormat = errors.New("unsupported export format")

type exportRow struct {
	Datetime string `json:"datetime"`
	Phase    string `json:"phase"`
	Duration int    `json:"duration"`
}

type rawCopier interface {
	CopyTo(writer io.Writer) error
}

// CheckExportPath returns ErrUnsupportedFormat unless path ends in .csv or .json.
func CheckExportPath(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".json":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Export writes the session log to path in the format named by its extension.
func Export(ctx context.Context, log SessionLog, path string) error {
	if err := CheckExportPath(path); err != nil {
		return err
	}

	var (
		payload []byte
		err     error
	)
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		payload, err = exportCSV(ctx, log)
	} else {
		payload, err = exportJSON(ctx, log)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func exportCSV(ctx context.Context, log SessionLog) ([]byte, error) {
	var buffer bytes.Buffer
	if copier, ok := log.(rawCopier); ok {
		if err := copier.CopyTo(&buffer); err != nil {
			return nil, err
		}
		return buffer.Bytes(), nil
	}

	records, err := log.Records(ctx)
	if err != nil {
		return nil, err
	}
	writer := csv.NewWriter(&buffer)
	for _, record := range records {
		if err := writer.Write(formatCSVRow(record)); err != nil {
			return nil, fmt.Errorf("encode csv export: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("encode csv export: %w", err)
	}
	return buffer.Bytes(), nil
}

func exportJSON(ctx context.Context, log SessionLog) ([]byte, error) {
	records, err := log.Records(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]exportRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, exportRow{
			Datetime: record.Timestamp.Local().Format(CSVTimestampLayout),
			Phase:    record.PhaseLabel(),
			Duration: record.DurationMinutes,
		})
	}

	payload, err := json.MarshalIndent(rows, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode json export: %w", err)
	}
	return payload, nil
}
