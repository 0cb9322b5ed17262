package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"dataclean/internal/cleaner"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
	Comma     rune
}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_writer"))}
}

// Write writes the header and every row of ds to w.
func (cw *CSVWriter) Write(w io.Writer, ds *cleaner.Dataset, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if options.Comma != 0 {
		writer.Comma = options.Comma
	}

	if ds.NumColumns() > 0 {
		if err := writer.Write(ds.Names()); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	cols := ds.Columns()
	record := make([]string, len(cols))
	for i := 0; i < ds.Rows() && len(cols) > 0; i++ {
		for j, col := range cols {
			record[j] = formatCell(col.Value(i))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes ds to filePath, creating parent directories as needed.
func (cw *CSVWriter) WriteFile(filePath string, ds *cleaner.Dataset, options WriteOptions) error {
	cw.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", ds.Rows()),
		slog.Int("column_count", ds.NumColumns()))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	if err := cw.Write(file, ds, options); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
