package dataprocessing

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"dataclean/internal/cleaner"
)

// Format identifies a payload encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

var (
	// ErrUnsupportedFormat is returned for an unknown file extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyInput is returned when the payload has no header row.
	ErrEmptyInput = errors.New("no columns to parse from input")
	// ErrMalformed is returned when the payload is not valid tabular data.
	ErrMalformed = errors.New("malformed tabular data")
	// ErrTooManyRows is returned when the payload exceeds Options.MaxRows.
	ErrTooManyRows = errors.New("row limit exceeded")
)

// Options bounds decoding.
type Options struct {
	// MaxRows is the largest accepted number of data rows. Zero means no limit.
	MaxRows int
}

func (o Options) checkRows(n int) error {
	if o.MaxRows > 0 && n > o.MaxRows {
		return fmt.Errorf("more than %d rows: %w", o.MaxRows, ErrTooManyRows)
	}
	return nil
}

// FormatFromFilename picks the format from the file extension.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnsupportedFormat)
	}
}

// Parse decodes r in the given format.
func Parse(r io.Reader, format Format, opts Options) (*cleaner.Dataset, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r, opts)
	case FormatJSON:
		return ParseJSON(r, opts)
	case FormatXLSX:
		return ParseExcel(r, opts)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
}
