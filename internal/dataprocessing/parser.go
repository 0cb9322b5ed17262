package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"dataclean/internal/cleaner"
)

const utf8BOM = "\ufeff"

// ParseCSV decodes a CSV payload whose first record is the header.
func ParseCSV(r io.Reader, opts Options) (*cleaner.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w: %v", ErrMalformed, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	return parseRows(header, func() ([]string, error) {
		record, err := reader.Read()
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return record, err
	}, opts)
}

// parseRows feeds text records into columns. next returns io.EOF when done.
func parseRows(header []string, next func() ([]string, error), opts Options) (*cleaner.Dataset, error) {
	names := dedupeHeader(header)
	cols := make([]*column, len(names))
	for i, name := range names {
		cols[i] = &column{name: name}
	}

	rows := 0
	for {
		record, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) > len(cols) {
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d: %w", rows+2, len(cols), len(record), ErrMalformed)
		}
		rows++
		if err := opts.checkRows(rows); err != nil {
			return nil, err
		}
		for i, c := range cols {
			if i < len(record) {
				c.addText(record[i])
			} else {
				c.addMissing()
			}
		}
	}

	return buildDataset(rows, cols)
}
