package dataprocessing

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"dataclean/internal/cleaner"
)

// ParseExcel decodes the first worksheet of an XLSX workbook. The first row
// is the header and cells follow the CSV rules.
func ParseExcel(r io.Reader, opts Options) (*cleaner.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w: %v", ErrMalformed, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyInput
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w: %v", sheets[0], ErrMalformed, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrEmptyInput
	}
	header, err := rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read header: %w: %v", ErrMalformed, err)
	}
	if len(header) == 0 {
		return nil, ErrEmptyInput
	}

	return parseRows(header, func() ([]string, error) {
		for rows.Next() {
			record, err := rows.Columns(excelize.Options{RawCellValue: true})
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			if blankRecord(record) {
				continue
			}
			return record, nil
		}
		if err := rows.Error(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return nil, io.EOF
	}, opts)
}

// blankRecord reports whether every cell of a worksheet row is empty.
func blankRecord(record []string) bool {
	for _, s := range record {
		if s != "" {
			return false
		}
	}
	return true
}
