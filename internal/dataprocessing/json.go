package dataprocessing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cast"

	"dataclean/internal/cleaner"
)

// recordsKey is the field holding the records when the payload is an object.
const recordsKey = "records"

// ParseJSON decodes an array of flat JSON objects, or an object whose
// "records" field is such an array. Columns appear in the order their keys
// are first seen.
func ParseJSON(r io.Reader, opts Options) (*cleaner.Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch tok {
	case json.Delim('['):
		return decodeRecords(dec, opts)
	case json.Delim('{'):
		for dec.More() {
			key, err := objectKey(dec)
			if err != nil {
				return nil, err
			}
			if key != recordsKey {
				var skip json.RawMessage
				if err := dec.Decode(&skip); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
				}
				continue
			}
			if err := expectDelim(dec, '['); err != nil {
				return nil, err
			}
			return decodeRecords(dec, opts)
		}
		return nil, fmt.Errorf("object has no %q array: %w", recordsKey, ErrMalformed)
	default:
		return nil, fmt.Errorf("expected array of records: %w", ErrMalformed)
	}
}

// decodeRecords reads objects until the closing bracket of the array.
func decodeRecords(dec *json.Decoder, opts Options) (*cleaner.Dataset, error) {
	var cols []*column
	index := make(map[string]int)
	rows := 0

	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("record %d: %w", rows, err)
		}
		rows++
		if err := opts.checkRows(rows); err != nil {
			return nil, err
		}
		for dec.More() {
			key, err := objectKey(dec)
			if err != nil {
				return nil, err
			}
			var v any
			if err := dec.Decode(&v); err != nil {
				return nil, fmt.Errorf("record %d: %w: %v", rows-1, ErrMalformed, err)
			}
			i, ok := index[key]
			if !ok {
				i = len(cols)
				index[key] = i
				c := &column{name: key}
				for j := 0; j < rows-1; j++ {
					c.addMissing()
				}
				cols = append(cols, c)
			}
			c := cols[i]
			if len(c.cells) == rows {
				return nil, fmt.Errorf("record %d: repeated key %q: %w", rows-1, key, ErrMalformed)
			}
			x, err := jsonCell(v)
			if err != nil {
				return nil, fmt.Errorf("record %d key %q: %w", rows-1, key, err)
			}
			c.add(x)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
		for _, c := range cols {
			if len(c.cells) < rows {
				c.addMissing()
			}
		}
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}

	return buildDataset(rows, cols)
}

// jsonCell converts a decoded JSON value into a cell.
func jsonCell(v any) (cell, error) {
	switch x := v.(type) {
	case nil:
		return cell{}, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return cell{text: x.String(), present: true}, nil
		}
		return cell{text: x.String(), number: f, present: true, numeric: true}, nil
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return cell{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return cell{text: string(b), present: true}, nil
	default:
		s, err := cast.ToStringE(x)
		if err != nil {
			return cell{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return cell{text: s, present: true}, nil
	}
}

func objectKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v: %w", tok, ErrMalformed)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v: %w", want, tok, ErrMalformed)
	}
	return nil
}
