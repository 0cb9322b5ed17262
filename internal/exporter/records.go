package exporter

import (
	"bytes"
	"encoding/json"
	"math"

	"dataclean/internal/cleaner"
)

// RecordList encodes a dataset as a JSON array of row objects.
type RecordList struct {
	ds *cleaner.Dataset
}

// Records wraps ds for JSON encoding.
func Records(ds *cleaner.Dataset) RecordList {
	return RecordList{ds: ds}
}

// MarshalJSON writes one object per row with keys in column order. Non-finite
// numbers, which JSON cannot carry, are written as null.
func (rl RecordList) MarshalJSON() ([]byte, error) {
	if rl.ds == nil {
		return []byte("[]"), nil
	}

	cols := rl.ds.Columns()
	keys := make([][]byte, len(cols))
	for j, col := range cols {
		k, err := json.Marshal(col.Name)
		if err != nil {
			return nil, err
		}
		keys[j] = k
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < rl.ds.Rows(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range cols {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.Write(keys[j])
			buf.WriteByte(':')
			v := col.Value(i)
			if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
				v = nil
			}
			b, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Maps returns the rows as plain maps, losing column order.
func (rl RecordList) Maps() []map[string]any {
	if rl.ds == nil {
		return []map[string]any{}
	}
	out := make([]map[string]any, rl.ds.Rows())
	names := rl.ds.Names()
	for i := range out {
		row := rl.ds.Row(i)
		m := make(map[string]any, len(names))
		for j, name := range names {
			m[name] = row[j]
		}
		out[i] = m
	}
	return out
}
