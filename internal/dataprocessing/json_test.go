package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataclean/internal/cleaner"
)

func TestParseJSON_Array(t *testing.T) {
	input := `[
		{"age": 25, "city": "NY"},
		{"city": "NY", "age": null},
		{"age": 30, "active": true}
	]`

	ds, err := ParseJSON(strings.NewReader(input), Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, []string{"age", "city", "active"}, ds.Names())

	age, _ := ds.Column("age")
	assert.Equal(t, cleaner.KindNumeric, age.Kind)
	assert.Equal(t, []any{25.0, nil, 30.0}, []any{age.Value(0), age.Value(1), age.Value(2)})

	city, _ := ds.Column("city")
	assert.True(t, city.IsMissing(2))

	active, _ := ds.Column("active")
	assert.Equal(t, cleaner.KindCategorical, active.Kind)
	assert.True(t, active.IsMissing(0))
	assert.Equal(t, "true", active.Value(2))
}

func TestParseJSON_RecordsObject(t *testing.T) {
	input := `{"source": "upload", "records": [{"x": "1"}, {"x": 2}]}`

	ds, err := ParseJSON(strings.NewReader(input), Options{})
	require.NoError(t, err)

	x, _ := ds.Column("x")
	assert.Equal(t, cleaner.KindCategorical, x.Kind, "a JSON string makes the column categorical")
	assert.Equal(t, "1", x.Value(0))
	assert.Equal(t, "2", x.Value(1))
}

func TestParseJSON_NestedValuesAreText(t *testing.T) {
	ds, err := ParseJSON(strings.NewReader(`[{"tags": ["a", "b"], "meta": {"k": 1}}]`), Options{})
	require.NoError(t, err)

	tags, _ := ds.Column("tags")
	meta, _ := ds.Column("meta")
	assert.Equal(t, `["a","b"]`, tags.Value(0))
	assert.Equal(t, `{"k":1}`, meta.Value(0))
}

func TestParseJSON_EmptyRecords(t *testing.T) {
	ds, err := ParseJSON(strings.NewReader(`[{}, {}]`), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Rows())
	assert.Equal(t, 0, ds.NumColumns())

	ds, err = ParseJSON(strings.NewReader(`[]`), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Rows())
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    Options
		wantErr error
	}{
		{name: "empty", input: "", wantErr: ErrEmptyInput},
		{name: "scalar", input: `42`, wantErr: ErrMalformed},
		{name: "object without records", input: `{"rows": []}`, wantErr: ErrMalformed},
		{name: "array of scalars", input: `[1, 2]`, wantErr: ErrMalformed},
		{name: "truncated", input: `[{"a": 1}`, wantErr: ErrMalformed},
		{name: "repeated key", input: `[{"a": 1, "a": 2}]`, wantErr: ErrMalformed},
		{name: "row limit", input: `[{"a":1},{"a":2}]`, opts: Options{MaxRows: 1}, wantErr: ErrTooManyRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(strings.NewReader(tt.input), tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
