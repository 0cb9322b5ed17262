package exporter

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataclean/internal/cleaner"
)

func TestRecordList_MarshalJSON(t *testing.T) {
	ds := cleaner.NewDataset(2)
	require.NoError(t, ds.AddCategorical("z", []cleaner.NullString{cleaner.String("x"), {}}))
	require.NoError(t, ds.AddNumeric("a", []cleaner.NullFloat{cleaner.Float(1), cleaner.Float(2.5)}))

	b, err := json.Marshal(Records(ds))
	require.NoError(t, err)
	assert.Equal(t, `[{"z":"x","a":1},{"z":null,"a":2.5}]`, string(b))
}

func TestRecordList_NonFiniteBecomesNull(t *testing.T) {
	ds := cleaner.NewDataset(1)
	require.NoError(t, ds.AddNumeric("a", []cleaner.NullFloat{cleaner.Float(math.Inf(1))}))

	b, err := json.Marshal(Records(ds))
	require.NoError(t, err)
	assert.Equal(t, `[{"a":null}]`, string(b))
}

func TestRecordList_Empty(t *testing.T) {
	b, err := json.Marshal(Records(cleaner.NewDataset(0)))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))

	b, err = json.Marshal(Records(nil))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
}

func TestRecordList_Maps(t *testing.T) {
	ds := cleaner.NewDataset(1)
	require.NoError(t, ds.AddNumeric("a", []cleaner.NullFloat{cleaner.Float(3)}))

	assert.Equal(t, []map[string]any{{"a": 3.0}}, Records(ds).Maps())
}
