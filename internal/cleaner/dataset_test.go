package cleaner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_AddColumns(t *testing.T) {
	d := NewDataset(2)

	require.NoError(t, d.AddNumeric("n", numbers(1, math.NaN())))
	require.NoError(t, d.AddCategorical("s", strs("a", nil)))

	assert.Equal(t, 2, d.Rows())
	assert.Equal(t, 2, d.NumColumns())
	assert.Equal(t, []string{"n", "s"}, d.Names())
	assert.Equal(t, []any{1.0, "a"}, d.Row(0))
	assert.Equal(t, []any{nil, nil}, d.Row(1))

	n, ok := d.Column("n")
	require.True(t, ok)
	assert.Equal(t, KindNumeric, n.Kind)
	assert.True(t, n.IsMissing(1), "NaN is stored as missing")

	_, ok = d.Column("missing")
	assert.False(t, ok)
}

func TestDataset_AddErrors(t *testing.T) {
	d := NewDataset(2)

	err := d.AddNumeric("n", numbers(1))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	require.NoError(t, d.AddCategorical("s", strs("a", "b")))
	err = d.AddCategorical("s", strs("c", "d"))
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "numeric", KindNumeric.String())
	assert.Equal(t, "categorical", KindCategorical.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
