package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
		wantOK bool
	}{
		{name: "empty", values: nil, wantOK: false},
		{name: "single", values: []float64{7}, want: 7, wantOK: true},
		{name: "odd", values: []float64{1, 3, 9}, want: 3, wantOK: true},
		{name: "even", values: []float64{25, 30}, want: 27.5, wantOK: true},
		{name: "negative", values: []float64{-4, -2, 0, 10}, want: -1, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Median(tt.values)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestQuantile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 100}

	tests := []struct {
		name string
		q    float64
		want float64
	}{
		{name: "minimum", q: 0, want: 1},
		{name: "first quartile", q: 0.25, want: 2},
		{name: "median", q: 0.5, want: 3},
		{name: "third quartile", q: 0.75, want: 4},
		{name: "maximum", q: 1, want: 100},
		{name: "interpolated", q: 0.9, want: 61.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Quantile(values, tt.q)
			assert.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	t.Run("empty", func(t *testing.T) {
		_, ok := Quantile(nil, 0.5)
		assert.False(t, ok)
	})

	t.Run("even length interpolates between ranks", func(t *testing.T) {
		got, _ := Quantile([]float64{1, 2, 3, 4}, 0.25)
		assert.InDelta(t, 1.75, got, 1e-9)
	})
}

func TestIQRFences(t *testing.T) {
	f, ok := IQRFences([]float64{1, 2, 3, 4, 100})
	assert.True(t, ok)
	assert.Equal(t, 2.0, f.Q1)
	assert.Equal(t, 4.0, f.Q3)
	assert.Equal(t, 2.0, f.IQR)
	assert.Equal(t, -1.0, f.Lower)
	assert.Equal(t, 7.0, f.Upper)

	assert.True(t, f.Outside(100))
	assert.True(t, f.Outside(-1.5))
	assert.False(t, f.Outside(7))
	assert.False(t, f.Outside(-1))

	_, ok = IQRFences(nil)
	assert.False(t, ok)
}
