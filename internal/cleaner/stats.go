package cleaner

import (
	"math"
	"sort"
)

// presentSorted returns the non-missing values of a numeric column in
// ascending order.
func presentSorted(values []NullFloat) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Valid {
			out = append(out, v.Value)
		}
	}
	sort.Float64s(out)
	return out
}

// Median returns the median of sorted values. It returns false for an empty
// slice.
func Median(sorted []float64) (float64, bool) {
	n := len(sorted)
	if n == 0 {
		return 0, false
	}
	if n%2 == 1 {
		return sorted[n/2], true
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, true
}

// Quantile returns the q-th quantile of sorted values, interpolating linearly
// between the two closest ranks. It returns false for an empty slice.
func Quantile(sorted []float64, q float64) (float64, bool) {
	n := len(sorted)
	if n == 0 {
		return 0, false
	}
	if q <= 0 {
		return sorted[0], true
	}
	if q >= 1 {
		return sorted[n-1], true
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac, true
}

// Fences holds the Tukey fences of a numeric column.
type Fences struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Lower float64
	Upper float64
}

// IQRFences computes Q1, Q3 and the 1.5*IQR fences of sorted values.
func IQRFences(sorted []float64) (Fences, bool) {
	q1, ok := Quantile(sorted, 0.25)
	if !ok {
		return Fences{}, false
	}
	q3, _ := Quantile(sorted, 0.75)
	iqr := q3 - q1
	return Fences{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - 1.5*iqr,
		Upper: q3 + 1.5*iqr,
	}, true
}

// Outside reports whether v lies strictly beyond either fence.
func (f Fences) Outside(v float64) bool {
	return v < f.Lower || v > f.Upper
}
