package cleaner

import (
	"strconv"
	"strings"

	"dataclean/pkg/contracts/domain"
)

// UnknownCategory replaces missing categorical cells.
const UnknownCategory = "UNKNOWN"

// Clean profiles ds and returns an imputed copy along with the report.
//
// Shape, missing values and duplicates are measured on the input. Outliers
// are measured on the numeric columns after imputation. A numeric column with
// no present values has no median and keeps its missing cells. ds itself is
// left untouched.
func Clean(ds *Dataset) (*Dataset, domain.ValidationReport) {
	report := domain.NewValidationReport()
	if ds == nil {
		return NewDataset(0), report
	}

	report.Rows = ds.Rows()
	report.Columns = ds.NumColumns()

	for _, col := range ds.Columns() {
		if n := countMissing(col); n > 0 {
			report.MissingValues[col.Name] = n
		}
	}

	report.DuplicateRows = CountDuplicateRows(ds)

	cleaned := ds.clone()
	for i := range cleaned.columns {
		impute(&cleaned.columns[i])
	}

	for _, col := range cleaned.Columns() {
		if col.Kind != KindNumeric {
			continue
		}
		if n := countOutliers(col.Numbers); n > 0 {
			report.Outliers[col.Name] = n
		}
	}

	return cleaned, report
}

// Profile returns only the report for ds.
func Profile(ds *Dataset) domain.ValidationReport {
	_, report := Clean(ds)
	return report
}

func countMissing(col Column) int {
	n := 0
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			n++
		}
	}
	return n
}

// CountDuplicateRows returns the number of rows whose cells all equal those
// of an earlier row. Two missing cells are equal.
func CountDuplicateRows(ds *Dataset) int {
	if ds.Rows() == 0 {
		return 0
	}
	seen := make(map[string]struct{}, ds.Rows())
	dups := 0
	var b strings.Builder
	for i := 0; i < ds.Rows(); i++ {
		b.Reset()
		for _, col := range ds.Columns() {
			writeCellKey(&b, col, i)
		}
		key := b.String()
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

// writeCellKey appends an unambiguous encoding of one cell to b.
func writeCellKey(b *strings.Builder, col Column, i int) {
	if col.IsMissing(i) {
		b.WriteByte(0)
		return
	}
	b.WriteByte(1)
	var s string
	if col.Kind == KindNumeric {
		v := col.Numbers[i].Value
		if v == 0 {
			v = 0 // -0 and 0 compare equal
		}
		s = strconv.FormatFloat(v, 'g', -1, 64)
	} else {
		s = col.Strings[i].Value
	}
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

func impute(col *Column) {
	switch col.Kind {
	case KindNumeric:
		median, ok := Median(presentSorted(col.Numbers))
		if !ok {
			return
		}
		for i, v := range col.Numbers {
			if !v.Valid {
				col.Numbers[i] = Float(median)
			}
		}
	case KindCategorical:
		for i, v := range col.Strings {
			if !v.Valid {
				col.Strings[i] = String(UnknownCategory)
			}
		}
	}
}

func countOutliers(values []NullFloat) int {
	fences, ok := IQRFences(presentSorted(values))
	if !ok {
		return 0
	}
	n := 0
	for _, v := range values {
		if v.Valid && fences.Outside(v.Value) {
			n++
		}
	}
	return n
}
