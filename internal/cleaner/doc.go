// Package cleaner profiles and cleans tabular datasets.
//
// A Dataset is column oriented. Every column is classified once as either
// Numeric or Categorical and stores its cells as nullable values of that kind.
// Clean takes a Dataset and returns an imputed copy together with a
// domain.ValidationReport describing the quality issues found in the input:
//
//	cleaned, report := cleaner.Clean(ds)
//
// The report counts rows and columns, missing cells per column, duplicate rows
// and IQR outliers per numeric column. Missing numeric cells are filled with the
// column median, missing categorical cells with "UNKNOWN". Outliers are counted
// on the imputed values.
//
// The package holds no state and performs no I/O, so Clean is safe to call from
// any number of goroutines as long as each call gets its own Dataset.
package cleaner
