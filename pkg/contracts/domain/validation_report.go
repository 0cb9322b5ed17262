package domain

// ValidationReport describes the quality issues found in a dataset before it
// was cleaned. The JSON field names are part of the public API.
type ValidationReport struct {
	Rows          int            `json:"rows" validate:"min=0"`
	Columns       int            `json:"columns" validate:"min=0"`
	MissingValues map[string]int `json:"missing_values" validate:"required,dive,gt=0"`
	DuplicateRows int            `json:"duplicate_rows" validate:"min=0,ltefield=Rows"`
	Outliers      map[string]int `json:"outliers" validate:"required,dive,gt=0"`
}

// NewValidationReport returns a zero report with non-nil maps, so that empty
// maps serialize as {} rather than null.
func NewValidationReport() ValidationReport {
	return ValidationReport{
		MissingValues: make(map[string]int),
		Outliers:      make(map[string]int),
	}
}

// TotalMissing sums the missing cell counts over all columns.
func (r ValidationReport) TotalMissing() int {
	total := 0
	for _, n := range r.MissingValues {
		total += n
	}
	return total
}

// TotalOutliers sums the outlier counts over all columns.
func (r ValidationReport) TotalOutliers() int {
	total := 0
	for _, n := range r.Outliers {
		total += n
	}
	return total
}

// HasIssues reports whether any missing value, duplicate or outlier was found.
func (r ValidationReport) HasIssues() bool {
	return len(r.MissingValues) > 0 || len(r.Outliers) > 0 || r.DuplicateRows > 0
}
