package cleaner

import (
	"errors"
	"fmt"
	"math"
)

// Kind classifies a column by the type of its non-missing values.
type Kind int

const (
	// KindNumeric columns hold floating point or integer values.
	KindNumeric Kind = iota + 1
	// KindCategorical columns hold any other value, stored as text.
	KindCategorical
)

// String returns the kind name used in logs and errors.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

var (
	// ErrLengthMismatch is returned when a column does not have one value per row.
	ErrLengthMismatch = errors.New("column length does not match row count")
	// ErrDuplicateColumn is returned when a column name is added twice.
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// NullFloat is a numeric cell. Valid is false for a missing value.
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a present numeric cell.
func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// NullString is a categorical cell. Valid is false for a missing value.
type NullString struct {
	Value string
	Valid bool
}

// String returns a present categorical cell.
func String(v string) NullString {
	return NullString{Value: v, Valid: true}
}

// Column is a named sequence of cells. Exactly one of Numbers and Strings is
// populated, selected by Kind.
type Column struct {
	Name    string
	Kind    Kind
	Numbers []NullFloat
	Strings []NullString
}

// Len returns the number of cells in the column.
func (c Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Numbers)
	}
	return len(c.Strings)
}

// IsMissing reports whether the cell at row i is missing.
func (c Column) IsMissing(i int) bool {
	if c.Kind == KindNumeric {
		return !c.Numbers[i].Valid
	}
	return !c.Strings[i].Valid
}

// Value returns the cell at row i as float64, string or nil when missing.
func (c Column) Value(i int) any {
	if c.Kind == KindNumeric {
		if !c.Numbers[i].Valid {
			return nil
		}
		return c.Numbers[i].Value
	}
	if !c.Strings[i].Valid {
		return nil
	}
	return c.Strings[i].Value
}

func (c Column) clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Numbers != nil {
		out.Numbers = append(make([]NullFloat, 0, len(c.Numbers)), c.Numbers...)
	}
	if c.Strings != nil {
		out.Strings = append(make([]NullString, 0, len(c.Strings)), c.Strings...)
	}
	return out
}

// Dataset is an ordered set of equally long columns.
type Dataset struct {
	rows    int
	columns []Column
	index   map[string]int
}

// NewDataset creates an empty dataset with a fixed row count. Rows are fixed
// up front so that a dataset with rows but no columns keeps its shape.
func NewDataset(rows int) *Dataset {
	if rows < 0 {
		rows = 0
	}
	return &Dataset{
		rows:  rows,
		index: make(map[string]int),
	}
}

// AddNumeric appends a numeric column. NaN values are stored as missing.
func (d *Dataset) AddNumeric(name string, values []NullFloat) error {
	for i, v := range values {
		if v.Valid && math.IsNaN(v.Value) {
			values[i] = NullFloat{}
		}
	}
	return d.add(Column{Name: name, Kind: KindNumeric, Numbers: values}, len(values))
}

// AddCategorical appends a categorical column.
func (d *Dataset) AddCategorical(name string, values []NullString) error {
	return d.add(Column{Name: name, Kind: KindCategorical, Strings: values}, len(values))
}

func (d *Dataset) add(col Column, n int) error {
	if n != d.rows {
		return fmt.Errorf("column %q has %d values, dataset has %d rows: %w", col.Name, n, d.rows, ErrLengthMismatch)
	}
	if _, ok := d.index[col.Name]; ok {
		return fmt.Errorf("column %q: %w", col.Name, ErrDuplicateColumn)
	}
	d.index[col.Name] = len(d.columns)
	d.columns = append(d.columns, col)
	return nil
}

// Rows returns the row count.
func (d *Dataset) Rows() int { return d.rows }

// NumColumns returns the column count.
func (d *Dataset) NumColumns() int { return len(d.columns) }

// Columns returns the columns in insertion order. Callers must not modify them.
func (d *Dataset) Columns() []Column { return d.columns }

// Names returns the column names in insertion order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// Row returns the values of row i in column order, see Column.Value.
func (d *Dataset) Row(i int) []any {
	row := make([]any, len(d.columns))
	for j, c := range d.columns {
		row[j] = c.Value(i)
	}
	return row
}

func (d *Dataset) clone() *Dataset {
	out := NewDataset(d.rows)
	out.columns = make([]Column, len(d.columns))
	for i, c := range d.columns {
		out.columns[i] = c.clone()
		out.index[c.Name] = i
	}
	return out
}
