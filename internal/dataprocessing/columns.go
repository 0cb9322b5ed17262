package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	"dataclean/internal/cleaner"
)

// naTokens are the cell values read as missing, matching pandas read_csv.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsNAToken reports whether a text cell denotes a missing value.
func IsNAToken(s string) bool {
	_, ok := naTokens[s]
	return ok
}

// parseNumber parses a text cell as a decimal number.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

type cell struct {
	text    string
	number  float64
	present bool
	numeric bool
}

// column accumulates the cells of one column until its kind is known.
type column struct {
	name    string
	cells   []cell
	present int
	numeric int
}

func (c *column) addText(s string) {
	if IsNAToken(s) {
		c.cells = append(c.cells, cell{})
		return
	}
	v, ok := parseNumber(s)
	c.add(cell{text: s, number: v, present: true, numeric: ok})
}

func (c *column) addMissing() {
	c.cells = append(c.cells, cell{})
}

func (c *column) add(x cell) {
	if x.present {
		c.present++
		if x.numeric {
			c.numeric++
		}
	}
	c.cells = append(c.cells, x)
}

func (c *column) kind() cleaner.Kind {
	if c.present > 0 && c.numeric == c.present {
		return cleaner.KindNumeric
	}
	return cleaner.KindCategorical
}

func (c *column) addTo(ds *cleaner.Dataset) error {
	if c.kind() == cleaner.KindNumeric {
		values := make([]cleaner.NullFloat, len(c.cells))
		for i, x := range c.cells {
			if x.present {
				values[i] = cleaner.Float(x.number)
			}
		}
		return ds.AddNumeric(c.name, values)
	}
	values := make([]cleaner.NullString, len(c.cells))
	for i, x := range c.cells {
		if x.present {
			values[i] = cleaner.String(x.text)
		}
	}
	return ds.AddCategorical(c.name, values)
}

func buildDataset(rows int, cols []*column) (*cleaner.Dataset, error) {
	ds := cleaner.NewDataset(rows)
	for _, c := range cols {
		if err := c.addTo(ds); err != nil {
			return nil, fmt.Errorf("column %q: %w", c.name, err)
		}
	}
	return ds, nil
}

// dedupeHeader names blank headers "Unnamed: i" and suffixes repeated names
// with ".1", ".2", ...
func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for {
			if _, dup := seen[name]; !dup {
				break
			}
			seen[base]++
			name = fmt.Sprintf("%s.%d", base, seen[base])
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}
