// Package dataprocessing decodes uploaded tabular payloads into cleaner
// datasets.
//
// Three formats are supported, selected by file extension:
//
//	.csv   header row followed by records (encoding/csv)
//	.xlsx  first worksheet, header row first (excelize)
//	.json  array of records, or an object with a "records" array
//
// Decoding follows the pandas conventions the service has always used. Empty
// cells and the usual NA tokens ("NA", "NaN", "null", ...) are missing. A CSV
// or XLSX column is numeric when every present cell parses as a number. A JSON
// column is numeric when every present value is a JSON number. A column with
// no present value at all is categorical.
//
// Typical use:
//
//	format, err := dataprocessing.FormatFromFilename(header.Filename)
//	if err != nil {
//	    return err
//	}
//	ds, err := dataprocessing.Parse(file, format, dataprocessing.Options{MaxRows: 100000})
package dataprocessing
