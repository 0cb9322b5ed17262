// Package exporter serializes cleaned datasets.
//
// CSVWriter writes a dataset as CSV with an optional UTF-8 BOM for Excel,
// either to any io.Writer or to a file. Records wraps a dataset for JSON
// encoding as an array of objects whose keys keep the column order:
//
//	render.JSON(w, r, map[string]any{"data": exporter.Records(ds)})
//
// Numbers are written in their shortest round-trip form and missing cells as
// an empty CSV field or JSON null.
package exporter
