package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"dataclean/internal/cleaner"
	"dataclean/internal/config"
	"dataclean/internal/dataprocessing"
	"dataclean/internal/exporter"
	"dataclean/internal/infrastructure"
	"dataclean/internal/validation"
	"dataclean/pkg/contracts"
	"dataclean/pkg/contracts/domain"
)

// options holds the parsed command line.
type options struct {
	in       string
	out      string
	report   string
	format   string
	maxRows  int
	bom      bool
	logLevel string
	version  bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "dataclean: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("dataclean", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.in, "in", "", "input file (.csv, .xlsx or .json records)")
	fs.StringVar(&opts.out, "out", "", "output file for the cleaned data (defaults to stdout)")
	fs.StringVar(&opts.report, "report", "", "output file for the validation report (defaults to stderr)")
	fs.StringVar(&opts.format, "format", "", "cleaned data format: csv or json (defaults to the -out extension, else csv)")
	fs.IntVar(&opts.maxRows, "max-rows", 0, "reject inputs with more data rows than this (0 means no limit)")
	fs.BoolVar(&opts.bom, "bom", false, "prefix CSV output with a UTF-8 BOM")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.version {
		return opts, nil
	}
	if opts.in == "" {
		fs.Usage()
		return opts, errors.New("-in is required")
	}

	if opts.format == "" {
		opts.format = string(dataprocessing.FormatCSV)
		if f, err := dataprocessing.FormatFromFilename(opts.out); err == nil && f == dataprocessing.FormatJSON {
			opts.format = string(dataprocessing.FormatJSON)
		}
	}
	if opts.format != string(dataprocessing.FormatCSV) && opts.format != string(dataprocessing.FormatJSON) {
		return opts, fmt.Errorf("unsupported -format %q", opts.format)
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}

	logger := infrastructure.WithComponent(infrastructure.NewLogger(stderr, opts.logLevel), config.AppName)
	files := validation.NewFileValidator(logger)

	format, err := files.ValidateInputFile(opts.in)
	if err != nil {
		return err
	}
	for _, path := range []string{opts.out, opts.report} {
		if path == "" {
			continue
		}
		if err := files.ValidateOutputDirectory(path); err != nil {
			return err
		}
	}

	start := time.Now()
	ds, err := decodeFile(opts.in, format, opts.maxRows)
	if err != nil {
		return err
	}

	cleaned, report := cleaner.Clean(ds)

	logger.Info("Dataset cleaned",
		slog.String("input", opts.in),
		slog.String("format", string(format)),
		slog.Int("rows", report.Rows),
		slog.Int("columns", report.Columns),
		slog.Int("missing_values", report.TotalMissing()),
		slog.Int("duplicate_rows", report.DuplicateRows),
		slog.Int("outliers", report.TotalOutliers()),
		slog.Duration("duration", time.Since(start)))

	if err := writeData(opts, cleaned, stdout, logger); err != nil {
		return err
	}
	return writeReport(opts.report, report, stderr)
}

func decodeFile(path string, format dataprocessing.Format, maxRows int) (*cleaner.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	ds, err := dataprocessing.Parse(f, format, dataprocessing.Options{MaxRows: maxRows})
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return ds, nil
}

func writeData(opts options, ds *cleaner.Dataset, stdout io.Writer, logger *slog.Logger) error {
	if opts.format == string(dataprocessing.FormatCSV) {
		writer := exporter.NewCSVWriter(logger)
		csvOpts := exporter.WriteOptions{BOMPrefix: opts.bom}
		if opts.out != "" {
			return writer.WriteFile(opts.out, ds, csvOpts)
		}
		return writer.Write(stdout, ds, csvOpts)
	}

	return writeJSON(opts.out, exporter.Records(ds), stdout)
}

func writeReport(path string, report domain.ValidationReport, stderr io.Writer) error {
	return writeJSON(path, report, stderr)
}

// writeJSON writes v indented to path, or to fallback when path is empty.
func writeJSON(path string, v any, fallback io.Writer) (err error) {
	w := fallback
	if path != "" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("failed to create %s: %w", path, cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
