package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"dataclean/pkg/contracts/domain"
)

// BusinessMetrics holds all application-specific metrics
type BusinessMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Cleaning metrics
	DatasetsCleaned  metric.Int64Counter
	RowsProfiled     metric.Int64Counter
	MissingValues    metric.Int64Counter
	DuplicateRows    metric.Int64Counter
	Outliers         metric.Int64Counter
	CleaningErrors   metric.Int64Counter
	CleaningDuration metric.Float64Histogram
}

// CreateBusinessMetrics creates application-specific metrics
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	var (
		m   BusinessMetrics
		err error
	)

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.HTTPRequestsTotal, "http_requests_total", "Total number of HTTP requests"},
		{&m.DatasetsCleaned, "datasets_cleaned_total", "Total number of datasets profiled and cleaned"},
		{&m.RowsProfiled, "rows_profiled_total", "Total number of rows profiled"},
		{&m.MissingValues, "missing_values_found_total", "Total number of missing cells found"},
		{&m.DuplicateRows, "duplicate_rows_found_total", "Total number of duplicate rows found"},
		{&m.Outliers, "outliers_found_total", "Total number of IQR outliers found"},
		{&m.CleaningErrors, "cleaning_errors_total", "Total number of rejected cleaning requests"},
	}
	for _, c := range counters {
		if *c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, err
		}
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	m.CleaningDuration, err = meter.Float64Histogram(
		"cleaning_duration_seconds",
		metric.WithDescription("Time spent decoding and cleaning a dataset"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// RecordCleaning records the outcome of one successful cleaning call.
func (m *BusinessMetrics) RecordCleaning(ctx context.Context, format string, report domain.ValidationReport, duration time.Duration) {
	if m == nil {
		return
	}

	formatAttr := metric.WithAttributes(attribute.String("format", format))
	m.DatasetsCleaned.Add(ctx, 1, formatAttr)
	m.RowsProfiled.Add(ctx, int64(report.Rows), formatAttr)
	m.MissingValues.Add(ctx, int64(report.TotalMissing()), formatAttr)
	m.DuplicateRows.Add(ctx, int64(report.DuplicateRows), formatAttr)
	m.Outliers.Add(ctx, int64(report.TotalOutliers()), formatAttr)
	m.CleaningDuration.Record(ctx, duration.Seconds(), formatAttr)
}

// RecordCleaningError counts a rejected request by reason.
func (m *BusinessMetrics) RecordCleaningError(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.CleaningErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
