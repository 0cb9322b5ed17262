package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"dataclean/internal/cleaner"
	"dataclean/internal/dataprocessing"
	"dataclean/internal/infrastructure"
	"dataclean/internal/validation"
	"dataclean/pkg/contracts/domain"
)

// Upload is a file received from a client.
type Upload struct {
	Filename string
	// Size is the declared size in bytes, or -1 when unknown.
	Size int64
	Body io.Reader
}

// Result is the outcome of a cleaning call.
type Result struct {
	Format  dataprocessing.Format
	Report  domain.ValidationReport
	Cleaned *cleaner.Dataset
}

// CleaningService decodes payloads, enforces the upload limits and runs the
// cleaner. It holds no per-request state and is safe for concurrent use.
type CleaningService struct {
	uploads *validation.UploadValidator
	structs *validation.StructValidator
	tracer  trace.Tracer
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger
}

// NewCleaningService creates a cleaning service. tracer and metrics may be
// nil.
func NewCleaningService(limits validation.UploadLimits, tracer trace.Tracer, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *CleaningService {
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.InstrumentationName)
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("CleaningService initialized",
		slog.Int64("max_upload_bytes", limits.MaxBytes),
		slog.Int("max_rows", limits.MaxRows))

	return &CleaningService{
		uploads: validation.NewUploadValidator(limits),
		structs: validation.NewStructValidator(),
		tracer:  tracer,
		metrics: metrics,
		logger:  infrastructure.WithComponent(logger, "cleaning_service"),
	}
}

// Limits returns the upload limits the service enforces.
func (s *CleaningService) Limits() validation.UploadLimits {
	return s.uploads.Limits()
}

// CleanUpload decodes an uploaded file, profiles it and returns the cleaned
// dataset with its report.
func (s *CleaningService) CleanUpload(ctx context.Context, upload Upload) (*Result, error) {
	format, err := s.checkUpload(ctx, upload)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, "clean", format, upload.Body, true)
}

// ValidateUpload decodes an uploaded file and returns only its report.
func (s *CleaningService) ValidateUpload(ctx context.Context, upload Upload) (domain.ValidationReport, error) {
	format, err := s.checkUpload(ctx, upload)
	if err != nil {
		return domain.ValidationReport{}, err
	}
	res, err := s.run(ctx, "validate", format, upload.Body, false)
	if err != nil {
		return domain.ValidationReport{}, err
	}
	return res.Report, nil
}

// CleanRecords cleans a JSON array of records.
func (s *CleaningService) CleanRecords(ctx context.Context, body io.Reader) (*Result, error) {
	return s.run(ctx, "clean", dataprocessing.FormatJSON, body, true)
}

// ValidateRecords profiles a JSON array of records.
func (s *CleaningService) ValidateRecords(ctx context.Context, body io.Reader) (domain.ValidationReport, error) {
	res, err := s.run(ctx, "validate", dataprocessing.FormatJSON, body, false)
	if err != nil {
		return domain.ValidationReport{}, err
	}
	return res.Report, nil
}

// checkUpload applies the guards that need no decoding.
func (s *CleaningService) checkUpload(ctx context.Context, upload Upload) (dataprocessing.Format, error) {
	format, err := s.uploads.ValidateUpload(upload.Filename, upload.Size)
	if err == nil {
		return format, nil
	}

	switch {
	case errors.Is(err, validation.ErrMissingFilename):
		err = fmt.Errorf("%w: %w", ErrInvalidUpload, err)
	case errors.Is(err, validation.ErrFileTooLarge):
		err = fmt.Errorf("%w: %w", ErrPayloadTooLarge, err)
	case errors.Is(err, dataprocessing.ErrUnsupportedFormat):
		err = fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	s.reject(ctx, upload.Filename, err)
	return "", err
}

func (s *CleaningService) run(ctx context.Context, op string, format dataprocessing.Format, body io.Reader, impute bool) (*Result, error) {
	start := time.Now()
	ctx = infrastructure.EnsureTraceID(ctx)

	ctx, span := s.tracer.Start(ctx, "cleaner.Clean",
		trace.WithAttributes(
			attribute.String("dataclean.operation", op),
			attribute.String("dataclean.format", string(format)),
		))
	defer span.End()

	fail := func(err error) (*Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.reject(ctx, string(format), err)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	ds, err := dataprocessing.Parse(body, format, s.uploads.DecodeOptions())
	if err != nil {
		return fail(decodeError(err))
	}

	// decoding is the slow part; do not clean for a caller that left
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	res := &Result{Format: format}
	if impute {
		res.Cleaned, res.Report = cleaner.Clean(ds)
	} else {
		res.Report = cleaner.Profile(ds)
	}

	if err := s.structs.ValidateStruct(res.Report); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrInvalidReport, err))
	}

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Int("rows", res.Report.Rows),
		attribute.Int("columns", res.Report.Columns),
		attribute.Int("duplicate_rows", res.Report.DuplicateRows),
		attribute.Int("missing_values", res.Report.TotalMissing()),
		attribute.Int("outliers", res.Report.TotalOutliers()),
	)
	span.SetStatus(codes.Ok, "")
	s.metrics.RecordCleaning(ctx, string(format), res.Report, elapsed)

	s.logger.InfoContext(ctx, "Dataset profiled",
		slog.String("operation", op),
		slog.String("format", string(format)),
		slog.Int("rows", res.Report.Rows),
		slog.Int("columns", res.Report.Columns),
		slog.Int("missing_values", res.Report.TotalMissing()),
		slog.Int("duplicate_rows", res.Report.DuplicateRows),
		slog.Int("outliers", res.Report.TotalOutliers()),
		slog.Duration("duration", elapsed))

	return res, nil
}

// reject counts and logs a refused request.
func (s *CleaningService) reject(ctx context.Context, input string, err error) {
	reason := RejectReason(err)
	s.metrics.RecordCleaningError(ctx, reason)

	level := slog.LevelWarn
	if reason == "internal" {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "Dataset rejected",
		slog.String("input", input),
		slog.String("reason", reason),
		slog.String("error", err.Error()))
}

// decodeError maps a dataprocessing error onto the service sentinels.
func decodeError(err error) error {
	switch {
	case errors.Is(err, dataprocessing.ErrUnsupportedFormat):
		return fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	case errors.Is(err, dataprocessing.ErrTooManyRows):
		return fmt.Errorf("%w: %w", ErrTooManyRows, err)
	case errors.Is(err, dataprocessing.ErrEmptyInput):
		return fmt.Errorf("%w: %w", ErrEmptyPayload, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
}

// RejectReason names the class of a cleaning error for metrics and logs.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, ErrEmptyPayload):
		return "empty_payload"
	case errors.Is(err, ErrInvalidUpload):
		return "invalid_upload"
	case errors.Is(err, ErrPayloadTooLarge):
		return "payload_too_large"
	case errors.Is(err, ErrTooManyRows):
		return "too_many_rows"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal"
	}
}
