package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"dataclean/internal/cleaner"
	"dataclean/internal/dataprocessing"
	"dataclean/internal/shared/testutil"
	"dataclean/internal/validation"
)

const sampleCSV = "age,city\n25,NY\n,NY\n30,\n"

func newTestService(t *testing.T, limits validation.UploadLimits) (*CleaningService, *testutil.BufferedSlogHandler, *tracetest.SpanRecorder) {
	t.Helper()
	logger, handler := testutil.NewTestLogger(t)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	svc := NewCleaningService(limits, tp.Tracer("test"), nil, logger)
	return svc, handler, recorder
}

func csvUpload(body string) Upload {
	return Upload{Filename: "data.csv", Size: int64(len(body)), Body: strings.NewReader(body)}
}

func TestCleaningService_CleanUpload(t *testing.T) {
	svc, handler, recorder := newTestService(t, validation.UploadLimits{MaxBytes: 1 << 20, MaxRows: 100})

	res, err := svc.CleanUpload(context.Background(), csvUpload(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, dataprocessing.FormatCSV, res.Format)
	assert.Equal(t, 3, res.Report.Rows)
	assert.Equal(t, 2, res.Report.Columns)
	assert.Equal(t, map[string]int{"age": 1, "city": 1}, res.Report.MissingValues)
	assert.Equal(t, 0, res.Report.DuplicateRows)
	assert.Empty(t, res.Report.Outliers)

	require.NotNil(t, res.Cleaned)
	age, ok := res.Cleaned.Column("age")
	require.True(t, ok)
	assert.Equal(t, 27.5, age.Value(1))
	city, ok := res.Cleaned.Column("city")
	require.True(t, ok)
	assert.Equal(t, cleaner.UnknownCategory, city.Value(2))

	assert.True(t, handler.ContainsMessage("Dataset profiled"))
	assert.True(t, handler.ContainsAttr("rows", int64(3)))
	testutil.AssertNoErrors(t, handler)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "cleaner.Clean", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.Int("rows", 3))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("duplicate_rows", 0))
}

func TestCleaningService_ValidateUpload(t *testing.T) {
	svc, _, _ := newTestService(t, validation.UploadLimits{})

	report, err := svc.ValidateUpload(context.Background(), csvUpload("a,b\n1,x\n1,x\n2,y\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, 1, report.DuplicateRows)
	assert.NotNil(t, report.MissingValues)
	assert.NotNil(t, report.Outliers)
}

func TestCleaningService_Records(t *testing.T) {
	svc, _, _ := newTestService(t, validation.UploadLimits{})
	body := `[{"x": 1}, {"x": 2}, {"x": 3}, {"x": 4}, {"x": 100}, {"x": null}]`

	res, err := svc.CleanRecords(context.Background(), strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, dataprocessing.FormatJSON, res.Format)
	assert.Equal(t, map[string]int{"x": 1}, res.Report.MissingValues)
	assert.Equal(t, []string{"x"}, res.Cleaned.Names())

	report, err := svc.ValidateRecords(context.Background(), strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, res.Report, report)
}

func TestCleaningService_EmptyDatasetIsNotAnError(t *testing.T) {
	svc, handler, _ := newTestService(t, validation.UploadLimits{})

	res, err := svc.CleanUpload(context.Background(), csvUpload("x\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Report.Rows)
	assert.Equal(t, 1, res.Report.Columns)
	assert.Empty(t, res.Report.MissingValues)
	assert.Empty(t, res.Report.Outliers)
	assert.False(t, handler.ContainsMessage("Dataset rejected"))
}

func TestCleaningService_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		limits validation.UploadLimits
		upload Upload
		want   error
		reason string
	}{
		{
			name:   "unsupported extension",
			upload: Upload{Filename: "data.txt", Size: 3, Body: strings.NewReader("a\n1")},
			want:   ErrUnsupportedFormat,
			reason: "unsupported_format",
		},
		{
			name:   "missing filename",
			upload: Upload{Filename: "", Size: 3, Body: strings.NewReader("a\n1")},
			want:   ErrInvalidUpload,
			reason: "invalid_upload",
		},
		{
			name:   "declared size over limit",
			limits: validation.UploadLimits{MaxBytes: 4},
			upload: csvUpload(sampleCSV),
			want:   ErrPayloadTooLarge,
			reason: "payload_too_large",
		},
		{
			name:   "too many rows",
			limits: validation.UploadLimits{MaxRows: 2},
			upload: csvUpload(sampleCSV),
			want:   ErrTooManyRows,
			reason: "too_many_rows",
		},
		{
			name:   "empty payload",
			upload: csvUpload(""),
			want:   ErrEmptyPayload,
			reason: "empty_payload",
		},
		{
			name:   "ragged csv",
			upload: csvUpload("a,b\n1,2,3\n"),
			want:   ErrMalformedPayload,
			reason: "malformed_payload",
		},
		{
			name:   "not a workbook",
			upload: Upload{Filename: "book.xlsx", Size: 5, Body: strings.NewReader("hello")},
			want:   ErrMalformedPayload,
			reason: "malformed_payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, handler, _ := newTestService(t, tt.limits)

			res, err := svc.CleanUpload(context.Background(), tt.upload)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.reason, RejectReason(err))

			testutil.AssertLogContains(t, handler, slog.LevelWarn, "Dataset rejected")
			assert.True(t, handler.ContainsAttr("reason", tt.reason))
		})
	}
}

func TestCleaningService_MalformedRecords(t *testing.T) {
	svc, _, recorder := newTestService(t, validation.UploadLimits{})

	_, err := svc.CleanRecords(context.Background(), strings.NewReader(`{"rows": 1}`))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.NotEmpty(t, spans[0].Events(), "error should be recorded on the span")
}

func TestCleaningService_CanceledContext(t *testing.T) {
	svc, _, _ := newTestService(t, validation.UploadLimits{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.CleanUpload(ctx, csvUpload(sampleCSV))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "canceled", RejectReason(err))
}

func TestNewCleaningService_Defaults(t *testing.T) {
	svc := NewCleaningService(validation.UploadLimits{MaxBytes: 10, MaxRows: 5}, nil, nil, nil)
	assert.Equal(t, validation.UploadLimits{MaxBytes: 10, MaxRows: 5}, svc.Limits())

	_, err := svc.CleanUpload(context.Background(), csvUpload("a\n1\n"))
	assert.NoError(t, err)
}

func TestRejectReason(t *testing.T) {
	assert.Equal(t, "internal", RejectReason(errors.New("boom")))
	assert.Equal(t, "internal", RejectReason(ErrInvalidReport))
	assert.Equal(t, "timeout", RejectReason(context.DeadlineExceeded))
}
