package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataclean/internal/shared/testutil"
)

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, ContentTypeProblem, w.Header().Get("Content-Type"))
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantCode   string
		wantLevel  slog.Level
	}{
		{
			name:       "api error",
			err:        ErrUnsupportedFormat,
			wantStatus: http.StatusUnsupportedMediaType,
			wantType:   TypeUnsupportedFormat,
			wantCode:   CodeUnsupportedFormat,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "wrapped api error",
			err:        fmt.Errorf("decode: %w", ErrInvalidPayload),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeInvalidPayload,
			wantCode:   CodeInvalidPayload,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "too many rows",
			err:        ErrTooManyRows,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantType:   TypePayloadTooLarge,
			wantCode:   CodeTooManyRows,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "max bytes error",
			err:        fmt.Errorf("read body: %w", &http.MaxBytesError{Limit: 10}),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantType:   TypePayloadTooLarge,
			wantCode:   CodePayloadTooLarge,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "deadline exceeded",
			err:        fmt.Errorf("clean: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
			wantLevel:  slog.LevelError,
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantCode:   CodeInternal,
			wantLevel:  slog.LevelError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			h := NewErrorHandler(logger, false)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/clean", nil)
			r = r.WithContext(context.WithValue(r.Context(), middleware.RequestIDKey, "req-1"))

			h.HandleError(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			got := decodeProblem(t, w)
			assert.Equal(t, tt.wantType, got["type"])
			assert.Equal(t, "/api/clean", got["instance"])
			assert.Equal(t, "req-1", got["trace_id"])
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, got["error_code"])
			}
			assert.NotContains(t, got, "stack")

			testutil.AssertLogContains(t, logs, tt.wantLevel, "request failed")
		})
	}
}

func TestErrorHandler_HandleNilError(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	w := httptest.NewRecorder()

	NewErrorHandler(logger, false).HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Zero(t, w.Body.Len())
	assert.Zero(t, logs.Count())
}

func TestErrorHandler_DetailsExtension(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	w := httptest.NewRecorder()

	NewErrorHandler(logger, false).HandleError(w, httptest.NewRequest(http.MethodPost, "/", nil),
		ErrUnsupportedFormat.WithDetails(map[string]string{"filename": "data.txt"}))

	got := decodeProblem(t, w)
	assert.Equal(t, map[string]any{"filename": "data.txt"}, got["details"])
}

func TestErrorHandler_StackOnlyForServerErrors(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, true)

	w := httptest.NewRecorder()
	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("boom"))
	assert.Contains(t, decodeProblem(t, w), "stack")

	w = httptest.NewRecorder()
	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), ErrInvalidPayload)
	assert.NotContains(t, decodeProblem(t, w), "stack")
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	w := httptest.NewRecorder()

	NewErrorHandler(logger, true).HandlePanic(w, httptest.NewRequest(http.MethodGet, "/x", nil), "kaboom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	got := decodeProblem(t, w)
	assert.Equal(t, "kaboom", got["panic"])
	testutil.AssertLogContains(t, logs, slog.LevelError, "panic recovered")
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	h.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, TypeNotFound, decodeProblem(t, w)["type"])

	w = httptest.NewRecorder()
	h.MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/clean", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, decodeProblem(t, w)["detail"], "DELETE")
}
