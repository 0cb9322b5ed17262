package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataclean/internal/config"
	"dataclean/internal/infrastructure"
)

func TestOTelMiddleware(t *testing.T) {
	providers, err := infrastructure.InitializeOTel(config.ObservabilityConfig{
		ServiceName:    "test",
		TracingEnabled: true,
		MetricsEnabled: true,
		TraceExporter:  config.TraceExporterNone,
		SampleRatio:    1,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	var sawSpan bool
	r := chi.NewRouter()
	r.Use(NewOTelMiddleware(providers, metrics).Handler)
	r.Get("/api/items/{id}", func(w http.ResponseWriter, req *http.Request) {
		sawSpan = infrastructure.TraceIDFromContext(req.Context()) != ""
		w.WriteHeader(http.StatusAccepted)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items/7", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, sawSpan)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `route="/api/items/{id}"`)
}
