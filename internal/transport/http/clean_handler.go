package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"dataclean/internal/config"
	apierrors "dataclean/internal/errors"
	"dataclean/internal/exporter"
	"dataclean/internal/middleware"
	"dataclean/internal/services"
	"dataclean/internal/validation"
	api "dataclean/pkg/contracts/api/v1"
	"dataclean/pkg/contracts/domain"
)

// uploadField is the multipart field carrying the file.
const uploadField = "file"

// multipartMemory is the part of a multipart form kept in memory; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

// CleaningServiceInterface defines the cleaning operations used by the handler
type CleaningServiceInterface interface {
	CleanUpload(ctx context.Context, upload services.Upload) (*services.Result, error)
	ValidateUpload(ctx context.Context, upload services.Upload) (domain.ValidationReport, error)
	CleanRecords(ctx context.Context, body io.Reader) (*services.Result, error)
	ValidateRecords(ctx context.Context, body io.Reader) (domain.ValidationReport, error)
}

// CleanHandler handles the clean and validate endpoints
type CleanHandler struct {
	service      CleaningServiceInterface
	csv          *exporter.CSVWriter
	validator    *validation.StructValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewCleanHandler creates a new clean handler with RFC 7807 error handling
func NewCleanHandler(service CleaningServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *CleanHandler {
	logger = logger.With(slog.String("component", "clean_handler"))
	return &CleanHandler{
		service:      service,
		csv:          exporter.NewCSVWriter(logger),
		validator:    validation.NewStructValidator(),
		logger:       logger,
		errorHandler: errorHandler,
	}
}

// RegisterRoutes adds the clean and validate routes to r.
func (h *CleanHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeValidator(h.errorHandler, "multipart/form-data"))
		r.Post("/clean", h.Clean)
		r.Post("/validate", h.Validate)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeValidator(h.errorHandler, "application/json"))
		r.Post("/clean/json", h.CleanJSON)
		r.Post("/validate/json", h.ValidateJSON)
	})
}

// Clean handles POST /api/clean
func (h *CleanHandler) Clean(w http.ResponseWriter, r *http.Request) {
	opts, err := h.parseOptions(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	upload, cleanup, err := h.readUpload(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer cleanup()

	res, err := h.service.CleanUpload(r.Context(), upload)
	if err != nil {
		h.errorHandler.HandleError(w, r, toAPIError(err))
		return
	}

	h.respondCleaned(w, r, res, opts, upload.Filename)
}

// Validate handles POST /api/validate
func (h *CleanHandler) Validate(w http.ResponseWriter, r *http.Request) {
	upload, cleanup, err := h.readUpload(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer cleanup()

	report, err := h.service.ValidateUpload(r.Context(), upload)
	if err != nil {
		h.errorHandler.HandleError(w, r, toAPIError(err))
		return
	}

	render.JSON(w, r, report)
}

// CleanJSON handles POST /api/clean/json
func (h *CleanHandler) CleanJSON(w http.ResponseWriter, r *http.Request) {
	opts, err := h.parseOptions(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	records, err := h.decodeRecords(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	res, err := h.service.CleanRecords(r.Context(), records)
	if err != nil {
		h.errorHandler.HandleError(w, r, toAPIError(err))
		return
	}

	h.respondCleaned(w, r, res, opts, "records.json")
}

// ValidateJSON handles POST /api/validate/json
func (h *CleanHandler) ValidateJSON(w http.ResponseWriter, r *http.Request) {
	records, err := h.decodeRecords(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.ValidateRecords(r.Context(), records)
	if err != nil {
		h.errorHandler.HandleError(w, r, toAPIError(err))
		return
	}

	render.JSON(w, r, report)
}

func (h *CleanHandler) parseOptions(r *http.Request) (api.CleanOptions, error) {
	opts := api.CleanOptions{Format: strings.ToLower(r.URL.Query().Get("format"))}
	if err := h.validator.ValidateStruct(opts); err != nil {
		return opts, validationError(err)
	}
	if opts.Format == "" {
		opts.Format = "json"
	}
	return opts, nil
}

// readUpload extracts the uploaded file. The returned cleanup must be called
// once the body has been consumed.
func (h *CleanHandler) readUpload(r *http.Request) (services.Upload, func(), error) {
	noop := func() {}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return services.Upload{}, noop, err
		}
		return services.Upload{}, noop, apierrors.InvalidRequestWithError(err)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		_ = r.MultipartForm.RemoveAll()
		if errors.Is(err, http.ErrMissingFile) {
			return services.Upload{}, noop, apierrors.NewValidationErrors([]apierrors.ValidationError{
				{Field: uploadField, Message: "file is required"},
			})
		}
		return services.Upload{}, noop, apierrors.InvalidRequestWithError(err)
	}

	h.logger.DebugContext(r.Context(), "Upload received",
		slog.String("filename", validation.SanitizeFilename(header.Filename)),
		slog.Int64("size", header.Size))

	cleanup := func() {
		if err := file.Close(); err != nil {
			h.logger.WarnContext(r.Context(), "Failed to close upload", slog.String("error", err.Error()))
		}
		_ = r.MultipartForm.RemoveAll()
	}

	return services.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
	}, cleanup, nil
}

// decodeRecords reads a CleanJSONRequest and returns the raw records array.
func (h *CleanHandler) decodeRecords(r *http.Request) (io.Reader, error) {
	var req api.CleanJSONRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		return nil, apierrors.ErrInvalidPayload.WithDetails(err.Error())
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return nil, validationError(err)
	}

	return bytes.NewReader(req.Records), nil
}

func (h *CleanHandler) respondCleaned(w http.ResponseWriter, r *http.Request, res *services.Result, opts api.CleanOptions, source string) {
	if opts.Format != "csv" {
		render.JSON(w, r, api.CleanResponse{
			Report: res.Report,
			Data:   exporter.Records(res.Cleaned),
		})
		return
	}

	report, err := json.Marshal(res.Report)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set(config.HeaderValidationReport, string(report))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cleanedFilename(source)))
	w.WriteHeader(http.StatusOK)

	if err := h.csv.Write(w, res.Cleaned, exporter.WriteOptions{}); err != nil {
		// headers are already sent
		h.logger.ErrorContext(r.Context(), "Failed to write cleaned CSV",
			slog.String("error", err.Error()))
	}
}

// cleanedFilename names the CSV download after the uploaded file.
func cleanedFilename(source string) string {
	name := validation.SanitizeFilename(source)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" {
		name = "data"
	}
	return "cleaned_" + name + ".csv"
}

// toAPIError maps service errors onto API errors. Unknown errors pass through
// and become 500 or 504.
func toAPIError(err error) error {
	switch {
	case errors.Is(err, services.ErrUnsupportedFormat):
		return apierrors.ErrUnsupportedFormat.WithDetails(err.Error())
	case errors.Is(err, services.ErrPayloadTooLarge):
		return apierrors.ErrPayloadTooLarge.WithDetails(err.Error())
	case errors.Is(err, services.ErrTooManyRows):
		return apierrors.ErrTooManyRows.WithDetails(err.Error())
	case errors.Is(err, services.ErrMalformedPayload), errors.Is(err, services.ErrEmptyPayload):
		return apierrors.ErrInvalidPayload.WithDetails(err.Error())
	case errors.Is(err, services.ErrInvalidUpload):
		return apierrors.InvalidRequestWithError(err)
	default:
		return err
	}
}

// validationError converts a StructValidator error into a 400 API error.
func validationError(err error) error {
	var structErr *validation.StructError
	if !errors.As(err, &structErr) {
		return apierrors.InvalidRequestWithError(err)
	}

	fields := make([]apierrors.ValidationError, len(structErr.Fields))
	for i, f := range structErr.Fields {
		fields[i] = apierrors.ValidationError{Field: f.Field, Message: f.Message}
	}
	return apierrors.NewValidationErrors(fields)
}
