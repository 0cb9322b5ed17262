package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"dataclean/internal/dataprocessing"
)

var (
	// ErrMissingFilename is returned when an upload carries no file name.
	ErrMissingFilename = errors.New("upload has no file name")
	// ErrFileTooLarge is returned when an upload is larger than the limit.
	ErrFileTooLarge = errors.New("upload exceeds size limit")
)

// UploadLimits bounds a single upload.
type UploadLimits struct {
	MaxBytes int64
	MaxRows  int
}

// UploadValidator applies the upload guards that can be checked before any
// payload is decoded.
type UploadValidator struct {
	limits UploadLimits
}

// NewUploadValidator creates an upload validator
func NewUploadValidator(limits UploadLimits) *UploadValidator {
	return &UploadValidator{limits: limits}
}

// Limits returns the configured limits.
func (v *UploadValidator) Limits() UploadLimits {
	return v.limits
}

// ValidateUpload checks the client supplied file name and declared size and
// returns the payload format. A size below zero means unknown.
func (v *UploadValidator) ValidateUpload(filename string, size int64) (dataprocessing.Format, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return "", ErrMissingFilename
	}

	format, err := dataprocessing.FormatFromFilename(name)
	if err != nil {
		return "", err
	}

	if v.limits.MaxBytes > 0 && size > v.limits.MaxBytes {
		return "", fmt.Errorf("%d bytes, limit %d: %w", size, v.limits.MaxBytes, ErrFileTooLarge)
	}

	return format, nil
}

// DecodeOptions returns the decoder limits.
func (v *UploadValidator) DecodeOptions() dataprocessing.Options {
	return dataprocessing.Options{MaxRows: v.limits.MaxRows}
}

// SanitizeFilename strips any directory part from a client supplied name.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}
