package services

import "errors"

// Cleaning errors
var (
	// Input format errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMalformedPayload  = errors.New("malformed payload")
	ErrEmptyPayload      = errors.New("empty payload")
	ErrInvalidUpload     = errors.New("invalid upload")

	// Input size errors
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrTooManyRows     = errors.New("too many rows")

	// General errors
	ErrInvalidReport = errors.New("report failed validation")
)
