package config

import "time"

// Application constants
const (
	AppName = "dataclean"

	// Server
	DefaultPort           = 8080
	DefaultRequestTimeout = 60 * time.Second

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Upload limits
	DefaultMaxUploadBytes int64 = 10 << 20 // 10 MiB
	DefaultMaxRows              = 100000

	// Logging
	DefaultLogFile = "logs/dataclean.log"

	// Trace exporters
	TraceExporterNone   = "none"
	TraceExporterStdout = "stdout"

	// Headers
	HeaderAPIKey           = "X-API-Key"
	HeaderRequestID        = "X-Request-ID"
	HeaderValidationReport = "X-Validation-Report"
)
