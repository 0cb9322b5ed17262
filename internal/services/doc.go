// Package services implements the business logic layer of dataclean. It sits
// between the HTTP handlers and the cleaner core, and owns everything that
// happens to a payload on its way in and out of the core.
//
// # Architecture
//
// Services follow these principles:
//
//  1. Configuration and collaborators are injected through constructors
//  2. Context propagation for cancellation and tracing
//  3. Sentinel errors that handlers translate into API errors
//
// # Available Services
//
//   - CleaningService: decodes an upload or JSON body, enforces the upload
//     limits, runs the cleaner, and records spans, metrics and a log line
//   - HealthService: liveness, readiness and version information
//
// # Error Handling
//
// CleaningService wraps every rejection in one of the package sentinels so
// handlers can use errors.Is:
//
//	res, err := svc.CleanUpload(ctx, upload)
//	switch {
//	case errors.Is(err, services.ErrTooManyRows):
//	    // 413
//	case errors.Is(err, services.ErrMalformedPayload):
//	    // 400
//	}
//
// Degenerate data such as zero rows or an all-missing column is never an
// error.
package services
