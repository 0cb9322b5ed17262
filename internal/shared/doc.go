// Package shared holds helpers used across dataclean packages that belong to
// no single layer.
//
// # Test Utilities
//
// The testutil subpackage provides a buffered slog handler that captures
// records for assertions:
//
//	logger, handler := testutil.NewTestLogger(t)
//	svc := services.NewCleaningService(limits, nil, nil, logger)
//	...
//	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Dataset profiled")
//
// This package should not contain business logic.
package shared
