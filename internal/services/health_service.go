package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"dataclean/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	cleaning  *CleaningService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// NewHealthService creates a new health service. cleaning may be nil, in
// which case the service reports not ready.
func NewHealthService(cleaning *CleaningService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", contracts.Version),
		slog.String("build_time", contracts.BuildTime),
		slog.String("git_commit", contracts.GitCommit))

	return &HealthService{
		cleaning:  cleaning,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   contracts.Version,
	}
}

// ReadinessCheck returns readiness status
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services: map[string]interface{}{
			"cleaner": hs.checkCleanerHealth(),
		},
	}

	for _, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}

	if status.Status != "ready" {
		hs.logger.WarnContext(ctx, "ReadinessCheck: not ready")
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"version":             info.Version,
		"api_version":         info.APIVersion,
		"data_format_version": info.DataFormat,
		"build_time":          info.BuildTime,
		"git_commit":          info.GitCommit,
		"go_version":          runtime.Version(),
		"os":                  runtime.GOOS,
		"arch":                runtime.GOARCH,
		"uptime":              time.Since(hs.startTime).Seconds(),
		"start_time":          hs.startTime.Format(time.RFC3339),
	}
}

// checkCleanerHealth reports whether the cleaning service is wired.
func (hs *HealthService) checkCleanerHealth() ServiceHealth {
	if hs.cleaning == nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: "cleaning service not initialized",
		}
	}

	limits := hs.cleaning.Limits()
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("accepting uploads up to %d bytes and %d rows", limits.MaxBytes, limits.MaxRows),
		Uptime:  time.Since(hs.startTime).String(),
	}
}
