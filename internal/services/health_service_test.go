package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataclean/internal/shared/testutil"
	"dataclean/internal/validation"
	"dataclean/pkg/contracts"
)

func TestHealthService_HealthCheck(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService(nil, logger)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, contracts.Version, status.Version)
	assert.False(t, status.Timestamp.IsZero())
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)

	t.Run("ready with cleaning service", func(t *testing.T) {
		svc := NewCleaningService(validation.UploadLimits{MaxBytes: 1024, MaxRows: 10}, nil, nil, logger)
		hs := NewHealthService(svc, logger)

		status := hs.ReadinessCheck(context.Background())
		assert.Equal(t, "ready", status.Status)
		require.Contains(t, status.Services, "cleaner")
		sh := status.Services["cleaner"].(ServiceHealth)
		assert.Equal(t, "ready", sh.Status)
		assert.Contains(t, sh.Message, "1024 bytes")
	})

	t.Run("not ready without cleaning service", func(t *testing.T) {
		hs := NewHealthService(nil, logger)

		status := hs.ReadinessCheck(context.Background())
		assert.Equal(t, "not_ready", status.Status)
		assert.True(t, handler.ContainsMessage("ReadinessCheck: not ready"))
	})
}

func TestHealthService_LivenessCheck(t *testing.T) {
	hs := NewHealthService(nil, nil)

	status := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", status.Status)
	assert.Contains(t, status.Runtime, "uptime")
	assert.Contains(t, status.Runtime, "go_version")
	assert.Contains(t, status.Runtime, "goroutines")
}

func TestHealthService_Version(t *testing.T) {
	hs := NewHealthService(nil, nil)

	info := hs.Version()
	assert.Equal(t, contracts.Version, info["version"])
	assert.Equal(t, contracts.APIVersion, info["api_version"])
	for _, key := range []string{"go_version", "os", "arch", "uptime", "start_time"} {
		assert.Contains(t, info, key)
	}
}
