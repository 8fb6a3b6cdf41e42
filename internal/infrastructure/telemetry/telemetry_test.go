package telemetry

import (
	"context"
	"testing"

	"github.com/restaurant/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetup_Disabled(t *testing.T) {
	cfg := &config.TelemetryConfig{ServiceName: "restaurant-api"}

	p, err := Setup(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.Tracer.IsEnabled())
	assert.False(t, p.Meter.IsEnabled())
	assert.False(t, p.Logs.IsEnabled())
	assert.False(t, p.Profiler.IsEnabled())
	assert.NotNil(t, p.Meter.Meter("test"))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_ProfilingRequiresAddress(t *testing.T) {
	cfg := &config.TelemetryConfig{ServiceName: "restaurant-api", ProfilingEnabled: true}

	_, err := Setup(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pyroscope address")
}

func TestProfiler_StopIsIdempotent(t *testing.T) {
	p, err := NewProfiler(&config.TelemetryConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestLoggerProvider_DisabledCoreIsNop(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), &config.TelemetryConfig{Enabled: true})
	require.NoError(t, err)

	core := lp.Core(zapcore.InfoLevel)
	assert.False(t, core.Enabled(zapcore.ErrorLevel))
}

func TestLevelFilterCore(t *testing.T) {
	inner, logs := observer.New(zapcore.DebugLevel)
	core := &levelFilterCore{Core: inner, minLevel: zapcore.WarnLevel}
	logger := zap.New(core).With(zap.String("component", "orders"))

	logger.Info("dropped")
	logger.Warn("kept")
	logger.Error("kept too")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
	assert.Equal(t, "orders", logs.All()[0].ContextMap()["component"])
}

func TestSampler(t *testing.T) {
	assert.Contains(t, sampler(1).Description(), "AlwaysOnSampler")
	assert.Equal(t, "AlwaysOffSampler", sampler(0).Description())
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}
