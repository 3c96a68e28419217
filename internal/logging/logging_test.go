package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		format  string
		enabled zapcore.Level
		blocked zapcore.Level
	}{
		{"debug", FormatConsole, zapcore.DebugLevel, zapcore.InvalidLevel},
		{"info", FormatJSON, zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", FormatJSON, zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", FormatConsole, zapcore.ErrorLevel, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			logger, err := New(tt.level, tt.format)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			if tt.blocked != zapcore.InvalidLevel {
				assert.False(t, logger.Core().Enabled(tt.blocked))
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("verbose", FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}

func TestInit_ReplacesGlobals(t *testing.T) {
	before := zap.L()

	cleanup, err := Init("warn", FormatJSON)
	require.NoError(t, err)
	assert.NotSame(t, before, zap.L())
	assert.False(t, zap.L().Core().Enabled(zapcore.InfoLevel))

	cleanup()
	assert.Same(t, before, zap.L())
}

func TestInit_InvalidLevel(t *testing.T) {
	cleanup, err := Init("loud", FormatJSON)
	assert.Error(t, err)
	assert.NotNil(t, cleanup)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "*****", Mask("short"))
	assert.Equal(t, "********", Mask("12345678"))
	assert.Equal(t, "****wxyz", Mask("sk-abcdefghijklmnopqrstuvwxyz"))
}

func TestRedact_NeverLogsSecret(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	secret := "sk-live-0123456789abcdef"
	logger.Info("client configured", Redact("api_key", secret))

	require.Equal(t, 1, logs.Len())
	field := logs.All()[0].ContextMap()["api_key"]
	assert.Equal(t, "****cdef", field)
	assert.NotContains(t, field, "0123456789")
}
