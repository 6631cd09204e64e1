package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	level, ok := ParseLogLevel("debug")
	assert.True(t, ok)
	assert.Equal(t, LogLevelDebug, level)

	level, ok = ParseLogLevel("loud")
	assert.False(t, ok)
	assert.Equal(t, LogLevelInfo, level)
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(LogLevelWarn, &buf)

	logger.Info("hidden %d", 1)
	assert.Empty(t, buf.String())

	logger.Warn("shown %d", 2)
	assert.Contains(t, buf.String(), "[WARN] shown 2")

	logger.SetLevel(LogLevelTrace)
	logger.Trace("deep")
	assert.Contains(t, buf.String(), "[TRACE] deep")
}

func TestLogger_NilIsSilent(t *testing.T) {
	var logger *Logger
	assert.False(t, logger.Enabled(LogLevelError))
	assert.NotPanics(t, func() { logger.Error("nothing") })
}
