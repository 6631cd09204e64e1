package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"py50/internal"
	"py50/internal/errors"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"PY50_DPI", "PY50_WIDTH", "PY50_HEIGHT", "PY50_PALETTE", "PY50_OUTPUT_DIR", "PY50_DATA_FILE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.Plot.DPI)
	assert.Equal(t, 640, cfg.Plot.Width)
	assert.Equal(t, 480, cfg.Plot.Height)
	assert.Equal(t, "deep", cfg.Plot.Palette)
	assert.Empty(t, cfg.Plot.OutputDir)
	assert.Empty(t, cfg.Data.File)
	assert.Equal(t, internal.LogLevelInfo, cfg.Log.Level)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PY50_DPI", "150")
	t.Setenv("PY50_WIDTH", "800")
	t.Setenv("PY50_PALETTE", "pastel")
	t.Setenv("PY50_OUTPUT_DIR", "figures")
	t.Setenv("PY50_DATA_FILE", "data.xlsx")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 150.0, cfg.Plot.DPI)
	assert.Equal(t, 800, cfg.Plot.Width)
	assert.Equal(t, "pastel", cfg.Plot.Palette)
	assert.Equal(t, "figures", cfg.Plot.OutputDir)
	assert.Equal(t, "data.xlsx", cfg.Data.File)
	assert.Equal(t, internal.LogLevelDebug, cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("PY50_WIDTH", "wide")
	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
	assert.Contains(t, err.Error(), "PY50_WIDTH")

	t.Setenv("PY50_WIDTH", "")
	t.Setenv("PY50_DPI", "-1")
	_, err = Load()
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
