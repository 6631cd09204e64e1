package config

import (
	"os"
	"strconv"

	"py50/internal"
	"py50/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Plot PlotConfig
	Data DataConfig
	Log  LogConfig
}

// PlotConfig holds figure output settings
type PlotConfig struct {
	DPI       float64
	Width     int
	Height    int
	Palette   string
	OutputDir string
}

// DataConfig holds dataset input settings
type DataConfig struct {
	File string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	plotConfig, err := loadPlotConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load plot configuration")
	}

	config := &Config{
		Plot: *plotConfig,
		Data: DataConfig{File: getEnvOrDefault("PY50_DATA_FILE", "")},
		Log:  loadLogConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadPlotConfig() (*PlotConfig, error) {
	dpi, err := getEnvFloat("PY50_DPI", 300)
	if err != nil {
		return nil, err
	}
	width, err := getEnvInt("PY50_WIDTH", 640)
	if err != nil {
		return nil, err
	}
	height, err := getEnvInt("PY50_HEIGHT", 480)
	if err != nil {
		return nil, err
	}
	return &PlotConfig{
		DPI:       dpi,
		Width:     width,
		Height:    height,
		Palette:   getEnvOrDefault("PY50_PALETTE", "deep"),
		OutputDir: getEnvOrDefault("PY50_OUTPUT_DIR", ""),
	}, nil
}

func loadLogConfig() LogConfig {
	level, _ := internal.ParseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO"))
	return LogConfig{Level: level}
}

func validateConfig(config *Config) error {
	if config.Plot.DPI <= 0 {
		return errors.ConfigInvalid("PY50_DPI must be positive")
	}
	if config.Plot.Width <= 0 || config.Plot.Height <= 0 {
		return errors.ConfigInvalid("PY50_WIDTH and PY50_HEIGHT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer, got " + strconv.Quote(value))
	}
	return intValue, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a number, got " + strconv.Quote(value))
	}
	return floatValue, nil
}
