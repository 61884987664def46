package common

import (
	"os"
	"strconv"

	"github.com/smartinez/factura-extractor/internal/extract"
)

// Config holds all application configuration
type Config struct {
	Extractor extract.Config
	Input     InputConfig
}

// InputConfig holds input-boundary configuration
type InputConfig struct {
	// MinLength is the caller-side guard: texts shorter than this are
	// rejected before the pipeline runs (OCR produced nothing usable).
	MinLength int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extractor: extract.Config{
			VendorScanLines:     getEnvAsInt("VENDOR_SCAN_LINES", 0),
			NumberFallbackLines: getEnvAsInt("NUMBER_FALLBACK_LINES", 0),
			DateFallbackLines:   getEnvAsInt("DATE_FALLBACK_LINES", 0),
			TotalWindowBefore:   getEnvAsInt("TOTAL_WINDOW_BEFORE", 0),
			TotalWindowAfter:    getEnvAsInt("TOTAL_WINDOW_AFTER", 0),
			GroupLookback:       getEnvAsInt("GROUP_LOOKBACK", 0),
		},
		Input: InputConfig{
			MinLength: getEnvAsInt("MIN_INPUT_LENGTH", 50),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Input.MinLength < 0 {
		return NewAppError("CONFIG_ERROR", "MIN_INPUT_LENGTH must not be negative", ErrInvalidInput)
	}
	return nil
}
