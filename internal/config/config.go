// Package config loads the ambient configuration for the demonstration
// CLI and HTTP service that drive the hazard-curve core. CalcConfig
// (the core's own per-run options) is in-core data, validated
// synchronously by the hazard package itself — this package is strictly
// about the surrounding application: where the result cache lives, what
// port the API listens on, how big the worker pool is.
package config

import (
	"os"
	"runtime"
	"strconv"

	"hazardcurve/internal/errors"
)

// Config represents the complete application configuration.
type Config struct {
	ResultStore ResultStoreConfig `validate:"required"`
	Server      ServerConfig      `validate:"required"`
	Pipeline    PipelineConfig
}

// ResultStoreConfig holds result-cache connection settings.
type ResultStoreConfig struct {
	DSN     string `validate:"required"`
	Enabled bool
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Port    string `validate:"required"`
	GinMode string
}

// PipelineConfig holds orchestrator tuning knobs.
type PipelineConfig struct {
	// MaxConcurrency caps the number of in-flight per-source tasks. It
	// defaults to runtime.NumCPU() when HAZARD_MAX_CONCURRENCY is unset or
	// not an integer; Load rejects a value of zero or less.
	MaxConcurrency int
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		ResultStore: loadResultStoreConfig(),
		Server:      loadServerConfig(),
		Pipeline:    loadPipelineConfig(),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

func loadResultStoreConfig() ResultStoreConfig {
	return ResultStoreConfig{
		DSN:     getEnvOrDefault("HAZARD_RESULTSTORE_DSN", ""),
		Enabled: getEnvBoolOrDefault("HAZARD_RESULTSTORE_ENABLED", false),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadPipelineConfig() PipelineConfig {
	return PipelineConfig{
		MaxConcurrency: getEnvIntOrDefault("HAZARD_MAX_CONCURRENCY", runtime.NumCPU()),
	}
}

func validateConfig(cfg *Config) error {
	if cfg.ResultStore.Enabled && cfg.ResultStore.DSN == "" {
		return errors.ConfigInvalid("HAZARD_RESULTSTORE_DSN is required when the result store is enabled")
	}
	if cfg.Pipeline.MaxConcurrency <= 0 {
		return errors.ConfigInvalid("pipeline concurrency must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
