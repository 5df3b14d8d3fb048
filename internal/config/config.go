// Package config provides configuration management for Glossa.
// Settings come from an optional YAML file plus environment variables
// with the GLOSSA_ prefix; environment variables override the file, and
// every option has a sensible default so the service runs with no
// configuration at all.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings for the Glossa service.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Security SecurityConfig `yaml:"security"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"` // Server port (default: 7227)
	Host string `yaml:"host"` // Server host (default: 127.0.0.1)
}

// StorageConfig contains report-store configuration.
type StorageConfig struct {
	StorageEngine string `yaml:"storage_engine"` // Report store engine: sqlite, postgres (default: sqlite)
	DataPath      string `yaml:"data_path"`      // Path to data directory for sqlite (default: ./data)
	PostgresDSN   string `yaml:"postgres_dsn"`   // Connection string when storage_engine is postgres
}

// SecurityConfig contains security and authentication settings.
type SecurityConfig struct {
	SecurityMode string `yaml:"security_mode"` // Security mode: development, production (default: development)
	APIToken     string `yaml:"api_token"`     // API authentication token
}

// AnalysisConfig contains analysis-request settings.
type AnalysisConfig struct {
	AllowRemoteSources bool `yaml:"allow_remote_sources"` // Permit http(s) document sources (default: true)
	PersistReports     bool `yaml:"persist_reports"`      // Record completed analyses in the report store (default: true)
}

// LoadConfig loads configuration from environment variables with defaults.
// All environment variables use the GLOSSA_ prefix.
func LoadConfig() (*Config, error) {
	return applyEnv(defaultConfig()), nil
}

// LoadConfigFile loads configuration from a YAML file, then applies
// environment overrides on top. Missing keys in the file keep their
// defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return applyEnv(cfg), nil
}

// defaultConfig returns the built-in defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 7227,
			Host: "127.0.0.1",
		},
		Storage: StorageConfig{
			StorageEngine: "sqlite",
			DataPath:      "./data",
		},
		Security: SecurityConfig{
			SecurityMode: "development",
		},
		Analysis: AnalysisConfig{
			AllowRemoteSources: true,
			PersistReports:     true,
		},
	}
}

// applyEnv overrides cfg fields from GLOSSA_-prefixed environment variables.
func applyEnv(cfg *Config) *Config {
	cfg.Server.Port = getEnvInt("GLOSSA_PORT", cfg.Server.Port)
	cfg.Server.Host = getEnv("GLOSSA_HOST", cfg.Server.Host)
	cfg.Storage.StorageEngine = getEnv("GLOSSA_STORAGE_ENGINE", cfg.Storage.StorageEngine)
	cfg.Storage.DataPath = getEnv("GLOSSA_DATA_PATH", cfg.Storage.DataPath)
	cfg.Storage.PostgresDSN = getEnv("GLOSSA_POSTGRES_DSN", cfg.Storage.PostgresDSN)
	cfg.Security.SecurityMode = getEnv("GLOSSA_SECURITY_MODE", cfg.Security.SecurityMode)
	cfg.Security.APIToken = getEnv("GLOSSA_API_TOKEN", cfg.Security.APIToken)
	cfg.Analysis.AllowRemoteSources = getEnvBool("GLOSSA_ALLOW_REMOTE_SOURCES", cfg.Analysis.AllowRemoteSources)
	cfg.Analysis.PersistReports = getEnvBool("GLOSSA_PERSIST_REPORTS", cfg.Analysis.PersistReports)
	return cfg
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
// value. If the variable exists but cannot be parsed as an integer, the
// default is returned.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvBool retrieves a boolean environment variable or returns a default
// value. Accepts the forms understood by strconv.ParseBool.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
