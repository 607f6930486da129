// Package common provides shared utilities for Rentvest
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Rentvest
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Valuation   ValuationConfig `toml:"valuation"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"` // requests per second per client, 0 disables
	RateBurst int     `toml:"rate_burst"`
}

// StorageConfig selects and configures the saved-portfolio backend.
type StorageConfig struct {
	Backend  string `toml:"backend"`   // "file" or "surrealdb"
	Path     string `toml:"path"`      // file backend base directory
	Versions int    `toml:"versions"`  // file backend: previous versions kept per portfolio
	MaxSaved int    `toml:"max_saved"` // hard cap on saved portfolios, 0 means unlimited

	// SurrealDB backend
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// ValuationConfig holds defaults for portfolio valuation
type ValuationConfig struct {
	DefaultMarketCapRate float64 `toml:"default_market_cap_rate"` // %
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			RateLimit: 20,
			RateBurst: 40,
		},
		Storage: StorageConfig{
			Backend:   "file",
			Path:      "data",
			Versions:  3,
			MaxSaved:  50,
			Address:   "ws://localhost:8000/rpc",
			Namespace: "rentvest",
			Database:  "rentvest",
			Username:  "root",
			Password:  "root",
		},
		Valuation: ValuationConfig{
			DefaultMarketCapRate: 6,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("RENTVEST_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("RENTVEST_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("RENTVEST_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("RENTVEST_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("RENTVEST_DATA_PATH"); path != "" {
		config.Storage.Path = filepath.Clean(path)
	}

	if backend := os.Getenv("RENTVEST_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = strings.ToLower(backend)
	}

	if addr := os.Getenv("RENTVEST_STORAGE_ADDRESS"); addr != "" {
		config.Storage.Address = addr
	}

	if rate := os.Getenv("RENTVEST_MARKET_CAP_RATE"); rate != "" {
		if r, err := strconv.ParseFloat(rate, 64); err == nil {
			config.Valuation.DefaultMarketCapRate = r
		}
	}
}

// Validate rejects settings the application cannot start with
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "surrealdb":
	default:
		return fmt.Errorf("unknown storage backend %q: must be file or surrealdb", c.Storage.Backend)
	}
	if c.Storage.MaxSaved < 0 {
		return fmt.Errorf("storage.max_saved must be non-negative, got %d", c.Storage.MaxSaved)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if r := c.Valuation.DefaultMarketCapRate; r < 0 || r > 100 {
		return fmt.Errorf("valuation.default_market_cap_rate must be between 0 and 100, got %.2f", r)
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
