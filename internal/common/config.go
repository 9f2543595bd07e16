// Package common provides shared utilities for Folio
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folio
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Backend     BackendConfig   `toml:"backend"`
	Dashboard   DashboardConfig `toml:"dashboard"`
	Charts      ChartsConfig    `toml:"charts"`
	Session     SessionConfig   `toml:"session"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// BackendConfig holds the portfolio backend REST API configuration
type BackendConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"` // empty or "0s" means no timeout
}

// GetTimeout parses and returns the timeout duration. Zero means no timeout.
func (c *BackendConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// DashboardConfig holds display settings for the dashboard pipeline
type DashboardConfig struct {
	Currency    string   `toml:"currency"`     // ISO code used for currency symbols, default "USD"
	SummaryRows int      `toml:"summary_rows"` // row cap on the dashboard holdings table
	LabelLength int      `toml:"label_length"` // company name length before truncation in chart labels
	Palette     []string `toml:"palette"`      // hex colours, assigned by holding index
}

// ChartsConfig holds chart image settings
type ChartsConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Format string `toml:"format"` // "png" or "svg"
}

// SessionConfig holds the names used by the session guard and the idle sweep
type SessionConfig struct {
	TokenCookie   string `toml:"token_cookie"`
	UserCookie    string `toml:"user_cookie"`
	LoginPath     string `toml:"login_path"`
	IdleTimeout   string `toml:"idle_timeout"`   // per-user dashboard state is dropped after this long unused
	SweepInterval string `toml:"sweep_interval"` // how often idle state is swept, "0s" disables the sweep
}

// GetIdleTimeout returns the idle timeout, defaulting to 30 minutes.
func (c *SessionConfig) GetIdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.IdleTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Minute
	}
	return d
}

// GetSweepInterval returns the sweep interval. Zero disables sweeping.
func (c *SessionConfig) GetSweepInterval() time.Duration {
	if c.SweepInterval == "" {
		return 5 * time.Minute
	}
	d, err := time.ParseDuration(c.SweepInterval)
	if err != nil || d < 0 {
		return 5 * time.Minute
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// DefaultPalette is the colour cycle used for chart segments
var DefaultPalette = []string{
	"667eea", "764ba2", "f093fb", "4facfe",
	"43e97b", "fa709a", "fee140", "30cfd0",
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8090,
			CORSOrigins: []string{"*"},
		},
		Backend: BackendConfig{
			BaseURL:   "http://localhost:8080/api",
			RateLimit: 20,
		},
		Dashboard: DashboardConfig{
			Currency:    "USD",
			SummaryRows: 10,
			LabelLength: 12,
			Palette:     append([]string(nil), DefaultPalette...),
		},
		Charts: ChartsConfig{
			Width:  640,
			Height: 400,
			Format: "png",
		},
		Session: SessionConfig{
			TokenCookie:   "folio_token",
			UserCookie:    "folio_user",
			LoginPath:     "/login",
			IdleTimeout:   "30m",
			SweepInterval: "5m",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Outputs:    []string{"console"},
			FilePath:   "./logs/folio.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// A .env file in the working directory is loaded first when present.
func LoadConfig(paths ...string) (*Config, error) {
	_ = godotenv.Load()

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
	applyDashboardDefaults(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FOLIO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FOLIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if url := os.Getenv("FOLIO_BACKEND_URL"); url != "" {
		config.Backend.BaseURL = strings.TrimRight(url, "/")
	}

	if timeout := os.Getenv("FOLIO_BACKEND_TIMEOUT"); timeout != "" {
		config.Backend.Timeout = timeout
	}

	if cur := os.Getenv("FOLIO_CURRENCY"); cur != "" {
		config.Dashboard.Currency = strings.ToUpper(cur)
	}

	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// applyDashboardDefaults restores defaults zeroed out by partial config files
func applyDashboardDefaults(config *Config) {
	if config.Dashboard.SummaryRows <= 0 {
		config.Dashboard.SummaryRows = 10
	}
	if config.Dashboard.LabelLength <= 0 {
		config.Dashboard.LabelLength = 12
	}
	if len(config.Dashboard.Palette) == 0 {
		config.Dashboard.Palette = append([]string(nil), DefaultPalette...)
	}
	if config.Dashboard.Currency == "" {
		config.Dashboard.Currency = "USD"
	}
	config.Backend.BaseURL = strings.TrimRight(config.Backend.BaseURL, "/")
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
