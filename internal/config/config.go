// Package config provides configuration management.
// Configuration comes from an optional JSON file and is then overridden by
// GHCOST_* environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/kelseyhightower/envconfig"

	apperrors "ghcost/internal/errors"
	"ghcost/internal/logging"
)

const appConfPrefix = "GHCOST"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" ignored:"true"`

	// Tariff selects the tariff catalog
	Tariff TariffConfig `json:"tariff"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// TariffConfig selects the tariff catalog
type TariffConfig struct {
	// Path is a YAML or JSON tariff file; empty uses the embedded catalog
	Path string `json:"path" split_words:"true"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json, markdown)
	DefaultFormat string `json:"default_format" split_words:"true"`

	// ShowDetails shows per-resource line items
	ShowDetails bool `json:"show_details" split_words:"true"`

	// NoColor disables ANSI colors in cli output
	NoColor bool `json:"no_color" split_words:"true"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" split_words:"true"`

	// EnablePprof mounts the pprof middleware
	EnablePprof bool `json:"enable_pprof" split_words:"true"`

	// ReadTimeoutSeconds bounds request reads
	ReadTimeoutSeconds int `json:"read_timeout_seconds" split_words:"true"`

	// BodyLimitKB bounds request bodies
	BodyLimitKB int `json:"body_limit_kb" split_words:"true"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Server: ServerConfig{
			Addr:               ":8080",
			ReadTimeoutSeconds: 10,
			BodyLimitKB:        256,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.ghcost.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ghcost.json"
	}
	return filepath.Join(homeDir, ".ghcost.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, apperrors.Config("reading config file", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, apperrors.Config("decoding config file "+path, err)
	}

	return config, nil
}

// ApplyEnv overrides c with GHCOST_* environment variables,
// e.g. GHCOST_SERVER_ADDR or GHCOST_LOGGING_LEVEL.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(appConfPrefix, c); err != nil {
		return apperrors.Config("processing environment", err)
	}
	return nil
}

// FromEnv returns the defaults overridden by the environment.
func FromEnv() (*Config, error) {
	config := Default()
	err := config.ApplyEnv()
	return config, err
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
