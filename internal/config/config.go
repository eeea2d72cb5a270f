// Package config provides configuration loading and validation for
// PeopleDesk. Configuration comes from peopledesk.yaml with environment
// overrides under the PEOPLEDESK_ prefix.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for PeopleDesk.
type Config struct {
	// Store configures the persisted key-value backend.
	Store StoreConfig `yaml:"store" mapstructure:"store"`

	// Session configures the authentication session lifecycle.
	Session SessionConfig `yaml:"session" mapstructure:"session"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// LateThreshold is the HH:MM check-in cutoff after which attendance is
	// marked late. Company settings stored in the data file take precedence.
	LateThreshold string `yaml:"late_threshold" mapstructure:"late_threshold" validate:"omitempty,clock_hhmm"`
}

// StoreConfig selects and locates the persisted store backend.
type StoreConfig struct {
	// Backend is "file" (default), "sqlite", or "memory".
	Backend string `yaml:"backend" mapstructure:"backend" validate:"omitempty,oneof=file sqlite memory"`

	// Path is the data file location. Defaults to ./peopledesk.json for the
	// file backend and ./peopledesk.db for sqlite. Ignored by memory.
	Path string `yaml:"path" mapstructure:"path"`

	// Namespace prefixes every key. Defaults to "hrms_".
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
}

// SessionConfig holds session lifecycle settings.
type SessionConfig struct {
	// Timeout is the session duration (e.g. "30m"). Default: 30 minutes.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// MarshalYAML renders the timeout as a duration string ("30m0s") instead of
// raw nanoseconds.
func (s SessionConfig) MarshalYAML() (any, error) {
	return map[string]string{"timeout": s.Timeout.String()}, nil
}

// SetDefaults fills zero-valued fields with their defaults.
func (c *Config) SetDefaults() {
	if c.Store.Backend == "" {
		c.Store.Backend = "file"
	}
	if c.Store.Path == "" {
		switch c.Store.Backend {
		case "sqlite":
			c.Store.Path = "./peopledesk.db"
		default:
			c.Store.Path = "./peopledesk.json"
		}
	}
	if c.Store.Namespace == "" {
		c.Store.Namespace = "hrms_"
	}
	if c.Session.Timeout == 0 {
		c.Session.Timeout = 30 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LateThreshold == "" {
		c.LateThreshold = "09:30"
	}
}

// RenderYAML renders the configuration as a YAML document, suitable for
// writing back out as a config file.
func (c *Config) RenderYAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}

// WriteFile writes the configuration as YAML to path. It refuses to
// overwrite an existing file.
func (c *Config) WriteFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	out, err := c.RenderYAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load reads the configuration from viper, applies defaults, and validates.
func Load() (*Config, error) {
	cfg, err := LoadRaw()
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadRaw reads the configuration without defaults or validation. A missing
// config file is not an error; env vars and defaults still apply.
func LoadRaw() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
