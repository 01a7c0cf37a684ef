// Package config provides configuration management for sbp.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/statblock-cli/internal/printer"
	"github.com/open-cli-collective/statblock-cli/pkg/escpos"
	"github.com/open-cli-collective/statblock-cli/pkg/layout"
)

// MinWidth is the narrowest printable width.
const MinWidth = 10

// ErrInvalidWidth is returned when the resolved width is below MinWidth.
// It is the same value layout returns for widths that leave no room.
var ErrInvalidWidth = layout.ErrInvalidWidth

// Config holds the sbp configuration.
type Config struct {
	Width   int    `yaml:"width,omitempty" env:"SBP_WIDTH"`
	Profile string `yaml:"profile,omitempty" env:"SBP_PROFILE"`
	Font    string `yaml:"font,omitempty" env:"SBP_FONT"`
	Printer string `yaml:"printer,omitempty" env:"SBP_PRINTER"`
	Details bool   `yaml:"details,omitempty" env:"SBP_DETAILS"`
}

// Settings is the resolved, immutable configuration handed to the formatter.
type Settings struct {
	Width   int
	Profile printer.Profile
	Font    escpos.Font
	Printer string
	Details bool
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Profile == "" {
		c.Profile = printer.DefaultProfile
	}
	if c.Font == "" {
		c.Font = "b"
	}
}

// Validate checks that all fields are valid.
func (c *Config) Validate() error {
	if c.Width < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, c.Width)
	}
	if c.Font != "" {
		if _, err := escpos.ParseFont(c.Font); err != nil {
			return err
		}
	}
	if c.Profile != "" {
		if _, err := printer.LookupProfile(c.Profile); err != nil {
			return err
		}
	}
	return nil
}

// Resolve validates the configuration and returns Settings. The width is
// the explicit width if set, otherwise the profile's column count for the
// configured font.
func (c Config) Resolve() (Settings, error) {
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return Settings{}, err
	}

	font, err := escpos.ParseFont(c.Font)
	if err != nil {
		return Settings{}, err
	}
	profile, err := printer.LookupProfile(c.Profile)
	if err != nil {
		return Settings{}, err
	}

	width := c.Width
	if width == 0 {
		if width, err = profile.ColumnsFor(font); err != nil {
			return Settings{}, err
		}
	}
	if width < MinWidth {
		return Settings{}, fmt.Errorf("%w: %d (minimum is %d)", ErrInvalidWidth, width, MinWidth)
	}

	return Settings{
		Width:   width,
		Profile: profile,
		Font:    font,
		Printer: c.Printer,
		Details: c.Details,
	}, nil
}

// LoadFromEnv loads configuration from SBP_* environment variables.
// Environment variables override existing values only if set.
func (c *Config) LoadFromEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "sbp", "config.yml")
	}

	// Fall back to ~/.config/sbp/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".sbp", "config.yml")
	}

	return filepath.Join(home, ".config", "sbp", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file is not an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
