// Package config loads a11y-conform settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every command. Flags override them.
type Config struct {
	Fixture   string `yaml:"fixture"`    // path to a virtual app fixture; empty uses the embedded one
	Control   string `yaml:"control"`    // automation id of the control under test
	Limited   string `yaml:"limited"`    // automation id of a control with a maximum length
	Numeric   string `yaml:"numeric"`    // automation id of a numeric-only control
	Sample    string `yaml:"sample"`     // sample text written before text scenarios
	Structure string `yaml:"structure"`  // path to the expected menu markup
	DBPath    string `yaml:"db"`         // results history; empty uses the default location
	History   bool   `yaml:"history"`    // save each run to the history database
	LogLevel  string `yaml:"log_level"`  // debug | info | warn | error
	LogFormat string `yaml:"log_format"` // text | json
	Format    string `yaml:"format"`     // yaml | json
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	cfg := &Config{History: true}
	cfg.applyDefaults()
	return cfg
}

// DefaultPath returns $XDG_CONFIG_HOME/a11y-conform/config.yaml, falling back to ~/.config.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, "a11y-conform", "config.yaml"), nil
}

// Load reads path, or DefaultPath when path is empty. A missing file at the
// default location yields the defaults; an explicit path must exist.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{History: true}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Control == "" {
		c.Control = "RichTextBox1"
	}
	if c.Limited == "" {
		c.Limited = "LimitedBox"
	}
	if c.Numeric == "" {
		c.Numeric = "NumericBox"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.Format == "" {
		c.Format = "yaml"
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q (expected text or json)", c.LogFormat)
	}
	switch c.Format {
	case "yaml", "json":
	default:
		return fmt.Errorf("invalid format %q (expected yaml or json)", c.Format)
	}
	return nil
}
