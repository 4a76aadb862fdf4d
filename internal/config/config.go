// Package config loads the regionmap command's YAML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-regionmap/regionmap"
)

// Config represents the command configuration loaded from YAML.
type Config struct {
	// Variables names the top-level variables of a region map file.
	Variables struct {
		Tree  string `yaml:"tree"`
		Shape string `yaml:"shape"`
		RLE   string `yaml:"rle"`
	} `yaml:"variables"`

	// Limits bound the work done for a single file.
	Limits struct {
		MaxDepth  int `yaml:"maxDepth"`
		MaxPixels int `yaml:"maxPixels"`
		// MaxInflate caps a decompressed variable in bytes. Zero keeps
		// the reader default.
		MaxInflate int64 `yaml:"maxInflate"`
	} `yaml:"limits"`

	// StrictRLE rejects label tables that do not cover every pixel.
	StrictRLE bool `yaml:"strictRLE"`

	Log struct {
		// Level is one of debug, info, warn or error.
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Variables.Tree = regionmap.DefaultTreeVar
	cfg.Variables.Shape = regionmap.DefaultShapeVar
	cfg.Variables.RLE = regionmap.DefaultRLEVar
	cfg.Limits.MaxDepth = regionmap.DefaultMaxDepth
	cfg.Limits.MaxPixels = regionmap.DefaultMaxPixels
	cfg.StrictRLE = true
	cfg.Log.Level = "info"
	return cfg
}

// Load reads a YAML file over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Limits.MaxDepth <= 0 {
		return fmt.Errorf("limits.maxDepth must be positive, got %d", c.Limits.MaxDepth)
	}
	if c.Limits.MaxPixels <= 0 {
		return fmt.Errorf("limits.maxPixels must be positive, got %d", c.Limits.MaxPixels)
	}
	if c.Limits.MaxInflate < 0 {
		return fmt.Errorf("limits.maxInflate must not be negative, got %d", c.Limits.MaxInflate)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Options converts the configuration into regionmap options.
func (c *Config) Options() []regionmap.Option {
	opts := []regionmap.Option{
		regionmap.WithVariableNames(c.Variables.Tree, c.Variables.Shape, c.Variables.RLE),
		regionmap.WithMaxDepth(c.Limits.MaxDepth),
		regionmap.WithMaxPixels(c.Limits.MaxPixels),
	}
	if c.Limits.MaxInflate > 0 {
		opts = append(opts, regionmap.WithMaxInflate(c.Limits.MaxInflate))
	}
	if c.StrictRLE {
		opts = append(opts, regionmap.WithStrictRLE())
	}
	return opts
}
