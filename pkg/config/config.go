// Package config provides configuration loading and management for
// slicestream. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Processing parameters
	Processing struct {
		// Workers specifies how many parallel workers region-partitioned
		// passes run with.
		Workers int `yaml:"workers"`

		// FrameAxis selects the input axis mapped to the temporal axis
		// of the output video stream.
		FrameAxis int `yaml:"frameAxis"`

		// FrameStart and FrameDuration narrow which frames an update
		// produces. A zero duration means all frames.
		FrameStart    int `yaml:"frameStart"`
		FrameDuration int `yaml:"frameDuration"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output.
		Verbose bool `yaml:"verbose"`

		// FrameStats controls whether per-frame summary statistics are
		// reported after conversion.
		FrameStats bool `yaml:"frameStats"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Processing.Workers = runtime.NumCPU()
	cfg.Processing.FrameAxis = 0

	cfg.Output.Verbose = true
	cfg.Output.FrameStats = true

	return cfg
}

// Validate checks the configuration for values no pipeline run could
// accept. Axis bounds depend on the input's dimensionality and are
// checked by the filters, not here.
func (c *Config) Validate() error {
	if c.Processing.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Processing.Workers)
	}
	if c.Processing.FrameAxis < 0 {
		return fmt.Errorf("config: frameAxis must not be negative, got %d", c.Processing.FrameAxis)
	}
	if c.Processing.FrameDuration < 0 {
		return fmt.Errorf("config: frameDuration must not be negative, got %d", c.Processing.FrameDuration)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
