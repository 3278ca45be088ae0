package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// Config holds all server configuration.
type Config struct {
	Addr    string    `yaml:"addr"`    // Listen address
	Theme   string    `yaml:"theme"`   // Chat theme name ("light", "dark", or custom)
	Assets  string    `yaml:"assets"`  // Custom asset directory (empty = embedded only)
	Workers int       `yaml:"workers"` // Browser pool size (0 = auto from GOMAXPROCS)
	Log     LogConfig `yaml:"log"`
}

// LogConfig defines logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // zerolog level: debug, info, warn, error
	Pretty bool   `yaml:"pretty"` // Human-readable console output instead of JSON
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Addr:  ":8080",
		Theme: "light",
		Log:   LogConfig{Level: "info"},
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}
