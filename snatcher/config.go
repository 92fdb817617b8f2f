package snatcher

import (
	"github.com/hazyhaar/snatch/snatcher/internal/config"
)

// Config is the top-level snatch configuration. Re-exported from internal.
type Config = config.Config

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig = config.BrowserConfig

// ExtractConfig controls collection depth and reduction.
type ExtractConfig = config.ExtractConfig

// TransformConfig selects the model backend.
type TransformConfig = config.TransformConfig

// SinkConfig defines an output backend.
type SinkConfig = config.SinkConfig

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	return config.LoadFile(path)
}

// DefaultConfig returns the configuration used without a file.
func DefaultConfig() *Config {
	return config.Default()
}
