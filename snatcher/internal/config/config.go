// Package config handles snatch configuration from YAML files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/snatch/reduce"
)

// Config is the top-level snatch configuration.
type Config struct {
	Browser   BrowserConfig   `yaml:"browser"`
	Extract   ExtractConfig   `yaml:"extract"`
	Transform TransformConfig `yaml:"transform"`
	Output    OutputConfig    `yaml:"output"`
	Archive   ArchiveConfig   `yaml:"archive"`
	HTTP      HTTPConfig      `yaml:"http"`
	Sinks     []SinkConfig    `yaml:"sinks"`
}

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig struct {
	Remote           string         `yaml:"remote"`
	Stealth          string         `yaml:"stealth"` // plain | headless | headful
	ResourceBlocking []string       `yaml:"resource_blocking"`
	MemoryLimit      int64          `yaml:"memory_limit"`
	RecycleInterval  time.Duration  `yaml:"recycle_interval"`
	XvfbDisplay      string         `yaml:"xvfb_display"`
	Viewport         ViewportConfig `yaml:"viewport"`
	NavigateTimeout  time.Duration  `yaml:"navigate_timeout"`
}

// ViewportConfig is the emulated window size.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ExtractConfig controls collection depth and reduction.
type ExtractConfig struct {
	MaxDepth int `yaml:"max_depth"`
	// Reducer is nil when the section is absent, meaning reduce.DefaultOptions.
	Reducer *reduce.Options `yaml:"reducer"`
}

// ReducerOptions returns the configured options or the defaults.
func (e ExtractConfig) ReducerOptions() reduce.Options {
	if e.Reducer == nil {
		return reduce.DefaultOptions()
	}
	return *e.Reducer
}

// TransformConfig selects the model backend used to turn an extraction into
// framework code.
type TransformConfig struct {
	Backend   string        `yaml:"backend"` // cli | openai
	Command   string        `yaml:"command"` // for cli
	Model     string        `yaml:"model"`   // for openai
	BaseURL   string        `yaml:"base_url"`
	APIKeyEnv string        `yaml:"api_key_env"`
	Timeout   time.Duration `yaml:"timeout"`
}

// OutputConfig controls where generated components land.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	TemplatesDir string `yaml:"templates_dir"`
}

// ArchiveConfig locates the extraction archive. Empty path disables it.
type ArchiveConfig struct {
	Path string `yaml:"path"`
}

// HTTPConfig is the API listener.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// SinkConfig defines an output backend.
type SinkConfig struct {
	Type    string `yaml:"type"` // stdout | webhook
	URL     string `yaml:"url"`  // for webhook
	Retries int    `yaml:"retries"`
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Browser.Stealth == "" {
		c.Browser.Stealth = "headless"
	}
	if c.Browser.ResourceBlocking == nil {
		c.Browser.ResourceBlocking = []string{"media"}
	}
	if c.Browser.MemoryLimit <= 0 {
		c.Browser.MemoryLimit = 1 << 30
	}
	if c.Browser.RecycleInterval <= 0 {
		c.Browser.RecycleInterval = 4 * time.Hour
	}
	if c.Browser.XvfbDisplay == "" {
		c.Browser.XvfbDisplay = ":99"
	}
	if c.Browser.Viewport.Width <= 0 || c.Browser.Viewport.Height <= 0 {
		c.Browser.Viewport = ViewportConfig{Width: 1920, Height: 1080}
	}
	if c.Browser.NavigateTimeout <= 0 {
		c.Browser.NavigateTimeout = 30 * time.Second
	}
	if c.Extract.MaxDepth <= 0 {
		c.Extract.MaxDepth = 10
	}
	if c.Transform.Backend == "" {
		c.Transform.Backend = "cli"
	}
	if c.Transform.Command == "" {
		c.Transform.Command = "claude"
	}
	if c.Transform.Model == "" {
		c.Transform.Model = "gpt-4o-mini"
	}
	if c.Transform.APIKeyEnv == "" {
		c.Transform.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.Transform.Timeout <= 0 {
		c.Transform.Timeout = 2 * time.Minute
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./components"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = "127.0.0.1:8484"
	}
	for i := range c.Sinks {
		if c.Sinks[i].Retries <= 0 {
			c.Sinks[i].Retries = 3
		}
	}
}

func (c *Config) validate() error {
	switch c.Transform.Backend {
	case "cli", "openai":
	default:
		return fmt.Errorf("config: transform.backend %q: want cli or openai", c.Transform.Backend)
	}
	for i, s := range c.Sinks {
		switch s.Type {
		case "stdout":
		case "webhook":
			if s.URL == "" {
				return fmt.Errorf("config: sinks[%d]: webhook needs url", i)
			}
		default:
			return fmt.Errorf("config: sinks[%d]: unknown type %q", i, s.Type)
		}
	}
	return nil
}
