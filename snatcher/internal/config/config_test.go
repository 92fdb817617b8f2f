package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Browser.Viewport.Width != 1920 || cfg.Browser.Viewport.Height != 1080 {
		t.Errorf("viewport: got %+v", cfg.Browser.Viewport)
	}
	if cfg.Extract.MaxDepth != 10 {
		t.Errorf("max_depth: got %d, want 10", cfg.Extract.MaxDepth)
	}
	if cfg.Browser.Stealth != "headless" {
		t.Errorf("stealth: got %q, want %q", cfg.Browser.Stealth, "headless")
	}
	opts := cfg.Extract.ReducerOptions()
	if !opts.RemoveDefaults || opts.RemoveInherited {
		t.Errorf("reducer options: got %+v", opts)
	}
	if cfg.HTTP.Addr != "127.0.0.1:8484" {
		t.Errorf("addr: got %q", cfg.HTTP.Addr)
	}
}

func TestLoadFile(t *testing.T) {
	yml := `
browser:
  stealth: headful
  resource_blocking: [images, fonts]
  viewport: {width: 1280, height: 720}
  navigate_timeout: 5s
extract:
  max_depth: 4
  reducer:
    remove_vendor_prefixes: true
    remove_defaults: false
    remove_inherited: true
    use_shorthand: false
transform:
  backend: openai
  model: local-model
  base_url: http://localhost:11434/v1
archive:
  path: /tmp/snatch.db
sinks:
  - type: stdout
  - type: webhook
    url: http://example.test/hook
`
	path := filepath.Join(t.TempDir(), "snatch.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Browser.Stealth != "headful" {
		t.Errorf("stealth: got %q, want %q", cfg.Browser.Stealth, "headful")
	}
	if len(cfg.Browser.ResourceBlocking) != 2 {
		t.Errorf("resource_blocking: got %v", cfg.Browser.ResourceBlocking)
	}
	if cfg.Browser.Viewport.Width != 1280 {
		t.Errorf("viewport width: got %d", cfg.Browser.Viewport.Width)
	}
	if cfg.Browser.NavigateTimeout != 5*time.Second {
		t.Errorf("navigate_timeout: got %v", cfg.Browser.NavigateTimeout)
	}
	if cfg.Extract.MaxDepth != 4 {
		t.Errorf("max_depth: got %d", cfg.Extract.MaxDepth)
	}
	opts := cfg.Extract.ReducerOptions()
	if opts.RemoveDefaults || !opts.RemoveInherited || opts.UseShorthand {
		t.Errorf("reducer options: got %+v", opts)
	}
	if cfg.Transform.Backend != "openai" || cfg.Transform.Model != "local-model" {
		t.Errorf("transform: got %+v", cfg.Transform)
	}
	if cfg.Sinks[1].Retries != 3 {
		t.Errorf("webhook retries: got %d, want 3", cfg.Sinks[1].Retries)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"backend":      "transform: {backend: smoke-signals}",
		"sink type":    "sinks: [{type: nats}]",
		"webhook url":  "sinks: [{type: webhook}]",
		"syntax error": "browser: [",
	}
	for name, yml := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(yml)); err == nil {
				t.Errorf("Parse(%q): expected error", yml)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
