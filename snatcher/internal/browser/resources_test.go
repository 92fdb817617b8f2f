package browser

import "testing"

func TestBlockedTypes_NeverStylesheets(t *testing.T) {
	got := blockedTypes([]string{"images", "Fonts", "stylesheets", "media", "ping", ""})
	for _, want := range []string{"image", "font", "media", "ping"} {
		if !got[want] {
			t.Errorf("%s not blocked", want)
		}
	}
	if got["stylesheet"] || got["stylesheets"] {
		t.Error("stylesheets must never be blocked")
	}
	if len(got) != 4 {
		t.Errorf("len: got %d, want 4 (%v)", len(got), got)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := map[string]string{
		"example.com":          "https://example.com",
		"http://example.com":   "http://example.com",
		"https://example.com/": "https://example.com/",
		"  example.com/a ":     "https://example.com/a",
	}
	for in, want := range tests {
		if got := NormalizeURL(in); got != want {
			t.Errorf("NormalizeURL(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestParseStealth(t *testing.T) {
	if ParseStealth("plain") != LevelPlain || ParseStealth("headful") != LevelHeadful {
		t.Error("ParseStealth mapping wrong")
	}
	if ParseStealth("") != LevelHeadless || ParseStealth("bogus") != LevelHeadless {
		t.Error("ParseStealth default should be headless")
	}
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.defaults()
	if c.Viewport.Width != 1920 || c.Viewport.Height != 1080 {
		t.Errorf("viewport: got %+v", c.Viewport)
	}
	if c.NavigateTimeout <= 0 || c.Logger == nil || c.XvfbDisplay != ":99" {
		t.Errorf("defaults not applied: %+v", c)
	}
}
