package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Tab is one navigated page.
type Tab struct {
	Page    *rod.Page
	PageURL string
	Stealth StealthLevel
}

// NormalizeURL adds https:// when the URL carries no http(s) scheme.
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "http") {
		return u
	}
	return "https://" + u
}

// OpenTab creates a tab at the configured viewport, navigates to pageURL
// and waits for load. A load timeout is logged, not returned: the DOM is
// usually complete enough to extract from.
func (m *Manager) OpenTab(ctx context.Context, pageURL string) (*Tab, error) {
	b := m.Browser()
	if b == nil {
		return nil, fmt.Errorf("browser: no active browser")
	}
	log := m.cfg.Logger
	pageURL = NormalizeURL(pageURL)

	var page *rod.Page
	var err error
	if m.cfg.Stealth >= LevelHeadless {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             m.cfg.Viewport.Width,
		Height:            m.cfg.Viewport.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		log.Warn("browser: set viewport failed", "error", err)
	}

	applyResourceBlocking(page, m.cfg.ResourceBlocking)

	navCtx, cancel := context.WithTimeout(ctx, m.cfg.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		page.Close()
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		log.Warn("browser: wait load timeout", "url", pageURL, "error", err)
	}

	return &Tab{Page: page, PageURL: pageURL, Stealth: m.cfg.Stealth}, nil
}

// EvalString runs a JS function in the page and returns its string result.
// Scripts are expected to return JSON.stringify(...) output.
func (t *Tab) EvalString(ctx context.Context, js string, args ...any) (string, error) {
	res, err := t.Page.Context(ctx).Eval(js, args...)
	if err != nil {
		return "", fmt.Errorf("browser: eval: %w", err)
	}
	return res.Value.Str(), nil
}

// DocumentHTML serialises the current document.
func (t *Tab) DocumentHTML(ctx context.Context) (string, error) {
	return t.EvalString(ctx, `() => document.documentElement.outerHTML`)
}

// Close closes the tab.
func (t *Tab) Close() error {
	if t.Page != nil {
		return t.Page.Close()
	}
	return nil
}
