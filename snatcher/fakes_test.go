package snatcher

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/hazyhaar/snatch/archive"
	"github.com/hazyhaar/snatch/stylesnap"
)

const heroResult = `{
	"found": true,
	"html": "<div class=\"hero\" data-track=\"x\" style=\"color:red\">  Hi  </div>",
	"tagName": "div",
	"classNames": ["hero"],
	"box": {"x": 0, "y": 0, "width": 100, "height": 50},
	"root": {
		"props": [
			["display", "flex"],
			["-webkit-box-align", "center"],
			["margin-top", "4px"],
			["margin-right", "8px"],
			["margin-bottom", "4px"],
			["margin-left", "8px"],
			["position", "static"],
			["color", "rgb(0, 0, 0)"]
		],
		"children": [
			{"props": [["font-size", "16px"], ["opacity", "1"]], "children": []}
		]
	}
}`

const heroCSS = `.hero {
  display: flex;
  color: rgb(0, 0, 0);
  margin: 4px 8px;
}

.hero > :nth-child(1) {
  font-size: 16px;
}`

const pageHTML = `<html><body><header id="top"></header><div class="hero">Hi</div></body></html>`

// fakePage answers the scripts snatch runs in a tab: collection, quick
// styles, highlight and document serialisation.
type fakePage struct {
	mu          sync.Mutex
	collects    int
	highlighted string
	closed      bool
}

func (p *fakePage) EvalString(_ context.Context, js string, args ...any) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case strings.Contains(js, "snatchHighlight") && len(args) == 3:
		p.highlighted = args[0].(string)
		return "ok", nil
	case strings.Contains(js, "snatchHighlight"):
		p.highlighted = ""
		return "ok", nil
	case strings.HasPrefix(js, "(sel, names)"):
		data, _ := json.Marshal([][2]string{{"display", "flex"}, {"margin", "auto"}})
		return string(data), nil
	case strings.Contains(js, "maxDepth"):
		p.collects++
		if args[0] == ".hero" {
			return heroResult, nil
		}
		return `{"found": false}`, nil
	}
	return "", nil
}

func (p *fakePage) DocumentHTML(context.Context) (string, error) { return pageHTML, nil }

func (p *fakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

type fixture struct {
	svc     *Service
	page    *fakePage
	opened  []string
	store   *archive.Store
	reports []stylesnap.Report
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{page: &fakePage{}, store: archive.OpenMemory(t)}
	cfg := DefaultConfig()
	cfg.Output.Dir = t.TempDir()
	base := []Option{
		WithPageOpener(func(_ context.Context, url string) (Page, error) {
			f.opened = append(f.opened, url)
			return f.page, nil
		}),
		WithArchive(f.store),
		WithSinks(NewCallbackSink(func(_ context.Context, rep stylesnap.Report) error {
			f.reports = append(f.reports, rep)
			return nil
		})),
	}
	svc, err := New(cfg, nil, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	f.svc = svc
	return f
}
