package picker

import (
	"context"
	"fmt"
)

// Evaluator runs JS in the page. browser.Tab implements it.
type Evaluator interface {
	EvalString(ctx context.Context, js string, args ...any) (string, error)
}

// Style of the highlight overlay.
type Style struct {
	Color  string // background tint
	Border string // outline
}

// DefaultStyle is a translucent blue tint with a solid outline.
var DefaultStyle = Style{
	Color:  "rgba(59, 130, 246, 0.2)",
	Border: "2px solid rgb(59, 130, 246)",
}

// The marker attribute is a data-* attribute so markup cleaning removes it
// if an extraction runs while the highlight is on.
const highlightJS = `(sel, color, border) => {
	const prev = document.querySelector('[data-snatch-highlight="true"]');
	if (prev instanceof HTMLElement) {
		prev.style.outline = '';
		prev.style.backgroundColor = '';
		delete prev.dataset.snatchHighlight;
	}
	let el = null;
	try { el = document.querySelector(sel); } catch (e) {}
	if (!(el instanceof HTMLElement)) return 'missing';
	el.dataset.snatchHighlight = 'true';
	el.style.outline = border;
	el.style.backgroundColor = color;
	return 'ok';
}`

const clearJS = `() => {
	const el = document.querySelector('[data-snatch-highlight="true"]');
	if (el instanceof HTMLElement) {
		el.style.outline = '';
		el.style.backgroundColor = '';
		delete el.dataset.snatchHighlight;
	}
	return 'ok';
}`

// Highlighter marks at most one element per page.
type Highlighter struct {
	eval    Evaluator
	style   Style
	current string
}

// NewHighlighter creates a Highlighter. A zero Style uses DefaultStyle.
func NewHighlighter(eval Evaluator, style Style) *Highlighter {
	if style == (Style{}) {
		style = DefaultStyle
	}
	return &Highlighter{eval: eval, style: style}
}

// Highlight clears any previous mark and outlines the element matched by
// selector.
func (h *Highlighter) Highlight(ctx context.Context, selector string) error {
	res, err := h.eval.EvalString(ctx, highlightJS, selector, h.style.Color, h.style.Border)
	if err != nil {
		return fmt.Errorf("picker: highlight %q: %w", selector, err)
	}
	if res != "ok" {
		h.current = ""
		return fmt.Errorf("picker: highlight %q: no such element", selector)
	}
	h.current = selector
	return nil
}

// Clear removes the mark.
func (h *Highlighter) Clear(ctx context.Context) error {
	if _, err := h.eval.EvalString(ctx, clearJS); err != nil {
		return fmt.Errorf("picker: clear: %w", err)
	}
	h.current = ""
	return nil
}

// Current returns the highlighted selector, or "".
func (h *Highlighter) Current() string { return h.current }
