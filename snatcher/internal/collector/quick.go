package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// quickProperties is the curated list QuickStyles reads.
var quickProperties = []string{
	"display",
	"flex-direction",
	"justify-content",
	"align-items",
	"gap",
	"padding",
	"margin",
	"width",
	"height",
	"background",
	"background-color",
	"color",
	"font-family",
	"font-size",
	"font-weight",
	"border",
	"border-radius",
	"box-shadow",
}

const quickJS = `(sel, names) => {
	let el = null;
	try { el = document.querySelector(sel); } catch (e) {}
	if (!el) return JSON.stringify(null);
	const cs = window.getComputedStyle(el);
	return JSON.stringify(names.map((n) => [n, cs.getPropertyValue(n)]));
}`

// QuickStyles reads a fixed set of properties from the root element only,
// without reduction. It returns "" when nothing matches or every value is
// empty, none, normal or auto.
func (c *Collector) QuickStyles(ctx context.Context, selector string) (string, error) {
	out, err := c.eval.EvalString(ctx, quickJS, selector, quickProperties)
	if err != nil {
		return "", fmt.Errorf("collector: quick styles %q: %w", selector, err)
	}
	var pairs [][2]string
	if err := json.Unmarshal([]byte(out), &pairs); err != nil {
		return "", fmt.Errorf("collector: decode quick styles: %w", err)
	}
	return formatQuick(pairs), nil
}

func formatQuick(pairs [][2]string) string {
	var lines []string
	for _, kv := range pairs {
		switch kv[1] {
		case "", "none", "normal", "auto":
			continue
		}
		lines = append(lines, "  "+kv[0]+": "+kv[1]+";")
	}
	if len(lines) == 0 {
		return ""
	}
	return "{\n" + strings.Join(lines, "\n") + "\n}"
}
