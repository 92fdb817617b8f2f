// Package markup strips automation and debugging artifacts from serialized
// element markup before it leaves the extractor.
//
// Cleaning is a fixed, ordered list of passes. Each pass is a plain string
// transform that is a no-op when its pattern is absent, so Clean never
// fails.
package markup

import (
	"regexp"
	"strings"
)

// Pass is one named cleaning step.
type Pass struct {
	Name  string
	Apply func(string) string
}

var (
	reDataAttr     = regexp.MustCompile(`(?i)\s+data-([a-z-]+)="[^"]*"`)
	reEventHandler = regexp.MustCompile(`(?i)\s+(?:onclick|onmouseover|onmouseout|onfocus|onblur)="[^"]*"`)
	reStyleAttr    = regexp.MustCompile(`(?i)\s+style="[^"]*"`)
	reEmptyClass   = regexp.MustCompile(`\s+class=""`)
	reWhitespace   = regexp.MustCompile(`\s+`)
)

// Passes run in this order. The empty-class pass relies on the earlier
// passes having removed their attributes first.
var Passes = []Pass{
	{Name: "data-attributes", Apply: StripDataAttributes},
	{Name: "event-handlers", Apply: replacer(reEventHandler, "")},
	{Name: "inline-style", Apply: replacer(reStyleAttr, "")},
	{Name: "empty-class", Apply: replacer(reEmptyClass, "")},
	{Name: "whitespace", Apply: replacer(reWhitespace, " ")},
}

// Clean applies every pass in order and trims the result.
func Clean(raw string) string {
	s := raw
	for _, p := range Passes {
		s = p.Apply(s)
	}
	return strings.TrimSpace(s)
}

// StripDataAttributes removes data-* attributes. data-testid (and any
// name beginning with it) is kept so test hooks survive extraction.
func StripDataAttributes(s string) string {
	return reDataAttr.ReplaceAllStringFunc(s, func(m string) string {
		sub := reDataAttr.FindStringSubmatch(m)
		if len(sub) > 1 && strings.HasPrefix(strings.ToLower(sub[1]), "testid") {
			return m
		}
		return ""
	})
}

func replacer(re *regexp.Regexp, repl string) func(string) string {
	return func(s string) string {
		return re.ReplaceAllString(s, repl)
	}
}
