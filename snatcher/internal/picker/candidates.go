// Package picker suggests which elements of a page are worth extracting and
// marks the current choice on the page.
package picker

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultLimit caps the number of suggested selectors.
const DefaultLimit = 15

// landmarkTags are suggested regardless of their classes.
var landmarkTags = map[atom.Atom]bool{
	atom.Header:  true,
	atom.Nav:     true,
	atom.Main:    true,
	atom.Section: true,
	atom.Article: true,
	atom.Aside:   true,
	atom.Footer:  true,
}

// componentHints are class substrings that usually mark a reusable block.
var componentHints = []string{"hero", "card", "pricing", "feature", "cta", "banner"}

// CandidatesFromHTML parses a serialised document and returns its candidates.
func CandidatesFromHTML(src string, limit int) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("picker: parse: %w", err)
	}
	return Candidates(doc, limit), nil
}

// Candidates returns selectors of the form tag#id.class1.class2 for
// landmark elements and elements whose class hints at a component, in
// document order, at most limit of them. limit <= 0 means DefaultLimit.
func Candidates(doc *html.Node, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var out []string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && isCandidate(n) {
			out = append(out, selectorFor(n))
			if len(out) >= limit {
				return false
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(doc)
	return out
}

func isCandidate(n *html.Node) bool {
	if landmarkTags[n.DataAtom] {
		return true
	}
	class := getAttr(n, "class")
	for _, h := range componentHints {
		if strings.Contains(class, h) {
			return true
		}
	}
	return false
}

func selectorFor(n *html.Node) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(n.Data))
	if id := getAttr(n, "id"); id != "" {
		b.WriteString("#")
		b.WriteString(id)
	}
	for _, c := range strings.Fields(getAttr(n, "class")) {
		b.WriteString(".")
		b.WriteString(c)
	}
	return b.String()
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
