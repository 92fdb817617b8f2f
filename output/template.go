// Package output writes generated components and rendered templates to disk.
package output

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl
var builtin embed.FS

// Builtin returns the templates shipped with snatch.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

var (
	upper      = cases.Upper(language.Und)
	lower      = cases.Lower(language.Und)
	camelHumps = regexp.MustCompile(`([a-z])([A-Z])`)
)

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"join":       join,
	"ifEquals":   func(a, b any) bool { return a == b },
	"capitalize": capitalize,
	"lowercase":  func(s string) string { return lower.String(s) },
	"kebab":      kebab,
}

func join(items []string, sep string) string {
	return strings.Join(items, sep)
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	_, n := utf8.DecodeRuneInString(s)
	return upper.String(s[:n]) + s[n:]
}

func kebab(s string) string {
	return lower.String(camelHumps.ReplaceAllString(s, "$1-$2"))
}

// TemplateEngine renders templates from a file system. Compiled templates
// are cached by path until Invalidate is called.
type TemplateEngine struct {
	fsys fs.FS

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewTemplateEngine creates an engine over fsys. A nil fsys uses Builtin.
func NewTemplateEngine(fsys fs.FS) *TemplateEngine {
	if fsys == nil {
		fsys = Builtin()
	}
	return &TemplateEngine{fsys: fsys, cache: make(map[string]*template.Template)}
}

// Render executes the template at path with data.
func (e *TemplateEngine) Render(path string, data any) (string, error) {
	t, err := e.get(path)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("output: render %s: %w", path, err)
	}
	return buf.String(), nil
}

// Cached reports how many compiled templates are held.
func (e *TemplateEngine) Cached() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cache)
}

// Invalidate drops every compiled template.
func (e *TemplateEngine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.cache)
}

func (e *TemplateEngine) get(path string) (*template.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.cache[path]; ok {
		return t, nil
	}
	src, err := fs.ReadFile(e.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("output: template %s: %w", path, err)
	}
	t, err := template.New(path).Funcs(Funcs).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("output: parse %s: %w", path, err)
	}
	e.cache[path] = t
	return t, nil
}
