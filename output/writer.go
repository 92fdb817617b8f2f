package output

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hazyhaar/snatch/transform"
)

// WriteOptions is one generated component.
type WriteOptions struct {
	Name      string
	Framework transform.Framework
	Code      string
	Styles    string
}

// Writer lays components out under a root directory.
type Writer struct {
	dir    string
	engine *TemplateEngine
	logger *slog.Logger
}

// NewWriter creates a Writer rooted at dir. A nil engine uses the builtin
// templates; a nil logger uses slog.Default.
func NewWriter(dir string, engine *TemplateEngine, logger *slog.Logger) *Writer {
	if engine == nil {
		engine = NewTemplateEngine(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{dir: dir, engine: engine, logger: logger}
}

// Engine returns the writer's template engine.
func (w *Writer) Engine() *TemplateEngine { return w.engine }

// Write creates <dir>/<Name>/<Name><ext>, <Name>.module.css when styles are
// present, and an index.ts barrel for react and svelte. It returns the
// written paths in that order.
func (w *Writer) Write(o WriteOptions) ([]string, error) {
	if o.Name == "" || filepath.Base(o.Name) != o.Name {
		return nil, fmt.Errorf("output: invalid component name %q", o.Name)
	}
	compDir := filepath.Join(w.dir, o.Name)
	if err := os.MkdirAll(compDir, 0o755); err != nil {
		return nil, fmt.Errorf("output: mkdir: %w", err)
	}

	var written []string
	put := func(name, content string) error {
		p := filepath.Join(compDir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			return fmt.Errorf("output: write %s: %w", p, err)
		}
		written = append(written, p)
		return nil
	}

	if err := put(o.Name+transform.Extension(o.Framework), o.Code); err != nil {
		return written, err
	}
	if o.Styles != "" {
		if err := put(o.Name+".module.css", o.Styles); err != nil {
			return written, err
		}
	}
	if o.Framework == transform.React || o.Framework == transform.Svelte {
		if err := put("index.ts", fmt.Sprintf("export { %s } from './%s';\n", o.Name, o.Name)); err != nil {
			return written, err
		}
	}
	w.logger.Info("output: component written", "name", o.Name, "framework", o.Framework, "files", len(written))
	return written, nil
}

// WriteFromTemplate renders the template at name with data into outPath,
// creating parent directories.
func (w *Writer) WriteFromTemplate(name, outPath string, data any) error {
	content, err := w.engine.Render(name, data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("output: mkdir: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("output: write %s: %w", outPath, err)
	}
	return nil
}

// PreviewTemplate renders a standalone HTML page for an extraction.
const PreviewTemplate = "preview.html.tmpl"

// PreviewData feeds PreviewTemplate.
type PreviewData struct {
	Name       string
	URL        string
	Selector   string
	TagName    string
	ClassNames []string
	HTML       string
	CSS        string
}
