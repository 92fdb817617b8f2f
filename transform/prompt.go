// Package transform turns an extracted element into framework component code
// by prompting a language model.
package transform

import (
	"fmt"
	"strings"
)

// Framework is the target component framework.
type Framework string

const (
	React  Framework = "react"
	Vue    Framework = "vue"
	Svelte Framework = "svelte"
	HTML   Framework = "html"
)

// Styling is how the generated component carries its styles.
type Styling string

const (
	Tailwind   Styling = "tailwind"
	CSSModules Styling = "css-modules"
	Vanilla    Styling = "vanilla"
	Inline     Styling = "inline"
)

// Options describes one transform request.
type Options struct {
	HTML      string    `json:"html"`
	CSS       string    `json:"css"`
	Framework Framework `json:"framework"`
	Styling   Styling   `json:"styling"`
	Name      string    `json:"name"`
}

// Result is the parsed model output.
type Result struct {
	Code     string `json:"code"`
	Styles   string `json:"styles,omitempty"`
	Filename string `json:"filename"`
}

// SystemPrompt frames every request.
const SystemPrompt = `You are a frontend component generator. Given HTML and CSS extracted from a website, transform it into a clean, reusable component for the specified framework.

Guidelines:
- Extract dynamic content (text, images, prices) as props
- Use semantic HTML
- Follow framework conventions and best practices
- Apply the specified styling approach
- Include TypeScript types where applicable
- Output ONLY the code, no explanations`

var extensions = map[Framework]string{
	React:  ".tsx",
	Vue:    ".vue",
	Svelte: ".svelte",
	HTML:   ".html",
}

// Extension returns the source file extension for f.
func Extension(f Framework) string {
	if ext, ok := extensions[f]; ok {
		return ext
	}
	return ".html"
}

func frameworkInstructions(f Framework, name string) string {
	switch f {
	case React:
		return "Create a React functional component with TypeScript.\nUse the component name: " + name + "\nExport as named export."
	case Vue:
		return "Create a Vue 3 Single File Component (SFC) with <script setup lang=\"ts\">.\nUse the component name: " + name
	case Svelte:
		return "Create a Svelte component with TypeScript.\nUse the component name: " + name
	default:
		return "Create a clean HTML file with embedded styles.\nUse semantic HTML5 elements."
	}
}

var stylingInstructions = map[Styling]string{
	Tailwind:   "Use Tailwind CSS utility classes. Remove the original CSS.",
	CSSModules: "Use CSS Modules. Output styles in a separate CSS block.",
	Vanilla:    "Use scoped CSS with a unique class prefix.",
	Inline:     "Use inline styles via the style attribute or style object.",
}

// Validate rejects unknown frameworks and styling modes and empty names.
func (o Options) Validate() error {
	if _, ok := extensions[o.Framework]; !ok {
		return fmt.Errorf("transform: unknown framework %q", o.Framework)
	}
	if _, ok := stylingInstructions[o.Styling]; !ok {
		return fmt.Errorf("transform: unknown styling %q", o.Styling)
	}
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("transform: component name is required")
	}
	return nil
}

// BuildPrompt renders the full prompt for o.
func BuildPrompt(o Options) string {
	var b strings.Builder
	b.WriteString(SystemPrompt)
	b.WriteString("\n\nFramework: ")
	b.WriteString(string(o.Framework))
	b.WriteString("\n")
	b.WriteString(frameworkInstructions(o.Framework, o.Name))
	b.WriteString("\n\nStyling: ")
	b.WriteString(string(o.Styling))
	b.WriteString("\n")
	b.WriteString(stylingInstructions[o.Styling])
	b.WriteString("\n\n---\n\nExtracted HTML:\n```html\n")
	b.WriteString(o.HTML)
	b.WriteString("\n```\n\nExtracted CSS:\n```css\n")
	b.WriteString(o.CSS)
	b.WriteString("\n```\n\n---\n\nGenerate the component:")
	return b.String()
}
