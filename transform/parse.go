package transform

import (
	"regexp"
	"strings"
)

var (
	codeBlock = regexp.MustCompile("```(?:tsx?|vue|svelte|html)?\\n((?s:.*?))```")
	cssBlock  = regexp.MustCompile("```css\\n((?s:.*?))```")
)

// ParseResponse pulls the component code and optional stylesheet out of a
// model response. Without a fenced code block the whole response is the code.
func ParseResponse(response string, o Options) Result {
	code := strings.TrimSpace(response)
	if m := codeBlock.FindStringSubmatch(response); m != nil {
		code = strings.TrimSpace(m[1])
	}
	var styles string
	if m := cssBlock.FindStringSubmatch(response); m != nil {
		styles = strings.TrimSpace(m[1])
	}
	return Result{
		Code:     code,
		Styles:   styles,
		Filename: o.Name + Extension(o.Framework),
	}
}
