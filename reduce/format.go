package reduce

import "strings"

// Format renders rules as a stylesheet. Each rule becomes
//
//	path {
//	  name: value;
//	}
//
// with declarations in rule order and a blank line between rules.
func Format(rules []Rule) string {
	var b strings.Builder
	for i, r := range rules {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(r.Path)
		b.WriteString(" {\n")
		for _, d := range r.Props.Declarations() {
			b.WriteString("  ")
			b.WriteString(d.Name)
			b.WriteString(": ")
			b.WriteString(d.Value)
			b.WriteString(";\n")
		}
		b.WriteString("}")
	}
	return b.String()
}
