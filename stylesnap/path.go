package stylesnap

import (
	"strconv"
	"strings"
)

// PathSeparator joins the steps of a structural path.
const PathSeparator = " > "

// ChildPath returns the structural path of the child at 1-based position
// index under parent.
func ChildPath(parent string, index int) string {
	return parent + PathSeparator + ":nth-child(" + strconv.Itoa(index) + ")"
}

// ParentPath returns the path one step above p, or "" if p is a root path.
// Only the trailing positional step is removed, so a root selector that
// itself contains " > " is kept intact.
func ParentPath(p string) string {
	i := strings.LastIndex(p, PathSeparator+":nth-child(")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// lastStep returns the final positional step of p, or p itself for a root.
func lastStep(p string) string {
	parent := ParentPath(p)
	if parent == "" {
		return p
	}
	return p[len(parent)+len(PathSeparator):]
}
