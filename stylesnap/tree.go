package stylesnap

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Tree renders the snapshot's structural paths as an indented tree, one
// line per node with its property count. Intended for debugging output.
func Tree(s Snapshot) string {
	printer := tp.New()
	branches := make(map[string]tp.Tree, s.Len())
	for _, n := range s.nodes {
		label := fmt.Sprintf("%s (%d)", lastStep(n.Path), n.Props.Len())
		parent, ok := branches[ParentPath(n.Path)]
		if !ok {
			parent = printer
		}
		branches[n.Path] = parent.AddBranch(label)
	}
	return printer.String()
}
