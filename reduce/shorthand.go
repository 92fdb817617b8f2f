package reduce

import "github.com/hazyhaar/snatch/stylesnap"

// foldShorthands replaces each complete longhand group with its shorthand.
// A group folds only when all four members are present and non-empty. The
// shorthand is appended after the remaining declarations.
func foldShorthands(props stylesnap.PropertySet) stylesnap.PropertySet {
	type fold struct {
		name  string
		value string
	}
	var folds []fold
	drop := make(map[string]bool)

	for _, g := range shorthandGroups {
		var vals [4]string
		complete := true
		for i, m := range g.members {
			v, ok := props.Get(m)
			if !ok || v == "" {
				complete = false
				break
			}
			vals[i] = v
		}
		if !complete {
			continue
		}
		folds = append(folds, fold{g.shorthand, BoxShorthand(vals[0], vals[1], vals[2], vals[3])})
		for _, m := range g.members {
			drop[m] = true
		}
	}
	if len(folds) == 0 {
		return props
	}

	var out stylesnap.PropertySet
	for _, d := range props.Declarations() {
		if !drop[d.Name] {
			out.Set(d.Name, d.Value)
		}
	}
	for _, f := range folds {
		out.Set(f.name, f.value)
	}
	return out
}

// BoxShorthand writes the shortest shorthand value for four clockwise
// values. Comparison is string equality; "0" and "0px" are different values.
func BoxShorthand(top, right, bottom, left string) string {
	switch {
	case top == right && right == bottom && bottom == left:
		return top
	case top == bottom && right == left:
		return top + " " + right
	case right == left:
		return top + " " + right + " " + bottom
	}
	return top + " " + right + " " + bottom + " " + left
}
