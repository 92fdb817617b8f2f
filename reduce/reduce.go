// Package reduce turns a computed-style snapshot into a compact stylesheet.
//
// A browser reports several hundred resolved properties per element. Most
// are defaults, inherited values or vendor duplicates. Reduce drops those,
// keeps what matters for rebuilding the component, and folds box-model
// longhands into shorthands. It is a pure function of its input: the same
// snapshot always yields the same bytes.
package reduce

import (
	"strings"

	"github.com/hazyhaar/snatch/stylesnap"
)

// Options toggles the individual reduction stages.
type Options struct {
	RemoveVendorPrefixes bool `json:"remove_vendor_prefixes" yaml:"remove_vendor_prefixes"`
	RemoveDefaults       bool `json:"remove_defaults" yaml:"remove_defaults"`
	RemoveInherited      bool `json:"remove_inherited" yaml:"remove_inherited"`
	UseShorthand         bool `json:"use_shorthand" yaml:"use_shorthand"`
}

// DefaultOptions enables every stage except inherited-property removal.
func DefaultOptions() Options {
	return Options{
		RemoveVendorPrefixes: true,
		RemoveDefaults:       true,
		RemoveInherited:      false,
		UseShorthand:         true,
	}
}

// Rule is a structural path with its reduced declarations.
type Rule struct {
	Path  string
	Props stylesnap.PropertySet
}

// Stats compares declaration counts before and after reduction.
type Stats struct {
	Nodes     int `json:"nodes"`
	Rules     int `json:"rules"`
	Collected int `json:"collected"`
	Retained  int `json:"retained"`
}

// Ratio is the fraction of collected declarations that were discarded.
func (s Stats) Ratio() float64 {
	if s.Collected == 0 {
		return 0
	}
	return 1 - float64(s.Retained)/float64(s.Collected)
}

// Reducer applies one set of Options. It holds no mutable state, so one
// Reducer can serve concurrent callers.
type Reducer struct {
	opts Options
}

// New creates a Reducer.
func New(opts Options) *Reducer {
	return &Reducer{opts: opts}
}

// Options returns the reducer's configuration.
func (r *Reducer) Options() Options { return r.opts }

// Reduce returns the stylesheet for snap: one block per node that has
// declarations left, separated by a blank line.
func (r *Reducer) Reduce(snap stylesnap.Snapshot) string {
	return Format(r.Rules(snap))
}

// Rules returns the non-empty reduced rules in traversal order.
func (r *Reducer) Rules(snap stylesnap.Snapshot) []Rule {
	var rules []Rule
	for _, n := range snap.Nodes() {
		props := r.ReduceProperties(n.Props)
		if props.Len() == 0 {
			continue
		}
		rules = append(rules, Rule{Path: n.Path, Props: props})
	}
	return rules
}

// Stats reports how much of snap survives reduction.
func (r *Reducer) Stats(snap stylesnap.Snapshot) Stats {
	return Summarize(snap, r.Rules(snap))
}

// Summarize compares snap with rules already reduced from it.
func Summarize(snap stylesnap.Snapshot, rules []Rule) Stats {
	st := Stats{Nodes: snap.Len(), Collected: snap.Declarations(), Rules: len(rules)}
	for _, rule := range rules {
		st.Retained += rule.Props.Len()
	}
	return st
}

// ReduceProperties filters one property set and, if enabled, folds
// shorthands. The input is not modified.
//
// Stages run in a fixed order; a property dropped by an earlier stage is
// never reconsidered by a later one.
func (r *Reducer) ReduceProperties(props stylesnap.PropertySet) stylesnap.PropertySet {
	var out stylesnap.PropertySet
	for _, d := range props.Declarations() {
		if r.opts.RemoveVendorPrefixes && isVendorPrefixed(d.Name) {
			continue
		}
		if r.opts.RemoveDefaults && isDefault(d.Name, d.Value) {
			continue
		}
		if r.opts.RemoveInherited && inheritedProperties[d.Name] {
			continue
		}
		if essentialProperties[d.Name] || hasVisualImpact(d.Name, d.Value) {
			out.Set(d.Name, d.Value)
		}
	}
	if r.opts.UseShorthand {
		out = foldShorthands(out)
	}
	return out
}

func isVendorPrefixed(name string) bool {
	for _, p := range vendorPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// isDefault matches value against the defaults table. Properties absent
// from the table are never defaults.
func isDefault(name, value string) bool {
	defaults, ok := browserDefaults[name]
	if !ok {
		return false
	}
	v := strings.ToLower(strings.TrimSpace(value))
	for _, d := range defaults {
		if d == v {
			return true
		}
	}
	return false
}

// hasVisualImpact keeps non-essential properties that still change how the
// element looks: painted backgrounds, visible borders and shadows.
func hasVisualImpact(name, value string) bool {
	switch {
	case strings.HasPrefix(name, "background"):
		return value != "none" && value != "transparent"
	case strings.HasPrefix(name, "border"):
		return value != "none" && !hasZeroLength(value)
	case name == "box-shadow" || name == "text-shadow":
		return value != "none"
	}
	return false
}

// hasZeroLength reports whether any space-separated component of value is
// a zero length such as "0", "0px" or "0.0em". "10px" is not zero.
func hasZeroLength(value string) bool {
	for _, f := range strings.Fields(value) {
		num := strings.TrimRightFunc(f, func(r rune) bool {
			return r == '%' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		})
		if num == "" || num == f && f != "0" {
			continue
		}
		if strings.Trim(num, "0.") == "" && strings.Contains(num, "0") {
			return true
		}
	}
	return false
}
