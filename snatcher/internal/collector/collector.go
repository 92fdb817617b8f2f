// Package collector reads the computed styles of an element subtree from a
// live page.
//
// The whole walk happens in a single evaluate call so that every property
// is read from the same DOM state. The page returns a depth-bounded tree;
// this package flattens it into a stylesnap.Snapshot.
package collector

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/snatch/stylesnap"
)

// DefaultMaxDepth is the traversal bound used when the caller passes 0.
const DefaultMaxDepth = 10

//go:embed collect.js
var collectJS string

// Evaluator runs a JS function in the page and returns its string result.
// browser.Tab implements it.
type Evaluator interface {
	EvalString(ctx context.Context, js string, args ...any) (string, error)
}

// Collector gathers snapshots through an Evaluator.
type Collector struct {
	eval   Evaluator
	logger *slog.Logger
}

// New creates a Collector.
func New(eval Evaluator, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{eval: eval, logger: logger}
}

// rawNode is the page-side shape of one element.
type rawNode struct {
	Props    [][2]string `json:"props"`
	Children []rawNode   `json:"children"`
}

type collectResult struct {
	Found      bool                   `json:"found"`
	Reason     string                 `json:"reason"`
	HTML       string                 `json:"html"`
	TagName    string                 `json:"tagName"`
	ClassNames []string               `json:"classNames"`
	Box        *stylesnap.BoundingBox `json:"box"`
	Root       *rawNode               `json:"root"`
}

// Collect snapshots the element matched by selector and its descendants
// down to maxDepth levels (root is level 0). maxDepth <= 0 means
// DefaultMaxDepth. A selector that matches nothing, or does not parse,
// returns an error wrapping stylesnap.ErrElementNotFound and no snapshot.
//
// Cancelling ctx abandons the wait; the page finishes the walk on its own
// and the result is dropped.
func (c *Collector) Collect(ctx context.Context, selector string, maxDepth int) (*stylesnap.Collected, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	out, err := c.eval.EvalString(ctx, collectJS, selector, maxDepth)
	if err != nil {
		return nil, fmt.Errorf("collector: evaluate %q: %w", selector, err)
	}

	var res collectResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		return nil, fmt.Errorf("collector: decode result: %w", err)
	}
	if !res.Found || res.Root == nil {
		if res.Reason != "" {
			return nil, fmt.Errorf("collector: %q (%s): %w", selector, res.Reason, stylesnap.ErrElementNotFound)
		}
		return nil, fmt.Errorf("collector: %q: %w", selector, stylesnap.ErrElementNotFound)
	}

	snap := flatten(res.Root, selector, maxDepth)
	c.logger.Debug("collector: snapshot taken",
		"selector", selector, "nodes", snap.Len(), "declarations", snap.Declarations())

	classes := res.ClassNames
	if classes == nil {
		classes = []string{}
	}
	return &stylesnap.Collected{
		HTML:       res.HTML,
		Snapshot:   snap,
		TagName:    res.TagName,
		ClassNames: classes,
		Box:        res.Box,
	}, nil
}

// flatten walks the raw tree pre-order with an explicit stack of
// (node, path, depth) frames. Nodes at depth >= maxDepth are skipped with
// their whole branch.
func flatten(root *rawNode, rootPath string, maxDepth int) stylesnap.Snapshot {
	type frame struct {
		node  *rawNode
		path  string
		depth int
	}

	var snap stylesnap.Snapshot
	stack := []frame{{node: root, path: rootPath}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth >= maxDepth {
			continue
		}

		var props stylesnap.PropertySet
		for _, kv := range f.node.Props {
			props.Set(kv[0], kv[1])
		}
		snap.Add(f.path, props)

		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				node:  &f.node.Children[i],
				path:  stylesnap.ChildPath(f.path, i+1),
				depth: f.depth + 1,
			})
		}
	}
	return snap
}
