// Package snatcher extracts page elements as cleaned markup plus a compact
// stylesheet reduced from the browser's computed styles.
//
// An Extractor composes the style collector, the reducer and the markup
// cleaner. A Service owns the browser and the collaborators around an
// extraction: archive, sinks, transform and output.
package snatcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/snatch/markup"
	"github.com/hazyhaar/snatch/reduce"
	"github.com/hazyhaar/snatch/snatcher/internal/collector"
	"github.com/hazyhaar/snatch/stylesnap"
)

// Collector produces the computed-style snapshot of one element subtree.
type Collector interface {
	Collect(ctx context.Context, selector string, maxDepth int) (*stylesnap.Collected, error)
}

// Extractor turns a selector into an ExtractedElement.
type Extractor struct {
	coll     Collector
	red      *reduce.Reducer
	maxDepth int
	logger   *slog.Logger
}

// NewExtractor creates an Extractor. maxDepth <= 0 uses the collector
// default of 10 levels.
func NewExtractor(coll Collector, opts reduce.Options, maxDepth int, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if maxDepth <= 0 {
		maxDepth = collector.DefaultMaxDepth
	}
	return &Extractor{coll: coll, red: reduce.New(opts), maxDepth: maxDepth, logger: logger}
}

// ExtractElement collects, reduces and cleans the element matched by
// selector. A selector matching nothing yields stylesnap.ErrElementNotFound.
func (e *Extractor) ExtractElement(ctx context.Context, selector string) (*stylesnap.ExtractedElement, error) {
	el, _, err := e.Extract(ctx, selector)
	return el, err
}

// Extract is ExtractElement that also reports reduction statistics.
func (e *Extractor) Extract(ctx context.Context, selector string) (*stylesnap.ExtractedElement, reduce.Stats, error) {
	c, err := e.coll.Collect(ctx, selector, e.maxDepth)
	if err != nil {
		return nil, reduce.Stats{}, fmt.Errorf("snatcher: extract: %w", err)
	}

	rules := e.red.Rules(c.Snapshot)
	stats := reduce.Summarize(c.Snapshot, rules)

	classes := c.ClassNames
	if classes == nil {
		classes = []string{}
	}
	el := &stylesnap.ExtractedElement{
		HTML:        markup.Clean(c.HTML),
		CSS:         reduce.Format(rules),
		Selector:    selector,
		TagName:     c.TagName,
		ClassNames:  classes,
		BoundingBox: c.Box,
	}
	e.logger.Info("snatcher: extracted",
		"selector", selector,
		"nodes", stats.Nodes,
		"rules", stats.Rules,
		"collected", stats.Collected,
		"retained", stats.Retained,
		"reduction", fmt.Sprintf("%.1f%%", stats.Ratio()*100),
	)
	return el, stats, nil
}

// Reducer returns the extractor's reducer.
func (e *Extractor) Reducer() *reduce.Reducer { return e.red }
