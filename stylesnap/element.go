// Package stylesnap defines the values exchanged by the snatch pipeline:
// computed-style snapshots taken inside the browser, the collector result,
// and the extracted element handed to downstream consumers.
//
// Every type here is plain data. Producers (the collector) and consumers
// (reducer, sinks, archive, transform) import this package and nothing else
// from each other.
package stylesnap

import "errors"

// ErrElementNotFound is returned when a selector matches no element at
// collection time. Callers compare with errors.Is; it is never retried.
var ErrElementNotFound = errors.New("element not found")

// BoundingBox is the root element's layout rectangle in CSS pixels.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Collected is what the collector returns for one selector: the root's raw
// outer HTML, the full computed-style snapshot of the subtree, and root
// metadata. Box is nil when the root has no layout box (display: none).
type Collected struct {
	HTML       string       `json:"html"`
	Snapshot   Snapshot     `json:"snapshot"`
	TagName    string       `json:"tagName"`
	ClassNames []string     `json:"classNames"`
	Box        *BoundingBox `json:"boundingBox"`
}

// ExtractedElement is the result of one extraction: cleaned markup, reduced
// stylesheet, and root metadata. It is built once and not modified after.
type ExtractedElement struct {
	HTML        string       `json:"html"`
	CSS         string       `json:"css"`
	Selector    string       `json:"selector"`
	TagName     string       `json:"tagName"`
	ClassNames  []string     `json:"classNames"`
	BoundingBox *BoundingBox `json:"boundingBox"`
}
