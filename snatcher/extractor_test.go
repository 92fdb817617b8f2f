package snatcher

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hazyhaar/snatch/reduce"
	"github.com/hazyhaar/snatch/snatcher/internal/collector"
	"github.com/hazyhaar/snatch/stylesnap"
)

type stubCollector struct {
	got      string
	maxDepth int
	out      *stylesnap.Collected
	err      error
}

func (s *stubCollector) Collect(_ context.Context, selector string, maxDepth int) (*stylesnap.Collected, error) {
	s.got, s.maxDepth = selector, maxDepth
	return s.out, s.err
}

func TestExtractElement(t *testing.T) {
	ext := NewExtractor(collector.New(&fakePage{}, nil), reduce.DefaultOptions(), 0, nil)
	el, err := ext.ExtractElement(context.Background(), ".hero")
	if err != nil {
		t.Fatal(err)
	}
	if el.CSS != heroCSS {
		t.Errorf("css:\ngot  %q\nwant %q", el.CSS, heroCSS)
	}
	if el.HTML != `<div class="hero"> Hi </div>` {
		t.Errorf("html: got %q", el.HTML)
	}
	if el.Selector != ".hero" || el.TagName != "div" {
		t.Errorf("metadata: got %q %q", el.Selector, el.TagName)
	}
	if len(el.ClassNames) != 1 || el.ClassNames[0] != "hero" {
		t.Errorf("classNames: got %v", el.ClassNames)
	}
	if el.BoundingBox == nil || el.BoundingBox.Width != 100 {
		t.Errorf("boundingBox: got %+v", el.BoundingBox)
	}
}

func TestExtract_Stats(t *testing.T) {
	ext := NewExtractor(collector.New(&fakePage{}, nil), reduce.DefaultOptions(), 0, nil)
	_, st, err := ext.Extract(context.Background(), ".hero")
	if err != nil {
		t.Fatal(err)
	}
	want := reduce.Stats{Nodes: 2, Rules: 2, Collected: 10, Retained: 4}
	if st != want {
		t.Errorf("stats: got %+v, want %+v", st, want)
	}
}

func TestExtractElement_NotFound(t *testing.T) {
	ext := NewExtractor(collector.New(&fakePage{}, nil), reduce.DefaultOptions(), 0, nil)
	el, err := ext.ExtractElement(context.Background(), ".missing")
	if !errors.Is(err, stylesnap.ErrElementNotFound) {
		t.Fatalf("err: got %v, want ErrElementNotFound", err)
	}
	if el != nil {
		t.Errorf("element: got %+v, want nil", el)
	}
}

func TestExtractElement_MaxDepthAndEmpty(t *testing.T) {
	sc := &stubCollector{out: &stylesnap.Collected{HTML: "", TagName: "span"}}
	ext := NewExtractor(sc, reduce.DefaultOptions(), 3, nil)
	el, err := ext.ExtractElement(context.Background(), "span")
	if err != nil {
		t.Fatal(err)
	}
	if sc.maxDepth != 3 {
		t.Errorf("maxDepth: got %d, want 3", sc.maxDepth)
	}
	if el.CSS != "" || el.HTML != "" {
		t.Errorf("empty collection: got css %q html %q", el.CSS, el.HTML)
	}
	if el.ClassNames == nil {
		t.Error("classNames: got nil, want empty slice")
	}
	if el.BoundingBox != nil {
		t.Errorf("boundingBox: got %+v, want nil", el.BoundingBox)
	}
}

func TestExtractElement_CollectorError(t *testing.T) {
	boom := fmt.Errorf("page crashed")
	ext := NewExtractor(&stubCollector{err: boom}, reduce.DefaultOptions(), 0, nil)
	if _, err := ext.ExtractElement(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("err: got %v", err)
	}
}
