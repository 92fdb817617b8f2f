package snatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/hazyhaar/snatch/snatcher/internal/collector"
	"github.com/hazyhaar/snatch/snatcher/internal/picker"
	"github.com/hazyhaar/snatch/stylesnap"
)

// Page is one navigated browser tab.
type Page interface {
	EvalString(ctx context.Context, js string, args ...any) (string, error)
	DocumentHTML(ctx context.Context) (string, error)
	Close() error
}

// PageOpener navigates a new Page to url.
type PageOpener func(ctx context.Context, url string) (Page, error)

// Session is one open page with its collector and highlighter. Extractions
// through a Session are archived and sent to the service's sinks.
type Session struct {
	svc  *Service
	url  string
	page Page
	coll *collector.Collector
	ext  *Extractor
	hl   *picker.Highlighter
}

// OpenSession navigates a new tab to url, starting the browser if needed.
func (s *Service) OpenSession(ctx context.Context, url string) (*Session, error) {
	page, err := s.open(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("snatcher: open %s: %w", url, err)
	}
	coll := collector.New(page, s.logger)
	return &Session{
		svc:  s,
		url:  url,
		page: page,
		coll: coll,
		ext:  NewExtractor(coll, s.cfg.Extract.ReducerOptions(), s.cfg.Extract.MaxDepth, s.logger),
		hl:   picker.NewHighlighter(page, picker.Style{}),
	}, nil
}

// URL returns the page URL the session was opened at.
func (ss *Session) URL() string { return ss.url }

// Candidates suggests up to limit selectors worth extracting.
func (ss *Session) Candidates(ctx context.Context, limit int) ([]string, error) {
	doc, err := ss.page.DocumentHTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("snatcher: candidates: %w", err)
	}
	return picker.CandidatesFromHTML(doc, limit)
}

// Highlight outlines the element matched by selector.
func (ss *Session) Highlight(ctx context.Context, selector string) error {
	return ss.hl.Highlight(ctx, selector)
}

// ClearHighlight removes the outline.
func (ss *Session) ClearHighlight(ctx context.Context) error {
	return ss.hl.Clear(ctx)
}

// Collect returns the raw computed-style snapshot for selector.
func (ss *Session) Collect(ctx context.Context, selector string) (*stylesnap.Collected, error) {
	return ss.coll.Collect(ctx, selector, ss.svc.cfg.Extract.MaxDepth)
}

// QuickStyles returns the curated unreduced property block for selector.
func (ss *Session) QuickStyles(ctx context.Context, selector string) (string, error) {
	return ss.coll.QuickStyles(ctx, selector)
}

// Extract extracts selector, archives the result when an archive is
// configured and delivers it to the sinks. Sink failures are logged by the
// router and do not fail the extraction.
func (ss *Session) Extract(ctx context.Context, selector string) (*stylesnap.Report, error) {
	if ss.hl.Current() != "" {
		// The overlay sets inline style on the marked element.
		if err := ss.hl.Clear(ctx); err != nil {
			ss.svc.logger.Warn("snatcher: clear highlight failed", "error", err)
		}
	}
	el, stats, err := ss.ext.Extract(ctx, selector)
	if err != nil {
		return nil, err
	}
	rep := &stylesnap.Report{
		URL:       ss.url,
		Selector:  selector,
		Element:   el,
		Collected: stats.Collected,
		Retained:  stats.Retained,
		CreatedAt: time.Now().UTC(),
	}
	if err := ss.svc.record(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// Close closes the tab.
func (ss *Session) Close() error { return ss.page.Close() }
