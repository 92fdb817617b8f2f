package snatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/hazyhaar/snatch/archive"
	"github.com/hazyhaar/snatch/output"
	"github.com/hazyhaar/snatch/snatcher/internal/browser"
	"github.com/hazyhaar/snatch/snatcher/internal/sink"
	"github.com/hazyhaar/snatch/stylesnap"
	"github.com/hazyhaar/snatch/transform"
)

// ErrNoArchive is returned by archive operations when no archive is open.
var ErrNoArchive = errors.New("snatcher: archive not configured")

// Service owns the browser and the collaborators of an extraction.
type Service struct {
	cfg    *Config
	logger *slog.Logger

	mgr     *browser.Manager
	startMu sync.Mutex
	opener  PageOpener

	store     *archive.Store
	ownsStore bool
	sinks     *sink.Router
	xform     *transform.Client
	writer    *output.Writer
}

// Option configures a Service.
type Option func(*Service)

// WithPageOpener replaces the managed browser, e.g. with an already running
// tab or a test double.
func WithPageOpener(open PageOpener) Option {
	return func(s *Service) { s.opener = open }
}

// WithArchive uses an already open archive. The caller keeps ownership.
func WithArchive(st *archive.Store) Option {
	return func(s *Service) { s.store = st }
}

// WithSinks adds sinks next to those built from configuration.
func WithSinks(sinks ...Sink) Option {
	return func(s *Service) {
		for _, sk := range sinks {
			s.sinks.Add(sk)
		}
	}
}

// WithTransformBackend replaces the configured model backend.
func WithTransformBackend(b transform.Backend) Option {
	return func(s *Service) { s.xform = transform.NewClient(b, s.logger) }
}

// New builds a Service from cfg. A nil cfg uses DefaultConfig. The browser
// is started on the first OpenSession.
func New(cfg *Config, logger *slog.Logger, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		cfg:    cfg,
		logger: logger,
		sinks:  sink.NewRouter(logger),
	}
	for _, sk := range buildSinks(cfg.Sinks, logger) {
		s.sinks.Add(sk)
	}
	for _, o := range opts {
		o(s)
	}

	if s.opener == nil {
		s.mgr = browser.NewManager(browser.Config{
			RemoteURL:        cfg.Browser.Remote,
			Viewport:         browser.Viewport{Width: cfg.Browser.Viewport.Width, Height: cfg.Browser.Viewport.Height},
			NavigateTimeout:  cfg.Browser.NavigateTimeout,
			MemoryLimit:      cfg.Browser.MemoryLimit,
			RecycleInterval:  cfg.Browser.RecycleInterval,
			ResourceBlocking: cfg.Browser.ResourceBlocking,
			Stealth:          browser.ParseStealth(cfg.Browser.Stealth),
			XvfbDisplay:      cfg.Browser.XvfbDisplay,
			Logger:           logger,
		})
		s.opener = s.openManaged
	}

	if s.store == nil && cfg.Archive.Path != "" {
		st, err := archive.Open(cfg.Archive.Path)
		if err != nil {
			return nil, fmt.Errorf("snatcher: %w", err)
		}
		s.store = st
		s.ownsStore = true
	}

	if s.xform == nil {
		s.xform = transform.NewClient(backendFromConfig(cfg.Transform), logger)
	}

	var engine *output.TemplateEngine
	if cfg.Output.TemplatesDir != "" {
		engine = output.NewTemplateEngine(os.DirFS(cfg.Output.TemplatesDir))
	}
	s.writer = output.NewWriter(cfg.Output.Dir, engine, logger)
	return s, nil
}

func backendFromConfig(tc TransformConfig) transform.Backend {
	if tc.Backend == "openai" {
		return transform.NewOpenAIBackend(os.Getenv(tc.APIKeyEnv), tc.BaseURL, tc.Model)
	}
	return &transform.CLIBackend{Command: tc.Command}
}

// Config returns the service configuration.
func (s *Service) Config() *Config { return s.cfg }

// Writer returns the output writer.
func (s *Service) Writer() *output.Writer { return s.writer }

// Archive returns the archive, or nil when none is configured.
func (s *Service) Archive() *archive.Store { return s.store }

func (s *Service) open(ctx context.Context, url string) (Page, error) {
	return s.opener(ctx, browser.NormalizeURL(url))
}

func (s *Service) openManaged(ctx context.Context, url string) (Page, error) {
	s.startMu.Lock()
	if !s.mgr.Started() {
		// The recycle monitor outlives the request that started Chrome.
		if err := s.mgr.Start(context.WithoutCancel(ctx)); err != nil {
			s.startMu.Unlock()
			return nil, err
		}
	}
	s.startMu.Unlock()
	tab, err := s.mgr.OpenTab(ctx, url)
	if err != nil {
		return nil, err
	}
	return tab, nil
}

// Extract opens url, extracts selector and closes the tab.
func (s *Service) Extract(ctx context.Context, url, selector string) (*stylesnap.Report, error) {
	ss, err := s.OpenSession(ctx, url)
	if err != nil {
		return nil, err
	}
	defer ss.Close()
	return ss.Extract(ctx, selector)
}

// Candidates opens url and returns suggested selectors.
func (s *Service) Candidates(ctx context.Context, url string, limit int) ([]string, error) {
	ss, err := s.OpenSession(ctx, url)
	if err != nil {
		return nil, err
	}
	defer ss.Close()
	return ss.Candidates(ctx, limit)
}

// Transform generates framework code from an extracted element.
func (s *Service) Transform(ctx context.Context, el *stylesnap.ExtractedElement, opts transform.Options) (*transform.Result, error) {
	opts.HTML = el.HTML
	opts.CSS = el.CSS
	return s.xform.Transform(ctx, opts)
}

// WriteComponent writes a transform result under the output directory.
func (s *Service) WriteComponent(res *transform.Result, name string, fw transform.Framework) ([]string, error) {
	return s.writer.Write(output.WriteOptions{
		Name:      name,
		Framework: fw,
		Code:      res.Code,
		Styles:    res.Styles,
	})
}

// WritePreview renders a standalone HTML page for rep to outPath.
func (s *Service) WritePreview(rep *stylesnap.Report, name, outPath string) error {
	return s.writer.WriteFromTemplate(output.PreviewTemplate, outPath, output.PreviewData{
		Name:       name,
		URL:        rep.URL,
		Selector:   rep.Selector,
		TagName:    rep.Element.TagName,
		ClassNames: rep.Element.ClassNames,
		HTML:       rep.Element.HTML,
		CSS:        rep.Element.CSS,
	})
}

// Extractions lists archived extractions, newest first.
func (s *Service) Extractions(ctx context.Context, limit int) ([]*archive.Record, error) {
	if s.store == nil {
		return nil, ErrNoArchive
	}
	return s.store.List(ctx, limit)
}

// Extraction returns one archived extraction.
func (s *Service) Extraction(ctx context.Context, id string) (*archive.Record, error) {
	if s.store == nil {
		return nil, ErrNoArchive
	}
	return s.store.Get(ctx, id)
}

// DeleteExtraction removes one archived extraction.
func (s *Service) DeleteExtraction(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrNoArchive
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) record(ctx context.Context, rep *stylesnap.Report) error {
	if s.store != nil {
		if _, err := s.store.Insert(ctx, rep); err != nil {
			return fmt.Errorf("snatcher: %w", err)
		}
	}
	s.sinks.Send(ctx, *rep)
	return nil
}

// Close stops the browser, closes sinks and the archive if the service
// opened it.
func (s *Service) Close() error {
	var errs []error
	if s.mgr != nil {
		errs = append(errs, s.mgr.Close())
	}
	errs = append(errs, s.sinks.Close())
	if s.ownsStore {
		errs = append(errs, s.store.Close())
	}
	return errors.Join(errs...)
}
