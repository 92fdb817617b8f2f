// Command snatch extracts page elements as cleaned HTML plus a reduced
// stylesheet, and optionally turns them into framework components.
//
// Usage:
//
//	snatch -url example.com -list                      # suggest selectors
//	snatch -url example.com -pick                      # choose one interactively
//	snatch -url example.com -selector .hero            # extract, print JSON
//	snatch -url example.com -selector .hero -tree      # show the snapshot shape
//	snatch -url example.com -selector .hero -quick     # curated unreduced styles
//	snatch -url example.com -selector .hero -transform -framework react -name Hero
//	snatch -serve 127.0.0.1:8484                       # HTTP API
//	snatch -mcp                                        # MCP tools over stdio
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/snatch/snatcher"
	"github.com/hazyhaar/snatch/stylesnap"
	"github.com/hazyhaar/snatch/transform"
)

type options struct {
	configPath string
	url        string
	selector   string
	list       bool
	pick       bool
	tree       bool
	quick      bool
	transform  bool
	framework  string
	styling    string
	name       string
	out        string
	preview    string
	serve      string
	mcp        bool
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "path to snatch.yaml config file")
	flag.StringVar(&o.url, "url", "", "page to open")
	flag.StringVar(&o.selector, "selector", "", "CSS selector of the element to extract")
	flag.BoolVar(&o.list, "list", false, "list candidate selectors and exit")
	flag.BoolVar(&o.pick, "pick", false, "choose a candidate interactively, then extract it")
	flag.BoolVar(&o.tree, "tree", false, "print the structural path tree of the snapshot")
	flag.BoolVar(&o.quick, "quick", false, "print curated computed styles without reduction")
	flag.BoolVar(&o.transform, "transform", false, "generate a framework component from the extraction")
	flag.StringVar(&o.framework, "framework", "react", "component framework: react, vue, svelte, html")
	flag.StringVar(&o.styling, "styling", "css-modules", "styling: tailwind, css-modules, vanilla, inline")
	flag.StringVar(&o.name, "name", "Component", "component name")
	flag.StringVar(&o.out, "out", "", "output directory (overrides output.dir)")
	flag.StringVar(&o.preview, "preview", "", "write a standalone HTML preview of the extraction to this path")
	flag.StringVar(&o.serve, "serve", "", "serve the HTTP API on this address")
	flag.BoolVar(&o.mcp, "mcp", false, "serve MCP tools over stdio")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, o); err != nil {
		logger.Error("snatch: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, o options) error {
	cfg := snatcher.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = snatcher.LoadConfigFile(o.configPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if o.out != "" {
		cfg.Output.Dir = o.out
	}

	svc, err := snatcher.New(cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	switch {
	case o.mcp:
		return runMCP(ctx, svc)
	case o.serve != "":
		return runServe(ctx, logger, svc, o.serve)
	case o.url == "":
		return errors.New("usage: snatch -url <url> [-list | -pick | -selector <sel> [-tree | -quick | -transform]] | -serve <addr> | -mcp")
	}

	ss, err := svc.OpenSession(ctx, o.url)
	if err != nil {
		return err
	}
	defer ss.Close()

	switch {
	case o.list:
		return runList(ctx, ss)
	case o.pick:
		sel, err := pick(ctx, ss, os.Stdin, os.Stderr)
		if err != nil {
			return err
		}
		o.selector = sel
	case o.selector == "":
		return errors.New("-selector is required (or use -list / -pick)")
	}

	switch {
	case o.tree:
		c, err := ss.Collect(ctx, o.selector)
		if err != nil {
			return err
		}
		fmt.Print(stylesnap.Tree(c.Snapshot))
		return nil
	case o.quick:
		block, err := ss.QuickStyles(ctx, o.selector)
		if err != nil {
			return err
		}
		if block == "" {
			fmt.Fprintln(os.Stderr, "no styles found")
			return nil
		}
		fmt.Println(block)
		return nil
	}

	rep, err := ss.Extract(ctx, o.selector)
	if err != nil {
		return err
	}
	if o.preview != "" {
		if err := svc.WritePreview(rep, o.name, o.preview); err != nil {
			return err
		}
	}
	if !o.transform {
		data, err := stylesnap.MarshalElement(rep.Element)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		os.Stdout.Write([]byte("\n"))
		return nil
	}

	fw := transform.Framework(o.framework)
	res, err := svc.Transform(ctx, rep.Element, transform.Options{
		Framework: fw,
		Styling:   transform.Styling(o.styling),
		Name:      o.name,
	})
	if err != nil {
		return err
	}
	files, err := svc.WriteComponent(res, o.name, fw)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}

func runList(ctx context.Context, ss *snatcher.Session) error {
	sels, err := ss.Candidates(ctx, 0)
	if err != nil {
		return err
	}
	for _, s := range sels {
		fmt.Println(s)
	}
	return nil
}

// pick lists candidates, reads a choice, highlights it on the page and asks
// for confirmation. A line that is not a number is taken as a selector.
func pick(ctx context.Context, ss *snatcher.Session, in io.Reader, out io.Writer) (string, error) {
	sels, err := ss.Candidates(ctx, 0)
	if err != nil {
		return "", err
	}
	for i, s := range sels {
		fmt.Fprintf(out, "%2d  %s\n", i+1, s)
	}
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "select (number or selector): ")
		if !sc.Scan() {
			return "", errors.New("pick: no selection")
		}
		choice := strings.TrimSpace(sc.Text())
		if choice == "" {
			continue
		}
		sel := choice
		if n, err := strconv.Atoi(choice); err == nil {
			if n < 1 || n > len(sels) {
				fmt.Fprintf(out, "no candidate %d\n", n)
				continue
			}
			sel = sels[n-1]
		}
		if err := ss.Highlight(ctx, sel); err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintf(out, "extract %s? [Y/n] ", sel)
		if !sc.Scan() {
			return "", errors.New("pick: no confirmation")
		}
		if ans := strings.ToLower(strings.TrimSpace(sc.Text())); ans == "" || ans == "y" || ans == "yes" {
			return sel, nil
		}
		if err := ss.ClearHighlight(ctx); err != nil {
			return "", err
		}
	}
}

func runServe(ctx context.Context, logger *slog.Logger, svc *snatcher.Service, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("snatch: listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runMCP(ctx context.Context, svc *snatcher.Service) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: "snatch", Version: "1.0.0"}, nil)
	svc.RegisterMCP(srv)
	return srv.Run(ctx, &mcp.StdioTransport{})
}
