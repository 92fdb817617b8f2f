package snatcher

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/snatch/kit"
	"github.com/hazyhaar/snatch/markup"
	"github.com/hazyhaar/snatch/stylesnap"
	"github.com/hazyhaar/snatch/transform"
)

// RegisterMCP registers snatch tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerExtractTool(srv)
	s.registerReduceTool(srv)
	s.registerCleanTool(srv)
	s.registerCandidatesTool(srv)
	s.registerTransformTool(srv)
}

func (s *Service) endpoint(name string, ep kit.Endpoint) kit.Endpoint {
	return kit.Logging(s.logger, name)(ep)
}

// --- extract ---

func (s *Service) registerExtractTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "snatch_extract",
		Description: "Extract an element from a web page as cleaned HTML plus a reduced stylesheet of its computed styles.",
		InputSchema: kit.InputSchema(map[string]any{
			"url":      map[string]any{"type": "string", "description": "Page URL; https:// is added when missing"},
			"selector": map[string]any{"type": "string", "description": "CSS selector of the element"},
		}, []string{"url", "selector"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*extractRequest)
		if r.URL == "" || r.Selector == "" {
			return nil, errors.New("url and selector are required")
		}
		return s.Extract(ctx, r.URL, r.Selector)
	}

	kit.RegisterMCPTool(srv, tool, s.endpoint(tool.Name, endpoint), kit.DecodeArgs[extractRequest])
}

// --- reduce ---

func (s *Service) registerReduceTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "snatch_reduce",
		Description: "Reduce a computed-style snapshot ({path: {property: value}}) to a compact stylesheet.",
		InputSchema: kit.InputSchema(map[string]any{
			"snapshot": map[string]any{"type": "object", "description": "Structural path to property map"},
			"options": map[string]any{
				"type":        "object",
				"description": "Reducer options; omitted fields are false",
				"properties": map[string]any{
					"remove_vendor_prefixes": map[string]any{"type": "boolean"},
					"remove_defaults":        map[string]any{"type": "boolean"},
					"remove_inherited":       map[string]any{"type": "boolean"},
					"use_shorthand":          map[string]any{"type": "boolean"},
				},
			},
		}, []string{"snapshot"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*reduceRequest)
		return s.reduce(r.Snapshot, r.Options), nil
	}

	kit.RegisterMCPTool(srv, tool, s.endpoint(tool.Name, endpoint), kit.DecodeArgs[reduceRequest])
}

// --- clean ---

func (s *Service) registerCleanTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "snatch_clean",
		Description: "Strip data-* attributes (except data-testid), event handlers, inline styles and empty classes from markup.",
		InputSchema: kit.InputSchema(map[string]any{
			"html": map[string]any{"type": "string", "description": "Raw markup"},
		}, []string{"html"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		return markup.Clean(req.(*cleanRequest).HTML), nil
	}

	kit.RegisterMCPTool(srv, tool, s.endpoint(tool.Name, endpoint), kit.DecodeArgs[cleanRequest])
}

// --- candidates ---

type candidatesRequest struct {
	URL   string `json:"url"`
	Limit int    `json:"limit"`
}

func (s *Service) registerCandidatesTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "snatch_candidates",
		Description: "List selectors of landmark and component-like elements on a page.",
		InputSchema: kit.InputSchema(map[string]any{
			"url":   map[string]any{"type": "string", "description": "Page URL"},
			"limit": map[string]any{"type": "integer", "description": "Maximum selectors (default 15)"},
		}, []string{"url"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*candidatesRequest)
		if r.URL == "" {
			return nil, errors.New("url is required")
		}
		sels, err := s.Candidates(ctx, r.URL, r.Limit)
		if err != nil {
			return nil, err
		}
		if sels == nil {
			sels = []string{}
		}
		return map[string]any{"url": r.URL, "candidates": sels}, nil
	}

	kit.RegisterMCPTool(srv, tool, s.endpoint(tool.Name, endpoint), kit.DecodeArgs[candidatesRequest])
}

// --- transform ---

type transformRequest struct {
	HTML      string              `json:"html"`
	CSS       string              `json:"css"`
	Framework transform.Framework `json:"framework"`
	Styling   transform.Styling   `json:"styling"`
	Name      string              `json:"name"`
	Write     bool                `json:"write"`
}

type transformResponse struct {
	*transform.Result
	Files []string `json:"files,omitempty"`
}

func (s *Service) registerTransformTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "snatch_transform",
		Description: "Turn extracted HTML and CSS into a framework component, optionally writing it under the output directory.",
		InputSchema: kit.InputSchema(map[string]any{
			"html":      map[string]any{"type": "string", "description": "Extracted markup"},
			"css":       map[string]any{"type": "string", "description": "Reduced stylesheet"},
			"framework": map[string]any{"type": "string", "enum": []string{"react", "vue", "svelte", "html"}},
			"styling":   map[string]any{"type": "string", "enum": []string{"tailwind", "css-modules", "vanilla", "inline"}},
			"name":      map[string]any{"type": "string", "description": "Component name"},
			"write":     map[string]any{"type": "boolean", "description": "Write files to the output directory"},
		}, []string{"html", "framework", "styling", "name"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*transformRequest)
		el := &stylesnap.ExtractedElement{HTML: r.HTML, CSS: r.CSS}
		res, err := s.Transform(ctx, el, transform.Options{
			Framework: r.Framework,
			Styling:   r.Styling,
			Name:      r.Name,
		})
		if err != nil {
			return nil, err
		}
		out := transformResponse{Result: res}
		if r.Write {
			out.Files, err = s.WriteComponent(res, r.Name, r.Framework)
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	}

	kit.RegisterMCPTool(srv, tool, s.endpoint(tool.Name, endpoint), kit.DecodeArgs[transformRequest])
}

