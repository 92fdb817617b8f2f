package snatcher

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testMCPImpl = &mcp.Implementation{Name: "snatch-test", Version: "0.1.0"}

func mcpSession(t *testing.T, svc *Service) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testMCPImpl, nil)
	svc.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCall(t *testing.T, session *mcp.ClientSession, name string, args any) (string, bool) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text, result.IsError
}

func TestMCP_Extract(t *testing.T) {
	f := newFixture(t)
	session := mcpSession(t, f.svc)

	text, isErr := mcpCall(t, session, "snatch_extract", map[string]any{
		"url": "example.com", "selector": ".hero",
	})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	var rep struct {
		Element struct {
			CSS string `json:"css"`
		} `json:"element"`
	}
	if err := json.Unmarshal([]byte(text), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Element.CSS != heroCSS {
		t.Errorf("css: got %q", rep.Element.CSS)
	}
}

func TestMCP_ExtractNotFound(t *testing.T) {
	session := mcpSession(t, newFixture(t).svc)
	text, isErr := mcpCall(t, session, "snatch_extract", map[string]any{
		"url": "example.com", "selector": ".missing",
	})
	if !isErr {
		t.Fatalf("expected tool error, got %s", text)
	}
	if !strings.Contains(text, "element not found") {
		t.Errorf("error text: got %q", text)
	}
}

func TestMCP_ReduceAndClean(t *testing.T) {
	session := mcpSession(t, newFixture(t).svc)

	text, isErr := mcpCall(t, session, "snatch_reduce", map[string]any{
		"snapshot": map[string]any{
			"p": map[string]any{"padding-top": "1px", "padding-right": "1px", "padding-bottom": "1px", "padding-left": "1px"},
		},
	})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	if !strings.Contains(text, `padding: 1px;`) {
		t.Errorf("reduce: got %s", text)
	}

	text, _ = mcpCall(t, session, "snatch_clean", map[string]any{"html": `<b style="x" class="">hi</b>`})
	if text != "<b>hi</b>" {
		t.Errorf("clean: got %q", text)
	}
}

func TestMCP_CandidatesAndTransform(t *testing.T) {
	f := newFixture(t, WithTransformBackend(&echoBackend{}))
	session := mcpSession(t, f.svc)

	text, _ := mcpCall(t, session, "snatch_candidates", map[string]any{"url": "example.com"})
	if !strings.Contains(text, "div.hero") {
		t.Errorf("candidates: got %s", text)
	}

	text, isErr := mcpCall(t, session, "snatch_transform", map[string]any{
		"html": `<div class="hero">Hi</div>`, "css": ".hero {}",
		"framework": "react", "styling": "vanilla", "name": "Hero", "write": true,
	})
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	var resp struct {
		Code     string   `json:"code"`
		Filename string   `json:"filename"`
		Files    []string `json:"files"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Filename != "Hero.tsx" || len(resp.Files) != 3 {
		t.Errorf("transform: got %+v", resp)
	}

	_, isErr = mcpCall(t, session, "snatch_transform", map[string]any{
		"html": "x", "framework": "angular", "styling": "vanilla", "name": "Hero",
	})
	if !isErr {
		t.Error("unknown framework: expected tool error")
	}
}
