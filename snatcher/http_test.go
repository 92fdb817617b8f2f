package snatcher

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hazyhaar/snatch/archive"
	"github.com/hazyhaar/snatch/stylesnap"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHTTP_ExtractLifecycle(t *testing.T) {
	f := newFixture(t)
	h := f.svc.Handler()

	rec := do(t, h, http.MethodPost, "/api/extract", `{"url":"https://example.com","selector":".hero"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("extract: status %d: %s", rec.Code, rec.Body)
	}
	var rep stylesnap.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.Element == nil || rep.Element.CSS != heroCSS {
		t.Errorf("extract: got %+v", rep)
	}

	rec = do(t, h, http.MethodGet, "/api/extractions", "")
	var list []archive.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != rep.ID {
		t.Errorf("list: got %+v", list)
	}

	rec = do(t, h, http.MethodGet, "/api/extractions/"+rep.ID, "")
	if rec.Code != http.StatusOK {
		t.Errorf("get: status %d", rec.Code)
	}

	rec = do(t, h, http.MethodDelete, "/api/extractions/"+rep.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: status %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api/extractions/"+rep.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status %d, want 404", rec.Code)
	}
}

func TestHTTP_Errors(t *testing.T) {
	h := newFixture(t).svc.Handler()
	tests := []struct {
		name, method, path, body string
		want                     int
	}{
		{"not found selector", http.MethodPost, "/api/extract", `{"url":"x.com","selector":".missing"}`, http.StatusNotFound},
		{"missing selector", http.MethodPost, "/api/extract", `{"url":"x.com"}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/extract", `{`, http.StatusBadRequest},
		{"bad snapshot", http.MethodPost, "/api/reduce", `{"snapshot":[1]}`, http.StatusBadRequest},
		{"candidates without url", http.MethodGet, "/api/candidates", "", http.StatusBadRequest},
		{"unknown extraction", http.MethodDelete, "/api/extractions/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d (%s)", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestHTTP_Reduce(t *testing.T) {
	h := newFixture(t).svc.Handler()
	body := `{"snapshot":{"div":{"margin-top":"4px","margin-right":"8px","margin-bottom":"4px","margin-left":"8px","-webkit-appearance":"none"}}}`
	rec := do(t, h, http.MethodPost, "/api/reduce", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		CSS   string `json:"css"`
		Stats struct {
			Collected int `json:"collected"`
			Retained  int `json:"retained"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.CSS != "div {\n  margin: 4px 8px;\n}" {
		t.Errorf("css: got %q", resp.CSS)
	}
	if resp.Stats.Collected != 5 || resp.Stats.Retained != 1 {
		t.Errorf("stats: got %+v", resp.Stats)
	}

	// Explicit options replace the configured ones.
	body = `{"snapshot":{"div":{"margin-top":"4px","margin-right":"8px","margin-bottom":"4px","margin-left":"8px"}},"options":{"remove_defaults":true}}`
	rec = do(t, h, http.MethodPost, "/api/reduce", body)
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.Contains(resp.CSS, "margin-top: 4px;") {
		t.Errorf("shorthand disabled: got %q", resp.CSS)
	}
}

func TestHTTP_CleanAndCandidates(t *testing.T) {
	h := newFixture(t).svc.Handler()

	rec := do(t, h, http.MethodPost, "/api/clean", `{"html":"<div data-x=\"1\" onclick=\"f()\">  hi  </div>"}`)
	var clean map[string]string
	json.Unmarshal(rec.Body.Bytes(), &clean)
	if clean["html"] != "<div> hi </div>" {
		t.Errorf("clean: got %q", clean["html"])
	}

	rec = do(t, h, http.MethodGet, "/api/candidates?url=example.com&limit=1", "")
	var cands struct {
		Candidates []string `json:"candidates"`
	}
	json.Unmarshal(rec.Body.Bytes(), &cands)
	if len(cands.Candidates) != 1 || cands.Candidates[0] != "header#top" {
		t.Errorf("candidates: got %v", cands.Candidates)
	}
}

func TestHTTP_Health(t *testing.T) {
	h := newFixture(t).svc.Handler()
	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Header().Get("X-Request-ID") == "" {
		t.Errorf("health: status %d, request id %q", rec.Code, rec.Header().Get("X-Request-ID"))
	}
}
