package archive

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hazyhaar/snatch/stylesnap"
)

func report(sel string) *stylesnap.Report {
	return &stylesnap.Report{
		URL:      "https://example.com/pricing",
		Selector: sel,
		Element: &stylesnap.ExtractedElement{
			HTML:        `<div class="card"><h2>Pro</h2><p>Five dollars</p><a href="/buy">Buy</a></div>`,
			CSS:         ".card {\n  display: flex;\n}",
			Selector:    sel,
			TagName:     "div",
			ClassNames:  []string{"card"},
			BoundingBox: &stylesnap.BoundingBox{Width: 320, Height: 200},
		},
		Collected: 400,
		Retained:  20,
	}
}

func TestInsertGet(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	rep := report(".card")
	rec, err := s.Insert(ctx, rep)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if rep.ID == "" || rec.ID != rep.ID {
		t.Fatalf("ID not assigned: rep %q, rec %q", rep.ID, rec.ID)
	}
	if !strings.Contains(rec.Markdown, "## Pro") {
		t.Errorf("markdown: got %q", rec.Markdown)
	}
	if !strings.Contains(rec.Markdown, "[Buy](") {
		t.Errorf("markdown link missing: got %q", rec.Markdown)
	}

	got, err := s.Get(ctx, rep.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Selector != ".card" || got.URL != rep.URL {
		t.Errorf("got %+v", got.Report)
	}
	if got.Element.CSS != rep.Element.CSS {
		t.Errorf("css: got %q, want %q", got.Element.CSS, rep.Element.CSS)
	}
	if got.Element.BoundingBox == nil || got.Element.BoundingBox.Width != 320 {
		t.Errorf("bounding box: got %+v", got.Element.BoundingBox)
	}
	if got.Collected != 400 || got.Retained != 20 {
		t.Errorf("counts: got %d/%d", got.Collected, got.Retained)
	}
	if !got.CreatedAt.Equal(rep.CreatedAt.Truncate(time.Millisecond)) {
		t.Errorf("created_at: got %v, want %v", got.CreatedAt, rep.CreatedAt)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := OpenMemory(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err: got %v, want ErrNotFound", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	n := 0
	s := OpenMemory(t, WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rep := report(fmt.Sprintf(".c%d", i))
		rep.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := s.Insert(ctx, rep); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := s.List(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("len: got %d, want 3", len(recs))
	}
	for i, want := range []string{"id-05", "id-04", "id-03"} {
		if recs[i].ID != want {
			t.Errorf("recs[%d]: got %q, want %q", i, recs[i].ID, want)
		}
	}

	all, _ := s.List(ctx, 0)
	if len(all) != 5 {
		t.Errorf("default limit: got %d, want 5", len(all))
	}
}

func TestDelete(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()
	rep := report(".card")
	if _, err := s.Insert(ctx, rep); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, rep.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, rep.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
	if _, err := s.Get(ctx, rep.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete: got %v", err)
	}
}

func TestInsert_NoElement(t *testing.T) {
	s := OpenMemory(t)
	if _, err := s.Insert(context.Background(), &stylesnap.Report{Selector: "x"}); err == nil {
		t.Error("expected error for report without element")
	}
}

func TestInsert_DuplicateID(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()
	rep := report(".card")
	rep.ID = "fixed"
	if _, err := s.Insert(ctx, rep); err != nil {
		t.Fatal(err)
	}
	again := report(".card")
	again.ID = "fixed"
	if _, err := s.Insert(ctx, again); err == nil {
		t.Error("expected error for duplicate id")
	}
}

func TestOpen_FileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "snatch.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	rep := report(".card")
	if _, err := s.Insert(context.Background(), rep); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Get(context.Background(), rep.ID); err != nil {
		t.Errorf("Get after reopen: %v", err)
	}
	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode: got %q, want %q", mode, "wal")
	}
}
