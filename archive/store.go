package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/google/uuid"

	"github.com/hazyhaar/snatch/stylesnap"
)

// ErrNotFound is returned for an unknown record ID.
var ErrNotFound = errors.New("archive: record not found")

// DefaultListLimit caps List when limit <= 0.
const DefaultListLimit = 50

// Record is an archived extraction with a markdown rendering of its text.
type Record struct {
	stylesnap.Report
	Markdown string `json:"markdown"`
}

// Store is the extraction archive. Safe for concurrent use.
type Store struct {
	db    *sql.DB
	newID func() string
	md    *converter.Converter
}

func newStore(db *sql.DB, newID func() string) *Store {
	return &Store{
		db:    db,
		newID: newID,
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

func newUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Insert archives rep. An empty ID is assigned and a zero CreatedAt is set
// to now; both are written back into rep.
func (s *Store) Insert(ctx context.Context, rep *stylesnap.Report) (*Record, error) {
	if rep.Element == nil {
		return nil, errors.New("archive: report has no element")
	}
	if rep.ID == "" {
		rep.ID = s.newID()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	elem, err := stylesnap.MarshalElement(rep.Element)
	if err != nil {
		return nil, fmt.Errorf("archive: marshal element: %w", err)
	}
	md := s.markdown(rep.Element.HTML, rep.URL)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, url, selector, element, markdown, collected, retained, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.ID, rep.URL, rep.Selector, string(elem), md,
		rep.Collected, rep.Retained, rep.CreatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("archive: insert: %w", err)
	}
	return &Record{Report: *rep, Markdown: md}, nil
}

// Get returns one record.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, selector, element, markdown, collected, retained, created_at
		FROM extractions WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("archive: %s: %w", id, ErrNotFound)
	}
	return rec, err
}

// List returns up to limit records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, selector, element, markdown, collected, retained, created_at
		FROM extractions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("archive: list: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes one record.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM extractions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("archive: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive: delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("archive: %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec       Record
		elem      string
		createdMs int64
	)
	if err := sc.Scan(&rec.ID, &rec.URL, &rec.Selector, &elem, &rec.Markdown,
		&rec.Collected, &rec.Retained, &createdMs); err != nil {
		return nil, err
	}
	e, err := stylesnap.UnmarshalElement([]byte(elem))
	if err != nil {
		return nil, fmt.Errorf("archive: %s: decode element: %w", rec.ID, err)
	}
	rec.Element = e
	rec.CreatedAt = time.UnixMilli(createdMs).UTC()
	return &rec, nil
}

// markdown renders the element's text content. Conversion failures yield "".
func (s *Store) markdown(html, pageURL string) string {
	if html == "" {
		return ""
	}
	var (
		out string
		err error
	)
	if pageURL != "" {
		out, err = s.md.ConvertString(html, converter.WithDomain(pageURL))
	} else {
		out, err = s.md.ConvertString(html)
	}
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
