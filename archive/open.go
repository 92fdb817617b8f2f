// Package archive keeps past extractions in SQLite so they can be listed,
// re-read and deleted without re-visiting the page.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS extractions (
	id         TEXT PRIMARY KEY,
	url        TEXT NOT NULL DEFAULT '',
	selector   TEXT NOT NULL,
	element    TEXT NOT NULL,
	markdown   TEXT NOT NULL DEFAULT '',
	collected  INTEGER NOT NULL DEFAULT 0,
	retained   INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_created ON extractions(created_at);
`

// Option customises Open.
type Option func(*config)

type config struct {
	busyTimeout int
	newID       func() string
}

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds. Default: 10000.
func WithBusyTimeout(ms int) Option { return func(c *config) { c.busyTimeout = ms } }

// WithIDGenerator replaces the UUIDv7 record ID generator.
func WithIDGenerator(gen func() string) Option { return func(c *config) { c.newID = gen } }

// Open opens (creating if needed) the archive at path with WAL journaling,
// foreign keys and a busy timeout, and applies the schema.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := config{busyTimeout: 10_000, newID: newUUIDv7}
	for _, o := range opts {
		o(&cfg)
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("archive: mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open: %w", err)
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeout),
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("archive: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: ping: %w", err)
	}
	return newStore(db, cfg.newID), nil
}

// OpenMemory opens an in-memory archive for tests. All queries share one
// connection, since each ":memory:" connection is its own database.
func OpenMemory(t testing.TB, opts ...Option) *Store {
	t.Helper()
	s, err := Open(":memory:", opts...)
	if err != nil {
		t.Fatalf("archive.OpenMemory: %v", err)
	}
	s.db.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })
	return s
}
