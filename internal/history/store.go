// Package history keeps a local record of processed documents so batch runs
// can be audited after the fact.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS extractions (
	id           TEXT PRIMARY KEY,
	source_path  TEXT NOT NULL,
	source_type  TEXT NOT NULL DEFAULT '',
	method       TEXT NOT NULL DEFAULT '',
	language     TEXT NOT NULL DEFAULT '',
	pages        INTEGER NOT NULL DEFAULT 0,
	method_count INTEGER NOT NULL DEFAULT 0,
	metric_count INTEGER NOT NULL DEFAULT 0,
	duration_ms  INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_created_at ON extractions (created_at);
`

// Record is one processed document.
type Record struct {
	ID          uuid.UUID `db:"id"`
	SourcePath  string    `db:"source_path"`
	SourceType  string    `db:"source_type"`
	Method      string    `db:"method"` // text acquisition method, e.g. "pdf-text"
	Language    string    `db:"language"`
	Pages       int       `db:"pages"`
	MethodCount int       `db:"method_count"` // assessment methods with >=1 metric
	MetricCount int       `db:"metric_count"`
	DurationMS  int64     `db:"duration_ms"`
	CreatedAt   time.Time `db:"created_at"`
}

type Store struct {
	db *sqlx.DB
}

// Open creates (if needed) and opens the history database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordExtraction persists one run. A zero ID gets a fresh uuid, a zero
// CreatedAt gets the current time.
func (s *Store) RecordExtraction(ctx context.Context, rec Record) (uuid.UUID, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extractions
			(id, source_path, source_type, method, language, pages, method_count, metric_count, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.SourcePath, rec.SourceType, rec.Method, rec.Language,
		rec.Pages, rec.MethodCount, rec.MetricCount, rec.DurationMS,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert extraction: %w", err)
	}
	return rec.ID, nil
}

type recordRow struct {
	ID          string `db:"id"`
	SourcePath  string `db:"source_path"`
	SourceType  string `db:"source_type"`
	Method      string `db:"method"`
	Language    string `db:"language"`
	Pages       int    `db:"pages"`
	MethodCount int    `db:"method_count"`
	MetricCount int    `db:"metric_count"`
	DurationMS  int64  `db:"duration_ms"`
	CreatedAt   string `db:"created_at"`
}

// ListRecent returns the newest records first, capped at limit.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	var rws []recordRow
	err := s.db.SelectContext(ctx, &rws, `
		SELECT id, source_path, source_type, method, language, pages, method_count, metric_count, duration_ms, created_at
		FROM extractions
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	out := make([]Record, 0, len(rws))
	for _, rw := range rws {
		rec := Record{
			SourcePath:  rw.SourcePath,
			SourceType:  rw.SourceType,
			Method:      rw.Method,
			Language:    rw.Language,
			Pages:       rw.Pages,
			MethodCount: rw.MethodCount,
			MetricCount: rw.MetricCount,
			DurationMS:  rw.DurationMS,
		}
		if id, err := uuid.Parse(rw.ID); err == nil {
			rec.ID = id
		}
		if t, err := time.Parse(time.RFC3339Nano, rw.CreatedAt); err == nil {
			rec.CreatedAt = t
		}
		out = append(out, rec)
	}
	return out, nil
}
