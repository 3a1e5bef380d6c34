// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an optional SQLite log of completed conversions.
// Conversions themselves never read it.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/mdbridge/internal/pathutil"
	"github.com/pdiddy/mdbridge/pkg/types"
)

const defaultMaxResults = 20

// Entry is one logged conversion.
type Entry struct {
	ID         string    `json:"id" yaml:"id"`
	Source     string    `json:"source" yaml:"source"`
	OutputPath string    `json:"output_path" yaml:"output_path"`
	Bytes      int       `json:"bytes" yaml:"bytes"`
	PageStart  int       `json:"page_start,omitempty" yaml:"page_start,omitempty"`
	PageEnd    int       `json:"page_end,omitempty" yaml:"page_end,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// Store manages the history database.
type Store struct {
	db         *sql.DB
	maxResults int
	now        func() time.Time
}

// NewStore opens or creates the database at cfg.Path, creating parent
// directories and the schema as needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history path is empty")
	}
	path, err := pathutil.ExpandHome(cfg.Path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			output_path TEXT NOT NULL,
			bytes INTEGER NOT NULL,
			pages_start INTEGER,
			pages_end INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record logs a completed conversion. It satisfies convert.Recorder.
func (s *Store) Record(ctx context.Context, req types.ConversionRequest, res types.MarkdownResult) error {
	return s.Add(ctx, Entry{
		Source:     req.Source(),
		OutputPath: res.Path,
		Bytes:      len(res.Text),
		PageStart:  req.Start,
		PageEnd:    req.End,
	})
}

// Add inserts e, assigning an ID and timestamp when they are unset.
func (s *Store) Add(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, source, output_path, bytes, pages_start, pages_end, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Source, e.OutputPath, e.Bytes, e.PageStart, e.PageEnd,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting conversion %s: %w", e.ID, err)
	}
	return nil
}

// List returns the most recent entries, newest first. A limit of zero or
// less uses the configured default.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, output_path, bytes, pages_start, pages_end, created_at
		 FROM conversions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			start   sql.NullInt64
			end     sql.NullInt64
			created string
		)
		if err := rows.Scan(&e.ID, &e.Source, &e.OutputPath, &e.Bytes, &start, &end, &created); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.PageStart = int(start.Int64)
		e.PageEnd = int(end.Int64)
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp for %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
