// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an opt-in SQLite journal of settled searches.
// Searches never read from it; it exists so the user can look back at
// what they asked and what came back.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-researcher/internal/search"
	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

const (
	defaultLimit = 20

	// timeLayout is fixed width so text order matches time order.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Store manages the journal database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal at cfg.Path and creates the schema if
// it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS searches (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			query TEXT NOT NULL,
			transformed_query TEXT,
			outcome TEXT NOT NULL,
			paper_count INTEGER NOT NULL DEFAULT 0,
			paper_ids TEXT,
			message TEXT,
			submitted_at TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_submitted_at ON searches(submitted_at)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_outcome ON searches(outcome)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one settled request. Recording the same request id twice
// keeps the latest row.
func (s *Store) Record(ctx context.Context, req search.SearchRequest, outcome types.Outcome, elapsed time.Duration) error {
	e := Entry{
		ID:          req.ID,
		Query:       req.RawQuery,
		Kind:        outcome.Kind(),
		SubmittedAt: req.SubmittedAt,
		Elapsed:     elapsed,
	}
	switch o := outcome.(type) {
	case types.Success:
		e.TransformedQuery = o.TransformedQuery
		e.PaperCount = len(o.Papers)
		for _, p := range o.Papers {
			e.PaperIDs = append(e.PaperIDs, p.ID)
		}
	case types.Empty:
		e.TransformedQuery = o.TransformedQuery
	case types.QueryError:
		e.Message = o.Message
	case types.TransportError:
		e.Message = o.Message
	}

	ids, err := json.Marshal(e.PaperIDs)
	if err != nil {
		return fmt.Errorf("marshaling paper ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO searches (id, query, transformed_query, outcome, paper_count, paper_ids, message, submitted_at, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			transformed_query = excluded.transformed_query,
			outcome = excluded.outcome,
			paper_count = excluded.paper_count,
			paper_ids = excluded.paper_ids,
			message = excluded.message,
			elapsed_ms = excluded.elapsed_ms`,
		e.ID, e.Query, e.TransformedQuery, string(e.Kind), e.PaperCount, string(ids), e.Message,
		e.SubmittedAt.UTC().Format(timeLayout), e.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording search %s: %w", e.ID, err)
	}
	return nil
}
