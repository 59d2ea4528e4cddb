// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

// Entry is one journaled search.
type Entry struct {
	ID               string            `json:"id" yaml:"id"`
	Query            string            `json:"query" yaml:"query"`
	TransformedQuery string            `json:"transformed_query,omitempty" yaml:"transformed_query,omitempty"`
	Kind             types.OutcomeKind `json:"outcome" yaml:"outcome"`
	PaperCount       int               `json:"paper_count" yaml:"paper_count"`
	PaperIDs         []string          `json:"paper_ids,omitempty" yaml:"paper_ids,omitempty"`
	Message          string            `json:"message,omitempty" yaml:"message,omitempty"`
	SubmittedAt      time.Time         `json:"submitted_at" yaml:"submitted_at"`
	Elapsed          time.Duration     `json:"elapsed" yaml:"elapsed"`
}

// ListOptions filters List.
type ListOptions struct {
	// Match keeps entries whose raw or transformed query contains it,
	// case-insensitively.
	Match string

	// Kind keeps entries with this outcome.
	Kind types.OutcomeKind

	// Limit caps the result count. Zero uses the default of 20.
	Limit int
}

// List returns journaled searches, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT id, query, transformed_query, outcome, paper_count, paper_ids, message, submitted_at, elapsed_ms
		FROM searches WHERE 1=1`)

	if opts.Match != "" {
		pattern := "%" + escapeLike(strings.ToLower(opts.Match)) + "%"
		qb.WriteString(` AND (lower(query) LIKE ? ESCAPE '\' OR lower(transformed_query) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if opts.Kind != "" {
		qb.WriteString(` AND outcome = ?`)
		args = append(args, string(opts.Kind))
	}
	qb.WriteString(` ORDER BY submitted_at DESC, rowid DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                    Entry
			kind, ids, submitted string
			transformed, message *string
			elapsedMS            int64
		)
		if err := rows.Scan(&e.ID, &e.Query, &transformed, &kind, &e.PaperCount, &ids, &message, &submitted, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Kind = types.OutcomeKind(kind)
		if transformed != nil {
			e.TransformedQuery = *transformed
		}
		if message != nil {
			e.Message = *message
		}
		if ids != "" && ids != "null" {
			if err := json.Unmarshal([]byte(ids), &e.PaperIDs); err != nil {
				return nil, fmt.Errorf("decoding paper ids for %s: %w", e.ID, err)
			}
		}
		e.SubmittedAt, err = time.Parse(timeLayout, submitted)
		if err != nil {
			return nil, fmt.Errorf("parsing submitted_at for %s: %w", e.ID, err)
		}
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// FormatTable writes entries as a human-readable table.
func FormatTable(entries []Entry, w io.Writer) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No searches recorded.")
		return
	}

	fmt.Fprintf(w, "%-19s  %-44s  %-15s  %6s  %s\n", "When", "Query", "Outcome", "Papers", "Took")
	fmt.Fprintln(w, strings.Repeat("-", 98))

	for _, e := range entries {
		query := runewidth.FillRight(runewidth.Truncate(e.Query, 44, "..."), 44)
		fmt.Fprintf(w, "%-19s  %s  %-15s  %6d  %s\n",
			e.SubmittedAt.Local().Format("2006-01-02 15:04:05"), query, e.Kind, e.PaperCount,
			e.Elapsed.Round(time.Millisecond))
	}
	fmt.Fprintf(w, "\n%d searches\n", len(entries))
}

// FormatJSON writes entries as indented JSON.
func FormatJSON(entries []Entry, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
