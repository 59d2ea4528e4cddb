// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

// ResultFile is the on-disk form of one settled search. It is an export
// for the user; searches never read it back to answer a query.
type ResultFile struct {
	Request ResultRequest `yaml:"request"`
	Outcome ResultOutcome `yaml:"outcome"`
	Papers  []types.Paper `yaml:"papers,omitempty"`
	Summary ResultSummary `yaml:"summary"`
}

// ResultRequest stores the request that produced the file.
type ResultRequest struct {
	ID          string    `yaml:"id"`
	Query       string    `yaml:"query"`
	SubmittedAt time.Time `yaml:"submitted_at"`
}

// ResultOutcome stores the outcome kind and its text.
type ResultOutcome struct {
	Kind             types.OutcomeKind `yaml:"kind"`
	TransformedQuery string            `yaml:"transformed_query,omitempty"`
	Message          string            `yaml:"message,omitempty"`
}

// ResultSummary stores counts and a timestamp.
type ResultSummary struct {
	Total   int       `yaml:"total"`
	SavedAt time.Time `yaml:"saved_at"`
}

// WriteResultFile saves a settled state to a YAML file. It fails when the
// state has not settled.
func WriteResultFile(path string, st State) error {
	settled, ok := st.Phase.(Settled)
	if !ok {
		return fmt.Errorf("nothing to save: search is %s", st.Phase.Name())
	}

	rf := ResultFile{
		Request: ResultRequest{
			ID:          settled.Request.ID,
			Query:       settled.Request.RawQuery,
			SubmittedAt: settled.Request.SubmittedAt,
		},
		Outcome: ResultOutcome{Kind: settled.Outcome.Kind()},
		Summary: ResultSummary{SavedAt: time.Now()},
	}

	switch o := settled.Outcome.(type) {
	case types.Success:
		rf.Outcome.TransformedQuery = o.TransformedQuery
		rf.Papers = o.Papers
		rf.Summary.Total = len(o.Papers)
	case types.Empty:
		rf.Outcome.TransformedQuery = o.TransformedQuery
	case types.QueryError:
		rf.Outcome.Message = o.Message
	case types.TransportError:
		rf.Outcome.Message = o.Message
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}

// Restore rebuilds the outcome the file was saved from.
func (rf *ResultFile) Restore() (types.Outcome, error) {
	switch rf.Outcome.Kind {
	case types.OutcomeSuccess, types.OutcomeEmpty:
		return types.NewResults(rf.Papers, rf.Outcome.TransformedQuery), nil
	case types.OutcomeQueryError:
		return types.QueryError{Message: rf.Outcome.Message}, nil
	case types.OutcomeTransportError:
		return types.TransportError{Message: rf.Outcome.Message}, nil
	}
	return nil, fmt.Errorf("unknown outcome kind %q", rf.Outcome.Kind)
}

// State rebuilds the settled state the file was saved from, so the saved
// result renders exactly as it did after the search.
func (rf *ResultFile) State() (State, error) {
	outcome, err := rf.Restore()
	if err != nil {
		return State{}, err
	}
	req := SearchRequest{
		ID:          rf.Request.ID,
		RawQuery:    rf.Request.Query,
		SubmittedAt: rf.Request.SubmittedAt,
	}
	return State{
		Query:           rf.Request.Query,
		Phase:           Settled{Request: req, Outcome: outcome},
		HasSearchedOnce: true,
	}, nil
}
