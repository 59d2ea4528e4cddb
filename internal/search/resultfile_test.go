// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

func settledState(outcome types.Outcome) State {
	return State{
		Query:           "graph neural networks",
		HasSearchedOnce: true,
		Phase: Settled{
			Request: SearchRequest{
				ID:          "req-1",
				RawQuery:    "graph neural networks",
				SubmittedAt: time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
			},
			Outcome: outcome,
		},
	}
}

func TestResultFileRoundTrip(t *testing.T) {
	outcomes := []types.Outcome{
		types.Success{
			Papers: []types.Paper{{
				ID:        "2101.00001",
				Title:     "GNNs",
				Authors:   []types.Author{{Name: "A. Author"}, {Name: "B. Author"}},
				Published: "2021-01-01",
				Abstract:  "Graphs.",
				PDFURL:    "http://arxiv.org/pdf/2101.00001",
			}},
			TransformedQuery: "all:gnn",
		},
		types.Empty{TransformedQuery: "all:gnn"},
		types.QueryError{Message: "could not parse"},
		types.TransportError{Message: "Failed to fetch papers"},
	}
	for _, outcome := range outcomes {
		t.Run(string(outcome.Kind()), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "result.yaml")
			require.NoError(t, WriteResultFile(path, settledState(outcome)))

			rf, err := ReadResultFile(path)
			require.NoError(t, err)
			assert.Equal(t, "req-1", rf.Request.ID)
			assert.Equal(t, "graph neural networks", rf.Request.Query)
			assert.Equal(t, outcome.Kind(), rf.Outcome.Kind)

			restored, err := rf.Restore()
			require.NoError(t, err)
			assert.Equal(t, outcome, restored)
		})
	}
}

func TestWriteResultFileRequiresSettled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.yaml")
	assert.Error(t, WriteResultFile(path, NewState()))
	assert.Error(t, WriteResultFile(path, State{Phase: Pending{}}))
}

func TestReadResultFileErrors(t *testing.T) {
	_, err := ReadResultFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	rf := &ResultFile{Outcome: ResultOutcome{Kind: "bogus"}}
	_, err = rf.Restore()
	assert.Error(t, err)
}

func TestResultFileState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.yaml")
	saved := settledState(types.Empty{TransformedQuery: "all:gnn"})
	require.NoError(t, WriteResultFile(path, saved))

	rf, err := ReadResultFile(path)
	require.NoError(t, err)
	st, err := rf.State()
	require.NoError(t, err)

	assert.Equal(t, "graph neural networks", st.Query)
	assert.True(t, st.HasSearchedOnce)
	settled, ok := st.Phase.(Settled)
	require.True(t, ok, "phase is %s", st.Phase.Name())
	assert.Equal(t, "req-1", settled.Request.ID)
	assert.Equal(t, "graph neural networks", settled.Request.RawQuery)
	assert.True(t, saved.Phase.(Settled).Request.SubmittedAt.Equal(settled.Request.SubmittedAt))
	assert.Equal(t, types.Empty{TransformedQuery: "all:gnn"}, settled.Outcome)

	_, err = (&ResultFile{Outcome: ResultOutcome{Kind: "bogus"}}).State()
	assert.Error(t, err)
}
