// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/arxiv-researcher/internal/search"
	"github.com/pdiddy/arxiv-researcher/internal/service"
	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

func settled(outcome types.Outcome) search.State {
	return search.State{
		Query:           "q",
		HasSearchedOnce: true,
		Phase:           search.Settled{Request: search.SearchRequest{ID: "r", RawQuery: "q"}, Outcome: outcome},
	}
}

// searchAgainst runs one search through the real client and controller
// against a canned service response.
func searchAgainst(t *testing.T, status int, body string) search.State {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	defer ts.Close()

	client := service.NewClient(types.ServiceConfig{BaseURL: ts.URL}, service.WithHTTPClient(ts.Client()))
	st, ok := search.NewController(client).Search(context.Background(), "q")
	if !ok {
		t.Fatal("search was not accepted")
	}
	return st
}

// --- Project ---

func TestProjectIdle(t *testing.T) {
	vm := Project(search.NewState())
	if vm.Panel != PanelNone {
		t.Errorf("Panel = %q, want %q", vm.Panel, PanelNone)
	}
	if vm.HasSearchedOnce || vm.Busy || len(vm.Cards) != 0 {
		t.Errorf("idle view carries results state: %+v", vm)
	}
}

func TestProjectPendingDropsCards(t *testing.T) {
	st := settled(types.Success{Papers: []types.Paper{{ID: "1"}}})
	st.Phase = search.Pending{Request: search.SearchRequest{ID: "r2", RawQuery: "q2"}}

	vm := Project(st)
	if vm.Panel != PanelProgress || !vm.Busy {
		t.Errorf("Panel = %q Busy = %v, want progress and busy", vm.Panel, vm.Busy)
	}
	if len(vm.Cards) != 0 || vm.Annotation != "" || vm.Message != "" {
		t.Errorf("pending view kept earlier content: %+v", vm)
	}
}

func TestProjectErrors(t *testing.T) {
	tests := []struct {
		name    string
		outcome types.Outcome
		panel   Panel
		message string
	}{
		{"query error", types.QueryError{Message: "could not parse"}, PanelQueryError, "could not parse"},
		{"transport error", types.TransportError{Message: "HTTP 500"}, PanelTransportError, "HTTP 500"},
		{"blank transport error", types.TransportError{}, PanelTransportError, types.GenericTransportMessage},
		{"missing outcome", nil, PanelTransportError, types.GenericTransportMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := Project(settled(tt.outcome))
			if vm.Panel != tt.panel {
				t.Errorf("Panel = %q, want %q", vm.Panel, tt.panel)
			}
			if vm.Message != tt.message {
				t.Errorf("Message = %q, want %q", vm.Message, tt.message)
			}
			if vm.Cards != nil {
				t.Errorf("error panel has cards: %v", vm.Cards)
			}
		})
	}
}

func TestProjectKeepsOrder(t *testing.T) {
	papers := []types.Paper{{ID: "c"}, {ID: "a"}, {ID: "b"}, {ID: "a"}}
	vm := Project(settled(types.Success{Papers: papers, TransformedQuery: "t"}))

	var ids []string
	for _, c := range vm.Cards {
		ids = append(ids, c.ID)
	}
	if got := strings.Join(ids, ","); got != "c,a,b,a" {
		t.Errorf("card order = %s, want c,a,b,a", got)
	}
}

func TestIdleAndEmptyAreDistinct(t *testing.T) {
	idle := Project(search.NewState())
	empty := Project(settled(types.Empty{}))

	if idle.Panel == empty.Panel {
		t.Fatalf("idle and empty share panel %q", idle.Panel)
	}
	if empty.Panel != PanelNoResults || !empty.HasSearchedOnce {
		t.Errorf("empty view = %+v", empty)
	}
	if Headline(idle) == Headline(empty) {
		t.Errorf("idle and empty share headline %q", Headline(idle))
	}
}

// --- end to end ---

func TestRoundTripSinglePaper(t *testing.T) {
	st := searchAgainst(t, http.StatusOK, `{
		"papers": [{"id": "1", "title": "A", "authors": [{"name": "X"}], "published": "2024", "abstract": "..", "pdf_url": "http://x"}],
		"transformed_query": "t"
	}`)

	vm := Project(st)
	if vm.Panel != PanelResults {
		t.Fatalf("Panel = %q, want results", vm.Panel)
	}
	if len(vm.Cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(vm.Cards))
	}
	want := Card{ID: "1", Title: "A", Link: "http://x", Authors: "X", Published: "2024", Abstract: ".."}
	if vm.Cards[0] != want {
		t.Errorf("card = %+v, want %+v", vm.Cards[0], want)
	}
	if vm.Annotation != "t" {
		t.Errorf("Annotation = %q, want t", vm.Annotation)
	}
}

func TestRoundTripNoPapers(t *testing.T) {
	vm := Project(searchAgainst(t, http.StatusOK, `{"papers": [], "transformed_query": "t"}`))
	if vm.Panel != PanelNoResults {
		t.Errorf("Panel = %q, want no_results", vm.Panel)
	}
	if vm.Message != "" {
		t.Errorf("empty result carries an error message %q", vm.Message)
	}
}

func TestRoundTripQueryError(t *testing.T) {
	vm := Project(searchAgainst(t, http.StatusOK, `{"error": "could not parse"}`))
	if vm.Panel != PanelQueryError || vm.Message != "could not parse" {
		t.Errorf("view = %+v", vm)
	}
	if len(vm.Cards) != 0 {
		t.Errorf("query error view has cards")
	}
}

func TestRoundTripTransportFailureWithoutBody(t *testing.T) {
	vm := Project(searchAgainst(t, http.StatusBadGateway, ""))
	if vm.Panel != PanelTransportError {
		t.Fatalf("Panel = %q, want transport_error", vm.Panel)
	}
	if vm.Message != types.GenericTransportMessage {
		t.Errorf("Message = %q, want %q", vm.Message, types.GenericTransportMessage)
	}
}

// --- writers ---

func TestWriteTextResults(t *testing.T) {
	vm := Project(settled(types.Success{
		Papers: []types.Paper{
			{ID: "2301.00001", Title: strings.Repeat("Long title ", 10), Authors: []types.Author{{Name: "Ada"}}, Published: "2023-01-01"},
			{ID: "2301.00002", Title: "Short", Published: "2023-01-02"},
		},
		TransformedQuery: "ti:long",
	}))

	var buf bytes.Buffer
	WriteText(vm, &buf)
	out := buf.String()

	for _, want := range []string{"Query: ti:long", "2301.00001", "Ada", "Short", "...", "2 results"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTextPanels(t *testing.T) {
	tests := []struct {
		name  string
		state search.State
		want  string
	}{
		{"idle", search.NewState(), "Enter a research question"},
		{"empty", settled(types.Empty{TransformedQuery: "t"}), "No results found."},
		{"query error", settled(types.QueryError{Message: "bad"}), "Could not generate a query: bad"},
		{"transport error", settled(types.TransportError{Message: "down"}), "Search failed: down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			WriteText(Project(tt.state), &buf)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteCardsWrapsAbstract(t *testing.T) {
	vm := Project(settled(types.Success{Papers: []types.Paper{{
		ID:       "1",
		Title:    "A",
		Authors:  []types.Author{{Name: "X"}, {Name: "Y"}},
		Abstract: strings.Repeat("word ", 60),
		PDFURL:   "http://x",
	}}}))

	var buf bytes.Buffer
	WriteCards(vm, &buf)
	out := buf.String()

	if !strings.Contains(out, "[1] A") || !strings.Contains(out, "X, Y") || !strings.Contains(out, "http://x") {
		t.Errorf("unexpected output:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > abstractWidth+4 {
			t.Errorf("line not wrapped (%d chars): %q", len(line), line)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	vm := Project(settled(types.Success{Papers: []types.Paper{{ID: "1", Title: "A"}}, TransformedQuery: "t"}))

	var buf bytes.Buffer
	if err := WriteJSON(vm, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got ViewModel
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Panel != PanelResults || got.Annotation != "t" || len(got.Cards) != 1 {
		t.Errorf("decoded = %+v", got)
	}
}
