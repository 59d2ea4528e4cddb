// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render projects the search state into a view model and writes
// view models as text or JSON. Nothing here performs I/O on its own
// initiative or changes state.
package render

import (
	"github.com/pdiddy/arxiv-researcher/internal/search"
	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

// Panel names the region shown below the input.
type Panel string

const (
	PanelNone           Panel = "none"
	PanelProgress       Panel = "progress"
	PanelQueryError     Panel = "query_error"
	PanelTransportError Panel = "transport_error"
	PanelResults        Panel = "results"
	PanelNoResults      Panel = "no_results"
)

// Card is one paper as displayed.
type Card struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Link      string `json:"link,omitempty"`
	Authors   string `json:"authors"`
	Published string `json:"published,omitempty"`
	Abstract  string `json:"abstract,omitempty"`
}

// ViewModel is everything a view needs to draw one frame.
type ViewModel struct {
	Query           string `json:"query"`
	Busy            bool   `json:"busy"`
	HasSearchedOnce bool   `json:"has_searched_once"`
	Panel           Panel  `json:"panel"`
	Annotation      string `json:"transformed_query,omitempty"`
	Message         string `json:"message,omitempty"`
	Cards           []Card `json:"cards,omitempty"`
}

// Project maps a state to its view model. Every state has exactly one
// projection.
func Project(st search.State) ViewModel {
	vm := ViewModel{
		Query:           st.Query,
		HasSearchedOnce: st.HasSearchedOnce,
		Panel:           PanelNone,
	}

	switch p := st.Phase.(type) {
	case search.Pending:
		vm.Busy = true
		vm.Panel = PanelProgress
	case search.Settled:
		projectOutcome(&vm, p.Outcome)
	}
	return vm
}

func projectOutcome(vm *ViewModel, outcome types.Outcome) {
	switch o := outcome.(type) {
	case types.Success:
		vm.Panel = PanelResults
		vm.Annotation = o.TransformedQuery
		vm.Cards = make([]Card, 0, len(o.Papers))
		for _, p := range o.Papers {
			vm.Cards = append(vm.Cards, cardFor(p))
		}
	case types.Empty:
		vm.Panel = PanelNoResults
		vm.Annotation = o.TransformedQuery
	case types.QueryError:
		vm.Panel = PanelQueryError
		vm.Message = o.Message
	case types.TransportError:
		vm.Panel = PanelTransportError
		vm.Message = o.Message
		if vm.Message == "" {
			vm.Message = types.GenericTransportMessage
		}
	default:
		vm.Panel = PanelTransportError
		vm.Message = types.GenericTransportMessage
	}
}

func cardFor(p types.Paper) Card {
	return Card{
		ID:        p.ID,
		Title:     p.Title,
		Link:      p.PDFURL,
		Authors:   p.JoinedAuthors(),
		Published: p.Published,
		Abstract:  p.Abstract,
	}
}
