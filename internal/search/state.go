// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"time"

	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

// SearchRequest is one accepted submission. It is never modified after
// Submit creates it.
type SearchRequest struct {
	ID          string
	RawQuery    string // trimmed text sent to the service
	SubmittedAt time.Time
}

// Phase is where the interaction stands: Idle, Pending, or Settled.
type Phase interface {
	Name() string
	isPhase()
}

// Idle means no search has been accepted yet.
type Idle struct{}

// Pending means Request is in flight and is the only request whose
// response will be accepted.
type Pending struct {
	Request SearchRequest
}

// Settled holds the classified outcome of the most recently accepted request.
type Settled struct {
	Request SearchRequest
	Outcome types.Outcome
}

func (Idle) Name() string    { return "idle" }
func (Pending) Name() string { return "pending" }
func (Settled) Name() string { return "settled" }

func (Idle) isPhase()    {}
func (Pending) isPhase() {}
func (Settled) isPhase() {}

// State is the snapshot every view is rendered from.
type State struct {
	Query           string
	Phase           Phase
	HasSearchedOnce bool
}

// NewState returns the session's initial state.
func NewState() State {
	return State{Phase: Idle{}}
}

// Request returns the request the phase refers to, if any.
func (s State) Request() (SearchRequest, bool) {
	switch p := s.Phase.(type) {
	case Pending:
		return p.Request, true
	case Settled:
		return p.Request, true
	}
	return SearchRequest{}, false
}

// PendingID returns the id of the in-flight request, or "" when nothing
// is pending.
func (s State) PendingID() string {
	if p, ok := s.Phase.(Pending); ok {
		return p.Request.ID
	}
	return ""
}
