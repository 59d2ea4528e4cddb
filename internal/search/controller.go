// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search owns the interaction state machine: it accepts
// submissions, tracks the in-flight request by id, discards stale
// responses, and records each settled outcome.
package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/arxiv-researcher/internal/metrics"
	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

// Searcher performs one outbound search. Implementations classify every
// failure into an outcome; they never return nil.
type Searcher interface {
	Search(ctx context.Context, query string) types.Outcome
}

// Journal receives every settled request.
type Journal interface {
	Record(ctx context.Context, req SearchRequest, outcome types.Outcome, elapsed time.Duration) error
}

// Response is the result of running a Call. RequestID ties it back to the
// submission that produced it.
type Response struct {
	RequestID string
	Outcome   types.Outcome
	Elapsed   time.Duration
}

// Call performs the outbound request for one submission. It does not touch
// controller state, so it may run on any goroutine; hand its Response to
// Receive.
type Call func(ctx context.Context) Response

// Controller is the single writer of the interaction State.
type Controller struct {
	searcher Searcher
	timeout  time.Duration
	journal  Journal
	metrics  *metrics.Recorder
	log      *zap.Logger
	newID    func() string
	now      func() time.Time

	mu    sync.Mutex
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout bounds each call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithJournal records settled requests in j.
func WithJournal(j Journal) Option {
	return func(c *Controller) { c.journal = j }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Controller) { c.metrics = r }
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithIDGenerator replaces the request id source.
func WithIDGenerator(f func() string) Option {
	return func(c *Controller) { c.newID = f }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController creates a controller in the Idle state.
func NewController(s Searcher, opts ...Option) *Controller {
	c := &Controller{
		searcher: s,
		log:      zap.NewNop(),
		newID:    uuid.NewString,
		now:      time.Now,
		state:    NewState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetQuery records the text currently in the input box. The phase is
// left alone.
func (c *Controller) SetQuery(text string) {
	c.mu.Lock()
	c.state.Query = text
	c.mu.Unlock()
}

// Submit accepts raw as a new search. A blank query is ignored and Submit
// returns nil. Otherwise the state moves to Pending before Submit returns
// and the returned Call performs the request. A submission made while
// another request is pending supersedes it.
func (c *Controller) Submit(raw string) Call {
	query := strings.TrimSpace(raw)
	if query == "" {
		return nil
	}

	c.mu.Lock()
	_, superseding := c.state.Phase.(Pending)
	req := SearchRequest{
		ID:          c.newID(),
		RawQuery:    query,
		SubmittedAt: c.now(),
	}
	c.state.Query = raw
	c.state.Phase = Pending{Request: req}
	c.state.HasSearchedOnce = true
	c.mu.Unlock()

	c.metrics.Submitted(superseding)
	c.log.Debug("search submitted",
		zap.String("request_id", req.ID),
		zap.String("query", query),
		zap.Bool("superseding", superseding),
	)

	return c.call(req)
}

func (c *Controller) call(req SearchRequest) Call {
	return func(ctx context.Context) Response {
		if c.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		start := c.now()
		done := make(chan types.Outcome, 1)
		go func() {
			done <- c.searcher.Search(ctx, req.RawQuery)
		}()

		var outcome types.Outcome
		select {
		case outcome = <-done:
		case <-ctx.Done():
			outcome = contextOutcome(ctx.Err())
		}
		if outcome == nil {
			outcome = types.TransportError{Message: types.GenericTransportMessage}
		}

		return Response{
			RequestID: req.ID,
			Outcome:   outcome,
			Elapsed:   c.now().Sub(start),
		}
	}
}

// Receive applies resp if it answers the pending request and reports
// whether it did. Responses to superseded requests are dropped and counted
// as stale; a repeat of the response that settled the current request is
// dropped without counting.
func (c *Controller) Receive(ctx context.Context, resp Response) bool {
	outcome := resp.Outcome
	if outcome == nil {
		outcome = types.TransportError{Message: types.GenericTransportMessage}
	}

	c.mu.Lock()
	pending, ok := c.state.Phase.(Pending)
	if !ok || pending.Request.ID != resp.RequestID {
		current := c.state.PendingID()
		settled, isSettled := c.state.Phase.(Settled)
		c.mu.Unlock()

		if isSettled && settled.Request.ID == resp.RequestID {
			c.log.Debug("ignoring repeated response", zap.String("request_id", resp.RequestID))
			return false
		}

		c.metrics.Stale()
		c.log.Debug("discarding stale response",
			zap.String("request_id", resp.RequestID),
			zap.String("pending_id", current),
		)
		return false
	}
	c.state.Phase = Settled{Request: pending.Request, Outcome: outcome}
	c.mu.Unlock()

	c.metrics.Settled(outcome.Kind(), resp.Elapsed)
	c.log.Debug("search settled",
		zap.String("request_id", resp.RequestID),
		zap.String("outcome", string(outcome.Kind())),
		zap.Duration("elapsed", resp.Elapsed),
	)

	if c.journal != nil {
		if err := c.journal.Record(ctx, pending.Request, outcome, resp.Elapsed); err != nil {
			c.log.Warn("recording search", zap.String("request_id", resp.RequestID), zap.Error(err))
		}
	}
	return true
}

// Search submits raw, waits for the call, and applies the response. It is
// the driver for callers without an event loop. The second return value is
// false when raw was blank.
func (c *Controller) Search(ctx context.Context, raw string) (State, bool) {
	call := c.Submit(raw)
	if call == nil {
		return c.State(), false
	}
	c.Receive(ctx, call(ctx))
	return c.State(), true
}

func contextOutcome(err error) types.Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return types.TransportError{Message: types.TimedOutMessage}
	}
	return types.TransportError{Message: types.CancelledMessage}
}
