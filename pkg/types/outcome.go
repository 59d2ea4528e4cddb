// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared between the search
// controller, the service client, and the renderers: papers, search
// outcomes, and configuration.
package types

// GenericTransportMessage is shown when a transport failure carries no
// usable detail from the service.
const GenericTransportMessage = "Failed to fetch papers"

// Messages for calls that end because their context did.
const (
	TimedOutMessage  = "search request timed out"
	CancelledMessage = "search request cancelled"
)

// OutcomeKind names one of the four outcome variants.
type OutcomeKind string

const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomeEmpty          OutcomeKind = "empty"
	OutcomeQueryError     OutcomeKind = "query_error"
	OutcomeTransportError OutcomeKind = "transport_error"
)

// Outcome is the classified result of one search request. The set of
// implementations is closed: Success, Empty, QueryError, TransportError.
type Outcome interface {
	Kind() OutcomeKind
	isOutcome()
}

// Success is a search that returned at least one paper.
type Success struct {
	Papers           []Paper
	TransformedQuery string
}

// Empty is a search that ran and returned no papers.
type Empty struct {
	TransformedQuery string
}

// QueryError means the service could not build a structured query from the input.
type QueryError struct {
	Message string
}

// TransportError covers network, HTTP, and decoding failures.
type TransportError struct {
	Message string
}

func (Success) Kind() OutcomeKind        { return OutcomeSuccess }
func (Empty) Kind() OutcomeKind          { return OutcomeEmpty }
func (QueryError) Kind() OutcomeKind     { return OutcomeQueryError }
func (TransportError) Kind() OutcomeKind { return OutcomeTransportError }

func (Success) isOutcome()        {}
func (Empty) isOutcome()          {}
func (QueryError) isOutcome()     {}
func (TransportError) isOutcome() {}

// NewResults returns Success when papers is non-empty and Empty otherwise.
func NewResults(papers []Paper, transformedQuery string) Outcome {
	if len(papers) == 0 {
		return Empty{TransformedQuery: transformedQuery}
	}
	return Success{Papers: papers, TransformedQuery: transformedQuery}
}
