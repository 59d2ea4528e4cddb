// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

const (
	malformedResponse = "malformed response from search service"

	// queryFailurePrefix marks query-generation failures that older service
	// builds returned in place of the transformed query.
	queryFailurePrefix = "Query could not be generated:"
)

// searchBody is the outbound request body.
type searchBody struct {
	Query string `json:"query"`
}

// envelope is the current response shape: {papers, transformed_query, error}.
type envelope struct {
	Papers           json.RawMessage `json:"papers"`
	TransformedQuery flexString      `json:"transformed_query"`
	Error            json.RawMessage `json:"error"`
}

// wirePaper accepts every field name the service has used for a paper.
type wirePaper struct {
	ID          flexString      `json:"id"`
	ArxivID     flexString      `json:"arxiv_id"`
	Title       string          `json:"title"`
	Authors     json.RawMessage `json:"authors"`
	Published   flexString      `json:"published"`
	Abstract    string          `json:"abstract"`
	Summary     string          `json:"summary"`
	PDFURL      string          `json:"pdf_url"`
	PDFURLCamel string          `json:"pdfUrl"`
}

// flexString decodes a JSON string, number, or null into a string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// normalize maps a wire paper onto the canonical Paper. Index is the
// paper's position in the response and backs the id of last resort.
func (w wirePaper) normalize(index int) types.Paper {
	pdf := firstNonEmpty(w.PDFURL, w.PDFURLCamel)
	id := firstNonEmpty(string(w.ID), string(w.ArxivID), pdf)
	if id == "" {
		id = fmt.Sprintf("#%d", index+1)
	}
	return types.Paper{
		ID:        id,
		Title:     strings.TrimSpace(w.Title),
		Authors:   decodeAuthors(w.Authors),
		Published: strings.TrimSpace(string(w.Published)),
		Abstract:  strings.TrimSpace(firstNonEmpty(w.Abstract, w.Summary)),
		PDFURL:    pdf,
	}
}

// decodeOutcome classifies a completed HTTP exchange.
func decodeOutcome(status int, body []byte) types.Outcome {
	if status < 200 || status >= 300 {
		return types.TransportError{Message: failureDetail(body)}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return types.TransportError{Message: malformedResponse}
	}

	switch trimmed[0] {
	case '[':
		// Legacy shape: a bare array of papers with no transformed query.
		papers, err := decodePapers(trimmed)
		if err != nil {
			return types.TransportError{Message: malformedResponse}
		}
		return types.NewResults(papers, "")

	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return types.TransportError{Message: malformedResponse}
		}
		if msg := detailText(env.Error); msg != "" {
			return types.QueryError{Message: msg}
		}
		if env.Papers == nil {
			return types.TransportError{Message: malformedResponse}
		}
		papers, err := decodePapers(env.Papers)
		if err != nil {
			return types.TransportError{Message: malformedResponse}
		}
		transformed := strings.TrimSpace(string(env.TransformedQuery))
		if len(papers) == 0 && strings.HasPrefix(transformed, queryFailurePrefix) {
			return types.QueryError{Message: transformed}
		}
		return types.NewResults(papers, transformed)
	}

	return types.TransportError{Message: malformedResponse}
}

// decodeAuthors reads an authors value. Anything but an array yields no
// authors; elements that are neither a string nor {name} are skipped.
func decodeAuthors(raw json.RawMessage) []types.Author {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	authors := make([]types.Author, 0, len(items))
	for _, item := range items {
		var a types.Author
		if err := json.Unmarshal(item, &a); err != nil || a.Name == "" {
			continue
		}
		authors = append(authors, a)
	}
	return authors
}

// decodePapers decodes the papers array. Null elements are dropped before
// positions are assigned, so fallback ids count only real papers.
func decodePapers(raw json.RawMessage) ([]types.Paper, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding papers: %w", err)
	}
	papers := make([]types.Paper, 0, len(items))
	for _, item := range items {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		var w wirePaper
		if err := json.Unmarshal(item, &w); err != nil {
			return nil, fmt.Errorf("decoding paper %d: %w", len(papers)+1, err)
		}
		papers = append(papers, w.normalize(len(papers)))
	}
	return papers, nil
}

// failureDetail extracts a human-readable message from an error body.
// FastAPI puts it under "detail" as a string or a list of {msg} objects;
// newer builds may use "error". Anything else yields the generic text.
func failureDetail(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
		Error  json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return types.GenericTransportMessage
	}
	if d := detailText(env.Detail); d != "" {
		return d
	}
	if d := detailText(env.Error); d != "" {
		return d
	}
	return types.GenericTransportMessage
}

// detailText flattens a detail value: a string, an object carrying
// msg/message/detail, or a list of either.
func detailText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		var parts []string
		for _, item := range list {
			if text := detailText(item); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, "; ")
	}

	var obj struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(firstNonEmpty(obj.Msg, obj.Message, obj.Detail))
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
