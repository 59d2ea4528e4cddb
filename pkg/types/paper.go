// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Author is a single paper author.
type Author struct {
	Name string `json:"name" yaml:"name"`
}

// UnmarshalJSON accepts an author either as a bare string or as an object
// with a name field. Both forms have been sent by the search service.
func (a *Author) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		a.Name = strings.TrimSpace(name)
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("author must be a string or an object with a name: %w", err)
	}
	a.Name = strings.TrimSpace(obj.Name)
	return nil
}

// Paper is one search hit as returned by the search service, after field
// names have been normalized.
type Paper struct {
	// ID is the stable identifier of the paper (usually the arXiv ID, e.g. "2301.07041v1").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`

	// Published is the publication date as sent by the service, typically YYYY-MM-DD.
	Published string `json:"published" yaml:"published"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// PDFURL links to the paper's PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`
}

// AuthorNames returns the author names in source order.
func (p Paper) AuthorNames() []string {
	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		names = append(names, a.Name)
	}
	return names
}

// JoinedAuthors returns the author names separated by ", ".
func (p Paper) JoinedAuthors() string {
	return strings.Join(p.AuthorNames(), ", ")
}

// PublishedDate parses Published as a calendar date or an RFC 3339 timestamp.
// The second return value is false when Published is in neither form.
func (p Paper) PublishedDate() (time.Time, bool) {
	s := strings.TrimSpace(p.Published)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
