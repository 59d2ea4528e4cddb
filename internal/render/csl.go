// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"io"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-researcher/internal/search"
	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

// CSLItem is a bibliographic entry in CSL (Citation Style Language) form.
// Field names follow the CSL-YAML schema so output can be fed to Pandoc
// and reference managers.
type CSLItem struct {
	ID              string    `yaml:"id"`
	Type            string    `yaml:"type"`
	Title           string    `yaml:"title"`
	Author          []CSLName `yaml:"author,omitempty"`
	Abstract        string    `yaml:"abstract,omitempty"`
	Issued          *CSLDate  `yaml:"issued,omitempty"`
	URL             string    `yaml:"URL,omitempty"`
	DOI             string    `yaml:"DOI,omitempty"`
	Archive         string    `yaml:"archive,omitempty"`
	ArchiveLocation string    `yaml:"archive_location,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// arxivID matches new-style (2301.07041v2) and old-style (hep-th/9901001)
// arXiv identifiers.
var arxivID = regexp.MustCompile(`^(\d{4}\.\d{4,5}|[a-z\-]+(\.[A-Z]{2})?/\d{7})(v\d+)?$`)

// WriteCSL writes the papers of a successful search as a CSL-YAML list.
// Any other state writes an empty list.
func WriteCSL(st search.State, w io.Writer) error {
	items := []CSLItem{}
	if settled, ok := st.Phase.(search.Settled); ok {
		if success, ok := settled.Outcome.(types.Success); ok {
			for _, p := range success.Papers {
				items = append(items, toCSLItem(p))
			}
		}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(p types.Paper) CSLItem {
	item := CSLItem{
		ID:       p.ID,
		Type:     "article",
		Title:    p.Title,
		Abstract: p.Abstract,
		URL:      p.PDFURL,
	}

	for _, name := range p.AuthorNames() {
		if n := parseAuthorName(name); n != (CSLName{}) {
			item.Author = append(item.Author, n)
		}
	}

	if d, ok := p.PublishedDate(); ok {
		item.Issued = &CSLDate{
			DateParts: [][]int{{d.Year(), int(d.Month()), d.Day()}},
		}
	}

	switch {
	case strings.HasPrefix(p.ID, "10."):
		item.DOI = p.ID
	case arxivID.MatchString(p.ID):
		item.Archive = "arXiv"
		item.ArchiveLocation = p.ID
	}

	return item
}

// parseAuthorName splits a full name on the last space: everything before
// is given, the last token is family. Single-token names use the literal
// field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
