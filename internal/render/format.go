// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const (
	idWidth      = 18
	titleWidth   = 56
	authorsWidth = 24
	dateWidth    = 10

	abstractWidth = 76
)

// Headline returns the one-line label for panels that carry no cards.
func Headline(vm ViewModel) string {
	switch vm.Panel {
	case PanelProgress:
		return "Searching..."
	case PanelQueryError:
		return "Could not generate a query: " + vm.Message
	case PanelTransportError:
		return "Search failed: " + vm.Message
	case PanelNoResults:
		return "No results found."
	case PanelNone:
		return "Enter a research question to search arXiv."
	}
	return ""
}

// WriteText writes the view model as a table, one row per card.
func WriteText(vm ViewModel, w io.Writer) {
	writeAnnotation(vm, w)
	if vm.Panel != PanelResults {
		fmt.Fprintln(w, Headline(vm))
		return
	}

	fmt.Fprintf(w, "%-3s  %s  %s  %s  %s\n",
		"#", pad("ID", idWidth), pad("Title", titleWidth), pad("Authors", authorsWidth), "Published")
	fmt.Fprintln(w, strings.Repeat("-", 3+idWidth+titleWidth+authorsWidth+dateWidth+8))

	for i, c := range vm.Cards {
		fmt.Fprintf(w, "%-3d  %s  %s  %s  %s\n",
			i+1, pad(c.ID, idWidth), pad(c.Title, titleWidth), pad(c.Authors, authorsWidth), c.Published)
	}

	fmt.Fprintf(w, "\n%d results\n", len(vm.Cards))
}

// WriteCards writes one block per card including the wrapped abstract.
func WriteCards(vm ViewModel, w io.Writer) {
	writeAnnotation(vm, w)
	if vm.Panel != PanelResults {
		fmt.Fprintln(w, Headline(vm))
		return
	}

	for i, c := range vm.Cards {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "[%d] %s\n", i+1, c.Title)
		if c.Authors != "" {
			fmt.Fprintf(w, "    %s\n", c.Authors)
		}
		meta := c.ID
		if c.Published != "" {
			meta = c.Published + "  " + meta
		}
		fmt.Fprintf(w, "    %s\n", meta)
		if c.Link != "" {
			fmt.Fprintf(w, "    %s\n", c.Link)
		}
		if c.Abstract != "" {
			fmt.Fprintln(w)
			for _, line := range strings.Split(ansi.Wordwrap(c.Abstract, abstractWidth, ""), "\n") {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}
}

// WriteJSON writes the view model as indented JSON.
func WriteJSON(vm ViewModel, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(vm)
}

func writeAnnotation(vm ViewModel, w io.Writer) {
	if vm.Annotation == "" {
		return
	}
	switch vm.Panel {
	case PanelResults, PanelNoResults:
		fmt.Fprintf(w, "Query: %s\n\n", vm.Annotation)
	}
}

// pad truncates s to width display cells and right-pads it.
func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}
