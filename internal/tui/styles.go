// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("212") // Pink
	colorError     = lipgloss.Color("203") // Red
	colorWarning   = lipgloss.Color("214") // Orange
)

var titleBar = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

var inputBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(0, 1)

var annotationStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Italic(true)

var paperTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

var paperMeta = lipgloss.NewStyle().
	Foreground(colorSecondary)

var paperLink = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Underline(true)

var paperAbstract = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252"))

// Query-generation failures and transport failures are styled apart so
// the two are never mistaken for each other.
var queryErrorPanel = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(colorWarning).
	Foreground(colorWarning).
	Padding(0, 1)

var transportErrorPanel = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(colorError).
	Foreground(colorError).
	Padding(0, 1)

var emptyPanel = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

var statusBar = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(0, 1)

var statusKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)
