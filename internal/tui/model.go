// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive terminal front end. The Bubble Tea loop
// is the only goroutine that changes search state: submissions and
// responses are both handled in Update, and the outbound call runs as a
// command whose result comes back as a message.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/arxiv-researcher/internal/render"
	"github.com/pdiddy/arxiv-researcher/internal/search"
)

// searchResponseMsg carries a finished call back into the loop.
type searchResponseMsg struct {
	resp search.Response
}

type keyMap struct {
	Submit   key.Binding
	Quit     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
	}
}

// chromeHeight is the rows taken by the title, input box, and status bar.
const chromeHeight = 6

// Model is the root Bubble Tea model.
type Model struct {
	ctx  context.Context
	ctrl *search.Controller
	keys keyMap

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	width   int
	height  int
	ready   bool
	ticking bool
}

// New creates the model around ctrl. ctx is passed to every search call.
func New(ctx context.Context, ctrl *search.Controller) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask a research question, e.g. recent work on sparse attention"
	ti.Prompt = "› "
	ti.SetValue(ctrl.State().Query)
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		keys:     defaultKeys(),
		input:    ti,
		spinner:  s,
		viewport: viewport.New(80, 20),
	}
	m.refresh()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = max(msg.Width-8, 10)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.refresh()
		return m, nil

	case searchResponseMsg:
		m.ctrl.Receive(m.ctx, msg.resp)
		m.ticking = m.pending()
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.ticking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		call := m.ctrl.Submit(m.input.Value())
		if call == nil {
			return m, nil
		}
		m.viewport.GotoTop()
		m.refresh()

		cmds := []tea.Cmd{runCall(m.ctx, call)}
		if !m.ticking {
			m.ticking = true
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetQuery(m.input.Value())
	return m, cmd
}

// runCall performs the request off the loop and reports back.
func runCall(ctx context.Context, call search.Call) tea.Cmd {
	return func() tea.Msg {
		return searchResponseMsg{resp: call(ctx)}
	}
}

func (m Model) pending() bool {
	_, ok := m.ctrl.State().Phase.(search.Pending)
	return ok
}

// refresh re-renders the results region from the current state.
func (m *Model) refresh() {
	vm := render.Project(m.ctrl.State())
	m.viewport.SetContent(renderBody(vm, m.viewport.Width))
}

// View renders the UI.
func (m Model) View() string {
	vm := render.Project(m.ctrl.State())

	var b strings.Builder
	b.WriteString(titleBar.Render("arXiv researcher"))
	b.WriteString("\n")
	b.WriteString(inputBox.Render(m.input.View()))
	b.WriteString("\n")

	if vm.Panel == render.PanelProgress {
		b.WriteString(m.spinner.View() + " " + render.Headline(vm))
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus(vm))
	return b.String()
}

func (m Model) renderStatus(vm render.ViewModel) string {
	hint := func(k key.Binding) string {
		h := k.Help()
		return statusKey.Render(h.Key) + " " + h.Desc
	}
	parts := []string{hint(m.keys.Submit), hint(m.keys.PageUp), hint(m.keys.PageDown), hint(m.keys.Quit)}
	if vm.Panel == render.PanelResults {
		parts = append(parts, fmt.Sprintf("%d papers", len(vm.Cards)))
	}
	return statusBar.Render(strings.Join(parts, "  "))
}

// renderBody draws everything below the input for a settled or idle view.
func renderBody(vm render.ViewModel, width int) string {
	if width <= 0 {
		width = 80
	}
	textWidth := max(width-4, 20)

	var b strings.Builder
	if vm.Annotation != "" && (vm.Panel == render.PanelResults || vm.Panel == render.PanelNoResults) {
		b.WriteString(annotationStyle.Render("arXiv query: " + vm.Annotation))
		b.WriteString("\n\n")
	}

	switch vm.Panel {
	case render.PanelNone:
		b.WriteString(emptyPanel.Render(render.Headline(vm)))
	case render.PanelNoResults:
		b.WriteString(emptyPanel.Render(render.Headline(vm) + " Try rephrasing the question."))
	case render.PanelQueryError:
		b.WriteString(queryErrorPanel.Width(textWidth).Render("Query generation failed\n" + vm.Message))
	case render.PanelTransportError:
		b.WriteString(transportErrorPanel.Width(textWidth).Render("Request failed\n" + vm.Message))
	case render.PanelResults:
		for i, c := range vm.Cards {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(renderCard(i+1, c, textWidth))
		}
	}
	return b.String()
}

func renderCard(n int, c render.Card, width int) string {
	var b strings.Builder
	b.WriteString(paperTitle.Width(width).Render(fmt.Sprintf("%d. %s", n, c.Title)))
	b.WriteString("\n")

	meta := []string{}
	if c.Authors != "" {
		meta = append(meta, c.Authors)
	}
	if c.Published != "" {
		meta = append(meta, c.Published)
	}
	meta = append(meta, c.ID)
	b.WriteString(paperMeta.Width(width).Render(strings.Join(meta, " · ")))

	if c.Link != "" {
		b.WriteString("\n")
		b.WriteString(paperLink.Render(c.Link))
	}
	if c.Abstract != "" {
		b.WriteString("\n")
		b.WriteString(paperAbstract.Width(width).Render(c.Abstract))
	}
	return b.String()
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, ctrl *search.Controller) error {
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interactive ui: %w", err)
	}
	return nil
}
