// Package tui implements the interactive lesson browser.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hookpad/cli/internal/catalog"
	"github.com/hookpad/cli/internal/output"
	"github.com/hookpad/cli/internal/render"
	"github.com/hookpad/cli/internal/viewer"
)

// Options configures the browser.
type Options struct {
	// Renderer renders lessons into the content pane. Width is managed by
	// the browser.
	Renderer render.Terminal

	// Initial is an optional target opened on start.
	Initial *viewer.Target
}

type pane int

const (
	paneList pane = iota
	paneContent
)

// item adapts a catalog descriptor to the bubbles list.
type item struct {
	d catalog.Descriptor
}

func (i item) Title() string       { return i.d.Name }
func (i item) Description() string { return i.d.Group() }
func (i item) FilterValue() string { return i.d.Path }

// stateMsg carries a viewer transition into the update loop.
type stateMsg struct {
	state viewer.State
	next  <-chan struct{}
}

// waitForChange blocks until the viewer's next transition.
func waitForChange(v *viewer.Viewer, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		s, next := v.Watch()
		return stateMsg{state: s, next: next}
	}
}

// Model is the bubbletea model of the browser: a lesson list on the left
// and the rendered lesson on the right.
type Model struct {
	viewer   *viewer.Viewer
	renderer render.Terminal
	initial  *viewer.Target

	list     list.Model
	viewport viewport.Model
	focus    pane
	state    viewer.State
	width    int
	height   int
	quitting bool
}

// NewModel creates a browser over reg. Navigation goes through v.
func NewModel(reg *catalog.Registry, v *viewer.Viewer, opts Options) *Model {
	var items []list.Item
	for _, g := range reg.ListGroups() {
		for _, d := range g.Units {
			items = append(items, item{d: d})
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 30, 20)
	l.Title = "Lessons"
	l.SetShowHelp(false)
	l.Styles.Title = output.StyleTitle.Padding(0, 1)

	m := &Model{
		viewer:   v,
		renderer: opts.Renderer,
		initial:  opts.Initial,
		list:     l,
		viewport: viewport.New(50, 20),
		state:    v.State(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	_, ch := m.viewer.Watch()
	if m.initial != nil {
		m.viewer.Navigate(context.Background(), m.initial.Group, m.initial.File)
	}
	return waitForChange(m.viewer, ch)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case stateMsg:
		if msg.state.Generation >= m.state.Generation {
			m.state = msg.state
			m.refresh()
		}
		return m, waitForChange(m.viewer, msg.next)

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focus == paneList {
				m.focus = paneContent
			} else {
				m.focus = paneList
			}
			return m, nil
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.open(it.d.Group(), it.d.Name)
			}
			return m, nil
		case "r":
			if t := m.state.Target; t != (viewer.Target{}) {
				m.open(t.Group, t.File)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == paneList {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// open navigates the viewer. The resulting transitions arrive as stateMsg.
func (m *Model) open(group, file string) {
	output.Debug("browse navigate", "target", group+"/"+file)
	m.state = m.viewer.Navigate(context.Background(), group, file)
	m.refresh()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	listWidth := width / 3
	if listWidth < 24 {
		listWidth = 24
	}
	m.list.SetSize(listWidth, height-1)

	m.viewport.Width = max(width-listWidth-2, 10)
	m.viewport.Height = max(height-3, 1)
	m.refresh()
}

// refresh re-renders the current state into the content pane.
func (m *Model) refresh() {
	r := m.renderer
	r.Width = m.viewport.Width - 2
	content, err := viewer.Render(m.state, r)
	if err != nil {
		content = output.FormatCross(err.Error())
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	border := lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(output.ColorDimGray)
	if m.focus == paneContent {
		border = border.BorderForeground(output.ColorCyan)
	}

	status := output.FormatPhaseLine(m.state.Target.String(), m.state.Phase.String())
	if m.state.Target == (viewer.Target{}) {
		status = output.StyleDim.Render("Select a lesson and press enter")
	}

	right := lipgloss.JoinVertical(lipgloss.Left,
		status,
		border.Render(m.viewport.View()),
	)
	footer := output.StyleDim.Render("enter: open • tab: switch pane • r: reload • /: filter • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), right),
		footer,
	)
}

// State returns the state currently shown.
func (m *Model) State() viewer.State {
	return m.state
}

// Run starts the browser and blocks until the user quits or ctx is done.
func Run(ctx context.Context, reg *catalog.Registry, v *viewer.Viewer, opts Options) error {
	m := NewModel(reg, v, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
