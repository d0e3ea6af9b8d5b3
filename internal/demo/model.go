package demo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/vstore/pkg/binding"
	"github.com/vango-dev/vstore/pkg/store"
	"github.com/vango-dev/vstore/pkg/teabind"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Model is a Bubble Tea model with three views, each bound to its own
// slice of the todo store. Each view counts its renders so the effect of
// slice isolation is visible on screen.
type Model struct {
	store *store.Store[store.Record]

	todos     *teabind.Source[[]Todo]
	filter    *teabind.Source[string]
	remaining *teabind.Source[int]

	listRenders   int
	filterRenders int
	countRenders  int

	cursor int
	adding bool
	input  textinput.Model
}

// NewModel binds a model to s.
func NewModel(s *store.Store[store.Record]) *Model {
	input := textinput.New()
	input.Placeholder = "What needs doing?"
	input.CharLimit = 80

	return &Model{
		store:     s,
		todos:     teabind.Bind[[]Todo](binding.Slice(s, Todos)),
		filter:    teabind.Bind[string](binding.Slice(s, Filter)),
		remaining: teabind.Bind[int](binding.Slice(s, Remaining)),
		input:     input,
	}
}

// Close releases the store subscriptions.
func (m *Model) Close() {
	m.todos.Close()
	m.filter.Close()
	m.remaining.Close()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.todos.Wait(), m.filter.Wait(), m.remaining.Wait())
}

// visible applies the current filter to the current todo slice.
func (m *Model) visible() []Todo {
	return Visible(store.Record{
		keyTodos:  m.todos.Value(),
		keyFilter: m.filter.Value(),
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case teabind.Changed[[]Todo]:
		m.listRenders++
		m.clampCursor()
		return m, m.todos.Wait()

	case teabind.Changed[string]:
		m.filterRenders++
		m.clampCursor()
		return m, m.filter.Wait()

	case teabind.Changed[int]:
		m.countRenders++
		return m, m.remaining.Wait()

	case teabind.Closed:
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		Add(m.store, strings.TrimSpace(m.input.Value()))
		fallthrough
	case tea.KeyEsc:
		m.adding = false
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.Close()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}

	case " ", "x", "enter":
		if visible := m.visible(); m.cursor < len(visible) {
			Toggle(m.store, visible[m.cursor].ID)
		}

	case "a":
		m.adding = true
		return m, m.input.Focus()

	case "f":
		SetFilter(m.store, nextFilter(m.filter.Value()))

	case "c":
		ClearDone(m.store)

	case "r":
		m.store.Reset()
	}
	return m, nil
}

func (m *Model) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func nextFilter(f string) string {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterDone
	default:
		return FilterAll
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("vstore todos"))
	b.WriteString("\n\n")

	for i, t := range m.visible() {
		check := "[ ]"
		if t.Done {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, t.Title)
		switch {
		case i == m.cursor && !m.adding:
			line = selectedStyle.Render(line)
		case t.Done:
			line = doneStyle.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}

	if m.adding {
		b.WriteString("\n  " + m.input.View() + "\n")
	}

	b.WriteString("\n")
	b.WriteString(countStyle.Render(fmt.Sprintf("  %d remaining", m.remaining.Value())))
	b.WriteString(fmt.Sprintf("  filter: %s\n\n", m.filter.Value()))
	b.WriteString(helpStyle.Render(fmt.Sprintf(
		"  renders  list:%d  filter:%d  count:%d", m.listRenders, m.filterRenders, m.countRenders)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  ↑/↓ move • space toggle • a add • f filter • c clear done • r reset • q quit"))
	b.WriteString("\n")

	return b.String()
}
