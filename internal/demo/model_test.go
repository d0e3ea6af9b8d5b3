package demo

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vango-dev/vstore/pkg/teabind"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelToggleRendersListAndCountOnly(t *testing.T) {
	s := NewTodos([]string{"a", "b"})
	m := NewModel(s)
	defer m.Close()

	m.Update(key(" "))
	if !Todos(s.Get())[0].Done {
		t.Fatal("space should toggle the selected todo")
	}

	m.Update(m.todos.Wait()())
	m.Update(m.remaining.Wait()())

	if m.listRenders != 1 || m.countRenders != 1 {
		t.Errorf("renders list=%d count=%d, want 1 and 1", m.listRenders, m.countRenders)
	}
	if m.filterRenders != 0 {
		t.Errorf("filter renders = %d, want 0", m.filterRenders)
	}
}

func TestModelFilterCycle(t *testing.T) {
	s := NewTodos([]string{"a"})
	m := NewModel(s)
	defer m.Close()

	m.Update(key("f"))
	if Filter(s.Get()) != FilterActive {
		t.Fatalf("filter = %q, want active", Filter(s.Get()))
	}

	msg, ok := m.filter.Wait()().(teabind.Changed[string])
	if !ok || msg.Value != FilterActive {
		t.Fatalf("filter message = %#v", msg)
	}
	m.Update(msg)
	if m.filterRenders != 1 || m.listRenders != 0 {
		t.Errorf("renders filter=%d list=%d", m.filterRenders, m.listRenders)
	}
}

func TestModelAddTodo(t *testing.T) {
	s := NewTodos(nil)
	m := NewModel(s)
	defer m.Close()

	m.Update(key("a"))
	if !m.adding {
		t.Fatal("a should enter add mode")
	}
	m.Update(key("milk"))
	m.Update(key("enter"))

	todos := Todos(s.Get())
	if len(todos) != 1 || todos[0].Title != "milk" {
		t.Fatalf("todos = %+v", todos)
	}
	if m.adding {
		t.Error("enter should leave add mode")
	}
}

func TestModelResetAndQuit(t *testing.T) {
	s := NewTodos([]string{"a"})
	m := NewModel(s)

	m.Update(key("x"))
	m.Update(key("r"))
	if Todos(s.Get())[0].Done {
		t.Error("r should reset the store")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if s.Len() != 0 {
		t.Errorf("listeners = %d after quit, want 0", s.Len())
	}
}

func TestModelView(t *testing.T) {
	s := NewTodos([]string{"write tests"})
	m := NewModel(s)
	defer m.Close()

	out := m.View()
	for _, want := range []string{"vstore todos", "write tests", "1 remaining", "filter: all"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
}
