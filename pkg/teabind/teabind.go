// Package teabind hosts store bindings inside a Bubble Tea program.
//
// A Source watches a binding and turns identity changes of its slice into
// messages. Models re-issue Wait after each Changed message:
//
//	func (m model) Init() tea.Cmd { return m.count.Wait() }
//
//	func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
//	    switch msg := msg.(type) {
//	    case teabind.Changed[int]:
//	        m.value = msg.Value
//	        return m, m.count.Wait()
//	    }
//	    ...
//	}
//
// Changes that arrive faster than the program consumes them coalesce: Wait
// yields the most recent slice.
package teabind

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vango-dev/vstore/pkg/binding"
)

// Changed is delivered when the watched slice changes identity.
type Changed[U any] struct {
	Value U
}

// Closed is delivered to a pending Wait when the Source is closed.
type Closed struct{}

// Source bridges a binding to Bubble Tea commands.
type Source[U any] struct {
	watcher *binding.Watcher[U]
	pending chan U
	done    chan struct{}
	once    sync.Once
}

// Bind starts watching src.
func Bind[U any](src binding.ExternalStore[U]) *Source[U] {
	s := &Source[U]{
		pending: make(chan U, 1),
		done:    make(chan struct{}),
	}
	s.watcher = binding.Watch(src, s.push)
	return s
}

// push stores v as the pending value, replacing any unconsumed one.
func (s *Source[U]) push(v U) {
	for {
		select {
		case s.pending <- v:
			return
		default:
		}
		select {
		case <-s.pending:
		default:
		}
	}
}

// Value returns the last observed slice.
func (s *Source[U]) Value() U {
	return s.watcher.Value()
}

// Wait returns a command that blocks until the slice changes or the source
// is closed.
func (s *Source[U]) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case v := <-s.pending:
			return Changed[U]{Value: v}
		case <-s.done:
			return Closed{}
		}
	}
}

// Close stops watching and releases any pending Wait.
func (s *Source[U]) Close() {
	s.once.Do(func() {
		s.watcher.Stop()
		close(s.done)
	})
}
