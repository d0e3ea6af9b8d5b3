// Package demo holds the todo store used by the vstore CLI.
//
// The state is a store.Record so that actions exercise shallow merging:
// toggling a todo replaces the "todos" slice and leaves "filter" untouched,
// changing the filter leaves the slice untouched.
package demo

import (
	"context"
	"math/rand"
	"time"

	"github.com/vango-dev/vstore/pkg/store"
)

// Record keys.
const (
	keyTodos  = "todos"
	keyFilter = "filter"
	keyNextID = "nextID"
)

// Filter values.
const (
	FilterAll    = "all"
	FilterActive = "active"
	FilterDone   = "done"
)

// Todo is one item. Todos are values; changing one allocates a new slice.
type Todo struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// NewTodos creates a todo store seeded with titles.
func NewTodos(titles []string, opts ...store.Option) *store.Store[store.Record] {
	todos := make([]Todo, 0, len(titles))
	for i, title := range titles {
		todos = append(todos, Todo{ID: i + 1, Title: title})
	}
	return store.New(store.Record{
		keyTodos:  todos,
		keyFilter: FilterAll,
		keyNextID: len(titles) + 1,
	}, opts...)
}

// Todos selects the todo slice.
func Todos(r store.Record) []Todo {
	todos, _ := r[keyTodos].([]Todo)
	return todos
}

// Filter selects the active filter.
func Filter(r store.Record) string {
	f, _ := r[keyFilter].(string)
	return f
}

// Remaining selects the number of open todos.
func Remaining(r store.Record) int {
	n := 0
	for _, t := range Todos(r) {
		if !t.Done {
			n++
		}
	}
	return n
}

// Visible applies the filter to the todo slice.
func Visible(r store.Record) []Todo {
	todos := Todos(r)
	switch Filter(r) {
	case FilterActive, FilterDone:
		wantDone := Filter(r) == FilterDone
		out := make([]Todo, 0, len(todos))
		for _, t := range todos {
			if t.Done == wantDone {
				out = append(out, t)
			}
		}
		return out
	default:
		return todos
	}
}

// Add appends a todo.
func Add(s *store.Store[store.Record], title string) {
	s.Update(func(r store.Record) store.Record {
		if title == "" {
			return r
		}
		id, _ := r[keyNextID].(int)
		todos := Todos(r)
		next := make([]Todo, len(todos), len(todos)+1)
		copy(next, todos)
		return store.Record{
			keyTodos:  append(next, Todo{ID: id, Title: title}),
			keyNextID: id + 1,
		}
	})
}

// Toggle flips the todo with the given ID. Unknown IDs are a no-op.
func Toggle(s *store.Store[store.Record], id int) {
	s.Update(func(r store.Record) store.Record {
		todos := Todos(r)
		for i, t := range todos {
			if t.ID != id {
				continue
			}
			next := make([]Todo, len(todos))
			copy(next, todos)
			next[i].Done = !t.Done
			return store.Record{keyTodos: next}
		}
		return r
	})
}

// SetFilter changes the filter. Setting the current filter is a no-op.
func SetFilter(s *store.Store[store.Record], filter string) {
	s.Update(func(r store.Record) store.Record {
		if Filter(r) == filter {
			return r
		}
		return store.Record{keyFilter: filter}
	})
}

// ClearDone removes completed todos.
func ClearDone(s *store.Store[store.Record]) {
	s.Update(func(r store.Record) store.Record {
		todos := Todos(r)
		next := make([]Todo, 0, len(todos))
		for _, t := range todos {
			if !t.Done {
				next = append(next, t)
			}
		}
		if len(next) == len(todos) {
			return r
		}
		return store.Record{keyTodos: next}
	})
}

// Churn toggles a random todo every interval until ctx is done. It gives
// the inspector something to show.
func Churn(ctx context.Context, s *store.Store[store.Record], interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			todos := Todos(s.Get())
			if len(todos) == 0 {
				continue
			}
			Toggle(s, todos[rand.Intn(len(todos))].ID)
		}
	}
}
