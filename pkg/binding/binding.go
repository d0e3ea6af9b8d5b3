package binding

import "github.com/vango-dev/vstore/pkg/store"

// ExternalStore is the contract between a state source and a rendering host.
//
// Subscribe registers onChange and returns a function that removes it.
// Snapshot returns the current value without side effects; it must return
// an identical value (store.Same) when nothing changed.
type ExternalStore[U any] interface {
	Subscribe(onChange func()) (unsubscribe func())
	Snapshot() U
}

// Binding exposes a slice of a store's state. It holds no state of its own.
type Binding[T, U any] struct {
	store    *store.Store[T]
	selector func(T) U
}

// Slice binds selector over s.
// Slice panics if selector is nil.
func Slice[T, U any](s *store.Store[T], selector func(T) U) *Binding[T, U] {
	if s == nil {
		panic("vstore: nil store")
	}
	if selector == nil {
		panic("vstore: nil selector")
	}
	return &Binding[T, U]{store: s, selector: selector}
}

// Full binds the whole state.
func Full[T any](s *store.Store[T]) *Binding[T, T] {
	return Slice(s, identity[T])
}

func identity[T any](v T) T {
	return v
}

// Use returns the current slice and the store's dispatch function.
func (b *Binding[T, U]) Use() (U, store.UpdateFunc[T]) {
	return b.Snapshot(), b.store.Dispatch
}

// Snapshot returns selector(store.Get()).
func (b *Binding[T, U]) Snapshot() U {
	return b.selector(b.store.Get())
}

// Subscribe calls onChange after every notification of the underlying
// store. Deciding whether the slice changed is left to the host.
func (b *Binding[T, U]) Subscribe(onChange func()) (unsubscribe func()) {
	if onChange == nil {
		panic("vstore: nil change callback")
	}
	return b.store.Listen(func(T) { onChange() })
}

// Store returns the underlying store.
func (b *Binding[T, U]) Store() *store.Store[T] {
	return b.store
}
