package store

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// Listener receives the state value broadcast by a notification cycle.
//
// Listeners are identified by interface equality, so implementations must
// be comparable. Pointer receivers are the usual choice. Use Listen for
// plain closures.
type Listener[T any] interface {
	OnState(value T)
}

// funcListener gives a closure a pointer identity.
type funcListener[T any] struct {
	fn func(T)
}

func (l *funcListener[T]) OnState(value T) {
	l.fn(value)
}

// entry is one registration. active is cleared on removal so that a
// notification cycle already holding a snapshot skips it.
type entry[T any] struct {
	listener Listener[T]
	active   atomic.Bool
}

// registry is an ordered set of listeners with snapshot-stable iteration.
type registry[T any] struct {
	mu      sync.RWMutex
	entries []*entry[T]
}

// add registers l unless it is already present. It reports whether l was
// added.
func (r *registry[T]) add(l Listener[T]) (*entry[T], bool) {
	mustBeComparable(l)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.listener == l {
			return e, false
		}
	}

	e := &entry[T]{listener: l}
	e.active.Store(true)
	r.entries = append(r.entries, e)
	return e, true
}

// remove deactivates and drops the entry holding l, if any.
func (r *registry[T]) remove(l Listener[T]) bool {
	if l == nil || !reflect.TypeOf(l).Comparable() {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.listener == l {
			r.drop(i)
			return true
		}
	}
	return false
}

// removeEntry drops exactly e. Used by unsubscribe closures so that a
// listener re-added after removal is not dropped by a stale closure.
func (r *registry[T]) removeEntry(target *entry[T]) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e == target {
			r.drop(i)
			return true
		}
	}
	return false
}

// drop removes index i preserving order. Caller holds mu.
func (r *registry[T]) drop(i int) {
	r.entries[i].active.Store(false)
	copy(r.entries[i:], r.entries[i+1:])
	r.entries[len(r.entries)-1] = nil
	r.entries = r.entries[:len(r.entries)-1]
}

func (r *registry[T]) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		e.active.Store(false)
	}
	r.entries = nil
}

func (r *registry[T]) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// snapshot copies the current entries. Uses the copy-before-notify pattern
// so no lock is held while listeners run.
func (r *registry[T]) snapshot() []*entry[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.entries) == 0 {
		return nil
	}
	entries := make([]*entry[T], len(r.entries))
	copy(entries, r.entries)
	return entries
}

// broadcast invokes every still-active entry of a snapshot with value.
// It returns the number of listeners invoked.
func (r *registry[T]) broadcast(value T) int {
	called := 0
	for _, e := range r.snapshot() {
		if !e.active.Load() {
			continue
		}
		e.listener.OnState(value)
		called++
	}
	return called
}

func mustBeComparable(l any) {
	if l == nil {
		panic("vstore: nil listener")
	}
	if t := reflect.TypeOf(l); !t.Comparable() {
		panic(fmt.Sprintf("vstore: listener type %s is not comparable; use Store.Listen for closures", t))
	}
}
