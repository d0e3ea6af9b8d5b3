package binding

import (
	"sync"

	"github.com/vango-dev/vstore/pkg/store"
)

// Watcher is a host-side subscription to an ExternalStore. It re-renders
// only when the snapshot changes identity.
type Watcher[U any] struct {
	src    ExternalStore[U]
	render func(U)

	// mu protects the fields below.
	mu      sync.Mutex
	last    U
	renders int
	stopped bool

	// running is set while one goroutine reads snapshots and renders.
	// dirty asks it to read once more before it returns.
	running bool
	dirty   bool

	unsubscribe func()
}

// Watch subscribes to src and calls render with each new slice.
//
// The snapshot is read, then the subscription is made, then the snapshot is
// read again. If the value moved in between, render is called once right
// away so the host never keeps a torn value. render is not called for the
// initial value; read it with Value.
func Watch[U any](src ExternalStore[U], render func(U)) *Watcher[U] {
	if render == nil {
		render = func(U) {}
	}

	w := &Watcher[U]{
		src:    src,
		render: render,
		last:   src.Snapshot(),
	}
	w.unsubscribe = src.Subscribe(w.check)
	w.check()
	return w
}

// check recomputes the snapshot and renders if it changed.
//
// Only one goroutine reads and renders at a time. A check arriving while
// another is running marks the watcher dirty and returns; the running one
// then reads again, so the last render is always of the newest snapshot
// and renders never go backwards. The same applies to a check triggered
// from inside render.
func (w *Watcher[U]) check() {
	w.mu.Lock()
	if w.running {
		w.dirty = true
		w.mu.Unlock()
		return
	}
	w.running = true
	w.dirty = false
	w.mu.Unlock()

	// running is cleared under mu in the same critical section that decides
	// to stop, so a check arriving later becomes the runner itself. The deferred
	// reset only matters when Snapshot or render panics.
	finished := false
	defer func() {
		if !finished {
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
		}
	}()

	for {
		next := w.src.Snapshot()

		w.mu.Lock()
		if w.stopped {
			w.running, finished = false, true
			w.mu.Unlock()
			return
		}
		if !store.Same(next, w.last) {
			w.last = next
			w.renders++
			w.mu.Unlock()

			w.render(next)

			w.mu.Lock()
		}
		if !w.dirty {
			w.running, finished = false, true
			w.mu.Unlock()
			return
		}
		// Dirty is cleared before the next read, so a check landing during
		// that read is seen on the following pass.
		w.dirty = false
		w.mu.Unlock()
	}
}

// Value returns the last observed slice.
func (w *Watcher[U]) Value() U {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Renders returns how many times render has been called.
func (w *Watcher[U]) Renders() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.renders
}

// Stop unsubscribes. Further notifications are ignored. Stop is idempotent.
func (w *Watcher[U]) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	w.mu.Unlock()

	w.unsubscribe()
}
