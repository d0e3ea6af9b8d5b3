package store

import (
	"sync/atomic"
	"time"
)

// Record is the plain map shape that takes part in shallow merges.
type Record = map[string]any

// Partial is the argument of a dispatch: either a value or an updater
// function applied to the current state.
type Partial[T any] struct {
	value T
	fn    func(T) T
}

// Value wraps a partial or complete state value.
func Value[T any](v T) Partial[T] {
	return Partial[T]{value: v}
}

// Func wraps an updater. The updater receives the current state and must
// not modify it in place; returning it unchanged vetoes the dispatch.
// Func panics if fn is nil.
func Func[T any](fn func(T) T) Partial[T] {
	if fn == nil {
		panic("vstore: nil updater")
	}
	return Partial[T]{fn: fn}
}

func (p Partial[T]) resolve(current T) T {
	if p.fn != nil {
		return p.fn(current)
	}
	return p.value
}

// UpdateFunc is the dispatch signature handed to bindings.
type UpdateFunc[T any] func(p Partial[T], replace bool)

// Store is an observable container for a single value.
//
// The value is never modified in place: every accepted dispatch assigns a
// new value, so references handed out by Get stay valid and unchanged.
// Listeners run synchronously, with no lock held, before Dispatch returns.
type Store[T any] struct {
	// current is swapped whole on every accepted dispatch.
	current atomic.Pointer[T]

	// initial is the construction value. Never reassigned.
	initial T

	listeners registry[T]
	cfg       config
}

// New creates a store holding initial.
func New[T any](initial T, opts ...Option) *Store[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = defaultConfig().logger
	}

	s := &Store[T]{
		initial: initial,
		cfg:     cfg,
	}
	s.current.Store(&initial)
	return s
}

// Name returns the store name set with WithName.
func (s *Store[T]) Name() string {
	return s.cfg.name
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	return *s.current.Load()
}

// Initial returns the value the store was constructed with.
func (s *Store[T]) Initial() T {
	return s.initial
}

// Dispatch is the single mutation path.
//
// The partial is resolved against the current state. A result identical to
// the current state (see Same) is a veto: nothing is assigned and no
// listener runs. Otherwise, unless replace is set, a result that is a
// record is shallow-merged over a record state; any other result replaces
// the state. The new state is then broadcast to every listener.
//
// The updater runs with no lock held and may read s. If another dispatch
// lands while it runs, its result is discarded and it runs again on the new
// state, so it must not have side effects other than reading. An updater
// that dispatches to s itself on every run never settles; Dispatch panics
// after maxAttempts runs. A panicking updater propagates to the caller with
// the state unchanged.
func (s *Store[T]) Dispatch(p Partial[T], replace bool) {
	start := time.Now()
	next, outcome := s.apply(p, replace)

	s.cfg.logger.Debug("vstore dispatch",
		"store", s.cfg.name,
		"outcome", string(outcome),
		"replace", replace,
	)
	if s.cfg.observer != nil {
		s.cfg.observer.Dispatched(s.cfg.name, outcome, time.Since(start))
	}

	if outcome == OutcomeVetoed {
		return
	}
	s.NotifyWith(next)
}

// maxAttempts bounds how often an updater is re-run because the state
// moved under it.
const maxAttempts = 64

func (s *Store[T]) apply(p Partial[T], replace bool) (T, Outcome) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		base := s.current.Load()
		result := p.resolve(*base)
		if Same(result, *base) {
			return *base, OutcomeVetoed
		}

		next, outcome := result, OutcomeReplaced
		if !replace {
			if merged, ok := ShallowMerge(*base, result); ok {
				next, outcome = merged, OutcomeMerged
			}
		}

		if s.current.CompareAndSwap(base, &next) {
			return next, outcome
		}
	}
	panic("vstore: state changed during every updater run; updaters must not dispatch to their own store")
}

// Set shallow-merges partial into a record state, or replaces any other
// state.
func (s *Store[T]) Set(partial T) {
	s.Dispatch(Value(partial), false)
}

// Update applies fn to the current state with merge semantics.
func (s *Store[T]) Update(fn func(T) T) {
	s.Dispatch(Func(fn), false)
}

// Replace swaps the state for next without merging.
func (s *Store[T]) Replace(next T) {
	s.Dispatch(Value(next), true)
}

// Reset restores the construction value by reference, notifying only if
// the state differs from it.
func (s *Store[T]) Reset() {
	s.Dispatch(Value(s.initial), true)
}

// Notify broadcasts the current state without changing it.
func (s *Store[T]) Notify() {
	s.NotifyWith(s.Get())
}

// NotifyWith broadcasts value to every listener. The stored state is not
// touched.
//
// Listeners are called in registration order from a snapshot taken at the
// start of the cycle. A listener removed during the cycle is skipped if it
// has not been reached yet; a listener added during the cycle is first
// called on the next one.
func (s *Store[T]) NotifyWith(value T) {
	called := s.listeners.broadcast(value)
	if s.cfg.observer != nil {
		s.cfg.observer.Notified(s.cfg.name, called)
	}
}

// Subscribe registers l and returns a function removing it. Registering a
// listener that is already present is a no-op; the returned function still
// removes it. Calling the returned function more than once is harmless.
//
// Subscribe panics if l is nil or its dynamic type is not comparable.
func (s *Store[T]) Subscribe(l Listener[T]) (unsubscribe func()) {
	e, added := s.listeners.add(l)
	if added {
		s.subscribed()
	}
	return func() {
		if s.listeners.removeEntry(e) {
			s.subscribed()
		}
	}
}

// Listen registers fn under a fresh identity and returns a function
// removing it.
func (s *Store[T]) Listen(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		panic("vstore: nil listener")
	}
	return s.Subscribe(&funcListener[T]{fn: fn})
}

// Unsubscribe removes l if present.
func (s *Store[T]) Unsubscribe(l Listener[T]) {
	if s.listeners.remove(l) {
		s.subscribed()
	}
}

// UnsubscribeAll empties the listener registry.
func (s *Store[T]) UnsubscribeAll() {
	s.listeners.clear()
	s.subscribed()
}

// Len returns the number of registered listeners.
func (s *Store[T]) Len() int {
	return s.listeners.len()
}

func (s *Store[T]) subscribed() {
	if s.cfg.observer != nil {
		s.cfg.observer.Subscribed(s.cfg.name, s.listeners.len())
	}
}
