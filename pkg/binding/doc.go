// Package binding connects a store.Store to a rendering host.
//
// A Binding pairs a store with a selector. Hosts see it through the
// two-function ExternalStore contract: Subscribe registers a change
// callback, Snapshot synchronously returns selector(store.Get()).
//
//	visible := binding.Slice(todos, func(s State) []Todo { return s.Visible })
//
//	items, update := visible.Use()
//	update(store.Value(State{Filter: "done"}), false)
//
// Watcher is a generic host: it keeps the last snapshot and calls its render
// function only when a notification produces a slice that is not
// identical (store.Same) to the previous one. Selectors that allocate a new
// composite value on every call defeat this and cause a render on every
// store change.
package binding
