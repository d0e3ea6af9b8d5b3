// Package store provides an observable container for a single value.
//
// A Store holds the current value and the value it was created with, and
// broadcasts every accepted change to its listeners:
//
//	s := store.New(store.Record{"count": 0, "todos": todos})
//
//	unsubscribe := s.Listen(func(v store.Record) {
//	    fmt.Println("count is", v["count"])
//	})
//	defer unsubscribe()
//
//	s.Set(store.Record{"count": 1})                 // shallow merge
//	s.Update(func(v store.Record) store.Record {    // updater
//	    return store.Record{"count": v["count"].(int) + 1}
//	})
//	s.Replace(store.Record{"count": 0})             // no merge
//	s.Reset()                                       // back to the initial value
//
// # Merging
//
// Only plain string-keyed maps are merged, and only one level deep: nested
// maps and slices are carried over by reference or replaced wholesale.
// Structs, slices, scalars and map types implementing Opaque always replace
// the state. See Classify.
//
// # Identity
//
// Change detection uses identity, not deep equality (see Same). An updater
// that returns its argument unchanged vetoes the dispatch: nothing is
// assigned and no listener runs. Conversely, an updater that allocates a new
// map or slice on every call always reports a change.
//
// # Thread Safety
//
// Stores are safe for concurrent use. The state is swapped atomically and
// no lock is held while updaters or listeners run. Listeners run
// synchronously on the dispatching goroutine, so they may read the store or
// dispatch again; nested dispatches are processed in call order. An updater
// may read the store; it is re-run if another dispatch lands first.
package store
