// Package devtools serves a read-only inspector for named stores.
//
//	insp := devtools.NewInspector(devtools.WithGatherer(reg))
//	devtools.Expose(insp, "todos", todos)
//	http.ListenAndServe(":7070", insp.Handler())
//
// Routes:
//
//	GET /stores              names and listener counts
//	GET /stores/{name}       current state as a Frame
//	GET /stores/{name}/ws    websocket: a Frame on connect, then one per change
//	GET /metrics             Prometheus exposition, when a gatherer is set
//
// The inspector never mutates a store. Websocket clients only receive
// frames; anything they send is discarded.
package devtools
