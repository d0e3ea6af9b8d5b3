package telemetry

import (
	"time"

	"github.com/vango-dev/vstore/pkg/store"
)

// Multi returns an observer that forwards to each non-nil observer in order.
func Multi(observers ...store.Observer) store.Observer {
	list := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return list
}

type multi []store.Observer

func (m multi) Dispatched(name string, outcome store.Outcome, elapsed time.Duration) {
	for _, o := range m {
		o.Dispatched(name, outcome, elapsed)
	}
}

func (m multi) Notified(name string, listeners int) {
	for _, o := range m {
		o.Notified(name, listeners)
	}
}

func (m multi) Subscribed(name string, listeners int) {
	for _, o := range m {
		o.Subscribed(name, listeners)
	}
}
