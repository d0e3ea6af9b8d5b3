package store

import (
	"log/slog"
	"time"
)

// Outcome describes what a dispatch did to the stored state.
type Outcome string

const (
	// OutcomeMerged means the result was shallow-merged into the state.
	OutcomeMerged Outcome = "merged"

	// OutcomeReplaced means the result replaced the state wholesale.
	OutcomeReplaced Outcome = "replaced"

	// OutcomeVetoed means the result was identical to the state and
	// nothing was assigned or broadcast.
	OutcomeVetoed Outcome = "vetoed"
)

// Observer receives diagnostic callbacks from a store. Implementations must
// be cheap and must not call back into the store.
type Observer interface {
	// Dispatched is called after every dispatch that returned normally.
	Dispatched(store string, outcome Outcome, elapsed time.Duration)

	// Notified is called after a notification cycle with the number of
	// listeners invoked.
	Notified(store string, listeners int)

	// Subscribed is called when the registry size changes.
	Subscribed(store string, listeners int)
}

// config holds store options.
type config struct {
	name     string
	logger   *slog.Logger
	observer Observer
}

// Option configures a Store.
type Option func(*config)

// WithName sets the name used in logs, metrics and the devtools inspector.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the logger. Dispatches are logged at debug level.
// If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithObserver attaches an Observer.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

func defaultConfig() config {
	return config{
		name:   "store",
		logger: slog.Default(),
	}
}
