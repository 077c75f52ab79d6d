// Package config holds the dispatcher's tunable defaults, set up with
// functional options the way cmd/flowsolve binds CLI flags onto wiring
// decisions, except collected into one struct instead of scattered
// locals.
package config

import "time"

const DefaultDeadline = 15 * time.Second

// HeuristicBackend selects which ports.HeuristicEngine implementation
// backs the "heuristic" strategy.
type HeuristicBackend string

const (
	HeuristicBackendNative     HeuristicBackend = "native"
	HeuristicBackendSubprocess HeuristicBackend = "subprocess"
)

// Options collects the dispatcher's runtime tunables.
type Options struct {
	DefaultDeadline time.Duration
	HeuristicEngine HeuristicBackend
	// SubprocessPath is the executable invoked when HeuristicEngine is
	// HeuristicBackendSubprocess; it is fed the text-grid wire format on
	// stdin and must write the JSON byte-code grid to stdout.
	SubprocessPath string
}

// Option mutates an Options value being built by New.
type Option func(*Options)

// New constructs Options with the package defaults, then applies opts.
func New(opts ...Option) Options {
	o := Options{
		DefaultDeadline: DefaultDeadline,
		HeuristicEngine: HeuristicBackendNative,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithDefaultDeadline(d time.Duration) Option {
	return func(o *Options) { o.DefaultDeadline = d }
}

func WithHeuristicBackend(b HeuristicBackend) Option {
	return func(o *Options) { o.HeuristicEngine = b }
}

func WithSubprocessPath(path string) Option {
	return func(o *Options) { o.SubprocessPath = path }
}
