package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/thoughts/pkg/core"
)

// options holds the internal configuration for a Notebook.
type options struct {
	store     core.KeyValue
	logger    *slog.Logger
	adapter   string
	format    string
	key       string
	readOnly  bool
	mustExist bool
	forceTemp bool
	devSafety bool
	clock     func() time.Time
	debounce  time.Duration
}

// Option defines a functional option for configuring a Notebook.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   "fs",
		format:    "json",
		key:       core.StorageKey,
		devSafety: true,
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "sqlite").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithFormat selects the persisted encoding ("json" or "yaml").
// Defaults to "json".
func WithFormat(name string) Option {
	return func(o *options) {
		o.format = name
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithLogger sets the logger for the notebook and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore injects a custom key-value store (e.g. a mock).
// If provided, the adapter setting is ignored.
func WithStore(kv core.KeyValue) Option {
	return func(o *options) {
		o.store = kv
	}
}

// WithReadOnly loads the notebook but never writes it back.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithMustExist refuses to create the data directory.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithForceTemp re-roots the data directory under the system temp dir.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the dev sandbox: when enabled (the default),
// writable notebooks opened from `go run` or `go test` live under the system
// temp dir instead of the requested directory.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithClock overrides the time source for new thoughts.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithDebounce sets how long the watcher waits for a burst of file events
// to settle.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}
