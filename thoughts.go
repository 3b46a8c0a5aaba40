package thoughts

import (
	"log/slog"
	"time"

	"github.com/aretw0/thoughts/internal/platform"
	"github.com/aretw0/thoughts/pkg/core"
)

// --- Types ---

// Notebook is an opened collection of thoughts.
type Notebook = platform.Notebook

// Thought is a single recorded entry.
type Thought = core.Thought

// Category classifies a thought.
type Category = core.Category

// --- Configuration ---

// Option defines a functional option for configuring a Notebook.
type Option = platform.Option

// WithAdapter selects the storage adapter by name ("fs" or "sqlite").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithFormat selects the persisted encoding ("json" or "yaml").
func WithFormat(name string) Option {
	return platform.WithFormat(name)
}

// WithLogger sets the logger for the notebook.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore allows injecting a custom key-value store.
func WithStore(kv core.KeyValue) Option {
	return platform.WithStore(kv)
}

// WithReadOnly never writes changes back to storage.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist refuses to create the data directory.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety enables or disables the dev sandbox for `go run` and
// `go test` processes. Enabled by default.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithClock overrides the time source for new thoughts.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// --- Factory ---

// Open loads the notebook stored in dir.
func Open(dir string, opts ...Option) (*Notebook, error) {
	return platform.New(dir, opts...)
}

// --- Safety & Utils ---

// ResolveDataDir determines the actual data directory based on safety rules.
func ResolveDataDir(dir string, forceTemp bool) string {
	return platform.ResolveDataDir(dir, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
