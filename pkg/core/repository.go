package core

import "context"

// KeyValue defines the contract for the durable local store that mirrors
// the notebook. Implementations only ever see opaque, already serialized
// values under a fixed key.
type KeyValue interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Initializer is implemented by stores that need setup before use
// (create directories, run schema migrations).
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for stores that can report external changes.
type Watchable interface {
	// Watch emits an event whenever an entry matching pattern changes
	// outside of this process. The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Codec converts the full thought sequence to and from its persisted form.
type Codec interface {
	Marshal(thoughts []Thought) ([]byte, error)
	Unmarshal(data []byte) ([]Thought, error)
	// Name identifies the format (e.g. "json").
	Name() string
}
