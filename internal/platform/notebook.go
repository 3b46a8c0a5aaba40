package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"

	"github.com/aretw0/thoughts/pkg/core"
	"github.com/aretw0/thoughts/pkg/serializer"
)

// Notebook is the assembled application: an in-memory store mirrored to a
// key-value backend.
type Notebook struct {
	store   *core.Store
	mirror  *core.Mirror
	kv      core.KeyValue
	codec   core.Codec
	adapter string
	logger  *slog.Logger
	closer  func() error
}

// Store exposes the underlying state store.
func (n *Notebook) Store() *core.Store {
	return n.store
}

// Add records a thought. See core.Store.Add.
func (n *Notebook) Add(content string, category core.Category) (core.Thought, bool) {
	return n.store.Add(content, category)
}

// Remove deletes a thought by id. See core.Store.Remove.
func (n *Notebook) Remove(id string) bool {
	return n.store.Remove(id)
}

// All returns every thought, newest first.
func (n *Notebook) All() []core.Thought {
	return n.store.All()
}

// Search returns the thoughts matching query. See core.Filter.
func (n *Notebook) Search(query string) []core.Thought {
	return core.Filter(n.store.All(), query)
}

// Reload re-reads the persisted sequence, discarding in-memory state.
func (n *Notebook) Reload(ctx context.Context) {
	n.mirror.Load(ctx, n.store)
}

// Watch reloads the notebook whenever its stored value changes outside
// this process and forwards the triggering events.
func (n *Notebook) Watch(ctx context.Context) (<-chan core.Event, error) {
	w, ok := n.kv.(core.Watchable)
	if !ok {
		return nil, fmt.Errorf("%s adapter: %w", n.adapter, core.ErrNotWatchable)
	}

	raw, err := w.Watch(ctx, n.mirror.Key()+serializer.Extension(n.codec))
	if err != nil {
		return nil, err
	}

	out := make(chan core.Event)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-raw:
				if !ok {
					return nil
				}
				n.logger.Debug("storage changed, reloading", "event", e.String())
				n.Reload(ctx)
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return out, nil
}

// Export writes the current sequence in the named format.
func (n *Notebook) Export(format string) ([]byte, error) {
	codec, err := serializer.ForFormat(format)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(n.store.All())
}

// Close releases the storage backend.
func (n *Notebook) Close() error {
	if n.closer == nil {
		return nil
	}
	return n.closer()
}

// NotebookState exposes internal state for observability.
type NotebookState struct {
	Adapter string `json:"adapter"`
	Format  string `json:"format"`
	Key     string `json:"key"`
	Store   any    `json:"store"`
	Storage any    `json:"storage,omitempty"`
}

// State implements introspection.Introspectable.
func (n *Notebook) State() any {
	state := NotebookState{
		Adapter: n.adapter,
		Format:  n.codec.Name(),
		Key:     n.mirror.Key(),
		Store:   n.store.State(),
	}
	if intro, ok := n.kv.(introspection.Introspectable); ok {
		state.Storage = intro.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (n *Notebook) ComponentType() string {
	return "notebook"
}

var _ introspection.Introspectable = (*Notebook)(nil)
var _ introspection.Component = (*Notebook)(nil)
