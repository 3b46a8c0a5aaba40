package core_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/thoughts/pkg/core"
	"github.com/aretw0/thoughts/pkg/serializer"
)

// memoryKV implements core.KeyValue in memory.
type memoryKV struct {
	data     map[string][]byte
	getErr   error
	setErr   error
	setCalls int
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string][]byte)}
}

func (m *memoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryKV) Set(ctx context.Context, key string, value []byte) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestMirror_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	codec := serializer.NewJSONSerializer()

	first := core.NewStore(core.WithClock(fixedClock()))
	core.NewMirror(kv, codec).Attach(ctx, first)
	first.Add("Buy milk", core.CategoryTasks)
	first.Add("Finish report", core.CategoryWork)
	require.Contains(t, kv.data, core.StorageKey)

	second := core.NewStore()
	core.NewMirror(kv, codec).Load(ctx, second)
	assert.Equal(t, first.All(), second.All())
}

func TestMirror_SavesAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	store := core.NewStore()
	core.NewMirror(kv, serializer.NewJSONSerializer()).Attach(ctx, store)

	a, _ := store.Add("a", core.CategoryWork)
	store.Add("b", core.CategoryWork)
	store.Remove(a.ID)
	assert.Equal(t, 3, kv.setCalls)

	got, err := serializer.NewJSONSerializer().Unmarshal(kv.data[core.StorageKey])
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Content)

	store.Remove(a.ID)
	assert.Equal(t, 3, kv.setCalls)

	// Removing the last thought persists an empty list, not nothing.
	store.Remove(got[0].ID)
	assert.Equal(t, "[]", string(kv.data[core.StorageKey]))
}

func TestMirror_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Absent Key Leaves Store Empty", func(t *testing.T) {
		store := core.NewStore()
		core.NewMirror(newMemoryKV(), serializer.NewJSONSerializer()).Load(ctx, store)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Malformed Value Leaves Store Empty", func(t *testing.T) {
		var logs bytes.Buffer
		kv := newMemoryKV()
		kv.data[core.StorageKey] = []byte("{not json")

		store := core.NewStore()
		store.Add("stale", core.CategoryWork)
		core.NewMirror(kv, serializer.NewJSONSerializer(), core.WithMirrorLogger(newTestLogger(&logs))).Load(ctx, store)

		assert.Equal(t, 0, store.Len())
		assert.Contains(t, logs.String(), "malformed")
	})

	t.Run("Read Error Leaves Store Empty", func(t *testing.T) {
		kv := newMemoryKV()
		kv.getErr = errors.New("disk on fire")
		store := core.NewStore()
		core.NewMirror(kv, serializer.NewJSONSerializer(), core.WithMirrorLogger(newTestLogger(&bytes.Buffer{}))).Load(ctx, store)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Custom Key", func(t *testing.T) {
		kv := newMemoryKV()
		kv.data["other"] = []byte(`[{"id":"1","content":"x","category":"Ideas","timestamp":1}]`)
		store := core.NewStore()
		m := core.NewMirror(kv, serializer.NewJSONSerializer(), core.WithKey("other"))
		m.Load(ctx, store)
		assert.Equal(t, "other", m.Key())
		assert.Equal(t, 1, store.Len())
	})
}

func TestMirror_WriteFailureIsNotSurfaced(t *testing.T) {
	var logs bytes.Buffer
	kv := newMemoryKV()
	kv.setErr = errors.New("quota exceeded")

	store := core.NewStore()
	core.NewMirror(kv, serializer.NewJSONSerializer(), core.WithMirrorLogger(newTestLogger(&logs))).Attach(context.Background(), store)

	_, ok := store.Add("still in memory", core.CategoryIdeas)
	assert.True(t, ok)
	assert.Equal(t, 1, store.Len())
	assert.Contains(t, logs.String(), "failed to write thoughts")
}

func TestMirror_ReadOnly(t *testing.T) {
	kv := newMemoryKV()
	store := core.NewStore()
	core.NewMirror(kv, serializer.NewJSONSerializer(),
		core.WithReadOnly(true),
		core.WithMirrorLogger(newTestLogger(&bytes.Buffer{})),
	).Attach(context.Background(), store)

	store.Add("not saved", core.CategoryWork)
	assert.Equal(t, 0, kv.setCalls)
}

// gatedKV blocks its first Set until release is closed.
type gatedKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedKV() *gatedKV {
	return &gatedKV{
		data:    make(map[string][]byte),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gatedKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	v, ok := g.data[key]
	return v, ok, nil
}

func (g *gatedKV) Set(ctx context.Context, key string, value []byte) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data[key] = append([]byte(nil), value...)
	return nil
}

func TestMirror_ConcurrentSavesKeepNewestSnapshot(t *testing.T) {
	ctx := context.Background()
	kv := newGatedKV()
	codec := serializer.NewJSONSerializer()

	store := core.NewStore()
	core.NewMirror(kv, codec).Attach(ctx, store)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		store.Add("first", core.CategoryWork)
	}()
	<-kv.entered

	go func() {
		defer wg.Done()
		store.Add("second", core.CategoryWork)
	}()
	require.Eventually(t, func() bool { return store.Len() == 2 }, 2*time.Second, time.Millisecond)

	close(kv.release)
	wg.Wait()

	data, found, err := kv.Get(ctx, core.StorageKey)
	require.NoError(t, err)
	require.True(t, found)
	saved, err := codec.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, store.All(), saved)
}
