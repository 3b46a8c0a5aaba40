package core

import (
	"context"
	"log/slog"
)

// StorageKey is the fixed key the thought sequence is stored under.
const StorageKey = "thoughts"

// Mirror keeps a KeyValue store in step with a Store: it restores the
// sequence once at startup and writes the full sequence back after every
// mutation. Storage failures are logged, never returned; the notebook then
// degrades to an empty or stale list.
type Mirror struct {
	kv       KeyValue
	codec    Codec
	key      string
	logger   *slog.Logger
	readOnly bool
}

// MirrorOption configures a Mirror.
type MirrorOption func(*Mirror)

// WithKey overrides StorageKey.
func WithKey(key string) MirrorOption {
	return func(m *Mirror) {
		m.key = key
	}
}

// WithMirrorLogger sets the logger for the mirror.
func WithMirrorLogger(logger *slog.Logger) MirrorOption {
	return func(m *Mirror) {
		m.logger = logger
	}
}

// WithReadOnly disables writes. Load still works.
func WithReadOnly(readOnly bool) MirrorOption {
	return func(m *Mirror) {
		m.readOnly = readOnly
	}
}

// NewMirror creates a Mirror over kv using codec.
func NewMirror(kv KeyValue, codec Codec, opts ...MirrorOption) *Mirror {
	m := &Mirror{
		kv:     kv,
		codec:  codec,
		key:    StorageKey,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key returns the storage key in use.
func (m *Mirror) Key() string {
	return m.key
}

// Load replaces the contents of store with the persisted sequence.
// A missing, unreadable or malformed value leaves store empty.
func (m *Mirror) Load(ctx context.Context, store *Store) {
	store.Replace(m.Read(ctx))
}

// Read returns the persisted sequence, or nil when there is none usable.
func (m *Mirror) Read(ctx context.Context) []Thought {
	data, found, err := m.kv.Get(ctx, m.key)
	if err != nil {
		m.logger.Warn("failed to read stored thoughts, starting empty", "key", m.key, "error", err)
		return nil
	}
	if !found || len(data) == 0 {
		m.logger.Debug("no stored thoughts", "key", m.key)
		return nil
	}

	thoughts, err := m.codec.Unmarshal(data)
	if err != nil {
		m.logger.Warn("stored thoughts are malformed, starting empty", "key", m.key, "format", m.codec.Name(), "error", err)
		return nil
	}
	m.logger.Debug("loaded thoughts", "key", m.key, "count", len(thoughts))
	return thoughts
}

// Save overwrites the persisted value with thoughts.
func (m *Mirror) Save(ctx context.Context, thoughts []Thought) {
	if m.readOnly {
		m.logger.Debug("read-only, skipping save", "key", m.key)
		return
	}
	if thoughts == nil {
		thoughts = []Thought{}
	}

	data, err := m.codec.Marshal(thoughts)
	if err != nil {
		m.logger.Warn("failed to serialize thoughts", "format", m.codec.Name(), "error", err)
		return
	}
	if err := m.kv.Set(ctx, m.key, data); err != nil {
		m.logger.Warn("failed to write thoughts", "key", m.key, "error", err)
		return
	}
	m.logger.Debug("saved thoughts", "key", m.key, "count", len(thoughts))
}

// Attach installs Save as the store's change hook.
func (m *Mirror) Attach(ctx context.Context, store *Store) {
	store.setOnChange(func(snapshot []Thought) {
		m.Save(ctx, snapshot)
	})
}
