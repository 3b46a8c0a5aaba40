package core

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the ordered sequence of thoughts for a session, newest first.
// All operations are total: invalid input is ignored rather than reported.
type Store struct {
	mu       sync.RWMutex
	thoughts []Thought
	version  uint64

	// saveMu serializes change notifications so a snapshot is never
	// delivered after a newer one.
	saveMu sync.Mutex

	clock    func() time.Time
	newID    func(time.Time) string
	onChange func([]Thought)
	logger   *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used for timestamps and ids.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithIDGenerator overrides how ids are derived from the creation time.
func WithIDGenerator(fn func(time.Time) string) StoreOption {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithOnChange registers a hook called with a snapshot after every mutation.
func WithOnChange(fn func([]Thought)) StoreOption {
	return func(s *Store) {
		s.onChange = fn
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		clock:  time.Now,
		newID:  TimeOrderedID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TimeOrderedID returns a UUIDv7 whose leading 48 bits carry the unix
// millisecond of t.
func TimeOrderedID(t time.Time) string {
	u := uuid.New()
	ms := uint64(t.UnixMilli())
	u[0] = byte(ms >> 40)
	u[1] = byte(ms >> 32)
	u[2] = byte(ms >> 24)
	u[3] = byte(ms >> 16)
	u[4] = byte(ms >> 8)
	u[5] = byte(ms)
	u[6] = (u[6] & 0x0f) | 0x70
	return u.String()
}

// Add records a new thought at the front of the sequence.
// It returns false without changing anything when content is blank or the
// category is not one of the known labels.
func (s *Store) Add(content string, category Category) (Thought, bool) {
	if strings.TrimSpace(content) == "" {
		return Thought{}, false
	}
	if !category.Valid() {
		s.logger.Debug("ignoring thought with unknown category", "category", category)
		return Thought{}, false
	}

	s.mu.Lock()
	now := s.clock()
	t := Thought{
		ID:        s.uniqueID(now),
		Content:   content,
		Category:  category,
		Timestamp: now.UnixMilli(),
	}
	s.thoughts = append([]Thought{t}, s.thoughts...)
	s.version++
	version, snapshot := s.version, s.snapshot()
	s.mu.Unlock()

	s.logger.Debug("thought added", "id", t.ID, "category", t.Category)
	s.changed(version, snapshot)
	return t, true
}

// maxIDAttempts bounds how often a colliding generator is retried before
// falling back to TimeOrderedID.
const maxIDAttempts = 16

// uniqueID must be called with the lock held.
func (s *Store) uniqueID(now time.Time) string {
	id := s.newID(now)
	for attempt := 1; s.indexOf(id) >= 0; attempt++ {
		if attempt > maxIDAttempts {
			id = TimeOrderedID(now)
			continue
		}
		// A generator that only looks at the clock collides within the same
		// millisecond; nudge the input until the id is free.
		id = s.newID(now.Add(time.Duration(attempt) * time.Millisecond))
	}
	return id
}

// Remove deletes the thought with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.thoughts = append(s.thoughts[:idx:idx], s.thoughts[idx+1:]...)
	s.version++
	version, snapshot := s.version, s.snapshot()
	s.mu.Unlock()

	s.logger.Debug("thought removed", "id", id)
	s.changed(version, snapshot)
	return true
}

// All returns a copy of the sequence, newest first.
func (s *Store) All() []Thought {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Get returns the thought with the given id.
func (s *Store) Get(id string) (Thought, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.thoughts[idx], true
	}
	return Thought{}, false
}

// Len returns the number of held thoughts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.thoughts)
}

// Replace swaps the whole sequence, as done when restoring from storage.
// Records that would break the store invariants (blank content, unknown
// category, repeated id) are dropped. The on-change hook is not called.
func (s *Store) Replace(thoughts []Thought) {
	kept := make([]Thought, 0, len(thoughts))
	seen := make(map[string]struct{}, len(thoughts))
	for _, t := range thoughts {
		if strings.TrimSpace(t.Content) == "" || !t.Category.Valid() {
			s.logger.Debug("dropping invalid stored thought", "id", t.ID)
			continue
		}
		if _, dup := seen[t.ID]; dup {
			s.logger.Debug("dropping duplicate stored thought", "id", t.ID)
			continue
		}
		seen[t.ID] = struct{}{}
		kept = append(kept, t)
	}

	s.mu.Lock()
	s.thoughts = kept
	s.version++
	s.mu.Unlock()
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.thoughts {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []Thought {
	out := make([]Thought, len(s.thoughts))
	copy(out, s.thoughts)
	return out
}

// changed delivers snapshot unless a later mutation has superseded it; the
// later mutation delivers its own snapshot, which includes this one.
func (s *Store) changed(version uint64, snapshot []Thought) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	hook, current := s.onChange, s.version
	s.mu.RUnlock()
	if hook == nil {
		return
	}
	if version < current {
		s.logger.Debug("skipping superseded snapshot", "version", version, "current", current)
		return
	}
	hook(snapshot)
}

func (s *Store) setOnChange(fn func([]Thought)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}
