package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Count      int              `json:"count"`
	Newest     int64            `json:"newest,omitempty"`
	Categories map[Category]int `json:"categories"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[Category]int, len(categories))
	for _, t := range s.thoughts {
		counts[t.Category]++
	}

	state := StoreState{
		Count:      len(s.thoughts),
		Categories: counts,
	}
	if len(s.thoughts) > 0 {
		state.Newest = s.thoughts[0].Timestamp
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
