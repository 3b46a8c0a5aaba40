// Package core holds the thought domain: the record type, the in-memory
// state store, the search filter and the persistence mirror.
package core

import (
	"fmt"
	"strings"
)

// Category classifies a thought. The set is closed.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryStudy    Category = "Study"
	CategoryIdeas    Category = "Ideas"
	CategoryTasks    Category = "Tasks"
)

// DefaultCategory is preselected for new thoughts.
const DefaultCategory = CategoryPersonal

var categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryStudy,
	CategoryIdeas,
	CategoryTasks,
}

// Categories returns the closed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory resolves a label case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, known := range categories {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// EventType represents the type of change in the notebook.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventDelete EventType = "DELETE"
	EventReload EventType = "RELOAD"
)

// Event represents a change in the notebook.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix milliseconds
}

// String implements fmt.Stringer.
func (e Event) String() string {
	if e.ID == "" {
		return string(e.Type)
	}
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
