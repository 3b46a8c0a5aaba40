package core

import "strings"

// Filter returns the thoughts whose content or category label contains
// query, ignoring case. An empty query matches everything. The input slice
// is not modified and order is preserved.
func Filter(thoughts []Thought, query string) []Thought {
	q := strings.ToLower(query)
	out := make([]Thought, 0, len(thoughts))
	for _, t := range thoughts {
		if q == "" ||
			strings.Contains(strings.ToLower(t.Content), q) ||
			strings.Contains(strings.ToLower(string(t.Category)), q) {
			out = append(out, t)
		}
	}
	return out
}
