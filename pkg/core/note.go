package core

import "time"

// Thought is the central entity of the domain: a short user-authored text
// with a category and a creation time. Thoughts are never modified after
// creation.
type Thought struct {
	ID        string   `json:"id" yaml:"id"`
	Content   string   `json:"content" yaml:"content"`
	Category  Category `json:"category" yaml:"category"`
	Timestamp int64    `json:"timestamp" yaml:"timestamp"` // epoch milliseconds
}

// CreatedAt returns the creation time.
func (t Thought) CreatedAt() time.Time {
	return time.UnixMilli(t.Timestamp)
}
