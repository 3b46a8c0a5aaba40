package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/thoughts/pkg/core"
)

// EmptyPlaceholder is shown instead of an empty list.
const EmptyPlaceholder = "No thoughts found. Start adding some!"

// RenderOptions tunes RenderList.
type RenderOptions struct {
	// Location for timestamps. Nil means time.Local.
	Location *time.Location
	// HideIDs drops the id line (ids are the handle for delete).
	HideIDs bool
}

// RenderList writes thoughts in the given order, one block per entry:
//
//	[Work] 0199f4a2-...
//	  Finish report
//	  Oct 18, 2026, 09:05 AM
func RenderList(w io.Writer, thoughts []core.Thought, opts RenderOptions) error {
	if len(thoughts) == 0 {
		_, err := fmt.Fprintln(w, EmptyPlaceholder)
		return err
	}

	var b strings.Builder
	for i, t := range thoughts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[" + string(t.Category) + "]")
		if !opts.HideIDs {
			b.WriteString(" " + t.ID)
		}
		b.WriteString("\n")
		for _, line := range strings.Split(t.Content, "\n") {
			b.WriteString("  " + strings.TrimRight(line, "\r") + "\n")
		}
		b.WriteString("  " + core.FormatTimestamp(t.Timestamp, opts.Location) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderJSON writes thoughts as an indented JSON array.
func RenderJSON(w io.Writer, thoughts []core.Thought) error {
	if thoughts == nil {
		thoughts = []core.Thought{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(thoughts)
}
