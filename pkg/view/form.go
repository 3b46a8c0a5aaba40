// Package view holds the text front end of the notebook: the entry form and
// the list renderer.
package view

import "github.com/aretw0/thoughts/pkg/core"

// Adder is the part of the store the form submits to.
type Adder interface {
	Add(content string, category core.Category) (core.Thought, bool)
}

// Form captures a draft and a category selection. The selection survives
// submissions; the draft is cleared by a successful one.
type Form struct {
	Draft    string
	Category core.Category

	store Adder
}

// NewForm creates a form with an empty draft and the default category.
func NewForm(store Adder) *Form {
	return &Form{
		Category: core.DefaultCategory,
		store:    store,
	}
}

// SetDraft replaces the draft text.
func (f *Form) SetDraft(text string) {
	f.Draft = text
}

// Select changes the category. Labels outside the closed set are rejected
// and the previous selection is kept.
func (f *Form) Select(label string) error {
	c, err := core.ParseCategory(label)
	if err != nil {
		return err
	}
	f.Category = c
	return nil
}

// Submit adds the draft to the store. A blank draft is a no-op.
func (f *Form) Submit() (core.Thought, bool) {
	t, ok := f.store.Add(f.Draft, f.Category)
	if !ok {
		return core.Thought{}, false
	}
	f.Draft = ""
	return t, true
}
