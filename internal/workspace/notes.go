package workspace

import (
	"context"
	"fmt"

	"github.com/tekguyz/myplace/internal/model"
	"github.com/tekguyz/myplace/internal/store"
)

// Notes returns all notes, newest first (insertion order: new notes are
// prepended).
func (w *Workspace) Notes() []model.Note {
	return store.Load(w.store, store.KeyNotes, []model.Note{})
}

// SaveNote upserts a note. A note whose id matches an existing one replaces
// it in place, preserving the order of unrelated notes; a new id is
// prepended.
func (w *Workspace) SaveNote(n model.Note) error {
	notes := w.Notes()

	replaced := false
	for i := range notes {
		if notes[i].ID == n.ID {
			notes[i] = n
			replaced = true
			break
		}
	}
	if !replaced {
		notes = append([]model.Note{n}, notes...)
	}
	return store.Put(w.store, store.KeyNotes, notes)
}

// CreateNote builds a note with a fresh id and saves it.
func (w *Workspace) CreateNote(title, content, dueDate string) (model.Note, error) {
	n := model.Note{
		ID:        model.NewID("note"),
		Title:     title,
		Content:   content,
		DueDate:   dueDate,
		CreatedAt: model.NowMillis(),
	}
	return n, w.SaveNote(n)
}

// DeleteNote removes the note with the given id. Projects referencing the
// id keep their dangling reference; lookups skip it.
func (w *Workspace) DeleteNote(id string) error {
	notes := w.Notes()
	kept := notes[:0]
	found := false
	for _, n := range notes {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return store.ErrNotFound
	}
	return store.Put(w.store, store.KeyNotes, kept)
}

// SummarizeNote runs the AI summarizer over a note's content.
func (w *Workspace) SummarizeNote(ctx context.Context, id string) (string, error) {
	for _, n := range w.Notes() {
		if n.ID == id {
			summary, err := w.ai.Summarize(ctx, n.Content)
			if err != nil {
				return "", fmt.Errorf("summarizing note %s: %w", id, err)
			}
			return summary, nil
		}
	}
	return "", store.ErrNotFound
}
