package services

import (
	"context"
	"slices"

	"notes-todo/models"
)

// NoteService owns the in-memory list of notes and routes every change
// through the repository
type NoteService struct {
	repo  NoteRepository
	notes []models.Note
}

var _ Service[models.Note, models.NoteDraft] = (*NoteService)(nil)

// NewNoteService creates a new note service with an empty cache. Call
// Refresh to load the store.
func NewNoteService(repo NoteRepository) *NoteService {
	return &NoteService{
		repo:  repo,
		notes: []models.Note{},
	}
}

// GetAll returns a copy of the cached notes in cache order
func (ns *NoteService) GetAll() []models.Note {
	return slices.Clone(ns.notes)
}

// GetSummary returns one list line per cached note
func (ns *NoteService) GetSummary() []string {
	summaries := make([]string, 0, len(ns.notes))
	for _, note := range ns.notes {
		summaries = append(summaries, note.Summary())
	}
	return summaries
}

// Add persists a new note and appends it to the cache
func (ns *NoteService) Add(ctx context.Context, draft models.NoteDraft) (models.Note, error) {
	note, err := ns.repo.SaveNote(ctx, draft)
	if err != nil {
		return models.Note{}, storeError("add note", err)
	}

	ns.notes = append(ns.notes, note)
	return note, nil
}

// Update persists the note and reloads the cache, since any field may
// affect ordering
func (ns *NoteService) Update(ctx context.Context, note models.Note) error {
	if err := ns.repo.UpdateNote(ctx, note); err != nil {
		return storeError("update note", err)
	}
	return ns.Refresh(ctx)
}

// Delete removes the note from the store and the cache
func (ns *NoteService) Delete(ctx context.Context, note models.Note) error {
	if err := ns.repo.DeleteNote(ctx, note); err != nil {
		return storeError("delete note", err)
	}

	ns.notes = slices.DeleteFunc(ns.notes, func(n models.Note) bool {
		return n.ID() == note.ID()
	})
	return nil
}

// Refresh replaces the cache with the store's notes in default order
func (ns *NoteService) Refresh(ctx context.Context) error {
	notes, err := ns.repo.RefreshNotes(ctx)
	if err != nil {
		return storeError("refresh notes", err)
	}

	ns.notes = notes
	return nil
}

// Clear deletes every note
func (ns *NoteService) Clear(ctx context.Context) error {
	if err := ns.repo.ClearNotes(ctx); err != nil {
		return storeError("clear notes", err)
	}

	ns.notes = []models.Note{}
	return nil
}

// Sort reorders the cache by criterion. An empty or unknown criterion
// falls back to Refresh.
func (ns *NoteService) Sort(ctx context.Context, criterion string) error {
	switch models.NormalizeCriterion(criterion) {
	case models.SortByTitle:
		notes, err := ns.repo.NotesSortedBy(ctx, models.SortByTitle)
		if err != nil {
			return storeError("sort notes", err)
		}
		ns.notes = notes
		return nil
	default:
		return ns.Refresh(ctx)
	}
}

// Search returns notes whose title contains needle. The cache is not changed.
func (ns *NoteService) Search(ctx context.Context, needle string) ([]models.Note, error) {
	notes, err := ns.repo.FindNotesByTitle(ctx, needle)
	if err != nil {
		return nil, storeError("search notes", err)
	}
	return notes, nil
}
