package database

import (
	"context"
	"database/sql"
	"fmt"

	"notes-todo/models"
)

// ==================== NOTE OPERATIONS ====================

type noteRow struct {
	ID      int64          `db:"id"`
	Title   string         `db:"title"`
	Content sql.NullString `db:"content"`
}

func (row noteRow) toModel() models.Note {
	return models.RestoreNote(row.ID, row.Title, row.Content.String)
}

// SaveNote inserts a new note and returns it with the generated id
func (r *Repository) SaveNote(ctx context.Context, draft models.NoteDraft) (models.Note, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
		INSERT INTO notes (title, content) VALUES (?, ?) RETURNING id
	`), draft.Title, draft.Content).Scan(&id)
	if err != nil {
		return models.Note{}, fmt.Errorf("save note: %w", err)
	}

	return models.RestoreNote(id, draft.Title, draft.Content), nil
}

// DeleteNote removes the note's row. A missing row is not an error.
func (r *Repository) DeleteNote(ctx context.Context, note models.Note) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM notes WHERE id = ?`), note.ID())
	if err != nil {
		return fmt.Errorf("delete note %d: %w", note.ID(), err)
	}
	return nil
}

// UpdateNote writes title and content. A missing row is not an error.
func (r *Repository) UpdateNote(ctx context.Context, note models.Note) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE notes SET title = ?, content = ? WHERE id = ?
	`), note.Title, note.Content, note.ID())
	if err != nil {
		return fmt.Errorf("update note %d: %w", note.ID(), err)
	}
	return nil
}

// ClearNotes deletes every note
func (r *Repository) ClearNotes(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("clear notes: %w", err)
	}
	return nil
}

// RefreshNotes returns all notes, newest first
func (r *Repository) RefreshNotes(ctx context.Context) ([]models.Note, error) {
	notes, err := r.selectNotes(ctx, `
		SELECT id, title, content FROM notes ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	return notes, nil
}

// NotesSortedBy returns all notes ordered by criterion. Only title is supported.
func (r *Repository) NotesSortedBy(ctx context.Context, criterion string) ([]models.Note, error) {
	switch models.NormalizeCriterion(criterion) {
	case models.SortByTitle:
		notes, err := r.selectNotes(ctx, `
			SELECT id, title, content FROM notes ORDER BY title, id
		`)
		if err != nil {
			return nil, fmt.Errorf("load notes sorted by title: %w", err)
		}
		return notes, nil
	default:
		return nil, fmt.Errorf("notes by %q: %w", criterion, ErrUnsupportedCriterion)
	}
}

// FindNotesByTitle returns notes whose title contains needle (case-sensitive)
func (r *Repository) FindNotesByTitle(ctx context.Context, needle string) ([]models.Note, error) {
	notes, err := r.selectNotes(ctx, `
		SELECT id, title, content FROM notes
		WHERE title LIKE ? ESCAPE '\'
		ORDER BY id DESC
	`, containsPattern(needle))
	if err != nil {
		return nil, fmt.Errorf("find notes by title: %w", err)
	}
	return notes, nil
}

func (r *Repository) selectNotes(ctx context.Context, query string, args ...interface{}) ([]models.Note, error) {
	var rows []noteRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	// Initialize with empty slice to avoid returning nil
	notes := make([]models.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.toModel())
	}
	return notes, nil
}
