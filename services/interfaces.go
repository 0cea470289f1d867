package services

import (
	"context"

	"notes-todo/models"
)

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	SaveNote(ctx context.Context, draft models.NoteDraft) (models.Note, error)
	DeleteNote(ctx context.Context, note models.Note) error
	UpdateNote(ctx context.Context, note models.Note) error
	ClearNotes(ctx context.Context) error
	RefreshNotes(ctx context.Context) ([]models.Note, error)
	NotesSortedBy(ctx context.Context, criterion string) ([]models.Note, error)
	FindNotesByTitle(ctx context.Context, needle string) ([]models.Note, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	SaveTask(ctx context.Context, draft models.TaskDraft) (models.Task, error)
	DeleteTask(ctx context.Context, task models.Task) error
	UpdateTask(ctx context.Context, task models.Task) error
	ClearTasks(ctx context.Context) error
	RefreshTasks(ctx context.Context) ([]models.Task, error)
	TasksSortedBy(ctx context.Context, criterion string) ([]models.Task, error)
	FindTasksByDescription(ctx context.Context, needle string) ([]models.Task, error)
}

// Service is everything a UI may use of a record service. T is the
// persisted record, D its unpersisted draft.
type Service[T any, D any] interface {
	GetAll() []T
	GetSummary() []string
	Add(ctx context.Context, draft D) (T, error)
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, record T) error
	Refresh(ctx context.Context) error
	Clear(ctx context.Context) error
	Sort(ctx context.Context, criterion string) error
	Search(ctx context.Context, needle string) ([]T, error)
}
