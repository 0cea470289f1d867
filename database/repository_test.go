package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"notes-todo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*Repository, *DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "notes-todo-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "nested", "test.db")
	db, err := New(DriverSQLite, dbPath)
	require.NoError(t, err)

	err = db.Migrate(context.Background())
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return NewRepository(db), db, cleanup
}

func noteTitles(notes []models.Note) []string {
	titles := make([]string, 0, len(notes))
	for _, n := range notes {
		titles = append(titles, n.Title)
	}
	return titles
}

func taskDates(tasks []models.Task) []string {
	dates := make([]string, 0, len(tasks))
	for _, task := range tasks {
		dates = append(dates, task.EndDate)
	}
	return dates
}

func TestMigrate_Idempotent(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	_, err := repo.SaveNote(ctx, models.NoteDraft{Title: "kept", Content: "body"})
	require.NoError(t, err)

	require.NoError(t, db.Migrate(ctx))

	notes, err := repo.RefreshNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New("mysql", "whatever")
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestSchema_Postgres(t *testing.T) {
	queries := schema(DriverPostgres)
	require.Len(t, queries, 2)
	assert.Contains(t, queries[0], "BIGSERIAL")
	assert.Contains(t, queries[1], "DEFAULT FALSE")
}

func TestNoteRepository(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Save assigns increasing ids", func(t *testing.T) {
		first, err := repo.SaveNote(ctx, models.NoteDraft{Title: "Banana", Content: "yellow"})
		require.NoError(t, err)
		second, err := repo.SaveNote(ctx, models.NoteDraft{Title: "Apple", Content: "red"})
		require.NoError(t, err)

		assert.NotZero(t, first.ID())
		assert.Greater(t, second.ID(), first.ID())
		assert.Equal(t, "Apple", second.Title)
		assert.Equal(t, "red", second.Content)
	})

	t.Run("Refresh returns newest first", func(t *testing.T) {
		notes, err := repo.RefreshNotes(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Apple", "Banana"}, noteTitles(notes))
	})

	t.Run("Sorted by title", func(t *testing.T) {
		_, err := repo.SaveNote(ctx, models.NoteDraft{Title: "Cherry", Content: "dark"})
		require.NoError(t, err)

		notes, err := repo.NotesSortedBy(ctx, "Title")
		require.NoError(t, err)
		assert.Equal(t, []string{"Apple", "Banana", "Cherry"}, noteTitles(notes))
	})

	t.Run("Unsupported criterion is an error", func(t *testing.T) {
		notes, err := repo.NotesSortedBy(ctx, "date")
		assert.ErrorIs(t, err, ErrUnsupportedCriterion)
		assert.Nil(t, notes)
	})

	t.Run("Update keeps id", func(t *testing.T) {
		notes, err := repo.RefreshNotes(ctx)
		require.NoError(t, err)
		note := notes[0]
		note.Title = "Cherry pie"
		note.Content = "baked"
		require.NoError(t, repo.UpdateNote(ctx, note))

		notes, err = repo.RefreshNotes(ctx)
		require.NoError(t, err)
		assert.Equal(t, note.ID(), notes[0].ID())
		assert.Equal(t, "Cherry pie", notes[0].Title)
		assert.Equal(t, "baked", notes[0].Content)
	})

	t.Run("Find by title is case-sensitive", func(t *testing.T) {
		found, err := repo.FindNotesByTitle(ctx, "pie")
		require.NoError(t, err)
		assert.Equal(t, []string{"Cherry pie"}, noteTitles(found))

		found, err = repo.FindNotesByTitle(ctx, "PIE")
		require.NoError(t, err)
		assert.NotNil(t, found)
		assert.Empty(t, found)
	})

	t.Run("Find escapes wildcards", func(t *testing.T) {
		_, err := repo.SaveNote(ctx, models.NoteDraft{Title: "100% done", Content: "x"})
		require.NoError(t, err)

		found, err := repo.FindNotesByTitle(ctx, "%")
		require.NoError(t, err)
		assert.Equal(t, []string{"100% done"}, noteTitles(found))

		found, err = repo.FindNotesByTitle(ctx, "_")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("Delete and update of missing rows are no-ops", func(t *testing.T) {
		ghost := models.RestoreNote(9999, "ghost", "boo")
		assert.NoError(t, repo.DeleteNote(ctx, ghost))
		assert.NoError(t, repo.UpdateNote(ctx, ghost))
	})

	t.Run("Delete removes the row", func(t *testing.T) {
		notes, err := repo.RefreshNotes(ctx)
		require.NoError(t, err)
		before := len(notes)

		require.NoError(t, repo.DeleteNote(ctx, notes[0]))

		notes, err = repo.RefreshNotes(ctx)
		require.NoError(t, err)
		assert.Len(t, notes, before-1)
	})

	t.Run("Clear removes everything", func(t *testing.T) {
		require.NoError(t, repo.ClearNotes(ctx))
		notes, err := repo.RefreshNotes(ctx)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})
}

func TestTaskRepository(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("Save starts not completed", func(t *testing.T) {
		task, err := repo.SaveTask(ctx, models.TaskDraft{Description: "Pay rent", EndDate: "2026-10-17"})
		require.NoError(t, err)
		assert.NotZero(t, task.ID())
		assert.False(t, task.Completed())

		tasks, err := repo.RefreshTasks(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, task.ID(), tasks[0].ID())
		assert.False(t, tasks[0].Completed())
	})

	t.Run("Update persists completion", func(t *testing.T) {
		tasks, err := repo.RefreshTasks(ctx)
		require.NoError(t, err)
		task := tasks[0]
		task.MarkCompleted()
		require.NoError(t, repo.UpdateTask(ctx, task))

		tasks, err = repo.RefreshTasks(ctx)
		require.NoError(t, err)
		assert.True(t, tasks[0].Completed())
	})

	t.Run("Sorted by date is chronological", func(t *testing.T) {
		require.NoError(t, repo.ClearTasks(ctx))

		// Rows written outside the application may lack zero padding.
		for _, date := range []string{"2026-01-10", "2026-1-5", "2025-12-31", "someday"} {
			_, err := db.ExecContext(ctx, `INSERT INTO todos (description, end_date, completed) VALUES (?, ?, 0)`, "t "+date, date)
			require.NoError(t, err)
		}

		tasks, err := repo.TasksSortedBy(ctx, "Date")
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-12-31", "2026-1-5", "2026-01-10", "someday"}, taskDates(tasks))
	})

	t.Run("Sorted by description", func(t *testing.T) {
		require.NoError(t, repo.ClearTasks(ctx))
		for _, desc := range []string{"walk dog", "buy milk", "call mom"} {
			_, err := repo.SaveTask(ctx, models.TaskDraft{Description: desc, EndDate: "2026-12-01"})
			require.NoError(t, err)
		}

		tasks, err := repo.TasksSortedBy(ctx, models.SortByDescription)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "buy milk", tasks[0].Description)
		assert.Equal(t, "call mom", tasks[1].Description)
		assert.Equal(t, "walk dog", tasks[2].Description)
	})

	t.Run("Unsupported criterion is an error", func(t *testing.T) {
		_, err := repo.TasksSortedBy(ctx, "title")
		assert.ErrorIs(t, err, ErrUnsupportedCriterion)
	})

	t.Run("Find by description", func(t *testing.T) {
		found, err := repo.FindTasksByDescription(ctx, "milk")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "buy milk", found[0].Description)
		assert.NotZero(t, found[0].ID())

		found, err = repo.FindTasksByDescription(ctx, "Milk")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestRepository_WriteFailuresPropagate(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, err := repo.SaveNote(ctx, models.NoteDraft{Title: "t", Content: "c"})
	assert.ErrorContains(t, err, "save note")

	err = repo.UpdateTask(ctx, models.RestoreTask(1, "d", "2026-10-17", false))
	assert.ErrorContains(t, err, "update task 1")

	err = repo.DeleteNote(ctx, models.RestoreNote(1, "t", "c"))
	assert.ErrorContains(t, err, "delete note 1")

	_, err = repo.RefreshTasks(ctx)
	assert.ErrorContains(t, err, "load tasks")
}
