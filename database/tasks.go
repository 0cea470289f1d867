package database

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"notes-todo/models"
)

// ==================== TASK OPERATIONS ====================

type taskRow struct {
	ID          int64          `db:"id"`
	Description string         `db:"description"`
	EndDate     sql.NullString `db:"end_date"`
	Completed   bool           `db:"completed"`
}

func (row taskRow) toModel() models.Task {
	return models.RestoreTask(row.ID, row.Description, row.EndDate.String, row.Completed)
}

// SaveTask inserts a new, not completed task and returns it with the generated id
func (r *Repository) SaveTask(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
		INSERT INTO todos (description, end_date, completed) VALUES (?, ?, ?) RETURNING id
	`), draft.Description, draft.EndDate, false).Scan(&id)
	if err != nil {
		return models.Task{}, fmt.Errorf("save task: %w", err)
	}

	return models.RestoreTask(id, draft.Description, draft.EndDate, false), nil
}

// DeleteTask removes the task's row. A missing row is not an error.
func (r *Repository) DeleteTask(ctx context.Context, task models.Task) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM todos WHERE id = ?`), task.ID())
	if err != nil {
		return fmt.Errorf("delete task %d: %w", task.ID(), err)
	}
	return nil
}

// UpdateTask writes description, end date and completion. A missing row is not an error.
func (r *Repository) UpdateTask(ctx context.Context, task models.Task) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE todos SET description = ?, end_date = ?, completed = ? WHERE id = ?
	`), task.Description, task.EndDate, task.Completed(), task.ID())
	if err != nil {
		return fmt.Errorf("update task %d: %w", task.ID(), err)
	}
	return nil
}

// ClearTasks deletes every task
func (r *Repository) ClearTasks(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM todos`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}

// RefreshTasks returns all tasks, newest first
func (r *Repository) RefreshTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := r.selectTasks(ctx, `
		SELECT id, description, end_date, completed FROM todos ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

// TasksSortedBy returns all tasks ordered by description or by end date
func (r *Repository) TasksSortedBy(ctx context.Context, criterion string) ([]models.Task, error) {
	switch models.NormalizeCriterion(criterion) {
	case models.SortByDescription:
		tasks, err := r.selectTasks(ctx, `
			SELECT id, description, end_date, completed FROM todos ORDER BY description, id
		`)
		if err != nil {
			return nil, fmt.Errorf("load tasks sorted by description: %w", err)
		}
		return tasks, nil
	case models.SortByDate:
		// end_date is stored as text, so ORDER BY would compare it
		// lexicographically; order on the parsed date instead.
		tasks, err := r.selectTasks(ctx, `
			SELECT id, description, end_date, completed FROM todos ORDER BY id
		`)
		if err != nil {
			return nil, fmt.Errorf("load tasks sorted by date: %w", err)
		}
		sortByEndDate(tasks)
		return tasks, nil
	default:
		return nil, fmt.Errorf("tasks by %q: %w", criterion, ErrUnsupportedCriterion)
	}
}

// FindTasksByDescription returns tasks whose description contains needle (case-sensitive)
func (r *Repository) FindTasksByDescription(ctx context.Context, needle string) ([]models.Task, error) {
	tasks, err := r.selectTasks(ctx, `
		SELECT id, description, end_date, completed FROM todos
		WHERE description LIKE ? ESCAPE '\'
		ORDER BY id DESC
	`, containsPattern(needle))
	if err != nil {
		return nil, fmt.Errorf("find tasks by description: %w", err)
	}
	return tasks, nil
}

func (r *Repository) selectTasks(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toModel())
	}
	return tasks, nil
}

// sortByEndDate orders tasks chronologically; unparsable dates go last.
func sortByEndDate(tasks []models.Task) {
	slices.SortStableFunc(tasks, func(a, b models.Task) int {
		ta, errA := a.EndDateTime()
		tb, errB := b.EndDateTime()
		switch {
		case errA != nil && errB != nil:
			return 0
		case errA != nil:
			return 1
		case errB != nil:
			return -1
		}
		return ta.Compare(tb)
	})
}
