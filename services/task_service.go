package services

import (
	"context"
	"slices"

	"notes-todo/models"
)

// TaskService owns the in-memory list of tasks and routes every change
// through the repository
type TaskService struct {
	repo  TaskRepository
	tasks []models.Task
}

var _ Service[models.Task, models.TaskDraft] = (*TaskService)(nil)

// NewTaskService creates a new task service with an empty cache
func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo:  repo,
		tasks: []models.Task{},
	}
}

// GetAll returns a copy of the cached tasks in cache order
func (ts *TaskService) GetAll() []models.Task {
	return slices.Clone(ts.tasks)
}

// GetSummary returns one list line per cached task
func (ts *TaskService) GetSummary() []string {
	summaries := make([]string, 0, len(ts.tasks))
	for _, task := range ts.tasks {
		summaries = append(summaries, task.Summary())
	}
	return summaries
}

// Add persists a new task and appends it to the cache
func (ts *TaskService) Add(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	task, err := ts.repo.SaveTask(ctx, draft)
	if err != nil {
		return models.Task{}, storeError("add task", err)
	}

	ts.tasks = append(ts.tasks, task)
	return task, nil
}

// Update persists the task and reloads the cache
func (ts *TaskService) Update(ctx context.Context, task models.Task) error {
	if err := ts.repo.UpdateTask(ctx, task); err != nil {
		return storeError("update task", err)
	}
	return ts.Refresh(ctx)
}

// Delete removes the task from the store and the cache
func (ts *TaskService) Delete(ctx context.Context, task models.Task) error {
	if err := ts.repo.DeleteTask(ctx, task); err != nil {
		return storeError("delete task", err)
	}

	ts.tasks = slices.DeleteFunc(ts.tasks, func(t models.Task) bool {
		return t.ID() == task.ID()
	})
	return nil
}

// Refresh replaces the cache with the store's tasks in default order
func (ts *TaskService) Refresh(ctx context.Context) error {
	tasks, err := ts.repo.RefreshTasks(ctx)
	if err != nil {
		return storeError("refresh tasks", err)
	}

	ts.tasks = tasks
	return nil
}

// Clear deletes every task
func (ts *TaskService) Clear(ctx context.Context) error {
	if err := ts.repo.ClearTasks(ctx); err != nil {
		return storeError("clear tasks", err)
	}

	ts.tasks = []models.Task{}
	return nil
}

// Sort reorders the cache by description or date. An empty or unknown
// criterion falls back to Refresh.
func (ts *TaskService) Sort(ctx context.Context, criterion string) error {
	switch c := models.NormalizeCriterion(criterion); c {
	case models.SortByDescription, models.SortByDate:
		tasks, err := ts.repo.TasksSortedBy(ctx, c)
		if err != nil {
			return storeError("sort tasks", err)
		}
		ts.tasks = tasks
		return nil
	default:
		return ts.Refresh(ctx)
	}
}

// Search returns tasks whose description contains needle. The cache is not changed.
func (ts *TaskService) Search(ctx context.Context, needle string) ([]models.Task, error) {
	tasks, err := ts.repo.FindTasksByDescription(ctx, needle)
	if err != nil {
		return nil, storeError("search tasks", err)
	}
	return tasks, nil
}

// MarkCompleted completes the task, persists it and reloads the cache.
// Completing a task twice returns ErrAlreadyCompleted without writing.
func (ts *TaskService) MarkCompleted(ctx context.Context, task models.Task) error {
	if task.Completed() {
		return ErrAlreadyCompleted
	}

	task.MarkCompleted()
	if err := ts.repo.UpdateTask(ctx, task); err != nil {
		return storeError("complete task", err)
	}
	return ts.Refresh(ctx)
}
