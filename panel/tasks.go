package panel

import (
	"context"
	"strings"

	"notes-todo/middleware"
	"notes-todo/models"
	"notes-todo/services"
	"notes-todo/validator"
)

// TaskService is the task service plus completion.
type TaskService interface {
	services.Service[models.Task, models.TaskDraft]
	MarkCompleted(ctx context.Context, task models.Task) error
}

// TaskForm reads a task from a description field and an end date field.
type TaskForm struct {
	Description Field
	EndDate     Field

	validator *validator.Validator
}

var _ Form[models.Task, models.TaskDraft] = (*TaskForm)(nil)

func NewTaskForm(description, endDate Field, v *validator.Validator) *TaskForm {
	return &TaskForm{Description: description, EndDate: endDate, validator: v}
}

func (f *TaskForm) TypeName() string {
	return "task"
}

func (f *TaskForm) Draft() models.TaskDraft {
	return models.TaskDraft{
		Description: strings.TrimSpace(f.Description.Value()),
		EndDate:     strings.TrimSpace(f.EndDate.Value()),
	}
}

func (f *TaskForm) Validate() error {
	draft := f.Draft()
	return f.validator.Validate(&draft)
}

// Apply keeps the completion flag of task.
func (f *TaskForm) Apply(task models.Task) models.Task {
	draft := f.Draft()
	task.Description = draft.Description
	task.EndDate = draft.EndDate
	return task
}

func (f *TaskForm) Populate(task models.Task) {
	f.Description.SetValue(task.Description)
	f.EndDate.SetValue(task.EndDate)
}

func (f *TaskForm) Clear() {
	f.Description.SetValue("")
	f.EndDate.SetValue("")
}

// TaskPanel is the task controller with the extra "complete" action.
type TaskPanel struct {
	*Controller[models.Task, models.TaskDraft]
	tasks TaskService
}

func NewTaskPanel(svc TaskService, form *TaskForm, reporter Reporter, wrap middleware.Middleware) *TaskPanel {
	return &TaskPanel{
		Controller: NewController[models.Task, models.TaskDraft](svc, form, reporter, wrap),
		tasks:      svc,
	}
}

// Complete marks the selected task as completed.
func (p *TaskPanel) Complete(ctx context.Context) error {
	return p.run(ctx, "complete", func(ctx context.Context) error {
		task, ok := p.Selected()
		if !ok {
			return &UserError{Message: "Please select a task to mark as completed."}
		}

		if err := p.tasks.MarkCompleted(ctx, task); err != nil {
			return err
		}
		if err := p.displayItems(ctx); err != nil {
			return err
		}
		p.reporter.Info("Task marked as completed.")
		return nil
	})
}
