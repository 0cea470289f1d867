package models

import (
	"fmt"
	"time"
)

// DateLayout is the storage and input format of task end dates.
const DateLayout = "2006-01-02"

// lenientDateLayout also accepts month and day without zero padding.
const lenientDateLayout = "2006-1-2"

// TaskDraft is a task that has not been persisted yet. New tasks always
// start out not completed.
type TaskDraft struct {
	Description string `json:"description" validate:"required,max=50"`
	EndDate     string `json:"end_date" validate:"required,dateformat,notpast"`
}

// Task is a persisted task. Completion is one-way: there is no method that
// clears it once MarkCompleted has been called.
type Task struct {
	id          int64
	Description string
	EndDate     string
	completed   bool
}

// RestoreTask builds a persisted task from stored values.
func RestoreTask(id int64, description, endDate string, completed bool) Task {
	return Task{id: id, Description: description, EndDate: endDate, completed: completed}
}

// ID is the store-generated identifier.
func (t Task) ID() int64 {
	return t.id
}

// Completed reports whether the task has been marked as done.
func (t Task) Completed() bool {
	return t.completed
}

// MarkCompleted flags the task as done.
func (t *Task) MarkCompleted() {
	t.completed = true
}

// EndDateTime parses EndDate, tolerating dates stored without zero padding.
func (t Task) EndDateTime() (time.Time, error) {
	return time.Parse(lenientDateLayout, t.EndDate)
}

// Summary is the one-line list entry for the task.
func (t Task) Summary() string {
	status := "(Not yet completed)"
	if t.completed {
		status = "(Completed)"
	}
	return fmt.Sprintf("%s - Date: %s - %s", t.Description, t.EndDate, status)
}

// Draft returns the editable fields of the task.
func (t Task) Draft() TaskDraft {
	return TaskDraft{Description: t.Description, EndDate: t.EndDate}
}
