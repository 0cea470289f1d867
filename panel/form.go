package panel

import (
	"errors"

	"notes-todo/services"
	"notes-todo/validator"
)

// Field is a single text input. *textinput.Model and *textarea.Model from
// bubbles satisfy it.
type Field interface {
	Value() string
	SetValue(s string)
}

// Form holds the record-specific steps of the panel workflow. T is the
// persisted record type and D its draft.
type Form[T any, D any] interface {
	// TypeName is the lower-case record name used in messages, e.g. "note".
	TypeName() string
	// Validate checks the current input and returns a user-facing error.
	Validate() error
	// Draft builds a new, unpersisted record from the input.
	Draft() D
	// Apply copies the input onto an existing record.
	Apply(record T) T
	// Populate fills the input from a record.
	Populate(record T)
	// Clear empties the input.
	Clear()
}

// Reporter shows messages to the user.
type Reporter interface {
	Error(msg string)
	Info(msg string)
}

// Record is what the controller needs to know about a persisted record.
type Record interface {
	ID() int64
	Summary() string
}

// Messages shown for failures that are not the user's input.
const (
	msgStoreFailure     = "Operation failed, nothing saved."
	msgAlreadyCompleted = "This task is already completed."
)

// UserError is a failure with a message meant for the user. Err, when set,
// is the underlying cause and only goes to the log.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// toUserError maps any operation failure to the message the user sees.
func toUserError(err error) *UserError {
	var userErr *UserError
	var validationErrs validator.ValidationErrors
	var storeErr *services.StoreError

	switch {
	case errors.As(err, &userErr):
		return userErr
	case errors.As(err, &validationErrs):
		return &UserError{Message: validationErrs.Error(), Err: err}
	case errors.Is(err, services.ErrAlreadyCompleted):
		return &UserError{Message: msgAlreadyCompleted, Err: err}
	case errors.As(err, &storeErr):
		return &UserError{Message: msgStoreFailure, Err: err}
	default:
		return &UserError{Message: msgStoreFailure, Err: err}
	}
}
