package services

import (
	"errors"
	"fmt"
)

// Common service-level errors
var (
	// Task errors
	ErrAlreadyCompleted = errors.New("task is already completed")
)

// StoreError reports a failed store call. Read and write paths both return
// it; the service cache is left as it was before the call.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
