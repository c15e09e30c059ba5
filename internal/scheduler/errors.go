package scheduler

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrInvalidDelay is returned by Add when the delay is not positive.
	ErrInvalidDelay = errors.New("delay must be greater than zero")

	// ErrNotCallable is returned by Add when the callback cannot be invoked
	// with the given arguments.
	ErrNotCallable = errors.New("callback is not callable")

	// ErrCallbackFailure marks every *TaskError.
	ErrCallbackFailure = errors.New("task callback failed")

	// ErrExecuting is returned by ExecuteDue when another pass is running.
	ErrExecuting = errors.New("execution pass already in progress")
)

// TaskError records the failure of a single fired task.
type TaskError struct {
	ID  uint64
	Due int64
	Err error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %d (due %d): %v", e.ID, e.Due, e.Err)
}

// Unwrap exposes both ErrCallbackFailure and the callback's own error to
// errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return []error{ErrCallbackFailure, e.Err}
}

// PanicError is the cause recorded when a callback panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// TaskErrors flattens an error returned by ExecuteDue into its per-task
// failures. It returns nil for a nil error.
func TaskErrors(err error) []*TaskError {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		out := make([]*TaskError, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			var te *TaskError
			if errors.As(e, &te) {
				out = append(out, te)
			}
		}
		return out
	}
	var te *TaskError
	if errors.As(err, &te) {
		return []*TaskError{te}
	}
	return nil
}
