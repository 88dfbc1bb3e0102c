package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is sent by Timeout when no event arrived in time.
	ErrTimeout = errors.New("rx: signal timed out")

	// ErrNoValue is returned by First when the signal completed without a value.
	ErrNoValue = errors.New("rx: signal completed without sending a value")

	ErrSchedulerStopped = errors.New("rx: scheduler stopped")
	ErrUnsupported      = errors.New("rx: operation not supported by this scheduler")
)

// CallbackError carries a panic raised inside a user supplied callback.
type CallbackError struct {
	Value any
}

func (e *CallbackError) Error() string {
	if err, ok := e.Value.(error); ok {
		return "rx: callback panicked: " + err.Error()
	}
	return fmt.Sprintf("rx: callback panicked: %v", e.Value)
}

func (e *CallbackError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// try runs fn and turns a panic into a *CallbackError.
func try(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CallbackError{Value: r}
		}
	}()

	fn()
	return nil
}
