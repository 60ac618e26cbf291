package conveyor

import (
	"context"
	"errors"
	"reflect"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTimeout         = errors.New("operation timed out")
	ErrAlreadyStarted  = errors.New("task already started")
	ErrSourcePanic     = errors.New("source panicked")
)

func IsNil(i interface{}) bool {
	if i == nil || (reflect.ValueOf(i).Kind() == reflect.Ptr && reflect.ValueOf(i).IsNil()) {
		return true
	}
	return false
}

// GetErrors flattens an errors.Join result into its parts.
func GetErrors(err error) []error {
	if IsNil(err) {
		return []error{}
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		return e.Unwrap()
	}

	return []error{err}
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
