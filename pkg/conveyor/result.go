package conveyor

import (
	"time"

	"github.com/google/uuid"
)

type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
	isCancel  bool
	hasResult bool
}

func Success[T any](r T) Result[T] {
	return newResult(uuid.New(), r, nil, true, false, true)
}

func Fail[T any](err error) Result[T] {
	var zero T
	return newResult(uuid.New(), zero, err, false, false, false)
}

func Cancel[T any](err error) Result[T] {
	var zero T
	return newResult(uuid.New(), zero, err, false, true, false)
}

// Partial is a failed or cancelled result that still carries what was
// collected before the error.
func Partial[T any](r T, err error) Result[T] {
	return newResult(uuid.New(), r, err, false, IsCancellationError(err), true)
}

// WithId returns a copy of r identified by id.
func (r Result[T]) WithId(id uuid.UUID) Result[T] {
	r.id = id
	return r
}

func newResult[T any](id uuid.UUID, r T, err error, success, cancel, has bool) Result[T] {
	return Result[T]{
		id:        id,
		createdAt: time.Now().UTC(),
		result:    r,
		err:       err,
		isSuccess: success,
		isCancel:  cancel,
		hasResult: has,
	}
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && !r.isCancel && r.err != nil
}

func (r Result[T]) IsCancel() bool {
	return r.isCancel
}

func (r Result[T]) HasResult() bool {
	return r.hasResult
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}
