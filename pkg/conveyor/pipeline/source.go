package pipeline

import (
	"context"
	"iter"
)

// Source is a finite sequence of items. A non-nil error ends the sequence
// and is reported by the Producer.
type Source[T any] = iter.Seq2[T, error]

func FromSlice[T any](values []T) Source[T] {
	return func(yield func(T, error) bool) {
		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	}
}

func FromSeq[T any](seq iter.Seq[T]) Source[T] {
	return func(yield func(T, error) bool) {
		for v := range seq {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// FromChan reads ch until it is closed or ctx is done; in the latter case
// the source ends with ctx.Err().
func FromChan[T any](ctx context.Context, ch <-chan T) Source[T] {
	return func(yield func(T, error) bool) {
		for {
			select {
			case v, ok := <-ch:
				if !ok {
					return
				}
				if !yield(v, nil) {
					return
				}
			case <-ctx.Done():
				var zero T
				yield(zero, ctx.Err())
				return
			}
		}
	}
}
