package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ib-77/conveyor/pkg/conveyor"
)

// Queue is a fixed-capacity FIFO. Put blocks while the queue is full and Get
// blocks while it is empty. All methods are safe for concurrent use.
type Queue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	items []T
	head  int
	count int
}

// New creates a queue holding at most capacity items.
func New[T any](capacity int) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be greater than 0, got %d",
			conveyor.ErrInvalidArgument, capacity)
	}

	q := &Queue[T]{items: make([]T, capacity)}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q, nil
}

// Put appends item to the tail, waiting as long as it takes for space.
func (q *Queue[T]) Put(item T) {
	// Background is never done, so PutContext cannot fail.
	_ = q.PutContext(context.Background(), item)
}

// PutTimeout is Put bounded by timeout. On expiry it returns an error
// wrapping conveyor.ErrTimeout and the item is not enqueued.
func (q *Queue[T]) PutTimeout(item T, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), max(timeout, 0))
	defer cancel()

	return asTimeout(q.PutContext(ctx, item), timeout)
}

// PutContext is Put that gives up when ctx is done, returning ctx.Err().
func (q *Queue[T]) PutContext(ctx context.Context, item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.await(ctx, q.notFull, q.fullLocked); err != nil {
		return err
	}
	q.pushLocked(item)
	return nil
}

// TryPut enqueues item only if there is space right now.
func (q *Queue[T]) TryPut(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.fullLocked() {
		return false
	}
	q.pushLocked(item)
	return true
}

// Get removes and returns the head item, waiting as long as it takes for one.
func (q *Queue[T]) Get() T {
	// Background is never done, so GetContext cannot fail.
	v, _ := q.GetContext(context.Background())
	return v
}

// GetTimeout is Get bounded by timeout. On expiry it returns the zero value
// and an error wrapping conveyor.ErrTimeout.
func (q *Queue[T]) GetTimeout(timeout time.Duration) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), max(timeout, 0))
	defer cancel()

	v, err := q.GetContext(ctx)
	return v, asTimeout(err, timeout)
}

// GetContext is Get that gives up when ctx is done, returning ctx.Err().
func (q *Queue[T]) GetContext(ctx context.Context) (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.await(ctx, q.notEmpty, q.emptyLocked); err != nil {
		var zero T
		return zero, err
	}
	return q.popLocked(), nil
}

// TryGet removes the head item only if one is available right now.
func (q *Queue[T]) TryGet() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.emptyLocked() {
		var zero T
		return zero, false
	}
	return q.popLocked(), true
}

// Size returns the number of items currently queued.
func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Capacity returns the bound fixed at construction.
func (q *Queue[T]) Capacity() int {
	return len(q.items)
}

func (q *Queue[T]) IsEmpty() bool { return q.Size() == 0 }

func (q *Queue[T]) IsFull() bool { return q.Size() >= q.Capacity() }

// await waits on cond until blocked reports false or ctx is done.
// q.mu must be held.
func (q *Queue[T]) await(ctx context.Context, cond *sync.Cond, blocked func() bool) error {
	if !blocked() {
		return nil
	}

	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			cond.Broadcast()
			q.mu.Unlock()
		})
		defer stop()
	}

	for blocked() {
		if err := ctx.Err(); err != nil {
			return err
		}
		cond.Wait()
	}
	return nil
}

func (q *Queue[T]) fullLocked() bool { return q.count == len(q.items) }

func (q *Queue[T]) emptyLocked() bool { return q.count == 0 }

func (q *Queue[T]) pushLocked(item T) {
	q.items[(q.head+q.count)%len(q.items)] = item
	q.count++
	q.notEmpty.Signal()
}

func (q *Queue[T]) popLocked() T {
	item := q.items[q.head]
	var zero T
	q.items[q.head] = zero // drop the reference for the GC
	q.head = (q.head + 1) % len(q.items)
	q.count--
	q.notFull.Signal()
	return item
}

func asTimeout(err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", conveyor.ErrTimeout, timeout)
	}
	return err
}
