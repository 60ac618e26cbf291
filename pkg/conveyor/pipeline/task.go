package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ib-77/conveyor/pkg/conveyor"
)

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// task runs a body once on its own goroutine and remembers how it ended.
type task struct {
	config
	state atomic.Int32
	group errgroup.Group
	done  chan struct{}
	err   error
}

func (t *task) init(c config) {
	t.config = c
	t.done = make(chan struct{})
}

func (t *task) start(ctx context.Context, body func(ctx context.Context) error) error {
	if !t.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return fmt.Errorf("%w: %s", conveyor.ErrAlreadyStarted, t.name)
	}

	t.group.Go(func() error {
		return body(ctx)
	})
	go func() {
		t.err = t.group.Wait()
		t.state.Store(int32(StateFinished))
		close(t.done)
	}()
	return nil
}

// Name returns the task name used in logs and errors.
func (t *task) Name() string { return t.name }

func (t *task) State() State { return State(t.state.Load()) }

// Wait blocks until the task has finished and returns its error.
func (t *task) Wait() error {
	<-t.done
	return t.err
}

// Done is closed once the task has finished.
func (t *task) Done() <-chan struct{} { return t.done }
