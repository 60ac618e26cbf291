package pipeline

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ib-77/conveyor/pkg/conveyor"
	"github.com/ib-77/conveyor/pkg/conveyor/queue"
)

// Run moves every item of source through a fresh queue of queueSize slots,
// using one producer and one consumer running concurrently, and returns what
// the consumer collected. Order is preserved. If either side fails the
// items collected so far are returned together with the joined errors.
//
// ctx cancels both sides; with a context that is never done Run blocks
// until the source is exhausted.
func Run[T any](ctx context.Context, source Source[T], queueSize int, opts ...Option) ([]T, error) {
	return run(ctx, uuid.New(), source, queueSize, opts...)
}

// Execute is Run reported as a conveyor.Result identified by the run id.
// A failed or cancelled run still carries the partial output.
func Execute[T any](ctx context.Context, source Source[T], queueSize int, opts ...Option) conveyor.Result[[]T] {
	id := uuid.New()
	out, err := run(ctx, id, source, queueSize, opts...)

	if err != nil {
		if out == nil {
			if conveyor.IsCancellationError(err) {
				return conveyor.Cancel[[]T](err).WithId(id)
			}
			return conveyor.Fail[[]T](err).WithId(id)
		}
		return conveyor.Partial(out, err).WithId(id)
	}
	return conveyor.Success(out).WithId(id)
}

func run[T any](ctx context.Context, id uuid.UUID, source Source[T], queueSize int,
	opts ...Option) ([]T, error) {

	cfg := applyOptions("pipeline", opts...)
	log := cfg.logger.With("run", id.String())

	q, err := queue.New[Message[T]](queueSize)
	if err != nil {
		log.ErrorContext(ctx, "pipeline not started", "error", err)
		return nil, err
	}

	producer := NewProducer(source, q, WithName(cfg.name+"/producer"), WithLogger(log))
	consumer := NewConsumer(q, WithName(cfg.name+"/consumer"), WithLogger(log))

	log.DebugContext(ctx, "pipeline started", "queue_size", queueSize)

	var (
		g                        errgroup.Group
		producerErr, consumerErr error
	)
	g.Go(func() error {
		consumerErr = consumer.Run(ctx)
		if consumerErr != nil {
			// the producer only finishes once End is queued
			drain(q)
		}
		return consumerErr
	})
	g.Go(func() error {
		producerErr = producer.Run(ctx)
		return producerErr
	})

	waitErr := g.Wait()
	out := consumer.Destination()
	if waitErr != nil {
		err = errors.Join(producerErr, consumerErr)
		log.ErrorContext(ctx, "pipeline failed", "items", len(out), "error", err)
		return out, err
	}
	log.DebugContext(ctx, "pipeline finished", "items", len(out))
	return out, nil
}

// drain discards messages up to and including End so a producer blocked on
// a full queue can finish after its consumer has gone.
func drain[T any](q *queue.Queue[Message[T]]) {
	for !q.Get().IsEnd() {
	}
}
