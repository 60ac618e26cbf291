package pipeline

import (
	"context"
	"fmt"

	"github.com/ib-77/conveyor/pkg/conveyor"
	"github.com/ib-77/conveyor/pkg/conveyor/queue"
)

// Producer drains a Source into a queue and always finishes the stream with
// End, whether the source ran out, failed, panicked or ctx was cancelled.
//
// End is enqueued without regard to ctx, so the producer finishes only once
// something drains the queue far enough to take it: its Consumer, whatever
// context that consumer runs on, or the drain Run does after a consumer failure.
type Producer[T any] struct {
	task
	source Source[T]
	queue  *queue.Queue[Message[T]]
}

func NewProducer[T any](source Source[T], q *queue.Queue[Message[T]], opts ...Option) *Producer[T] {
	p := &Producer[T]{source: source, queue: q}
	p.init(applyOptions("producer", opts...))
	return p
}

// Start runs the producer on its own goroutine.
func (p *Producer[T]) Start(ctx context.Context) error {
	return p.start(ctx, p.produce)
}

// Run starts the producer and waits for it to finish.
func (p *Producer[T]) Run(ctx context.Context) error {
	if err := p.Start(ctx); err != nil {
		return err
	}
	return p.Wait()
}

func (p *Producer[T]) produce(ctx context.Context) (err error) {
	sent := 0
	log := p.logger.With("task", p.name)
	log.DebugContext(ctx, "producer started")

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", conveyor.ErrSourcePanic, p.name, r)
		}

		p.queue.Put(End[T]())

		if err != nil {
			log.ErrorContext(ctx, "producer failed", "sent", sent, "error", err)
			return
		}
		log.DebugContext(ctx, "producer finished", "sent", sent)
	}()

	for v, srcErr := range p.source {
		if srcErr != nil {
			return fmt.Errorf("%s: source: %w", p.name, srcErr)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", p.name, ctxErr)
		}
		if putErr := p.queue.PutContext(ctx, Of(v)); putErr != nil {
			return fmt.Errorf("%s: put: %w", p.name, putErr)
		}
		sent++
	}
	return nil
}
