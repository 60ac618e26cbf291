package pipeline

import (
	"context"
	"fmt"

	"github.com/ib-77/conveyor/pkg/conveyor/queue"
)

// Consumer drains a queue into its destination until it receives End.
type Consumer[T any] struct {
	task
	queue       *queue.Queue[Message[T]]
	destination []T
}

func NewConsumer[T any](q *queue.Queue[Message[T]], opts ...Option) *Consumer[T] {
	c := &Consumer[T]{queue: q, destination: make([]T, 0)}
	c.init(applyOptions("consumer", opts...))
	return c
}

// Start runs the consumer on its own goroutine.
func (c *Consumer[T]) Start(ctx context.Context) error {
	return c.start(ctx, c.consume)
}

// Run starts the consumer and waits for it to finish.
func (c *Consumer[T]) Run(ctx context.Context) error {
	if err := c.Start(ctx); err != nil {
		return err
	}
	return c.Wait()
}

// Destination returns the items received so far, in arrival order. It must
// not be read while the consumer is running; call Wait first.
func (c *Consumer[T]) Destination() []T {
	return c.destination
}

func (c *Consumer[T]) consume(ctx context.Context) error {
	log := c.logger.With("task", c.name)
	log.DebugContext(ctx, "consumer started")

	for {
		m, err := c.queue.GetContext(ctx)
		if err != nil {
			log.ErrorContext(ctx, "consumer failed", "received", len(c.destination), "error", err)
			return fmt.Errorf("%s: get: %w", c.name, err)
		}
		if m.IsEnd() {
			log.DebugContext(ctx, "consumer finished", "received", len(c.destination))
			return nil
		}
		c.destination = append(c.destination, m.Value())
	}
}
