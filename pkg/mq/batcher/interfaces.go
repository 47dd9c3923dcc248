package batcher

import "context"

// Consumer is the interface that must be implemented by users of the Batcher.
// It is responsible for processing a batch of items.
type Consumer[T any] interface {
	// Consume processes a batch of items. The slice is owned by the callee.
	Consume(ctx context.Context, batch []T) error
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc[T any] func(ctx context.Context, batch []T) error

func (f ConsumerFunc[T]) Consume(ctx context.Context, batch []T) error {
	return f(ctx, batch)
}

// Config holds configuration for the Batcher.
type Config struct {
	// Size is the number of items collected before a flush.
	Size int
}
