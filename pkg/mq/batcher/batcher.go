package batcher

import "context"

const defaultSize = 64

// Batcher collects items and hands them to a Consumer in batches.
// It is owned by a single goroutine; nothing is dropped, pending items are
// delivered by Flush.
type Batcher[T any] struct {
	cons Consumer[T]
	data []T
	size int
}

// New creates a Batcher for type T.
func New[T any](cons Consumer[T], cfg Config) *Batcher[T] {
	if cfg.Size <= 0 {
		cfg.Size = defaultSize
	}
	return &Batcher[T]{
		cons: cons,
		data: make([]T, 0, cfg.Size),
		size: cfg.Size,
	}
}

// Push adds an item and flushes once the batch is full.
func (b *Batcher[T]) Push(ctx context.Context, item T) error {
	b.data = append(b.data, item)
	if len(b.data) >= b.size {
		return b.Flush(ctx)
	}
	return nil
}

// Flush delivers pending items, if any. On error the items stay pending so a
// later Flush can retry them.
func (b *Batcher[T]) Flush(ctx context.Context) error {
	if len(b.data) == 0 {
		return nil
	}
	if err := b.cons.Consume(ctx, b.data); err != nil {
		return err
	}
	// The consumer owns the flushed slice.
	b.data = make([]T, 0, b.size)
	return nil
}

// Pending returns the number of items not yet delivered.
func (b *Batcher[T]) Pending() int {
	return len(b.data)
}
