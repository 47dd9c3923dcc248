// Package queue provides non-blocking bounded queues for handing values
// between goroutines without a shared lock.
package queue

// Queue is a non-blocking bounded FIFO.
type Queue[T any] interface {
	// Offer adds an item at the tail.
	// Returns false if the queue is full.
	Offer(item T) bool

	// Poll removes and returns the head.
	// Returns (zero, false) if the queue is empty.
	Poll() (T, bool)

	// Capacity returns the number of slots.
	Capacity() uint64
}
