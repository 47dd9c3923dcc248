package buffer

// FIFO is first-in first-out storage used behind a lock.
// Implementations are NOT thread-safe.
type FIFO[T any] interface {
	// PushBack appends v at the tail.
	PushBack(v T)

	// PopFront removes and returns the head.
	// Returns (zero, false) if the storage is empty.
	PopFront() (T, bool)

	// Len returns the number of stored values.
	Len() int
}
