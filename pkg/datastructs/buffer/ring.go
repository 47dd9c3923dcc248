package buffer

import (
	"errors"

	"github.com/huynhanx03/chillibowl/pkg/utils"
)

// ErrRingFull is returned when pushing into a ring that has no free slot.
var ErrRingFull = errors.New("ring buffer is full")

var _ FIFO[int] = (*Ring[int])(nil)

// Ring is a fixed-capacity circular buffer indexed by head/tail offsets.
// The backing array is sized to a power of two so positions wrap with a mask.
// It never grows.
type Ring[T any] struct {
	buf  []T
	mask int
	head int // next position to read from
	tail int // next position to write to
	size int
}

// NewRing creates a ring able to hold at least capacity values.
// The capacity is rounded up to the nearest power of two.
func NewRing[T any](capacity int) *Ring[T] {
	capacity = utils.CeilToPowerOfTwo(capacity)
	return &Ring[T]{
		buf:  make([]T, capacity),
		mask: capacity - 1,
	}
}

// TryPushBack appends v at the tail. Returns ErrRingFull if no slot is free.
func (r *Ring[T]) TryPushBack(v T) error {
	if r.size == len(r.buf) {
		return ErrRingFull
	}
	r.buf[r.tail] = v
	r.tail = (r.tail + 1) & r.mask
	r.size++
	return nil
}

// PushBack appends v at the tail and panics if the ring is full.
// Callers bound the length themselves.
func (r *Ring[T]) PushBack(v T) {
	if err := r.TryPushBack(v); err != nil {
		panic(err)
	}
}

// PopFront removes and returns the oldest value.
func (r *Ring[T]) PopFront() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}

	v := r.buf[r.head]
	r.buf[r.head] = zero // drop the reference for the GC
	r.head = (r.head + 1) & r.mask
	r.size--
	return v, true
}

// Peek returns the oldest value without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	if r.size == 0 {
		var zero T
		return zero, false
	}
	return r.buf[r.head], true
}

// Len returns the number of stored values.
func (r *Ring[T]) Len() int { return r.size }

// Cap returns the number of slots.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// IsFull reports whether every slot is taken.
func (r *Ring[T]) IsFull() bool { return r.size == len(r.buf) }
