package queue

import (
	"math/bits"
	goruntime "runtime"
	"sync/atomic"

	"github.com/huynhanx03/chillibowl/pkg/runtime"
	"github.com/huynhanx03/chillibowl/pkg/utils"
)

var _ Queue[int] = (*MPMC[int])(nil)

const (
	cacheLineSize = 64

	// Contended CAS loops spin with PAUSE first, then yield the P.
	activeSpinCycles = 4
	activeSpinTries  = 30
)

// slot holds one value plus the turn counter that tells producers and
// consumers whose move it is. Even turns belong to producers, odd to consumers.
type slot[T any] struct {
	turn atomic.Uint64
	data T
	_    [cacheLineSize - 16]byte
}

// MPMC is a lock-free bounded multiple-producer multiple-consumer queue.
// Offer and Poll never block: they report full/empty instead.
type MPMC[T any] struct {
	capacity     uint64
	mask         uint64
	capacityLog2 uint64
	slots        []slot[T]

	_ [cacheLineSize]byte

	head atomic.Uint64 // next position to write

	_ [cacheLineSize]byte

	tail atomic.Uint64 // next position to read
}

// NewMPMC creates a queue with capacity rounded up to a power of two (minimum 2).
func NewMPMC[T any](capacity int) *MPMC[T] {
	capacity = utils.CeilToPowerOfTwo(capacity)

	return &MPMC[T]{
		capacity:     uint64(capacity),
		mask:         uint64(capacity - 1),
		capacityLog2: uint64(bits.TrailingZeros64(uint64(capacity))),
		slots:        make([]slot[T], capacity),
	}
}

func (q *MPMC[T]) idx(pos uint64) uint64  { return pos & q.mask }
func (q *MPMC[T]) turn(pos uint64) uint64 { return pos >> q.capacityLog2 }

// Offer adds an item. Returns false if the queue is full.
func (q *MPMC[T]) Offer(item T) bool {
	for spin := 0; ; spin++ {
		head := q.head.Load()
		s := &q.slots[q.idx(head)]
		expected := q.turn(head) * 2

		if s.turn.Load() == expected {
			if q.head.CompareAndSwap(head, head+1) {
				s.data = item
				s.turn.Store(expected + 1)
				return true
			}
		} else if head == q.head.Load() {
			return false
		}

		backoff(&spin)
	}
}

// Poll removes and returns the oldest item. Returns false if the queue is empty.
func (q *MPMC[T]) Poll() (T, bool) {
	var zero T

	for spin := 0; ; spin++ {
		tail := q.tail.Load()
		s := &q.slots[q.idx(tail)]
		expected := q.turn(tail)*2 + 1

		if s.turn.Load() == expected {
			if q.tail.CompareAndSwap(tail, tail+1) {
				data := s.data
				s.data = zero
				s.turn.Store(expected + 1)
				return data, true
			}
		} else if tail == q.tail.Load() {
			return zero, false
		}

		backoff(&spin)
	}
}

// Drain polls until the queue reports empty, passing each item to fn.
// It returns the number of items drained.
func (q *MPMC[T]) Drain(fn func(T)) int {
	n := 0
	for {
		item, ok := q.Poll()
		if !ok {
			return n
		}
		fn(item)
		n++
	}
}

// Len returns the approximate number of queued items.
// It can be momentarily off while offers and polls are in flight.
func (q *MPMC[T]) Len() int {
	n := int64(q.head.Load()) - int64(q.tail.Load())
	if n < 0 {
		return 0
	}
	return int(n)
}

// Capacity returns the number of slots.
func (q *MPMC[T]) Capacity() uint64 { return q.capacity }

func backoff(spin *int) {
	if *spin < activeSpinTries {
		runtime.Procyield(activeSpinCycles)
		return
	}
	goruntime.Gosched()
	*spin = 0
}
