package orderqueue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/chillibowl/pkg/datastructs/buffer"
	"github.com/huynhanx03/chillibowl/pkg/runtime"
)

type completion uint8

const (
	byCount completion = iota
	byProducers
)

// Queue is a bounded blocking FIFO of orders.
type Queue[P any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	pending    buffer.FIFO[Order[P]]
	maxSize    int
	nextNumber uint64
	handled    int

	completion completion
	expected   int // byCount
	producers  int // byProducers, live producers
	closed     bool

	observer Observer
	log      *zap.Logger
}

// Open creates a queue holding at most maxSize orders that completes after
// expectedTotal orders have been dequeued.
// It panics if either argument is not positive.
func Open[P any](maxSize, expectedTotal int, opts ...Option) *Queue[P] {
	if expectedTotal <= 0 {
		panic(fmt.Sprintf("orderqueue: expected total must be positive, got %d", expectedTotal))
	}
	q := newQueue[P](maxSize, opts)
	q.completion = byCount
	q.expected = expectedTotal
	return q
}

// OpenWithProducers creates a queue that completes once every one of the
// given producers has called ProducerDone and the queue is empty.
// It panics if either argument is not positive.
func OpenWithProducers[P any](maxSize, producers int, opts ...Option) *Queue[P] {
	if producers <= 0 {
		panic(fmt.Sprintf("orderqueue: producer count must be positive, got %d", producers))
	}
	q := newQueue[P](maxSize, opts)
	q.completion = byProducers
	q.producers = producers
	return q
}

func newQueue[P any](maxSize int, opts []Option) *Queue[P] {
	if maxSize <= 0 {
		panic(fmt.Sprintf("orderqueue: max size must be positive, got %d", maxSize))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	q := &Queue[P]{
		maxSize:    maxSize,
		nextNumber: 1,
		observer:   o.observer,
		log:        o.logger,
	}
	if o.linked {
		q.pending = buffer.NewList[Order[P]]()
	} else {
		q.pending = buffer.NewRing[Order[P]](maxSize)
	}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Close releases the queue. It panics with ErrPrematureClose if the
// completion condition does not hold, and with ErrClosed on a second call.
func (q *Queue[P]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		panic(ErrClosed)
	}

	switch q.completion {
	case byProducers:
		if q.producers != 0 || q.pending.Len() != 0 {
			panic(errors.Wrapf(ErrPrematureClose, "%d producers active, %d orders pending", q.producers, q.pending.Len()))
		}
	default:
		if q.handled != q.expected {
			panic(errors.Wrapf(ErrPrematureClose, "handled %d of %d orders", q.handled, q.expected))
		}
	}

	q.closed = true
	q.log.Info("order queue closed",
		zap.Int("handled", q.handled),
		zap.Uint64("issued", q.nextNumber-1),
	)
}

// Enqueue appends payload as a new order, blocking while the queue is full,
// and returns the number it was assigned.
func (q *Queue[P]) Enqueue(payload P) uint64 {
	number, _ := q.EnqueueContext(context.Background(), payload)
	return number
}

// EnqueueContext is Enqueue with cancellation. When ctx ends before space
// frees up the order is not added, no number is consumed and ctx.Err() is
// returned.
func (q *Queue[P]) EnqueueContext(ctx context.Context, payload P) (uint64, error) {
	q.mu.Lock()
	q.mustBeOpen()

	var waited time.Duration
	if q.full() {
		start := runtime.NanoTime()
		err := q.wait(ctx, q.notFull, q.full)
		waited = time.Duration(runtime.NanoTime() - start)
		if err != nil {
			q.mu.Unlock()
			return 0, err
		}
	}

	number := q.nextNumber
	q.nextNumber++
	q.pending.PushBack(Order[P]{Number: number, Payload: payload})
	depth := q.pending.Len()
	q.notEmpty.Signal()
	q.mu.Unlock()

	if q.observer != nil {
		q.observer.OrderEnqueued(number, depth, waited)
	}
	return number, nil
}

// Dequeue removes the oldest order, blocking while the queue is empty and
// not yet complete. Once complete it returns ok == false immediately.
func (q *Queue[P]) Dequeue() (Order[P], bool) {
	order, ok, _ := q.DequeueContext(context.Background())
	return order, ok
}

// DequeueContext is Dequeue with cancellation. When ctx ends first, nothing
// is removed and ctx.Err() is returned.
func (q *Queue[P]) DequeueContext(ctx context.Context) (Order[P], bool, error) {
	var zero Order[P]

	q.mu.Lock()
	q.mustBeOpen()

	var waited time.Duration
	if q.starved() {
		start := runtime.NanoTime()
		err := q.wait(ctx, q.notEmpty, q.starved)
		waited = time.Duration(runtime.NanoTime() - start)
		if err != nil {
			q.mu.Unlock()
			return zero, false, err
		}
	}

	order, ok := q.pending.PopFront()
	if !ok {
		q.mu.Unlock()
		return zero, false, nil
	}

	q.handled++
	depth := q.pending.Len()
	q.notFull.Signal()
	if depth == 0 && q.complete() {
		q.log.Debug("order queue drained", zap.Int("handled", q.handled))
		q.notEmpty.Broadcast()
	}
	q.mu.Unlock()

	if q.observer != nil {
		q.observer.OrderDequeued(order.Number, depth, waited)
	}
	return order, true, nil
}

// ProducerDone records that one producer will add no more orders.
// Only valid on queues built with OpenWithProducers.
func (q *Queue[P]) ProducerDone() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		panic(ErrClosed)
	}
	if q.completion != byProducers {
		panic("orderqueue: ProducerDone on a count-based queue")
	}
	if q.producers == 0 {
		panic(ErrProducerOverrun)
	}

	q.producers--
	if q.producers == 0 {
		q.log.Debug("all producers done", zap.Int("pending", q.pending.Len()))
		q.notEmpty.Broadcast()
	}
}

// Len returns the number of pending orders.
func (q *Queue[P]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Len()
}

// Cap returns the maximum number of pending orders.
func (q *Queue[P]) Cap() int {
	return q.maxSize
}

// Handled returns how many orders have been dequeued.
func (q *Queue[P]) Handled() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.handled
}

// Issued returns how many order numbers have been assigned.
func (q *Queue[P]) Issued() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.nextNumber - 1
}

// Expected returns the total given to Open, or 0 for a producer-tracked queue.
func (q *Queue[P]) Expected() int {
	return q.expected
}

// Drained reports whether the queue is complete and empty, i.e. whether
// Dequeue would return the empty sentinel without blocking.
func (q *Queue[P]) Drained() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Len() == 0 && q.complete()
}

func (q *Queue[P]) full() bool {
	return q.pending.Len() >= q.maxSize
}

func (q *Queue[P]) starved() bool {
	return q.pending.Len() == 0 && !q.complete()
}

func (q *Queue[P]) complete() bool {
	if q.completion == byProducers {
		return q.producers == 0
	}
	return q.handled == q.expected
}

// mustBeOpen panics if the queue was closed. Caller holds q.mu.
func (q *Queue[P]) mustBeOpen() {
	if q.closed {
		q.mu.Unlock()
		panic(ErrClosed)
	}
}

// wait suspends on cond while blocked holds or until ctx ends.
// Caller holds q.mu. The predicate is checked before ctx, so a waiter whose
// wakeup arrives together with cancellation still completes its operation.
func (q *Queue[P]) wait(ctx context.Context, cond *sync.Cond, blocked func() bool) error {
	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			cond.Broadcast()
			q.mu.Unlock()
		})
		defer stop()
	}

	for blocked() {
		if err := ctx.Err(); err != nil {
			return err
		}
		cond.Wait()
	}
	return nil
}
