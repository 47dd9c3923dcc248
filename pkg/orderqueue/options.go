package orderqueue

import (
	"time"

	"go.uber.org/zap"
)

// Observer is notified after every successful enqueue and dequeue.
// Calls happen outside the queue lock, possibly from many goroutines at once.
type Observer interface {
	// OrderEnqueued reports the assigned number, the queue length right after
	// the append and how long the producer was suspended on a full queue.
	OrderEnqueued(number uint64, depth int, waited time.Duration)

	// OrderDequeued reports the removed number, the queue length right after
	// the removal and how long the consumer was suspended on an empty queue.
	OrderDequeued(number uint64, depth int, waited time.Duration)
}

type options struct {
	linked   bool
	observer Observer
	logger   *zap.Logger
}

// Option configures a Queue.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger: zap.NewNop(),
	}
}

// WithLinkedStorage keeps pending orders in a singly linked list instead of
// the default fixed-capacity ring.
func WithLinkedStorage() Option {
	return func(o *options) {
		o.linked = true
	}
}

// WithObserver registers an Observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithLogger sets the logger used for debug and lifecycle messages.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
