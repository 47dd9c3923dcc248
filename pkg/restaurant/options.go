package restaurant

import (
	"go.uber.org/zap"

	"github.com/huynhanx03/chillibowl/pkg/menu"
	"github.com/huynhanx03/chillibowl/pkg/orderqueue"
	"github.com/huynhanx03/chillibowl/pkg/receipt"
	"github.com/huynhanx03/chillibowl/pkg/settings"
	"github.com/huynhanx03/chillibowl/pkg/timer"
)

// Option configures a Restaurant.
type Option func(*Restaurant)

// WithSink sets where receipts go. Defaults to a MemorySink.
func WithSink(s receipt.Sink) Option {
	return func(r *Restaurant) { r.sink = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Restaurant) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock sets the clock used for receipt timestamps and IDs.
func WithClock(c timer.Timer) Option {
	return func(r *Restaurant) { r.clock = c }
}

// WithObserver forwards order queue activity to obs.
func WithObserver(obs orderqueue.Observer) Option {
	return func(r *Restaurant) { r.observer = obs }
}

// WithPicker replaces the random menu choice made by customers.
func WithPicker(pick func() menu.Item) Option {
	return func(r *Restaurant) { r.pick = pick }
}

// WithLinkedStorage backs the order queue with a linked list.
func WithLinkedStorage() Option {
	return func(r *Restaurant) { r.linked = true }
}

// WithSnowflake configures receipt ID generation.
func WithSnowflake(cfg settings.Snowflake) Option {
	return func(r *Restaurant) { r.snowflake = cfg }
}

// WithBatchSize sets how many receipts are written to the sink at once.
func WithBatchSize(n int) Option {
	return func(r *Restaurant) {
		if n > 0 {
			r.batchSize = n
		}
	}
}
