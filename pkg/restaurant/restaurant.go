// Package restaurant runs the kitchen simulation: customers place orders on a
// bounded order queue, cooks fill them, and an expediter records a receipt
// for every served order.
package restaurant

import (
	"context"
	goruntime "runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/chillibowl/pkg/datastructs/queue"
	"github.com/huynhanx03/chillibowl/pkg/datastructs/shardedmap"
	"github.com/huynhanx03/chillibowl/pkg/encoding"
	"github.com/huynhanx03/chillibowl/pkg/hash"
	"github.com/huynhanx03/chillibowl/pkg/menu"
	"github.com/huynhanx03/chillibowl/pkg/mq/batcher"
	"github.com/huynhanx03/chillibowl/pkg/orderqueue"
	"github.com/huynhanx03/chillibowl/pkg/receipt"
	"github.com/huynhanx03/chillibowl/pkg/settings"
	"github.com/huynhanx03/chillibowl/pkg/timer"
	"github.com/huynhanx03/chillibowl/pkg/unique"
	"github.com/huynhanx03/chillibowl/pkg/utils"
)

const (
	tallyShards      = 16
	idlePoll         = 200 * time.Microsecond
	defaultBatchSize = 32
)

type ticket struct {
	customer int
	item     menu.Item
	placedAt time.Time
}

// Report summarises one run.
type Report struct {
	Served   int
	Expected int
	ByCook   map[int]int
	ByItem   map[string]int
	Elapsed  time.Duration
}

type Restaurant struct {
	cfg      settings.Kitchen
	expected int

	sink      receipt.Sink
	log       *zap.Logger
	clock     timer.Timer
	observer  orderqueue.Observer
	pick      func() menu.Item
	linked    bool
	snowflake settings.Snowflake
	batchSize int
	ids       *unique.SnowflakeNode
}

// New validates cfg and prepares a restaurant for Run.
func New(cfg settings.Kitchen, opts ...Option) (*Restaurant, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Restaurant{
		cfg:       cfg,
		expected:  cfg.Customers * cfg.OrdersPerCustomer,
		sink:      receipt.NewMemorySink(),
		log:       zap.NewNop(),
		clock:     timer.System{},
		pick:      menu.Pick,
		linked:    cfg.LinkedStorage,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}

	ids, err := unique.NewSnowflakeNode(r.snowflake, r.clock)
	if err != nil {
		return nil, errors.Wrap(err, "receipt ids")
	}
	r.ids = ids
	return r, nil
}

// Expected is the number of orders one Run serves.
func (r *Restaurant) Expected() int { return r.expected }

// Run serves every order and returns once all receipts are recorded.
// If ctx ends or the sink fails the first error is returned and the
// remaining orders are abandoned.
func (r *Restaurant) Run(ctx context.Context) (Report, error) {
	start := r.clock.Now()

	q := orderqueue.Open[ticket](r.cfg.MaxSize, r.expected, r.queueOptions()...)
	pass := queue.NewMPMC[receipt.Receipt](utils.CeilToPowerOfTwo(r.cfg.Cooks))
	byItem := shardedmap.New[menu.Item, int](tallyShards, hash.String[menu.Item])
	byCook := make([]int, r.cfg.Cooks)

	r.log.Info("restaurant open",
		zap.Int("customers", r.cfg.Customers),
		zap.Int("cooks", r.cfg.Cooks),
		zap.Int("max_size", r.cfg.MaxSize),
		zap.Int("expected", r.expected),
	)

	var served int
	cooksDone := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(cooksDone)

		kitchen, kctx := errgroup.WithContext(gctx)
		for c := 0; c < r.cfg.Customers; c++ {
			kitchen.Go(func() error {
				return r.customer(kctx, q, c)
			})
		}
		for k := 0; k < r.cfg.Cooks; k++ {
			kitchen.Go(func() error {
				n, err := r.cook(kctx, q, pass, byItem, k)
				byCook[k] = n
				return err
			})
		}
		return kitchen.Wait()
	})

	g.Go(func() error {
		var err error
		served, err = r.expedite(gctx, pass, cooksDone)
		return err
	})

	if err := g.Wait(); err != nil {
		r.log.Error("restaurant aborted", zap.Error(err), zap.Int("handled", q.Handled()))
		return Report{}, err
	}
	q.Close()

	report := Report{
		Served:   served,
		Expected: r.expected,
		ByCook:   make(map[int]int, len(byCook)),
		ByItem:   make(map[string]int, menu.Len()),
		Elapsed:  r.clock.Now().Sub(start),
	}
	for k, n := range byCook {
		report.ByCook[k] = n
	}
	for item, n := range byItem.Snapshot() {
		report.ByItem[item.String()] = n
	}

	r.log.Info("restaurant closed",
		zap.Int("served", report.Served),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

func (r *Restaurant) queueOptions() []orderqueue.Option {
	opts := []orderqueue.Option{orderqueue.WithLogger(r.log)}
	if r.linked {
		opts = append(opts, orderqueue.WithLinkedStorage())
	}
	if r.observer != nil {
		opts = append(opts, orderqueue.WithObserver(r.observer))
	}
	return opts
}

func (r *Restaurant) customer(ctx context.Context, q *orderqueue.Queue[ticket], id int) error {
	for i := 0; i < r.cfg.OrdersPerCustomer; i++ {
		t := ticket{customer: id, item: r.pick(), placedAt: r.clock.Now()}
		n, err := q.EnqueueContext(ctx, t)
		if err != nil {
			return errors.Wrapf(err, "customer %d", id)
		}
		r.log.Debug("order placed", zap.Int("customer", id), zap.Uint64("order", n), zap.Stringer("item", t.item))
	}
	return nil
}

// cook serves orders until the queue reports completion and returns how many
// it served.
func (r *Restaurant) cook(
	ctx context.Context,
	q *orderqueue.Queue[ticket],
	pass *queue.MPMC[receipt.Receipt],
	byItem *shardedmap.Map[menu.Item, int],
	id int,
) (int, error) {
	served := 0
	for {
		order, ok, err := q.DequeueContext(ctx)
		if err != nil {
			return served, errors.Wrapf(err, "cook %d", id)
		}
		if !ok {
			r.log.Debug("cook finished", zap.Int("cook", id), zap.Int("served", served))
			return served, nil
		}

		if err := r.prepare(ctx); err != nil {
			return served, errors.Wrapf(err, "cook %d", id)
		}

		rec, err := r.makeReceipt(order, id)
		if err != nil {
			return served, err
		}
		byItem.Update(order.Payload.item, func(n int, _ bool) int { return n + 1 })
		served++

		for !pass.Offer(rec) {
			if err := ctx.Err(); err != nil {
				return served, errors.Wrapf(err, "cook %d", id)
			}
			goruntime.Gosched()
		}
	}
}

func (r *Restaurant) prepare(ctx context.Context) error {
	if r.cfg.CookTime <= 0 {
		return nil
	}
	t := time.NewTimer(utils.ToDurationMs(r.cfg.CookTime))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Restaurant) makeReceipt(order orderqueue.Order[ticket], cook int) (receipt.Receipt, error) {
	id := r.ids.Generate()
	code, err := encoding.Base62Encode(id)
	if err != nil {
		return receipt.Receipt{}, errors.Wrapf(err, "order %d", order.Number)
	}
	return receipt.Receipt{
		ID:          id,
		Code:        code,
		OrderNumber: order.Number,
		Customer:    order.Payload.customer,
		Cook:        cook,
		Item:        order.Payload.item.String(),
		PlacedAt:    order.Payload.placedAt,
		ServedAt:    r.clock.Now(),
	}, nil
}

// expedite moves receipts from the pass into the sink until the cooks are
// done and the pass is empty. Receipts are batched; a partial batch is
// flushed whenever the pass runs dry.
func (r *Restaurant) expedite(ctx context.Context, pass *queue.MPMC[receipt.Receipt], cooksDone <-chan struct{}) (int, error) {
	recorded := 0
	out := batcher.New[receipt.Receipt](batcher.ConsumerFunc[receipt.Receipt](
		func(ctx context.Context, batch []receipt.Receipt) error {
			if err := receipt.RecordAll(ctx, r.sink, batch); err != nil {
				return errors.Wrapf(err, "record %d receipts from order %d", len(batch), batch[0].OrderNumber)
			}
			recorded += len(batch)
			return nil
		}),
		batcher.Config{Size: r.batchSize},
	)

	idle := time.NewTicker(idlePoll)
	defer idle.Stop()

	for {
		if rec, ok := pass.Poll(); ok {
			if err := out.Push(ctx, rec); err != nil {
				return recorded, err
			}
			continue
		}
		if err := out.Flush(ctx); err != nil {
			return recorded, err
		}

		select {
		case <-cooksDone:
			var err error
			pass.Drain(func(rec receipt.Receipt) {
				if err == nil {
					err = out.Push(ctx, rec)
				}
			})
			if err != nil {
				return recorded, err
			}
			return recorded, out.Flush(ctx)
		case <-ctx.Done():
			return recorded, ctx.Err()
		case <-idle.C:
		}
	}
}
