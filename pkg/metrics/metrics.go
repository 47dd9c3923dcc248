package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/huynhanx03/chillibowl/pkg/orderqueue"
)

const namespace = "chillibowl"

// QueueMetrics exports order queue activity. It satisfies orderqueue.Observer.
type QueueMetrics struct {
	orders *prometheus.CounterVec
	depth  prometheus.Gauge
	wait   *prometheus.HistogramVec
}

var _ orderqueue.Observer = (*QueueMetrics)(nil)

// NewQueueMetrics creates the collectors and registers them with reg.
func NewQueueMetrics(reg prometheus.Registerer) (*QueueMetrics, error) {
	m := &QueueMetrics{
		orders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queue_orders_total",
				Help:      "Orders that entered or left the order queue",
			},
			[]string{"op"},
		),
		depth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "queue_depth",
				Help:      "Orders waiting in the queue after the last operation",
			},
		),
		wait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "queue_wait_seconds",
				Help:      "Time a producer waited for space or a consumer waited for an order",
				Buckets:   []float64{0, .0001, .001, .01, .1, 1},
			},
			[]string{"role"},
		),
	}

	for _, c := range []prometheus.Collector{m.orders, m.depth, m.wait} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register queue metrics")
		}
	}
	return m, nil
}

func (m *QueueMetrics) OrderEnqueued(_ uint64, depth int, waited time.Duration) {
	m.orders.WithLabelValues("enqueued").Inc()
	m.depth.Set(float64(depth))
	m.wait.WithLabelValues("producer").Observe(waited.Seconds())
}

func (m *QueueMetrics) OrderDequeued(_ uint64, depth int, waited time.Duration) {
	m.orders.WithLabelValues("dequeued").Inc()
	m.depth.Set(float64(depth))
	m.wait.WithLabelValues("consumer").Observe(waited.Seconds())
}
