package orderqueue

import "github.com/pkg/errors"

var (
	// ErrPrematureClose is the panic value (wrapped) when Close runs before
	// the completion condition holds.
	ErrPrematureClose = errors.New("orderqueue: close before every expected order was handled")

	// ErrClosed is the panic value when a closed queue is used.
	ErrClosed = errors.New("orderqueue: use of closed queue")

	// ErrProducerOverrun is the panic value when ProducerDone is called more
	// times than producers were registered.
	ErrProducerOverrun = errors.New("orderqueue: more ProducerDone calls than producers")
)
