package orderqueue

// Order is a unit of work moving through the queue.
// Number is assigned by the queue; Payload is never inspected.
type Order[P any] struct {
	Number  uint64
	Payload P
}
