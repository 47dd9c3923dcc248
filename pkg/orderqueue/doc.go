// Package orderqueue provides a bounded, blocking FIFO of orders shared by
// many producer and many consumer goroutines.
//
// Termination is driven by a count: the queue is opened with the total number
// of orders that will ever pass through it. Once that many orders have been
// dequeued, every further Dequeue returns the empty sentinel (ok == false)
// without blocking. If producers deliver fewer orders than promised, consumers
// waiting on the empty queue block forever; the queue cannot tell a slow
// producer from a missing one.
//
// OpenWithProducers offers the alternative protocol: each producer signs off
// with ProducerDone and consumers stop once all producers are gone and the
// queue is empty.
//
// All state lives behind one mutex. Producers wait on a "not full" condition and
// consumers on a "not empty" condition; every waiter re-checks its predicate in
// a loop after waking.
package orderqueue
