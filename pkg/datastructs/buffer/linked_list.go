package buffer

var _ FIFO[int] = (*List[int])(nil)

// node is a single element of List.
type node[T any] struct {
	value T
	next  *node[T]
}

// List is a singly linked FIFO with O(1) tail append and head removal.
// It is unbounded; callers enforce any capacity.
type List[T any] struct {
	head *node[T]
	tail *node[T]
	len  int
}

// NewList returns an empty list.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// PushBack appends v at the tail.
func (l *List[T]) PushBack(v T) {
	n := &node[T]{value: v}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.len++
}

// PopFront removes and returns the head.
func (l *List[T]) PopFront() (T, bool) {
	n := l.head
	if n == nil {
		var zero T
		return zero, false
	}

	l.head = n.next
	if l.head == nil {
		l.tail = nil
	}
	l.len--

	n.next = nil
	return n.value, true
}

// Peek returns the head without removing it.
func (l *List[T]) Peek() (T, bool) {
	if l.head == nil {
		var zero T
		return zero, false
	}
	return l.head.value, true
}

// Len returns the number of stored values.
func (l *List[T]) Len() int { return l.len }
