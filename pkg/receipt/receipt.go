// Package receipt records served orders.
package receipt

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Receipt is the record of one served order.
type Receipt struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	OrderNumber uint64    `json:"order_number"`
	Customer    int       `json:"customer"`
	Cook        int       `json:"cook"`
	Item        string    `json:"item"`
	PlacedAt    time.Time `json:"placed_at"`
	ServedAt    time.Time `json:"served_at"`
}

// Sink stores receipts.
type Sink interface {
	Record(ctx context.Context, r Receipt) error
}

// BatchSink is a Sink that can store many receipts in one round trip.
type BatchSink interface {
	Sink
	RecordBatch(ctx context.Context, rs []Receipt) error
}

// RecordAll stores rs through s, batched when s supports it.
func RecordAll(ctx context.Context, s Sink, rs []Receipt) error {
	if bs, ok := s.(BatchSink); ok {
		return bs.RecordBatch(ctx, rs)
	}
	for _, r := range rs {
		if err := s.Record(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// MemorySink keeps receipts in process memory.
type MemorySink struct {
	mu       sync.Mutex
	receipts []Receipt
}

var _ BatchSink = (*MemorySink)(nil)

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Record(ctx context.Context, r Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.receipts = append(s.receipts, r)
	s.mu.Unlock()
	return nil
}

func (s *MemorySink) RecordBatch(ctx context.Context, rs []Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.receipts = append(s.receipts, rs...)
	s.mu.Unlock()
	return nil
}

// Receipts returns a copy ordered by order number.
func (s *MemorySink) Receipts() []Receipt {
	s.mu.Lock()
	out := slices.Clone(s.receipts)
	s.mu.Unlock()

	slices.SortFunc(out, func(a, b Receipt) int {
		switch {
		case a.OrderNumber < b.OrderNumber:
			return -1
		case a.OrderNumber > b.OrderNumber:
			return 1
		}
		return 0
	})
	return out
}

func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.receipts)
}
