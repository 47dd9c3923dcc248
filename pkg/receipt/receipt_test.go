package receipt

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySink_SortedCopy(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	for _, n := range []uint64{3, 1, 2} {
		require.NoError(t, s.Record(ctx, Receipt{OrderNumber: n}))
	}

	got := s.Receipts()
	require.Len(t, got, 3)
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{got[0].OrderNumber, got[1].OrderNumber, got[2].OrderNumber})

	got[0].Item = "changed"
	assert.Empty(t, s.Receipts()[0].Item)
}

func TestMemorySink_CancelledContext(t *testing.T) {
	s := NewMemorySink()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Record(ctx, Receipt{OrderNumber: 1}), context.Canceled)
	assert.Zero(t, s.Len())
}

func TestMemorySink_Concurrent(t *testing.T) {
	s := NewMemorySink()
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = s.Record(context.Background(), Receipt{OrderNumber: uint64(w*100 + i + 1)})
			}
		}(w)
	}
	wg.Wait()

	got := s.Receipts()
	require.Len(t, got, 400)
	for i, r := range got {
		assert.Equal(t, uint64(i+1), r.OrderNumber)
	}
}

type countingSink struct {
	records int
}

func (c *countingSink) Record(context.Context, Receipt) error {
	c.records++
	return nil
}

func TestRecordAll(t *testing.T) {
	batch := []Receipt{{OrderNumber: 2}, {OrderNumber: 1}}

	t.Run("batch sink", func(t *testing.T) {
		s := NewMemorySink()
		require.NoError(t, RecordAll(context.Background(), s, batch))
		assert.Equal(t, 2, s.Len())
		assert.Equal(t, uint64(1), s.Receipts()[0].OrderNumber)
	})

	t.Run("plain sink", func(t *testing.T) {
		s := &countingSink{}
		require.NoError(t, RecordAll(context.Background(), s, batch))
		assert.Equal(t, 2, s.records)
	})
}
