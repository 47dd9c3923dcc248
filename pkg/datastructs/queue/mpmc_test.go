package queue

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewMPMC(t *testing.T) {
	tests := []struct {
		name         string
		capacity     int
		wantCapacity uint64
	}{
		{"negative_uses_minimum", -5, 2},
		{"zero_uses_minimum", 0, 2},
		{"power_of_two", 16, 16},
		{"rounds_up", 100, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewMPMC[int](tt.capacity)
			assert.Equal(t, tt.wantCapacity, q.Capacity())
			assert.Zero(t, q.Len())
		})
	}
}

// =============================================================================
// Offer / Poll Tests
// =============================================================================

func TestOffer_FullQueue(t *testing.T) {
	q := NewMPMC[int](4)
	for i := 0; i < 4; i++ {
		require.True(t, q.Offer(i), "Offer(%d)", i)
	}
	assert.False(t, q.Offer(99), "Offer on full queue should fail")
	assert.Equal(t, 4, q.Len())
}

func TestPoll_EmptyQueue(t *testing.T) {
	q := NewMPMC[string](4)
	v, ok := q.Poll()
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestPoll_FIFOOrder(t *testing.T) {
	q := NewMPMC[int](8)
	for i := 1; i <= 5; i++ {
		q.Offer(i)
	}
	for want := 1; want <= 5; want++ {
		got, ok := q.Poll()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestOffer_SlotReuseAcrossTurns(t *testing.T) {
	q := NewMPMC[int](2)
	for round := 0; round < 50; round++ {
		require.True(t, q.Offer(round))
		got, ok := q.Poll()
		require.True(t, ok)
		require.Equal(t, round, got)
	}
}

func TestDrain(t *testing.T) {
	q := NewMPMC[int](8)
	for i := 0; i < 6; i++ {
		q.Offer(i)
	}

	var got []int
	n := q.Drain(func(v int) { got = append(got, v) })

	assert.Equal(t, 6, n)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, got)
	assert.Zero(t, q.Len())
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestConcurrency_ProducersAndConsumers(t *testing.T) {
	const (
		producers = 8
		perProd   = 2000
		consumers = 4
	)
	q := NewMPMC[int](64)

	var (
		mu       sync.Mutex
		received []int
		prodWG   sync.WaitGroup
		consWG   sync.WaitGroup
		done     = make(chan struct{})
	)

	prodWG.Add(producers)
	for p := 0; p < producers; p++ {
		go func(p int) {
			defer prodWG.Done()
			for i := 0; i < perProd; i++ {
				for !q.Offer(p*perProd + i) {
				}
			}
		}(p)
	}

	consWG.Add(consumers)
	for c := 0; c < consumers; c++ {
		go func() {
			defer consWG.Done()
			local := make([]int, 0, perProd)
			for {
				if v, ok := q.Poll(); ok {
					local = append(local, v)
					continue
				}
				select {
				case <-done:
					q.Drain(func(v int) { local = append(local, v) })
					mu.Lock()
					received = append(received, local...)
					mu.Unlock()
					return
				default:
				}
			}
		}()
	}

	prodWG.Wait()
	close(done)
	consWG.Wait()

	require.Len(t, received, producers*perProd)
	sort.Ints(received)
	for i, v := range received {
		if v != i {
			t.Fatalf("received[%d] = %d, want %d (lost or duplicated item)", i, v, i)
		}
	}
}
