package batcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockConsumer is a test Consumer that tracks received batches.
type mockConsumer[T any] struct {
	batches [][]T
	err     error
}

func (m *mockConsumer[T]) Consume(_ context.Context, batch []T) error {
	if m.err != nil {
		return m.err
	}
	m.batches = append(m.batches, batch)
	return nil
}

func (m *mockConsumer[T]) totalItems() int {
	total := 0
	for _, b := range m.batches {
		total += len(b)
	}
	return total
}

// --- Constructor Tests ---

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		wantSize int
	}{
		{"valid_size", 10, 10},
		{"zero_defaults", 0, defaultSize},
		{"negative_defaults", -5, defaultSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New[int](&mockConsumer[int]{}, Config{Size: tt.size})
			assert.Equal(t, tt.wantSize, b.size)
			assert.Zero(t, b.Pending())
		})
	}
}

// --- Push / Flush Tests ---

func TestPush_FlushesWhenFull(t *testing.T) {
	ctx := context.Background()
	cons := &mockConsumer[int]{}
	b := New[int](cons, Config{Size: 3})

	for i := 0; i < 7; i++ {
		require.NoError(t, b.Push(ctx, i))
	}

	require.Len(t, cons.batches, 2)
	assert.Equal(t, []int{0, 1, 2}, cons.batches[0])
	assert.Equal(t, []int{3, 4, 5}, cons.batches[1])
	assert.Equal(t, 1, b.Pending())

	require.NoError(t, b.Flush(ctx))
	assert.Equal(t, []int{6}, cons.batches[2])
	assert.Equal(t, 7, cons.totalItems())
	assert.Zero(t, b.Pending())
}

func TestFlush_Empty(t *testing.T) {
	cons := &mockConsumer[string]{}
	b := New[string](cons, Config{Size: 2})

	require.NoError(t, b.Flush(context.Background()))
	assert.Empty(t, cons.batches)
}

func TestFlush_ErrorKeepsItems(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	cons := &mockConsumer[int]{err: boom}
	b := New[int](cons, Config{Size: 2})

	require.NoError(t, b.Push(ctx, 1))
	assert.ErrorIs(t, b.Push(ctx, 2), boom)
	assert.Equal(t, 2, b.Pending())

	cons.err = nil
	require.NoError(t, b.Flush(ctx))
	assert.Equal(t, [][]int{{1, 2}}, cons.batches)
}

func TestConsumerFunc(t *testing.T) {
	var got []int
	b := New[int](ConsumerFunc[int](func(_ context.Context, batch []int) error {
		got = append(got, batch...)
		return nil
	}), Config{Size: 1})

	require.NoError(t, b.Push(context.Background(), 9))
	assert.Equal(t, []int{9}, got)
}
