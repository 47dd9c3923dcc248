package buffer

import (
	"errors"
	"testing"
)

// =============================================================================
// Constructor
// =============================================================================

func TestNewRing(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantCap  int
	}{
		{"zero_uses_minimum", 0, 2},
		{"one_uses_minimum", 1, 2},
		{"exact_power_of_two", 8, 8},
		{"rounds_up", 5, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRing[int](tt.capacity)
			if got := r.Cap(); got != tt.wantCap {
				t.Errorf("Cap() = %d, want %d", got, tt.wantCap)
			}
			if r.Len() != 0 {
				t.Errorf("new ring should be empty, Len() = %d", r.Len())
			}
		})
	}
}

// =============================================================================
// Push / Pop
// =============================================================================

func TestRing_FIFOOrder(t *testing.T) {
	r := NewRing[int](4)
	for i := 1; i <= 4; i++ {
		r.PushBack(i)
	}
	if !r.IsFull() {
		t.Fatal("ring should be full")
	}

	for want := 1; want <= 4; want++ {
		got, ok := r.PopFront()
		if !ok || got != want {
			t.Errorf("PopFront() = (%d, %v), want (%d, true)", got, ok, want)
		}
	}

	if _, ok := r.PopFront(); ok {
		t.Error("PopFront on empty ring should return false")
	}
}

func TestRing_TryPushBackFull(t *testing.T) {
	r := NewRing[string](2)
	if err := r.TryPushBack("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.TryPushBack("b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.TryPushBack("c"); !errors.Is(err, ErrRingFull) {
		t.Errorf("TryPushBack on full ring = %v, want ErrRingFull", err)
	}
}

func TestRing_PushBackFullPanics(t *testing.T) {
	r := NewRing[int](2)
	r.PushBack(1)
	r.PushBack(2)

	defer func() {
		if rec := recover(); rec == nil {
			t.Error("expected panic when pushing into a full ring")
		}
	}()
	r.PushBack(3)
}

func TestRing_WrapAround(t *testing.T) {
	r := NewRing[int](4)

	// Advance head/tail past the end of the backing array several times.
	next := 0
	want := 0
	for round := 0; round < 10; round++ {
		for i := 0; i < 3; i++ {
			r.PushBack(next)
			next++
		}
		for i := 0; i < 3; i++ {
			got, ok := r.PopFront()
			if !ok || got != want {
				t.Fatalf("round %d: PopFront() = (%d, %v), want (%d, true)", round, got, ok, want)
			}
			want++
		}
	}
}

func TestRing_Peek(t *testing.T) {
	r := NewRing[int](2)
	if _, ok := r.Peek(); ok {
		t.Error("Peek on empty ring should return false")
	}
	r.PushBack(7)
	if v, ok := r.Peek(); !ok || v != 7 {
		t.Errorf("Peek() = (%d, %v), want (7, true)", v, ok)
	}
	if r.Len() != 1 {
		t.Errorf("Peek should not consume, Len() = %d", r.Len())
	}
}

func TestRing_ClearsVacatedSlot(t *testing.T) {
	r := NewRing[*int](2)
	v := 1
	r.PushBack(&v)
	r.PopFront()

	if r.buf[0] != nil {
		t.Error("vacated slot should be zeroed")
	}
}
