package utils

import (
	"testing"
	"time"
)

func TestCeilToPowerOfTwo(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"negative", -3, 2},
		{"zero", 0, 2},
		{"one", 1, 2},
		{"two", 2, 2},
		{"three", 3, 4},
		{"exact", 64, 64},
		{"above", 65, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CeilToPowerOfTwo(tt.in); got != tt.want {
				t.Errorf("CeilToPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 1024} {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false", n)
		}
	}
	for _, n := range []int{-4, 0, 3, 1000} {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true", n)
		}
	}
}

func TestDurations(t *testing.T) {
	if got := ToDuration(3); got != 3*time.Second {
		t.Errorf("ToDuration(3) = %v", got)
	}
	if got := ToDurationMs(250); got != 250*time.Millisecond {
		t.Errorf("ToDurationMs(250) = %v", got)
	}
}
