package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItems(t *testing.T) {
	got := Items()
	assert.Len(t, got, 10)
	assert.Equal(t, Len(), len(got))
	assert.Equal(t, BensChilli, got[0])
	assert.Equal(t, BensOnionRings, got[9])

	// Callers cannot modify the table.
	got[0] = "Mutated"
	first, ok := At(0)
	assert.True(t, ok)
	assert.Equal(t, BensChilli, first)
}

func TestAt(t *testing.T) {
	tests := []struct {
		name string
		i    int
		want Item
		ok   bool
	}{
		{"first", 0, BensChilli, true},
		{"middle", 4, BensShake, true},
		{"last", 9, BensOnionRings, true},
		{"negative", -1, "", false},
		{"past end", 10, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := At(tt.i)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPickWith(t *testing.T) {
	assert.Equal(t, BensHotDog, PickWith(func(uint32) uint32 { return 2 }))
	assert.Equal(t, BensHalfSmoke, PickWith(func(uint32) uint32 { return 11 }))

	var seenN uint32
	PickWith(func(n uint32) uint32 { seenN = n; return 0 })
	assert.Equal(t, uint32(10), seenN)
}

func TestPick(t *testing.T) {
	valid := make(map[Item]bool, Len())
	for _, it := range Items() {
		valid[it] = true
	}

	for i := 0; i < 1000; i++ {
		assert.True(t, valid[Pick()])
	}
}
