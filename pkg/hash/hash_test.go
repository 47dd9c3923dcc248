package hash

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
)

type dish string

func TestKeyToHash(t *testing.T) {
	tests := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"uint64", KeyToHash(uint64(7)), 7},
		{"int", KeyToHash(42), 42},
		{"int32", KeyToHash(int32(3)), 3},
		{"byte", KeyToHash(byte(9)), 9},
		{"string", KeyToHash("chilli"), xxhash.Sum64String("chilli")},
		{"bytes", KeyToHash([]byte("chilli")), xxhash.Sum64String("chilli")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, KeyToHash("BensShake"), String(dish("BensShake")))
	assert.NotEqual(t, String("a"), String("b"))
}
