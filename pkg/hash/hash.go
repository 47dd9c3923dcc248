// Package hash maps keys to 64-bit hashes for shard selection.
package hash

import (
	"github.com/cespare/xxhash/v2"
)

type Key interface {
	uint64 | string | []byte | byte | int | uint | int32 | uint32 | int64
}

// KeyToHash hashes key. Integer keys map to themselves; strings and byte
// slices go through xxhash.
func KeyToHash[K Key](key K) uint64 {
	switch k := any(key).(type) {
	case uint64:
		return k
	case string:
		return xxhash.Sum64String(k)
	case []byte:
		return xxhash.Sum64(k)
	case byte:
		return uint64(k)
	case uint:
		return uint64(k)
	case int:
		return uint64(k)
	case int32:
		return uint64(k)
	case uint32:
		return uint64(k)
	case int64:
		return uint64(k)
	default:
		panic("hash: key type not supported")
	}
}

// String hashes any value whose underlying type is string.
func String[S ~string](s S) uint64 {
	return xxhash.Sum64String(string(s))
}
