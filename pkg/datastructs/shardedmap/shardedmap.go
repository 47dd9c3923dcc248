package shardedmap

import (
	"sync"

	"github.com/huynhanx03/chillibowl/pkg/utils"
)

const defaultShards = 32

// Map is a concurrent map split into independently locked shards.
type Map[K comparable, V any] struct {
	shards []*shard[K, V]
	mask   uint64
	hasher func(K) uint64
}

type shard[K comparable, V any] struct {
	sync.RWMutex
	data map[K]V

	// keeps neighbouring shards off the same cache line
	_ [64]byte
}

// New creates a Map with the given number of shards, rounded up to a power
// of two. A non-positive count selects a small default.
func New[K comparable, V any](shards int, hashFn func(K) uint64) *Map[K, V] {
	if shards <= 0 {
		shards = defaultShards
	}
	n := utils.CeilToPowerOfTwo(shards)

	m := &Map[K, V]{
		shards: make([]*shard[K, V], n),
		mask:   uint64(n - 1),
		hasher: hashFn,
	}
	for i := range m.shards {
		m.shards[i] = &shard[K, V]{data: make(map[K]V)}
	}
	return m
}

func (m *Map[K, V]) shardFor(key K) *shard[K, V] {
	return m.shards[m.hasher(key)&m.mask]
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	s := m.shardFor(key)
	s.RLock()
	v, ok := s.data[key]
	s.RUnlock()
	return v, ok
}

// Set stores value under key.
func (m *Map[K, V]) Set(key K, value V) {
	s := m.shardFor(key)
	s.Lock()
	s.data[key] = value
	s.Unlock()
}

// Update replaces the value under key with fn(old, present) atomically with
// respect to other writers of the same key, and returns the new value.
func (m *Map[K, V]) Update(key K, fn func(old V, present bool) V) V {
	s := m.shardFor(key)
	s.Lock()
	old, ok := s.data[key]
	v := fn(old, ok)
	s.data[key] = v
	s.Unlock()
	return v
}

// Del removes key.
func (m *Map[K, V]) Del(key K) {
	s := m.shardFor(key)
	s.Lock()
	delete(s.data, key)
	s.Unlock()
}

// Len counts entries shard by shard; the result is not a point-in-time
// snapshot while writers are active.
func (m *Map[K, V]) Len() int {
	total := 0
	for _, s := range m.shards {
		s.RLock()
		total += len(s.data)
		s.RUnlock()
	}
	return total
}

// Range calls fn for every entry, holding one shard's read lock at a time.
// fn must not write to the map.
func (m *Map[K, V]) Range(fn func(K, V)) {
	for _, s := range m.shards {
		s.RLock()
		for k, v := range s.data {
			fn(k, v)
		}
		s.RUnlock()
	}
}

// Snapshot copies every entry into a plain map.
func (m *Map[K, V]) Snapshot() map[K]V {
	out := make(map[K]V, m.Len())
	m.Range(func(k K, v V) {
		out[k] = v
	})
	return out
}
