// Package cache provides the keyed raster store backing the mask engine.
//
// The store is a sharded LRU map: fingerprint keys hash to one of a fixed
// set of shards, each guarded by its own mutex, so concurrent requests for
// different keys proceed independently while requests for the same key are
// serialized. Values are owned by the cache once inserted and must be
// treated as read-only by all callers.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// Default configuration constants.
const (
	// ShardCount is the number of shards. Must be a power of 2 so shard
	// selection reduces to a bitwise AND.
	ShardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 64

	// shardMask selects a shard from a key hash (ShardCount - 1).
	shardMask = ShardCount - 1
)

// Hasher computes the hash used for shard selection of a key.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Uint64Hasher returns the key itself as the hash (identity hash).
func Uint64Hasher(u uint64) uint64 {
	return u
}

// BytesHasher computes the FNV-1a hash of a raw key encoding. Callers with
// composite keys serialize the fields and hash the result.
func BytesHasher(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}

// Sharded is a thread-safe sharded LRU store mapping fingerprints to their
// most recently generated value. It guarantees at most one live value per
// key: inserting for an existing key supersedes the previous entry, and
// GetOrCreate runs its create function under the shard lock so a given key
// is generated at most once no matter how many callers race for it.
type Sharded[K comparable, V any] struct {
	shards   [ShardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int // per shard

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// shard is a single shard with its own lock, entry map and LRU order.
type shard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*entry[K, V]
	lru     *lruList[K]
}

// entry holds a cached value with its LRU node.
type entry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// NewSharded creates a sharded store with the given capacity per shard.
// Total capacity is approximately capacity * ShardCount. If capacity <= 0,
// DefaultCapacity is used. The hasher maps keys to shards; use StringHasher,
// Uint64Hasher, or a BytesHasher-based function for composite keys.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{
		hasher:   hasher,
		capacity: capacity,
	}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{
			entries: make(map[K]*entry[K, V]),
			lru:     newLRUList[K](),
		}
	}
	return c
}

func (c *Sharded[K, V]) getShard(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get retrieves a cached value by key.
// Returns (value, true) on a hit and moves the entry to the LRU front.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	sh := c.getShard(key)

	sh.mu.RLock()
	_, exists := sh.entries[key]
	sh.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		var zero V
		return zero, false
	}

	sh.mu.Lock()
	// Re-check after acquiring the write lock; the entry may have been
	// evicted in between.
	e, ok := sh.entries[key]
	if !ok {
		sh.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	sh.lru.MoveToFront(e.node)
	value := e.value
	sh.mu.Unlock()

	c.hits.Add(1)
	return value, true
}

// Set stores a value, superseding any existing entry for the key. When the
// shard exceeds capacity, the oldest entries are evicted. The value is
// stored as-is; ownership transfers to the cache.
func (c *Sharded[K, V]) Set(key K, value V) {
	sh := c.getShard(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if existing, ok := sh.entries[key]; ok {
		existing.value = value
		sh.lru.MoveToFront(existing.node)
		return
	}
	c.insertLocked(sh, key, value)
}

// GetOrCreate returns the cached value for key, invoking create to produce
// it on a miss. create runs with the shard lock held, so concurrent callers
// for the same key observe exactly one invocation; callers for keys on other
// shards are unaffected.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() V) V {
	v, _ := c.GetOrCreateErr(key, func() (V, error) { return create(), nil })
	return v
}

// GetOrCreateErr is GetOrCreate for fallible creation. When create fails,
// nothing is stored — a previous entry for the key, if any, stays in place —
// and the error is returned with a zero value.
func (c *Sharded[K, V]) GetOrCreateErr(key K, create func() (V, error)) (V, error) {
	sh := c.getShard(key)

	sh.mu.RLock()
	_, exists := sh.entries[key]
	sh.mu.RUnlock()

	if exists {
		sh.mu.Lock()
		if e, ok := sh.entries[key]; ok {
			sh.lru.MoveToFront(e.node)
			value := e.value
			sh.mu.Unlock()
			c.hits.Add(1)
			return value, nil
		}
		sh.mu.Unlock()
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()

	// Re-check after acquiring the write lock.
	if e, ok := sh.entries[key]; ok {
		sh.lru.MoveToFront(e.node)
		c.hits.Add(1)
		return e.value, nil
	}

	c.misses.Add(1)

	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.insertLocked(sh, key, value)
	return value, nil
}

// insertLocked adds a new entry, evicting the oldest ones if the shard is at
// capacity. The shard lock must be held.
func (c *Sharded[K, V]) insertLocked(sh *shard[K, V], key K, value V) {
	for sh.lru.Len() >= c.capacity {
		oldest, ok := sh.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(sh.entries, oldest)
		c.evictions.Add(1)
	}
	node := sh.lru.PushFront(key)
	sh.entries[key] = &entry[K, V]{value: value, node: node}
}

// Delete removes an entry. Returns true if the entry existed.
func (c *Sharded[K, V]) Delete(key K) bool {
	sh := c.getShard(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[key]
	if !ok {
		return false
	}
	sh.lru.Remove(e.node)
	delete(sh.entries, key)
	return true
}

// Clear removes all entries from every shard.
func (c *Sharded[K, V]) Clear() {
	for _, sh := range c.shards {
		sh.mu.Lock()
		sh.entries = make(map[K]*entry[K, V])
		sh.lru.Clear()
		sh.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for _, sh := range c.shards {
		sh.mu.RLock()
		total += len(sh.entries)
		sh.mu.RUnlock()
	}
	return total
}

// Capacity returns the per-shard capacity.
func (c *Sharded[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of the hit/miss/eviction counters.
func (c *Sharded[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity * ShardCount,
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Evictions: c.evictions.Load(),
	}
}
