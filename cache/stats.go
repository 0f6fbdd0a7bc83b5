package cache

// Stats is a point-in-time snapshot of cache behavior, read from atomic
// counters so taking a snapshot never blocks writers.
type Stats struct {
	// Len is the number of live entries across all shards.
	Len int

	// Capacity is the total capacity across all shards.
	Capacity int

	// Hits counts lookups that returned a cached value.
	Hits uint64

	// Misses counts lookups that required generation.
	Misses uint64

	// HitRate is Hits / (Hits + Misses), or 0 before any lookup.
	HitRate float64

	// Evictions counts entries removed by capacity pressure.
	Evictions uint64
}
