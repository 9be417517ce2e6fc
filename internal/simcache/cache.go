package simcache

// Key identifies an unordered pair of point indices.
type Key uint64

// MakeKey packs the pair (i, j) into a Key with the smaller index first.
func MakeKey(i, j int) Key {
	if i > j {
		i, j = j, i
	}
	return Key(uint64(uint32(i))<<32 | uint64(uint32(j)))
}

// Pair returns the two indices of k, smaller first.
func (k Key) Pair() (int, int) {
	return int(uint32(k >> 32)), int(uint32(k))
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// Cache is a grow-only pair cache.
type Cache struct {
	items  map[Key]float64
	hits   int64
	misses int64
}

// New creates an empty cache. sizeHint pre-sizes the underlying map.
func New(sizeHint int) *Cache {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Cache{
		items: make(map[Key]float64, sizeHint),
	}
}

// Get returns the cached value for the pair (i, j).
func (c *Cache) Get(i, j int) (float64, bool) {
	v, ok := c.items[MakeKey(i, j)]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Set stores the value for the pair (i, j).
func (c *Cache) Set(i, j int, v float64) {
	c.items[MakeKey(i, j)] = v
}

// GetOrCompute returns the cached value for (i, j), calling compute on a miss.
// Errors from compute are returned as-is and nothing is cached.
func (c *Cache) GetOrCompute(i, j int, compute func() (float64, error)) (float64, error) {
	if v, ok := c.Get(i, j); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return 0, err
	}
	c.Set(i, j, v)
	return v, nil
}

// Len returns the number of cached pairs.
func (c *Cache) Len() int {
	return len(c.items)
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Entries: len(c.items),
	}
}
